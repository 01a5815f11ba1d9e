// Package xlog 基于 log/slog 的结构化日志库。
//
// # 创建 Logger
//
// 使用 Builder 模式（first-error-wins：遇到第一个配置错误后，Build 返回该错误）：
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetRotation("/var/log/xpoolsrv.log", xlog.WithMaxSize(100)).
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// Build 返回的 *Logger 内嵌 *slog.Logger，可直接传给只接受 *slog.Logger 的组件
// （如 xpool.WithLogger(logger.Logger)）。
//
// # 日志级别
//
// LevelDebug(-4)、LevelInfo(0)、LevelWarn(4)、LevelError(8)。
// [ParseLevel] 从字符串解析；Level 实现 encoding.TextMarshaler/TextUnmarshaler。
// [Logger.SetLevel] 运行时生效，派生 logger 共享同一个 LevelVar。
//
// # 上下文注入
//
// 默认启用 EnrichHandler：从 context 中提取 request_id（[WithRequestID]）
// 以及当前 OpenTelemetry span 的 trace_id、span_id，注入每条日志。
// 需要使用 *Context 系列方法（InfoContext 等）传递 ctx。
//
// # 文件轮转
//
// [Builder.SetRotation] 使用 lumberjack 按大小轮转，cleanup 负责关闭文件。
package xlog
