// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展，支持文件轮转和动态级别
//   - xmetrics: 基于 OpenTelemetry 的请求观测和 worker pool 指标
//
// 日志通过 context 自动带上 request_id 与 trace_id/span_id，
// 与 xmetrics 创建的 span 关联。
package observability
