// Package xconf 加载 xpoolsrv 的配置文件，基于 koanf 实现。
//
// # 支持的格式
//
//   - YAML：.yaml, .yml
//   - JSON：.json
//
// # 用法
//
//	cfg, err := xconf.New("/etc/xpoolsrv/config.yaml")
//	if err != nil {
//		return err
//	}
//	app, err := xconf.LoadApp(cfg)
//
// LoadApp 在 DefaultAppConfig 的基础上反序列化，文件中缺失的字段保留默认值，
// 最后执行 Validate。时长字段支持 "5s"、"10m" 写法。
//
// # 并发安全
//
// Reload 在写锁下原子替换 koanf 实例，Client/Unmarshal 在读锁下访问。
// Client 返回的实例在 Reload 后仍可用，但数据为旧快照。
//
// # 配置监视
//
// Watch 基于 fsnotify 监视配置文件所在目录（兼容编辑器的原子写入），
// 内置防抖，变更后自动 Reload 并回调。Watcher.Run(ctx) 阻塞直到 ctx 结束，
// 可直接作为 xrun 服务运行。从 bytes 创建的 Config 不支持监视。
package xconf
