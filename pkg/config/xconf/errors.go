package xconf

import "errors"

// 配置加载和解析相关错误。
var (
	// ErrEmptyPath 配置文件路径为空。
	ErrEmptyPath = errors.New("xconf: empty config path")

	// ErrUnsupportedFormat 不支持的配置格式。
	ErrUnsupportedFormat = errors.New("xconf: unsupported config format")

	// ErrLoadFailed 配置加载失败。
	ErrLoadFailed = errors.New("xconf: failed to load config")

	// ErrParseFailed 配置解析失败。
	ErrParseFailed = errors.New("xconf: failed to parse config")

	// ErrUnmarshalFailed 配置反序列化失败。
	ErrUnmarshalFailed = errors.New("xconf: failed to unmarshal config")

	// ErrNotReloadable 从字节数据创建的配置不能 Reload 或 Watch。
	ErrNotReloadable = errors.New("xconf: config created from bytes cannot be reloaded")

	// ErrWatcherRunning Watcher.Run 被重复调用。
	ErrWatcherRunning = errors.New("xconf: watcher already running")

	// ErrInvalidConfig 配置值不合法，由 AppConfig.Validate 返回。
	ErrInvalidConfig = errors.New("xconf: invalid config")
)
