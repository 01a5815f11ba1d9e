package xconf

import (
	"errors"
	"fmt"
	"runtime"
	"time"
)

// 默认值
const (
	DefaultAddr       = "127.0.0.1:7878"
	DefaultDocRoot    = "."
	DefaultCacheSize  = 16
	DefaultCacheTTL   = time.Minute
	DefaultSleepDelay = 5 * time.Second
	DefaultQueueSize  = 1024
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// AppConfig 是 xpoolsrv 的完整配置。
type AppConfig struct {
	Pool   PoolConfig   `koanf:"pool" json:"pool"`
	Server ServerConfig `koanf:"server" json:"server"`
	Log    LogConfig    `koanf:"log" json:"log"`
}

// PoolConfig worker pool 配置。
type PoolConfig struct {
	// Workers worker 数量，默认 GOMAXPROCS。显式配置为 0 时由 xpool.Build 拒绝。
	Workers        int  `koanf:"workers" json:"workers"`
	QueueSize      int  `koanf:"queue_size" json:"queue_size"`
	LockOSThread   bool `koanf:"lock_os_thread" json:"lock_os_thread"`
	DiscardPending bool `koanf:"discard_pending" json:"discard_pending"`
}

// ServerConfig 连接处理服务配置。
type ServerConfig struct {
	Addr       string        `koanf:"addr" json:"addr"`
	DocRoot    string        `koanf:"doc_root" json:"doc_root"`
	CacheSize  int           `koanf:"cache_size" json:"cache_size"`
	CacheTTL   time.Duration `koanf:"cache_ttl" json:"cache_ttl"`
	SleepDelay time.Duration `koanf:"sleep_delay" json:"sleep_delay"`
}

// LogConfig 日志配置。File 非空时输出到轮转文件。
type LogConfig struct {
	Level  string `koanf:"level" json:"level"`
	Format string `koanf:"format" json:"format"`
	File   string `koanf:"file" json:"file"`
}

// DefaultAppConfig 返回默认配置。
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Pool: PoolConfig{
			Workers:   runtime.GOMAXPROCS(0),
			QueueSize: DefaultQueueSize,
		},
		Server: ServerConfig{
			Addr:       DefaultAddr,
			DocRoot:    DefaultDocRoot,
			CacheSize:  DefaultCacheSize,
			CacheTTL:   DefaultCacheTTL,
			SleepDelay: DefaultSleepDelay,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// LoadApp 在默认配置上叠加 cfg 的内容并校验。cfg 为 nil 时返回默认配置。
func LoadApp(cfg Config) (AppConfig, error) {
	app := DefaultAppConfig()
	if cfg != nil {
		if err := cfg.Unmarshal("", &app); err != nil {
			return AppConfig{}, err
		}
	}
	if err := app.Validate(); err != nil {
		return AppConfig{}, err
	}
	return app, nil
}

// Validate 校验配置取值范围，返回所有问题（errors.Join）。
// pool.workers 为 0 时不报错：xpool 的构造会以固定信息拒绝它。
func (c AppConfig) Validate() error {
	var errs []error
	if c.Pool.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: pool.workers %d is negative", ErrInvalidConfig, c.Pool.Workers))
	}
	if c.Pool.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("%w: pool.queue_size %d must be positive", ErrInvalidConfig, c.Pool.QueueSize))
	}
	if c.Server.Addr == "" {
		errs = append(errs, fmt.Errorf("%w: server.addr is empty", ErrInvalidConfig))
	}
	if c.Server.CacheSize < 1 {
		errs = append(errs, fmt.Errorf("%w: server.cache_size %d must be positive", ErrInvalidConfig, c.Server.CacheSize))
	}
	if c.Server.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("%w: server.cache_ttl %s is negative", ErrInvalidConfig, c.Server.CacheTTL))
	}
	if c.Server.SleepDelay < 0 {
		errs = append(errs, fmt.Errorf("%w: server.sleep_delay %s is negative", ErrInvalidConfig, c.Server.SleepDelay))
	}
	return errors.Join(errs...)
}
