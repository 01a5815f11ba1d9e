package hello

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/omeyang/xthreadpool/pkg/observability/xmetrics"
)

const (
	defaultAddr         = "127.0.0.1:7878"
	defaultCacheSize    = 16
	defaultCacheTTL     = time.Minute
	defaultSleepDelay   = 5 * time.Second
	defaultBindAttempts = 5
	defaultBindDelay    = 200 * time.Millisecond
	defaultReadTimeout  = 10 * time.Second
)

// Option 配置 Server。
type Option func(*options)

type options struct {
	addr         string
	docRoot      string
	cacheSize    int
	cacheTTL     time.Duration
	sleepDelay   time.Duration
	readTimeout  time.Duration
	bindAttempts uint
	bindDelay    time.Duration
	rejectOnBusy bool
	logger       *slog.Logger
	observer     xmetrics.Observer
}

func defaultOptions() options {
	return options{
		addr:         defaultAddr,
		cacheSize:    defaultCacheSize,
		cacheTTL:     defaultCacheTTL,
		sleepDelay:   defaultSleepDelay,
		readTimeout:  defaultReadTimeout,
		bindAttempts: defaultBindAttempts,
		bindDelay:    defaultBindDelay,
		logger:       slog.Default(),
		observer:     xmetrics.NoopObserver{},
	}
}

func (o options) validate() error {
	switch {
	case o.addr == "":
		return fmt.Errorf("%w: empty addr", ErrInvalidOption)
	case o.cacheSize < 1:
		return fmt.Errorf("%w: cache size %d", ErrInvalidOption, o.cacheSize)
	case o.cacheTTL < 0:
		return fmt.Errorf("%w: cache ttl %s", ErrInvalidOption, o.cacheTTL)
	case o.sleepDelay < 0:
		return fmt.Errorf("%w: sleep delay %s", ErrInvalidOption, o.sleepDelay)
	case o.bindAttempts < 1:
		return fmt.Errorf("%w: bind attempts %d", ErrInvalidOption, o.bindAttempts)
	}
	return nil
}

// WithAddr 设置监听地址，默认 127.0.0.1:7878。
func WithAddr(addr string) Option {
	return func(o *options) {
		o.addr = addr
	}
}

// WithDocRoot 设置页面文件目录。为空时只使用内置页面。
func WithDocRoot(dir string) Option {
	return func(o *options) {
		o.docRoot = dir
	}
}

// WithCache 设置页面缓存的条目数和过期时间，ttl 为 0 表示不过期。
func WithCache(size int, ttl time.Duration) Option {
	return func(o *options) {
		o.cacheSize = size
		o.cacheTTL = ttl
	}
}

// WithSleepDelay 设置 /sleep 的等待时间。
func WithSleepDelay(d time.Duration) Option {
	return func(o *options) {
		o.sleepDelay = d
	}
}

// WithReadTimeout 设置读取请求行的超时，0 表示不超时。
func WithReadTimeout(d time.Duration) Option {
	return func(o *options) {
		o.readTimeout = d
	}
}

// WithBindRetry 设置绑定监听地址的尝试次数和间隔。
func WithBindRetry(attempts uint, delay time.Duration) Option {
	return func(o *options) {
		o.bindAttempts = attempts
		o.bindDelay = delay
	}
}

// WithRejectOnBusy 队列满时立即以 503 拒绝新连接，而不是阻塞 accept 循环。
func WithRejectOnBusy(reject bool) Option {
	return func(o *options) {
		o.rejectOnBusy = reject
	}
}

// WithLogger 设置日志记录器，nil 忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver 设置请求级观测，nil 忽略。
func WithObserver(observer xmetrics.Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}
