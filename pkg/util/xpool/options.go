package xpool

import "log/slog"

const (
	// DefaultQueueSize 默认任务队列容量。
	DefaultQueueSize = 1024

	// MaxWorkers worker 数量上限。
	MaxWorkers = 1 << 16

	// MaxQueueSize 队列容量上限。
	MaxQueueSize = 1 << 24
)

// Option 定义 Pool 可选配置函数类型。
type Option func(*options)

type options struct {
	queueSize      int
	logger         *slog.Logger
	name           string
	observer       Observer
	panicHandler   func(workerID int, r any)
	lockOSThread   bool
	discardPending bool
}

func defaultOptions() options {
	return options{
		queueSize: DefaultQueueSize,
		logger:    slog.Default(),
		observer:  NoopObserver{},
	}
}

// WithQueueSize 设置任务队列容量，有效范围 [1, MaxQueueSize]。
// 超出范围时 Build 返回 ErrInvalidQueueSize。
//
// 队列满时 Submit 阻塞（背压），TrySubmit 返回 ErrQueueFull。
func WithQueueSize(n int) Option {
	return func(o *options) {
		o.queueSize = n
	}
}

// WithLogger 设置日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置 pool 名称，多实例场景下用于区分日志来源。
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithObserver 设置任务生命周期观测器（如 xmetrics.PoolObserver）。
// 传入 nil 将被忽略。
//
// Observer 的方法在 worker goroutine 上同步调用，实现应保持轻量。
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithPanicHandler 设置任务 panic 回调。
// 回调在发生 panic 的 worker 上同步执行，日志记录之后调用。
func WithPanicHandler(fn func(workerID int, r any)) Option {
	return func(o *options) {
		o.panicHandler = fn
	}
}

// WithLockOSThread 让每个 worker goroutine 独占一个 OS 线程（runtime.LockOSThread）。
//
// 适用于任务依赖线程局部状态的场景（如 cgo 调用、setns）。
// 默认关闭：普通任务交给 Go 调度器即可。
func WithLockOSThread() Option {
	return func(o *options) {
		o.lockOSThread = true
	}
}

// WithDiscardPending 关闭时丢弃队列中尚未被 worker 取走的任务。
//
// 默认行为是排空：关闭后 worker 仍会执行队列中剩余的任务再退出。
// 启用后剩余任务不再执行，计入 Stats.Rejected。
// 已被 worker 取走的任务总是执行完毕。
func WithDiscardPending() Option {
	return func(o *options) {
		o.discardPending = true
	}
}
