package xpool

import "time"

// Observer 观测任务与 worker 的生命周期事件。
//
// 所有方法都可能被多个 goroutine 并发调用，实现必须并发安全。
// JobStarted/JobFinished/WorkerExited 在 worker goroutine 上同步执行，
// 耗时操作会直接降低 pool 吞吐。
type Observer interface {
	// JobSubmitted 任务成功进入队列。
	JobSubmitted()

	// JobRejected 任务未能进入队列或在关闭时被丢弃。
	// reason 为 ErrPoolClosed、ErrQueueFull 或 context 错误。
	JobRejected(reason error)

	// JobStarted worker 取到任务，即将执行。
	JobStarted(workerID int)

	// JobFinished 任务执行结束（含 panic）。
	JobFinished(workerID int, d time.Duration, panicked bool)

	// WorkerExited worker 观察到队列关闭并退出。
	WorkerExited(workerID int)
}

// NoopObserver 是空实现，也是默认值。
type NoopObserver struct{}

// JobSubmitted 空实现。
func (NoopObserver) JobSubmitted() {}

// JobRejected 空实现。
func (NoopObserver) JobRejected(error) {}

// JobStarted 空实现。
func (NoopObserver) JobStarted(int) {}

// JobFinished 空实现。
func (NoopObserver) JobFinished(int, time.Duration, bool) {}

// WorkerExited 空实现。
func (NoopObserver) WorkerExited(int) {}
