package xpool

import (
	"log/slog"
	"runtime"
	"runtime/debug"
	"strconv"
	"sync/atomic"
	"time"
)

// WorkerState 表示 worker 的生命周期状态。
//
// 状态迁移：Idle ⇄ Busy → Draining → Exited，Exited 之后不再变化。
type WorkerState int32

const (
	// StateIdle 等待任务（可能正阻塞在出队上）。
	StateIdle WorkerState = iota
	// StateBusy 正在执行任务。
	StateBusy
	// StateDraining 已观察到队列关闭，正在退出。
	StateDraining
	// StateExited goroutine 已返回，可被 join。
	StateExited
)

// String 返回状态的可读名称，用于日志。
func (s WorkerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBusy:
		return "busy"
	case StateDraining:
		return "draining"
	case StateExited:
		return "exited"
	default:
		return "WorkerState(" + strconv.Itoa(int(s)) + ")"
	}
}

// WorkerInfo 是 worker 的只读快照。
type WorkerInfo struct {
	ID        int
	State     WorkerState
	Completed uint64
	Panics    uint64
}

// joinHandle 代表 worker goroutine 的所有权，done 在 goroutine 返回时关闭。
type joinHandle struct {
	done chan struct{}
}

// worker 绑定稳定 id 的常驻 goroutine。
// id 只用于诊断，不影响调度。
type worker struct {
	id   int
	pool *Pool

	// handle 在 join 时被取走（置 nil），保证每个 worker 最多被 join 一次。
	handle atomic.Pointer[joinHandle]

	state     atomic.Int32
	completed atomic.Uint64
	panics    atomic.Uint64
}

// spawnWorker 启动 worker goroutine。
func spawnWorker(id int, p *Pool) *worker {
	w := &worker{id: id, pool: p}
	h := &joinHandle{done: make(chan struct{})}
	w.handle.Store(h)
	go w.run(h)
	return w
}

// run 是 worker 主循环：出队 → 执行 → 循环，直到队列关闭且排空。
func (w *worker) run(h *joinHandle) {
	defer close(h.done)

	p := w.pool
	if p.opts.lockOSThread {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}

	for {
		w.setState(StateIdle)
		// 出队锁只在 receive 内部持有，返回时已释放。
		job, ok := p.queue.receive()
		if !ok {
			break
		}
		if p.discarding() {
			p.reject(ErrPoolClosed)
			continue
		}
		w.execute(job)
	}

	w.setState(StateDraining)
	p.logger.Debug("worker shutting down", slog.Int("worker_id", w.id))
	p.opts.observer.WorkerExited(w.id)
	w.setState(StateExited)
}

// execute 在当前 goroutine 上执行任务直到结束。
func (w *worker) execute(job Job) {
	p := w.pool

	w.setState(StateBusy)
	p.busy.Add(1)
	p.opts.observer.JobStarted(w.id)
	p.logger.Debug("worker picked up job", slog.Int("worker_id", w.id))

	start := time.Now()
	panicked := w.safeRun(job)
	elapsed := time.Since(start)

	p.busy.Add(-1)
	w.completed.Add(1)
	p.completed.Add(1)
	p.opts.observer.JobFinished(w.id, elapsed, panicked)
}

// safeRun 执行任务并捕获 panic。
// panic 不会被静默吞掉：记录 error 日志（含堆栈）、计数并回调 panicHandler，
// 然后 worker 继续服务后续任务。
func (w *worker) safeRun(job Job) (panicked bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		panicked = true
		p := w.pool
		w.panics.Add(1)
		p.panics.Add(1)
		p.logger.Error("job panic recovered",
			slog.Int("worker_id", w.id),
			slog.Any("panic", r),
			slog.String("stack", string(debug.Stack())),
		)
		if h := p.opts.panicHandler; h != nil {
			h(w.id, r)
		}
	}()
	job()
	return false
}

// join 阻塞直到 worker goroutine 退出。
// 句柄只能被取走一次：首次调用返回 true，之后的调用直接返回 false。
func (w *worker) join() bool {
	h := w.handle.Swap(nil)
	if h == nil {
		return false
	}
	<-h.done
	return true
}

func (w *worker) setState(s WorkerState) {
	w.state.Store(int32(s))
}

func (w *worker) info() WorkerInfo {
	return WorkerInfo{
		ID:        w.id,
		State:     WorkerState(w.state.Load()),
		Completed: w.completed.Load(),
		Panics:    w.panics.Load(),
	}
}
