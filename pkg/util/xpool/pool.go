package xpool

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Job 是提交给 pool 的最小工作单元：无参数、无返回值，最多执行一次。
type Job func()

// 编译期断言：Pool 满足 io.Closer 关闭契约。
var _ io.Closer = (*Pool)(nil)

const (
	poolOpen int32 = iota
	poolClosing
	poolClosed
)

// Pool 是固定大小的 worker pool。
//
// 创建后 worker 立即运行；通过 Submit/SubmitContext/TrySubmit 或 Sender 提交任务，
// 通过 Close/Shutdown 关闭。Pool 的所有方法都可并发调用。
type Pool struct {
	opts    options
	logger  *slog.Logger
	queue   *jobQueue
	workers []*worker

	// sender 是 pool 自持的生产端句柄，关闭第一步将其取走（置 nil）。
	sender atomic.Pointer[Sender]
	state  atomic.Int32

	submitted atomic.Uint64
	completed atomic.Uint64
	rejected  atomic.Uint64
	panics    atomic.Uint64
	busy      atomic.Int64

	shutdownOnce sync.Once
	done         chan struct{}
}

// Build 创建包含 size 个 worker 的 Pool。
//
// size 为 0 时返回 *PoolCreationError，信息固定为 "Cannot create a pool of size 0!"；
// size 为负数或超过 MaxWorkers、队列容量无效时同样返回错误，从不 panic。
// 成功返回时 worker 已全部启动，id 依次为 0..size-1。
func Build(size int, opts ...Option) (*Pool, error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}
	if err := validateQueueSize(o.queueSize); err != nil {
		return nil, err
	}

	return newPool(size, o), nil
}

// MustNew 与 Build 相同，但参数无效时 panic。
//
// 仅用于 size 为编译期常量等"无效即程序缺陷"的场景，校验逻辑完全复用 Build。
func MustNew(size int, opts ...Option) *Pool {
	p, err := Build(size, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Use 创建 Pool、执行 fn，并在任何退出路径上（包括 fn panic）关闭 Pool。
//
// 返回 fn 的错误与 Close 的错误（errors.Join）。
// 适合"作用域内使用、离开即优雅关闭"的场景，省去手写 defer。
func Use(size int, fn func(p *Pool) error, opts ...Option) (err error) {
	p, err := Build(size, opts...)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, p.Close())
	}()
	return fn(p)
}

func newPool(size int, o options) *Pool {
	logger := o.logger
	if o.name != "" {
		logger = logger.With(slog.String("pool", o.name))
	}

	p := &Pool{
		opts:    o,
		logger:  logger,
		queue:   newJobQueue(o.queueSize),
		workers: make([]*worker, 0, size),
		done:    make(chan struct{}),
	}
	p.sender.Store(&Sender{pool: p})

	for id := range size {
		p.workers = append(p.workers, spawnWorker(id, p))
	}

	logger.Debug("pool started",
		slog.Int("workers", size),
		slog.Int("queue_size", o.queueSize),
	)
	return p
}

// Submit 提交任务，队列满时阻塞等待空位。
//
// 返回 ErrNilJob（job 为 nil）或 ErrPoolClosed（关闭已开始，包括阻塞期间开始关闭）。
// 提交成功只代表任务已入队；任务在某个 worker 上执行，结果不回传。
func (p *Pool) Submit(job Job) error {
	return p.SubmitContext(context.Background(), job)
}

// SubmitContext 与 Submit 相同，但 ctx 结束时放弃等待并返回 ctx.Err()。
func (p *Pool) SubmitContext(ctx context.Context, job Job) error {
	s := p.sender.Load()
	if s == nil {
		if job == nil {
			return ErrNilJob
		}
		p.reject(ErrPoolClosed)
		return ErrPoolClosed
	}
	return s.SendContext(ctx, job)
}

// TrySubmit 非阻塞提交，队列满时立即返回 ErrQueueFull。
func (p *Pool) TrySubmit(job Job) error {
	s := p.sender.Load()
	if s == nil {
		if job == nil {
			return ErrNilJob
		}
		p.reject(ErrPoolClosed)
		return ErrPoolClosed
	}
	return s.TrySend(job)
}

// Sender 返回一个新的生产端句柄，可交给其他 goroutine 并发提交。
//
// 句柄不延长队列寿命：Pool 开始关闭后，所有句柄的发送都返回 ErrPoolClosed。
func (p *Pool) Sender() Sender {
	return Sender{pool: p}
}

// Close 优雅关闭，等价于 Shutdown(context.Background())。
//
// 阻塞直到所有 worker 退出。重复调用安全，后续调用等待同一次关闭完成。
// 不可在任务内部调用，否则该任务所在 worker 会等待自己退出。
func (p *Pool) Close() error {
	return p.Shutdown(context.Background())
}

// Shutdown 关闭 pool 并按创建顺序 join 所有 worker。
//
// 关闭顺序：
//  1. 取走 pool 的生产端句柄并关闭队列（关闭信号，阻塞中的提交返回 ErrPoolClosed）
//  2. worker 执行完手上的任务、排空队列（或按 WithDiscardPending 丢弃）后退出
//  3. 依次 join 每个 worker，每个句柄只 join 一次
//
// ctx 先到期时返回 ctx.Err()，残留 worker 继续在后台排空，Done() 在全部退出后关闭。
// 并发或重复调用不会 panic 或重复 join。
func (p *Pool) Shutdown(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}

	p.shutdownOnce.Do(func() {
		p.state.Store(poolClosing)
		p.sender.Store(nil)
		p.queue.close()
		p.logger.Debug("pool closing", slog.Int("pending", p.queue.length()))
		go p.joinAll()
	})

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// joinAll 按创建顺序 join 所有 worker，完成后关闭 done。
func (p *Pool) joinAll() {
	for _, w := range p.workers {
		w.join()
	}
	p.state.Store(poolClosed)
	p.logger.Debug("pool closed",
		slog.Uint64("completed", p.completed.Load()),
		slog.Uint64("rejected", p.rejected.Load()),
	)
	close(p.done)
}

// Done 返回在所有 worker 被 join 后关闭的 channel。
// 用于 Shutdown 超时返回后继续等待残留 worker。
func (p *Pool) Done() <-chan struct{} {
	return p.done
}

// Size 返回 worker 数量。
func (p *Pool) Size() int {
	return len(p.workers)
}

// QueueCap 返回队列容量。
func (p *Pool) QueueCap() int {
	return p.queue.capacity()
}

// Name 返回 WithName 设置的名称。
func (p *Pool) Name() string {
	return p.opts.name
}

// Workers 按创建顺序返回所有 worker 的快照。
func (p *Pool) Workers() []WorkerInfo {
	infos := make([]WorkerInfo, len(p.workers))
	for i, w := range p.workers {
		infos[i] = w.info()
	}
	return infos
}

// Stats 是 pool 的统计快照。各字段分别读取，彼此之间不保证原子一致。
type Stats struct {
	Workers   int
	Busy      int
	QueueLen  int
	QueueCap  int
	Submitted uint64
	Completed uint64
	Rejected  uint64
	Panics    uint64
}

// Stats 返回当前统计快照。
func (p *Pool) Stats() Stats {
	return Stats{
		Workers:   len(p.workers),
		Busy:      int(p.busy.Load()),
		QueueLen:  p.queue.length(),
		QueueCap:  p.queue.capacity(),
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Rejected:  p.rejected.Load(),
		Panics:    p.panics.Load(),
	}
}

// discarding 报告 worker 是否应丢弃出队的任务。
func (p *Pool) discarding() bool {
	return p.opts.discardPending && p.state.Load() != poolOpen
}

func (p *Pool) accept() {
	p.submitted.Add(1)
	p.opts.observer.JobSubmitted()
}

func (p *Pool) reject(reason error) {
	p.rejected.Add(1)
	p.opts.observer.JobRejected(reason)
}
