package xpool

import (
	"context"
	"sync"
)

// jobQueue 是 Sender 与 worker 之间唯一的交接结构。
//
// 生产端：任意数量的 Sender 并发 send；关闭由 Pool 独占触发，只发生一次。
// 消费端：所有 worker 共享同一个接收端，recvMu 保证同一时刻只有一个 worker
// 在等待出队，出队完成即释放，任务执行期间不持锁。
//
// 关闭顺序：先关闭 closing 唤醒阻塞的 send，再在写锁下关闭 ch。
// send 全程持读锁，因此 close(ch) 不会与任何 send 并发，不存在 send on closed channel。
type jobQueue struct {
	ch      chan Job
	closing chan struct{}

	mu     sync.RWMutex
	closed bool
	once   sync.Once

	recvMu sync.Mutex
}

func newJobQueue(capacity int) *jobQueue {
	return &jobQueue{
		ch:      make(chan Job, capacity),
		closing: make(chan struct{}),
	}
}

// send 入队，队列满时阻塞直到有空位、队列关闭或 ctx 结束。
func (q *jobQueue) send(ctx context.Context, job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrPoolClosed
	}
	// 关闭已开始时优先拒绝，避免与下面的 select 随机选择产生竞争。
	select {
	case <-q.closing:
		return ErrPoolClosed
	default:
	}

	select {
	case q.ch <- job:
		return nil
	case <-q.closing:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// trySend 非阻塞入队。
func (q *jobQueue) trySend(job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrPoolClosed
	}
	select {
	case <-q.closing:
		return ErrPoolClosed
	default:
	}

	select {
	case q.ch <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// receive 阻塞出队。只有两种结果：取到任务，或队列已关闭且已排空（ok == false）。
func (q *jobQueue) receive() (Job, bool) {
	q.recvMu.Lock()
	defer q.recvMu.Unlock()
	job, ok := <-q.ch
	return job, ok
}

// close 关闭队列，幂等。
func (q *jobQueue) close() {
	q.once.Do(func() {
		close(q.closing)
		q.mu.Lock()
		q.closed = true
		close(q.ch)
		q.mu.Unlock()
	})
}

func (q *jobQueue) length() int { return len(q.ch) }

func (q *jobQueue) capacity() int { return cap(q.ch) }
