package xpool

import "context"

// Sender 是任务队列的生产端句柄。
//
// Sender 是值类型，复制或 Clone 得到的句柄指向同一个队列，可被任意 goroutine 并发使用。
// 同一个句柄上按顺序发送的任务按同样的顺序出队（FIFO）。
// 零值 Sender 不可用，所有发送返回 ErrPoolClosed。
type Sender struct {
	pool *Pool
}

// Clone 返回指向同一队列的新句柄。
func (s Sender) Clone() Sender {
	return Sender{pool: s.pool}
}

// Send 发送任务，队列满时阻塞。语义同 Pool.Submit。
func (s Sender) Send(job Job) error {
	return s.SendContext(context.Background(), job)
}

// SendContext 发送任务，ctx 结束时放弃等待。语义同 Pool.SubmitContext。
func (s Sender) SendContext(ctx context.Context, job Job) error {
	if ctx == nil {
		return ErrNilContext
	}
	if job == nil {
		return ErrNilJob
	}
	if s.pool == nil {
		return ErrPoolClosed
	}
	if err := s.pool.queue.send(ctx, job); err != nil {
		s.pool.reject(err)
		return err
	}
	s.pool.accept()
	return nil
}

// TrySend 非阻塞发送，队列满时返回 ErrQueueFull。语义同 Pool.TrySubmit。
func (s Sender) TrySend(job Job) error {
	if job == nil {
		return ErrNilJob
	}
	if s.pool == nil {
		return ErrPoolClosed
	}
	if err := s.pool.queue.trySend(job); err != nil {
		s.pool.reject(err)
		return err
	}
	s.pool.accept()
	return nil
}
