package xpool

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize 表示 worker 数量无效。
	// 所有 *PoolCreationError 都满足 errors.Is(err, ErrInvalidSize)。
	ErrInvalidSize = errors.New("xpool: invalid pool size")

	// ErrInvalidQueueSize 表示队列容量无效。
	ErrInvalidQueueSize = errors.New("xpool: invalid queue size")

	// ErrPoolClosed 表示 pool 已开始关闭，不再接收任务。
	ErrPoolClosed = errors.New("xpool: pool is closed")

	// ErrQueueFull 表示任务队列已满（仅 TrySubmit/TrySend 返回）。
	ErrQueueFull = errors.New("xpool: queue is full")

	// ErrNilJob 表示提交的任务为 nil。
	ErrNilJob = errors.New("xpool: job cannot be nil")

	// ErrNilContext 表示 context 参数为 nil。
	ErrNilContext = errors.New("xpool: nil context")
)

// zeroSizeMessage 是 size 为 0 时的固定错误信息，调用方可能依赖其原文。
const zeroSizeMessage = "Cannot create a pool of size 0!"

// PoolCreationError 描述 Build 拒绝创建 pool 的原因。
//
// 这是可恢复的配置错误：由调用方决定如何降级（例如改用默认大小）。
// 使用 errors.Is(err, ErrInvalidSize) 判断类别，errors.As 获取具体信息。
type PoolCreationError struct {
	// Message 人类可读的错误信息。size 为 0 时固定为 "Cannot create a pool of size 0!"。
	Message string
}

// Error 实现 error 接口，原样返回 Message。
func (e *PoolCreationError) Error() string {
	return e.Message
}

// Is 支持 errors.Is(err, ErrInvalidSize)。
func (e *PoolCreationError) Is(target error) bool {
	return target == ErrInvalidSize
}

// validateSize 校验 worker 数量，返回 nil 或 *PoolCreationError。
func validateSize(size int) error {
	switch {
	case size == 0:
		return &PoolCreationError{Message: zeroSizeMessage}
	case size < 0:
		return &PoolCreationError{Message: fmt.Sprintf("Cannot create a pool of negative size %d!", size)}
	case size > MaxWorkers:
		return &PoolCreationError{Message: fmt.Sprintf("Cannot create a pool of size %d, the maximum is %d!", size, MaxWorkers)}
	default:
		return nil
	}
}

// validateQueueSize 校验队列容量。
func validateQueueSize(n int) error {
	if n < 1 || n > MaxQueueSize {
		return fmt.Errorf("%w: %d (must be in [1, %d])", ErrInvalidQueueSize, n, MaxQueueSize)
	}
	return nil
}
