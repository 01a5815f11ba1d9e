package xrun

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrSignal 是所有信号退出错误的哨兵，配合 errors.Is 使用。
	ErrSignal = errors.New("received signal")

	// ErrNilFunc 服务函数为 nil。
	ErrNilFunc = errors.New("xrun: nil service func")

	// ErrNilService Service 为 nil。
	ErrNilService = errors.New("xrun: nil service")

	// ErrInvalidInterval Ticker 间隔必须为正数。
	ErrInvalidInterval = errors.New("xrun: interval must be positive")
)

// SignalError 记录导致退出的信号。
//
//	var sigErr *xrun.SignalError
//	if errors.As(err, &sigErr) {
//	    logger.Info("stopped", "signal", sigErr.Signal)
//	}
type SignalError struct {
	Signal os.Signal
}

func (e *SignalError) Error() string {
	if e.Signal == nil {
		return "received signal <nil>"
	}
	return fmt.Sprintf("received signal %s", e.Signal)
}

// Unwrap 使 errors.Is(err, ErrSignal) 成立。
func (e *SignalError) Unwrap() error {
	return ErrSignal
}
