package xrun

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTicker_InvalidArgs(t *testing.T) {
	ctx := context.Background()
	assert.ErrorIs(t, Ticker(0, false, func(context.Context) error { return nil })(ctx), ErrInvalidInterval)
	assert.ErrorIs(t, Ticker(time.Second, false, nil)(ctx), ErrNilFunc)
}

func TestTicker_RunsUntilCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var n atomic.Int32
	err := Ticker(time.Millisecond, true, func(context.Context) error {
		if n.Add(1) == 3 {
			cancel()
		}
		return nil
	})(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, n.Load(), int32(3))
}

func TestTicker_ImmediateSkippedWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var called atomic.Bool
	err := Ticker(time.Hour, true, func(context.Context) error {
		called.Store(true)
		return nil
	})(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called.Load())
}

func TestTicker_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	err := Ticker(time.Millisecond, false, func(context.Context) error { return boom })(context.Background())
	assert.ErrorIs(t, err, boom)
}
