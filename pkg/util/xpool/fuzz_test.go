package xpool

import (
	"errors"
	"math"
	"testing"
)

func FuzzBuild(f *testing.F) {
	f.Add(1, 1)
	f.Add(0, 0)
	f.Add(-1, -1)
	f.Add(100, 100)
	f.Add(math.MaxInt, 1)           // 极端 workers
	f.Add(1, math.MaxInt)           // 极端 queueSize
	f.Add(math.MinInt, math.MinInt) // 双极端
	f.Add(MaxWorkers+1, 1)          // 超上限 workers
	f.Add(1, MaxQueueSize+1)        // 超上限 queueSize

	f.Fuzz(func(t *testing.T, workers, queueSize int) {
		// 避免 fuzz 创建过多 goroutine 与过大 channel
		if workers > 64 || queueSize > 1<<12 {
			if workers > MaxWorkers && validateSize(workers) == nil {
				t.Fatalf("validateSize(%d) accepted out-of-range size", workers)
			}
			if queueSize > MaxQueueSize && validateQueueSize(queueSize) == nil {
				t.Fatalf("validateQueueSize(%d) accepted out-of-range size", queueSize)
			}
			return
		}

		pool, err := Build(workers, WithQueueSize(queueSize), WithLogger(discardLogger()))
		if err != nil {
			if workers == 0 && err.Error() != zeroSizeMessage {
				t.Fatalf("Build(0) error = %q", err)
			}
			if workers < 1 && !errors.Is(err, ErrInvalidSize) {
				t.Fatalf("Build(%d) error = %v, want ErrInvalidSize", workers, err)
			}
			return
		}

		for range min(queueSize, 10) {
			_ = pool.TrySubmit(func() {})
		}
		if err := pool.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	})
}
