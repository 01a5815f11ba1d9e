package xpool

import (
	"sync/atomic"
	"testing"
)

func noop() {}

func BenchmarkSubmit(b *testing.B) {
	pool, err := Build(4, WithQueueSize(10000), WithLogger(discardLogger()))
	if err != nil {
		b.Fatal(err)
	}
	defer pool.Close()

	b.ReportAllocs()
	for b.Loop() {
		if err := pool.Submit(noop); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTrySubmit_Parallel(b *testing.B) {
	pool, err := Build(4, WithQueueSize(10000), WithLogger(discardLogger()))
	if err != nil {
		b.Fatal(err)
	}
	defer pool.Close()

	var rejected atomic.Int64
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		s := pool.Sender()
		for pb.Next() {
			if err := s.TrySend(noop); err != nil {
				rejected.Add(1)
			}
		}
	})
	if r := rejected.Load(); r > 0 {
		b.ReportMetric(float64(r)/float64(b.N)*100, "reject-%")
	}
}

func BenchmarkSubmitAndProcess(b *testing.B) {
	var processed atomic.Int64
	job := func() { processed.Add(1) }

	pool, err := Build(4, WithQueueSize(1000), WithLogger(discardLogger()))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for b.Loop() {
		if err := pool.Submit(job); err != nil {
			b.Fatal(err)
		}
	}
	if err := pool.Close(); err != nil {
		b.Fatal(err)
	}
}

// BenchmarkLifecycle 测量 Build→Submit(N)→Close 完整生命周期开销。
func BenchmarkLifecycle(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		pool, err := Build(2, WithQueueSize(64), WithLogger(discardLogger()))
		if err != nil {
			b.Fatal(err)
		}
		for range 10 {
			_ = pool.Submit(noop)
		}
		_ = pool.Close()
	}
}
