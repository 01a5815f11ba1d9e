package xmetrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/xthreadpool/pkg/util/xpool"
)

const (
	metricJobsSubmitted  = "xthreadpool.jobs.submitted"
	metricJobsRejected   = "xthreadpool.jobs.rejected"
	metricJobsCompleted  = "xthreadpool.jobs.completed"
	metricJobsPanics     = "xthreadpool.jobs.panics"
	metricJobDuration    = "xthreadpool.job.duration"
	metricWorkersBusy    = "xthreadpool.workers.busy"
	metricWorkersExited  = "xthreadpool.workers.exited"
	metricQueueLength    = "xthreadpool.queue.length"
	rejectReasonClosed   = "closed"
	rejectReasonFull     = "full"
	rejectReasonCanceled = "canceled"
	rejectReasonOther    = "other"
)

var _ xpool.Observer = (*PoolObserver)(nil)

// PoolObserver 把 xpool 的生命周期事件记录为 OTel 指标。
//
// 所有方法在 worker goroutine 上同步调用，只做指标累加。
type PoolObserver struct {
	meter metric.Meter
	attrs attribute.Set

	submitted metric.Int64Counter
	rejected  metric.Int64Counter
	completed metric.Int64Counter
	panics    metric.Int64Counter
	duration  metric.Float64Histogram
	busy      metric.Int64UpDownCounter
	exited    metric.Int64Counter
}

// NewPoolObserver 创建 pool 指标观测器。
func NewPoolObserver(opts ...Option) (*PoolObserver, error) {
	cfg := newConfig(opts)
	meter := cfg.meterProvider.Meter(cfg.instrumentationName)

	o := &PoolObserver{
		meter: meter,
		attrs: attribute.NewSet(attribute.String("pool", cfg.poolName)),
	}

	var err error
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&o.submitted, metricJobsSubmitted, "jobs accepted into the queue"},
		{&o.rejected, metricJobsRejected, "jobs refused or discarded"},
		{&o.completed, metricJobsCompleted, "jobs run to completion, including panicked ones"},
		{&o.panics, metricJobsPanics, "jobs that panicked"},
		{&o.exited, metricWorkersExited, "workers that observed queue closure and exited"},
	}
	for _, c := range counters {
		*c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit("1"))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCreateInstrument, c.name, err)
		}
	}

	o.duration, err = meter.Float64Histogram(metricJobDuration,
		metric.WithDescription("job execution time"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateInstrument, metricJobDuration, err)
	}

	o.busy, err = meter.Int64UpDownCounter(metricWorkersBusy,
		metric.WithDescription("workers currently executing a job"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateInstrument, metricWorkersBusy, err)
	}

	return o, nil
}

// JobSubmitted 实现 xpool.Observer。
func (o *PoolObserver) JobSubmitted() {
	o.submitted.Add(context.Background(), 1, metric.WithAttributeSet(o.attrs))
}

// JobRejected 实现 xpool.Observer，reason 归类为 closed/full/canceled/other。
func (o *PoolObserver) JobRejected(reason error) {
	o.rejected.Add(context.Background(), 1,
		metric.WithAttributeSet(o.attrs),
		metric.WithAttributes(attribute.String("reason", rejectReason(reason))),
	)
}

// JobStarted 实现 xpool.Observer。
func (o *PoolObserver) JobStarted(int) {
	o.busy.Add(context.Background(), 1, metric.WithAttributeSet(o.attrs))
}

// JobFinished 实现 xpool.Observer。
func (o *PoolObserver) JobFinished(_ int, d time.Duration, panicked bool) {
	ctx := context.Background()
	set := metric.WithAttributeSet(o.attrs)
	o.busy.Add(ctx, -1, set)
	o.completed.Add(ctx, 1, set)
	o.duration.Record(ctx, d.Seconds(), set,
		metric.WithAttributes(attribute.Bool("panicked", panicked)))
	if panicked {
		o.panics.Add(ctx, 1, set)
	}
}

// WorkerExited 实现 xpool.Observer。
func (o *PoolObserver) WorkerExited(workerID int) {
	o.exited.Add(context.Background(), 1,
		metric.WithAttributeSet(o.attrs),
		metric.WithAttributes(attribute.Int("worker_id", workerID)),
	)
}

// RegisterQueueGauge 注册读取 pool.Stats().QueueLen 的异步 gauge。
// 返回的 Registration 在 pool 关闭后应 Unregister。
func (o *PoolObserver) RegisterQueueGauge(pool *xpool.Pool) (metric.Registration, error) {
	if pool == nil {
		return nil, ErrNilPool
	}

	gauge, err := o.meter.Int64ObservableGauge(metricQueueLength,
		metric.WithDescription("jobs waiting in the queue"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateInstrument, metricQueueLength, err)
	}

	attrs := o.attrs
	reg, err := o.meter.RegisterCallback(func(_ context.Context, obs metric.Observer) error {
		obs.ObserveInt64(gauge, int64(pool.Stats().QueueLen), metric.WithAttributeSet(attrs))
		return nil
	}, gauge)
	if err != nil {
		return nil, fmt.Errorf("xmetrics: register queue gauge: %w", err)
	}
	return reg, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, xpool.ErrPoolClosed):
		return rejectReasonClosed
	case errors.Is(err, xpool.ErrQueueFull):
		return rejectReasonFull
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return rejectReasonCanceled
	default:
		return rejectReasonOther
	}
}
