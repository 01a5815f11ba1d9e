package xmetrics

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/omeyang/xthreadpool/pkg/util/xpool"
)

func TestPoolObserver_Lifecycle(t *testing.T) {
	mp, reader := newTestMeterProvider(t)

	obs, err := NewPoolObserver(WithMeterProvider(mp), WithPoolName("test"))
	require.NoError(t, err)

	pool, err := xpool.Build(2,
		xpool.WithObserver(obs),
		xpool.WithLogger(slog.New(slog.DiscardHandler)),
	)
	require.NoError(t, err)

	require.NoError(t, pool.Submit(func() {}))
	require.NoError(t, pool.Submit(func() {}))
	require.NoError(t, pool.Submit(func() { panic("metrics") }))
	require.NoError(t, pool.Close())
	require.ErrorIs(t, pool.Submit(func() {}), xpool.ErrPoolClosed)

	rm := collect(t, reader)
	assert.Equal(t, int64(3), sumInt64(t, rm, metricJobsSubmitted))
	assert.Equal(t, int64(3), sumInt64(t, rm, metricJobsCompleted))
	assert.Equal(t, int64(1), sumInt64(t, rm, metricJobsPanics))
	assert.Equal(t, int64(1), sumInt64(t, rm, metricJobsRejected))
	assert.Equal(t, int64(2), sumInt64(t, rm, metricWorkersExited))
	assert.Equal(t, int64(0), sumInt64(t, rm, metricWorkersBusy))
	assert.Equal(t, uint64(3), histogramCount(t, rm, metricJobDuration))

	m, ok := findMetric(rm, metricJobsRejected)
	require.True(t, ok)
	dp := m.Data.(metricdata.Sum[int64]).DataPoints[0]
	reason, ok := dp.Attributes.Value("reason")
	require.True(t, ok)
	assert.Equal(t, "closed", reason.AsString())
	pool2, ok := dp.Attributes.Value("pool")
	require.True(t, ok)
	assert.Equal(t, "test", pool2.AsString())
}

func TestPoolObserver_QueueGauge(t *testing.T) {
	mp, reader := newTestMeterProvider(t)

	obs, err := NewPoolObserver(WithMeterProvider(mp))
	require.NoError(t, err)

	pool, err := xpool.Build(1, xpool.WithQueueSize(4), xpool.WithObserver(obs))
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, pool.Submit(func() {
		close(started)
		<-release
	}))
	<-started
	require.NoError(t, pool.TrySubmit(func() {}))
	require.NoError(t, pool.TrySubmit(func() {}))

	reg, err := obs.RegisterQueueGauge(pool)
	require.NoError(t, err)

	rm := collect(t, reader)
	m, ok := findMetric(rm, metricQueueLength)
	require.True(t, ok)
	gauge, ok := m.Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(2), gauge.DataPoints[0].Value)

	close(release)
	require.NoError(t, pool.Close())
	require.NoError(t, reg.Unregister())

	_, err = obs.RegisterQueueGauge(nil)
	assert.ErrorIs(t, err, ErrNilPool)
}

func TestRejectReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{xpool.ErrPoolClosed, "closed"},
		{xpool.ErrQueueFull, "full"},
		{context.Canceled, "canceled"},
		{context.DeadlineExceeded, "canceled"},
		{errors.New("other"), "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rejectReason(tt.err))
	}
}
