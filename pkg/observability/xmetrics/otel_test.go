package xmetrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func TestNewOTelObserver_Default(t *testing.T) {
	obs, err := NewOTelObserver(WithInstrumentationName(""), WithTracerProvider(nil), WithMeterProvider(nil), nil)
	require.NoError(t, err)
	require.NotNil(t, obs)
}

func TestOTelObserver_SpanAndMetrics(t *testing.T) {
	tp, exporter := newTestTracerProvider(t)
	mp, reader := newTestMeterProvider(t)

	obs, err := NewOTelObserver(WithTracerProvider(tp), WithMeterProvider(mp))
	require.NoError(t, err)

	ctx, span := obs.Start(context.Background(), SpanOptions{
		Component: "hello",
		Operation: "GET /",
		Kind:      KindServer,
		Attrs:     []Attr{String("request_id", "req-1"), {Key: "", Value: "skipped"}},
	})
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())
	span.End(Result{Attrs: []Attr{Int("status_code", 200)}})
	span.End(Result{Err: errors.New("ignored")})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, "GET /", got.Name)
	assert.Equal(t, trace.SpanKindServer, got.SpanKind)
	assert.Equal(t, codes.Ok, got.Status.Code)
	assert.Contains(t, got.Attributes, attribute.String("component", "hello"))
	assert.Contains(t, got.Attributes, attribute.String("request_id", "req-1"))
	assert.Contains(t, got.Attributes, attribute.Int("status_code", 200))

	rm := collect(t, reader)
	assert.Equal(t, int64(1), sumInt64(t, rm, metricOperationTotal))
	assert.Equal(t, uint64(1), histogramCount(t, rm, metricOperationDuration))
}

func TestOTelObserver_ErrorResult(t *testing.T) {
	tp, exporter := newTestTracerProvider(t)
	mp, reader := newTestMeterProvider(t)

	obs, err := NewOTelObserver(WithTracerProvider(tp), WithMeterProvider(mp))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	_, span := obs.Start(ctx, SpanOptions{})
	cancel()
	span.End(Result{Err: errors.New("write failed")})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, unknownOperation, spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "write failed", spans[0].Status.Description)
	require.Len(t, spans[0].Events, 1, "error should be recorded as an event")

	// ctx 已取消，指标仍然记录。
	rm := collect(t, reader)
	assert.Equal(t, int64(1), sumInt64(t, rm, metricOperationTotal))
}

func TestOTelObserver_ExplicitErrorStatus(t *testing.T) {
	tp, exporter := newTestTracerProvider(t)
	obs, err := NewOTelObserver(WithTracerProvider(tp))
	require.NoError(t, err)

	//nolint:staticcheck // 验证 nil ctx 被替换
	_, span := obs.Start(nil, SpanOptions{Operation: "op"})
	span.End(Result{Status: StatusError})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "operation failed", spans[0].Status.Description)
}

func TestStart_Fallbacks(t *testing.T) {
	//nolint:staticcheck // 验证 nil ctx 被替换
	ctx, span := Start(nil, nil, SpanOptions{})
	assert.NotNil(t, ctx)
	assert.IsType(t, NoopSpan{}, span)

	ctx, span = Start(context.Background(), NoopObserver{}, SpanOptions{})
	assert.NotNil(t, ctx)
	span.End(Result{})

	ctx, span = Start(context.Background(), nilSpanObserver{}, SpanOptions{})
	assert.NotNil(t, ctx)
	assert.IsType(t, NoopSpan{}, span)
}

type nilSpanObserver struct{}

func (nilSpanObserver) Start(context.Context, SpanOptions) (context.Context, Span) {
	return nil, nil
}

func TestToKeyValue(t *testing.T) {
	tests := []struct {
		attr Attr
		want attribute.KeyValue
	}{
		{String("s", "v"), attribute.String("s", "v")},
		{Bool("b", true), attribute.Bool("b", true)},
		{Int("i", 7), attribute.Int("i", 7)},
		{Int64("i64", 8), attribute.Int64("i64", 8)},
		{Attr{Key: "f", Value: 1.5}, attribute.Float64("f", 1.5)},
		{Duration("d", time.Millisecond), attribute.Int64("d", 1_000_000)},
		{Attr{Key: "x", Value: struct{ A int }{1}}, attribute.String("x", "{1}")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toKeyValue(tt.attr), tt.attr.Key)
	}
	assert.Nil(t, attrsToOTel(nil))
	assert.Empty(t, attrsToOTel([]Attr{{Key: "nil"}}))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Internal", KindInternal.String())
	assert.Equal(t, "Server", KindServer.String())
	assert.Equal(t, "Client", KindClient.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
