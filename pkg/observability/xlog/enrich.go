package xlog

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

type requestIDKey struct{}

// WithRequestID 返回携带请求 ID 的 context，EnrichHandler 会将其注入日志。
// 空 id 不写入。
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom 读取 context 中的请求 ID，不存在时返回空字符串。
func RequestIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// EnrichHandler 自动从 context 提取请求与追踪信息并注入日志。
//
// 注入字段：request_id（WithRequestID）、trace_id 与 span_id（当前有效的 OTel span）。
// 缺少的字段直接跳过，不影响日志记录。
type EnrichHandler struct {
	base slog.Handler
}

// NewEnrichHandler 包装 base handler。
//
// 调用 WithGroup 后注入字段会被归入 group 下，这是 slog handler 链的固有行为。
func NewEnrichHandler(base slog.Handler) (*EnrichHandler, error) {
	if base == nil {
		return nil, ErrNilHandler
	}
	return &EnrichHandler{base: base}, nil
}

// Enabled 委托给底层 handler
func (h *EnrichHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

// maxEnrichAttrs request_id + trace_id + span_id
const maxEnrichAttrs = 3

// Handle 注入 context 字段后交给底层 handler。
// 根据 slog 契约，修改 record 前必须 Clone。
func (h *EnrichHandler) Handle(ctx context.Context, r slog.Record) error {
	var buf [maxEnrichAttrs]slog.Attr
	attrs := buf[:0]

	if ctx != nil {
		if id := RequestIDFrom(ctx); id != "" {
			attrs = append(attrs, slog.String(KeyRequestID, id))
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			attrs = append(attrs,
				slog.String(KeyTraceID, sc.TraceID().String()),
				slog.String(KeySpanID, sc.SpanID().String()),
			)
		}
	}

	if len(attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(attrs...)
	}
	return h.base.Handle(ctx, r)
}

// WithAttrs 返回带额外属性的新 handler
func (h *EnrichHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EnrichHandler{base: h.base.WithAttrs(attrs)}
}

// WithGroup 返回带分组的新 handler
func (h *EnrichHandler) WithGroup(name string) slog.Handler {
	return &EnrichHandler{base: h.base.WithGroup(name)}
}
