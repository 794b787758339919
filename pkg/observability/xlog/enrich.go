package xlog

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// enrichHandler 从 context 中提取 OTel 追踪上下文注入日志记录。
//
// 设计决策: 在 Handler 层注入而非每个调用点手工添加，
// 保证任何通过该 Logger 输出的日志都能关联到当前 span。
// context 中没有有效 span 时零注入、零分配。
type enrichHandler struct {
	inner slog.Handler
}

func newEnrichHandler(inner slog.Handler) slog.Handler {
	return &enrichHandler{inner: inner}
}

func (h *enrichHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *enrichHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.inner.Handle(ctx, r)
}

func (h *enrichHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &enrichHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *enrichHandler) WithGroup(name string) slog.Handler {
	return &enrichHandler{inner: h.inner.WithGroup(name)}
}
