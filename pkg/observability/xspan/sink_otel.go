package xspan

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	attrResourceName = "resource.name"
	attrErrorKind    = "error.kind"
	attrErrorMessage = "error.message"
)

// OTelSink 把完成记录重放为 OpenTelemetry span。
//
// 记录的起止时间通过显式时间戳还原，标签与指标转换为 span 属性。
// 导出（批量、重试、网络传输）完全由 TracerProvider 上挂接的
// processor/exporter 负责，OTelSink 本身同步返回、不等待投递。
type OTelSink struct {
	tracer trace.Tracer
}

// 编译时接口检查
var _ Sink = (*OTelSink)(nil)

// NewOTelSink 创建 OTelSink。tracer 为 nil 时返回 nil，
// 调用方应在上层用 NoopSink 兜底。
func NewOTelSink(tracer trace.Tracer) *OTelSink {
	if tracer == nil {
		return nil
	}
	return &OTelSink{tracer: tracer}
}

// Publish 将记录转换为一个立即结束的 OTel span。
func (s *OTelSink) Publish(rec Record) {
	attrs := make([]attribute.KeyValue, 0, 3+len(rec.Tags)+len(rec.Metrics))
	attrs = append(attrs, attribute.String(attrResourceName, rec.Resource))
	if rec.ErrorKind != "" {
		attrs = append(attrs, attribute.String(attrErrorKind, rec.ErrorKind))
	}
	if rec.ErrorMessage != "" {
		attrs = append(attrs, attribute.String(attrErrorMessage, rec.ErrorMessage))
	}
	for key, value := range rec.Tags {
		attrs = append(attrs, toKeyValue(key, value))
	}
	for key, value := range rec.Metrics {
		attrs = append(attrs, attribute.Float64(key, value))
	}

	// 设计决策: 使用 Background 而非宿主操作的 context——记录发布发生在
	// 操作结束之后，宿主 context 可能已取消；且 Record 不携带远程父
	// span（分布式传播是非目标），每条记录都是独立的根 span。
	_, span := s.tracer.Start(
		context.Background(),
		rec.Name,
		trace.WithTimestamp(rec.Start),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	if rec.Status == StatusError {
		span.SetStatus(codes.Error, rec.ErrorMessage)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(rec.End))
}

// toKeyValue 把标量标签转换为 OTel 属性，未知类型回退为字符串表示。
func toKeyValue(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
