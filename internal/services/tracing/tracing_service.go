package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Service provides OpenTelemetry tracing for the lookup pipeline.
// Without a configured SDK exporter the spans are no-ops, so callers
// never need to branch on whether tracing is enabled.
type Service struct {
	tracer trace.Tracer
}

func NewService(serviceName string) *Service {
	return &Service{
		tracer: otel.Tracer(serviceName),
	}
}

// StartSpan starts a span under the current context.
func (s *Service) StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, opts...)
}

// AddSpanAttributes adds string attributes to a span.
func AddSpanAttributes(span trace.Span, attrs map[string]string) {
	attributes := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		attributes = append(attributes, attribute.String(k, v))
	}
	span.SetAttributes(attributes...)
}

// RecordError marks the span as failed with err. A nil err is ignored.
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// ExtractTraceID returns the active trace ID, or "" outside a
// recorded trace.
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}
