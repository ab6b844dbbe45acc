// Package utils holds small helpers shared across services.
package utils

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// TraceparentFromContext builds the W3C traceparent header for an
// outbound request. When ctx carries a valid span context (the lookup
// flow opens a span before fetching) the header propagates it;
// otherwise a fresh sampled identity is generated.
// Format: 00-<trace-id>-<span-id>-<flags>
func TraceparentFromContext(ctx context.Context) string {
	spanContext := trace.SpanContextFromContext(ctx)
	if spanContext.IsValid() {
		flags := "00"
		if spanContext.TraceFlags().IsSampled() {
			flags = "01"
		}
		return "00-" + spanContext.TraceID().String() + "-" + spanContext.SpanID().String() + "-" + flags
	}

	traceID := strings.ReplaceAll(uuid.New().String(), "-", "")
	spanID := strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	return "00-" + traceID + "-" + spanID + "-01"
}

// ExtractTraceID extracts trace_id from a W3C traceparent header.
// trace-id must be 32 hex characters. Returns empty string if
// traceparent is invalid or missing.
func ExtractTraceID(traceparent string) string {
	if traceparent == "" || !strings.HasPrefix(traceparent, "00-") {
		return ""
	}

	parts := strings.Split(traceparent, "-")
	if len(parts) < 2 {
		return ""
	}

	traceID := parts[1]
	if len(traceID) != 32 {
		return ""
	}

	return traceID
}
