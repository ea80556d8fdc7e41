package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("competition-engine/internal/interfaces/httpapi")

// startSpan opens a handler span under the server span installed by the
// tracing middleware. Requests on untraced routes, such as /healthz,
// keep the ambient noop span instead of becoming standalone roots.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	if !strings.HasPrefix(name, "httpapi.Handler.") {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name)
}
