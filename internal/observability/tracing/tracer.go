// Package tracing wires OpenTelemetry into the HTTP server. Spans carry the
// request method, path and status, and the trace ID is echoed to clients in
// X-Trace-Id so it can be matched with log lines.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "news-agency"

// Config controls the tracer provider.
type Config struct {
	Enabled     bool
	ServiceName string
	// SampleRatio is the fraction of root spans kept, in [0, 1].
	SampleRatio float64
}

// Init installs a global SDK tracer provider and the W3C propagator.
// When tracing is disabled the global no-op provider stays in place.
// The returned function flushes and shuts the provider down.
func Init(cfg Config, opts ...sdktrace.TracerProviderOption) func(context.Context) error {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	if !cfg.Enabled {
		return func(context.Context) error { return nil }
	}

	base := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	}
	tp := sdktrace.NewTracerProvider(append(base, opts...)...)
	otel.SetTracerProvider(tp)
	return tp.Shutdown
}

// GetTracer returns the application tracer from the current global provider.
func GetTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// TraceID returns the hex trace ID of the span in ctx, or "" without one.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
