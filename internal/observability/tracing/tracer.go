package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName names the tracer used across the service.
const InstrumentationName = "web-summarizer"

// Config controls tracer provider installation.
type Config struct {
	// Enabled installs an SDK tracer provider. When false the global no-op
	// provider stays in place and spans carry no IDs.
	Enabled bool `yaml:"enabled"`
	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `yaml:"service_name"`
	// Version is recorded as the service.version resource attribute.
	Version string `yaml:"-"`
	// SampleRatio is the fraction of new traces sampled (0-1). Parent
	// sampling decisions are always honoured. Default: 1.
	SampleRatio float64 `yaml:"sample_ratio"`
}

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// Init installs the global tracer provider and W3C propagators.
// Spans are kept in-process; they give every request a trace ID for logs
// and the X-Trace-Id header, and an exporter can be registered on the
// returned provider later.
func Init(cfg Config) (*sdktrace.TracerProvider, ShutdownFunc, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !cfg.Enabled {
		return nil, func(context.Context) error { return nil }, nil
	}

	ratio := cfg.SampleRatio
	if ratio == 0 {
		ratio = 1
	}
	if ratio < 0 || ratio > 1 {
		return nil, nil, fmt.Errorf("tracing sample ratio must be between 0 and 1, got %v", cfg.SampleRatio)
	}

	name := cfg.ServiceName
	if name == "" {
		name = InstrumentationName
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", name),
			attribute.String("service.version", cfg.Version),
		)),
	)
	otel.SetTracerProvider(tp)

	return tp, tp.Shutdown, nil
}

// GetTracer returns the service tracer from the current global provider.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}
