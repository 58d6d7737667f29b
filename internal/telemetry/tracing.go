// Package telemetry installs an OpenTelemetry tracer provider that writes the
// fold spans to a stream.
package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracerProvider owns the SDK provider installed as the global one.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	previous trace.TracerProvider
}

// NewTracerProvider exports every span as indented JSON to w and sets the
// provider as the global one until Shutdown.
func NewTracerProvider(w io.Writer, serviceName, version string) (*TracerProvider, error) {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	tp := &TracerProvider{provider: provider, previous: otel.GetTracerProvider()}
	otel.SetTracerProvider(provider)
	return tp, nil
}

// Shutdown flushes pending spans and restores the previous global provider.
func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	otel.SetTracerProvider(tp.previous)
	return tp.provider.Shutdown(ctx)
}
