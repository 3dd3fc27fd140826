// Package telemetry provides OpenTelemetry tracing for game rounds.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "countdown"
	serviceVersion = "0.1.0"
)

// Setup installs an OTLP HTTP trace exporter as the global provider.
// Endpoint and headers come from the standard OTEL_EXPORTER_OTLP_* variables.
// The returned shutdown flushes pending spans.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	// Built without resource.Default() so the schema URLs cannot conflict.
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("telemetry.sdk.language", "go"),
			attribute.String("telemetry.sdk.name", "opentelemetry"),
			attribute.String("host.name", getHostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.name", "go"),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer for a component. Until Setup runs it is
// backed by the default no-op provider.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("countdown/" + name)
}

// Disable installs a no-op provider, for when tracing is switched off.
func Disable() {
	otel.SetTracerProvider(noop.NewTracerProvider())
}

// Attrs is a convenience for the attributes every round span carries.
func Attrs(round int, kind string, points int, verdict string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("round.number", round),
		attribute.String("round.kind", kind),
		attribute.Int("round.points", points),
		attribute.String("round.verdict", verdict),
	}
}

// getHostname returns the system hostname, or "unknown" if it cannot be determined.
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
