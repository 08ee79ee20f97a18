// Package tracing provides the OpenTelemetry tracer used by the service layer
// and the provider setup used by the binaries.
//
// When no TracerProvider is registered (tests, or tracing disabled) the global
// no-op provider is used and every span is inert.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/pkordes/tagengine"

// Start creates a span as a child of the span in ctx, or a root span when ctx
// carries none. The caller must call span.End(), typically via defer.
//
//	ctx, span := tracing.Start(ctx, "tagging.reconcile",
//	    attribute.String("tagengine.context", tagContext),
//	)
//	defer span.End()
func Start(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(attrs...))
}

// Fail records err on span and marks it failed. It returns err so call sites
// can write `return tracing.Fail(span, err)`.
func Fail(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// Config selects the span exporter.
type Config struct {
	// Exporter is one of "none", "stdout", or "otlp". "none" disables tracing.
	Exporter string `env:"OTEL_TRACES_EXPORTER" envDefault:"none"`
	// OTLPEndpoint is the collector address for the "otlp" exporter.
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	// ServiceName identifies this process in traces.
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"tagengine"`
	// SampleRate is the fraction of root traces sampled, in (0, 1].
	SampleRate float64 `env:"OTEL_TRACES_SAMPLE_RATE" envDefault:"1"`
}

// Provider owns the SDK tracer provider, if one was installed.
type Provider struct {
	provider *sdktrace.TracerProvider
}

// NewProvider installs a global tracer provider for cfg. With the "none"
// exporter nothing is installed and the returned Provider's Shutdown is a no-op.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	var (
		exporter sdktrace.SpanExporter
		err      error
	)
	switch cfg.Exporter {
	case "none", "":
		return &Provider{}, nil
	case "stdout":
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	case "otlp":
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("tracing.NewProvider: unsupported exporter %q", cfg.Exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("tracing.NewProvider: create %s exporter: %w", cfg.Exporter, err)
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 || sampleRate > 1 {
		sampleRate = 1
	}

	// NewSchemaless avoids schema URL conflicts with resource.Default().
	res := resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))),
	)
	otel.SetTracerProvider(tp)
	return &Provider{provider: tp}, nil
}

// Shutdown flushes buffered spans and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
