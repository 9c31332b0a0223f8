// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package telemetry configures the OpenTelemetry trace SDK for exporting spans to Grep.
package telemetry

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// Common holds configuration shared by every telemetry backend.
type Common struct {
	ServiceName string `config:"serviceName"`

	processors []sdktrace.SpanProcessor
}

// CommonOption applies to every telemetry backend.
type CommonOption interface {
	LocalOption
	OTLPOption
}

type commonOptionFunc func(*Common)

func (f commonOptionFunc) ApplyOTLP(cfg *OTLPConfig) {
	f(&cfg.Common)
}

func (f commonOptionFunc) ApplyLocal(cfg *LocalConfig) {
	f(&cfg.Common)
}

// ServiceName configures the service name reported with every span.
func ServiceName(name string) CommonOption {
	return commonOptionFunc(func(c *Common) {
		c.ServiceName = name
	})
}

// SpanProcessor registers an additional span processor with the tracer
// provider, for example an [Association] which stamps association
// properties onto every span.
func SpanProcessor(p sdktrace.SpanProcessor) CommonOption {
	return commonOptionFunc(func(c *Common) {
		c.processors = append(c.processors, p)
	})
}

// Initializer represents anything which can stand up a tracer provider.
type Initializer interface {
	Init(context.Context) (trace.TracerProvider, error)
}

// Noop is an [Initializer] which leaves the globally registered tracer
// provider in place.
var Noop = noopInitializer{}

type noopInitializer struct{}

func (noopInitializer) Init(context.Context) (trace.TracerProvider, error) {
	return otel.GetTracerProvider(), nil
}

// LocalConfig configures the development backend which writes spans to
// an [io.Writer] instead of a collector.
type LocalConfig struct {
	Common

	Out io.Writer
}

// LocalOption configures the [Local] backend.
type LocalOption interface {
	ApplyLocal(*LocalConfig)
}

type localOptionFunc func(*LocalConfig)

func (f localOptionFunc) ApplyLocal(cfg *LocalConfig) {
	f(cfg)
}

// Output configures where the [Local] backend writes spans.
//
// Default is os.Stdout.
func Output(w io.Writer) LocalOption {
	return localOptionFunc(func(cfg *LocalConfig) {
		cfg.Out = w
	})
}

// Local returns an [Initializer] for iterating locally without a
// collector. Spans are pretty printed to the configured output as soon
// as they end.
func Local(opts ...LocalOption) Initializer {
	cfg := LocalConfig{
		Out: os.Stdout,
	}
	for _, opt := range opts {
		opt.ApplyLocal(&cfg)
	}
	return cfg
}

// WithSpanProcessor returns a copy of the config with p registered as
// an additional span processor.
func (cfg LocalConfig) WithSpanProcessor(p sdktrace.SpanProcessor) Initializer {
	cfg.processors = append(cfg.processors[:len(cfg.processors):len(cfg.processors)], p)
	return cfg
}

// Init implements the [Initializer] interface.
func (cfg LocalConfig) Init(ctx context.Context) (trace.TracerProvider, error) {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(cfg.Out),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, cfg.Common)
	if err != nil {
		return nil, err
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	}
	for _, p := range cfg.processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	return sdktrace.NewTracerProvider(opts...), nil
}

func newResource(ctx context.Context, c Common) (*resource.Resource, error) {
	return resource.New(
		ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceName(c.ServiceName),
		),
	)
}
