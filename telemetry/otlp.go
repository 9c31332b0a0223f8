// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package telemetry

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/greplabs/grep-go/collector"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Transport selects how spans are shipped to the collector.
type Transport string

const (
	// TransportHTTP ships spans with OTLP over HTTP. This is the default.
	TransportHTTP Transport = "http"

	// TransportGRPC ships spans with OTLP over gRPC.
	TransportGRPC Transport = "grpc"
)

// OTLPConfig configures the backend which exports spans to a Grep
// collector over OTLP.
type OTLPConfig struct {
	Common

	// Endpoint is the full span submission URL,
	// e.g. http://localhost:8000/v1/traces.
	Endpoint string `config:"endpoint"`

	// Headers are attached to every export request. This is where the
	// bearer style authorization header carrying your API key goes.
	Headers map[string]string `config:"headers"`

	// Immediate exports each span as soon as it ends instead of
	// batching. Useful for development, wasteful in production.
	Immediate bool `config:"immediate"`

	Transport Transport `config:"transport"`

	// HTTPClient overrides the client used for HTTP transport.
	// Defaults to a retrying [collector.NewHTTPClient].
	HTTPClient *http.Client
}

// OTLPOption configures the [OTLP] backend.
type OTLPOption interface {
	ApplyOTLP(*OTLPConfig)
}

type otlpOptionFunc func(*OTLPConfig)

func (f otlpOptionFunc) ApplyOTLP(cfg *OTLPConfig) {
	f(cfg)
}

// Endpoint configures the full span submission URL.
func Endpoint(endpoint string) OTLPOption {
	return otlpOptionFunc(func(cfg *OTLPConfig) {
		cfg.Endpoint = endpoint
	})
}

// Headers configures headers attached to every export request.
func Headers(headers map[string]string) OTLPOption {
	return otlpOptionFunc(func(cfg *OTLPConfig) {
		cfg.Headers = headers
	})
}

// Immediate exports each span as soon as it ends instead of batching.
func Immediate() OTLPOption {
	return otlpOptionFunc(func(cfg *OTLPConfig) {
		cfg.Immediate = true
	})
}

// WithTransport selects the OTLP transport.
//
// Default is [TransportHTTP].
func WithTransport(t Transport) OTLPOption {
	return otlpOptionFunc(func(cfg *OTLPConfig) {
		cfg.Transport = t
	})
}

// HTTPClient overrides the client used for HTTP transport.
func HTTPClient(c *http.Client) OTLPOption {
	return otlpOptionFunc(func(cfg *OTLPConfig) {
		cfg.HTTPClient = c
	})
}

// OTLP returns an [Initializer] which exports spans to a Grep collector.
func OTLP(opts ...OTLPOption) Initializer {
	cfg := OTLPConfig{
		Transport: TransportHTTP,
	}
	for _, opt := range opts {
		opt.ApplyOTLP(&cfg)
	}
	return cfg
}

// WithSpanProcessor returns a copy of the config with p registered as
// an additional span processor.
func (cfg OTLPConfig) WithSpanProcessor(p sdktrace.SpanProcessor) Initializer {
	cfg.processors = append(cfg.processors[:len(cfg.processors):len(cfg.processors)], p)
	return cfg
}

// Init implements the [Initializer] interface.
func (cfg OTLPConfig) Init(ctx context.Context) (trace.TracerProvider, error) {
	res, err := newResource(ctx, cfg.Common)
	if err != nil {
		return nil, err
	}

	exporter, err := cfg.newExporter(ctx)
	if err != nil {
		return nil, err
	}

	sp := sdktrace.SpanProcessor(sdktrace.NewBatchSpanProcessor(exporter))
	if cfg.Immediate {
		sp = sdktrace.NewSimpleSpanProcessor(exporter)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sp),
	}
	for _, p := range cfg.processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	return sdktrace.NewTracerProvider(opts...), nil
}

func (cfg OTLPConfig) newExporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, collector.InvalidEndpointError{Endpoint: cfg.Endpoint, Cause: err}
	}

	if cfg.Transport == TransportGRPC {
		conn, err := collector.NewGRPCConn(cfg.Endpoint)
		if err != nil {
			return nil, err
		}
		return otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithGRPCConn(conn),
			otlptracegrpc.WithHeaders(cfg.Headers),
		)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = collector.NewHTTPClient(
			collector.Name("grep-collector"),
			collector.Headers(cfg.Headers),
			collector.Retry(3, time.Second, 10*time.Second),
		)
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(u.Host),
		otlptracehttp.WithURLPath(u.Path),
		otlptracehttp.WithHeaders(cfg.Headers),
		otlptracehttp.WithHTTPClient(client),
	}
	if u.Scheme != "https" {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}
