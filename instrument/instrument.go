// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package instrument traces the clients your application uses to call LLM providers.
//
// Go has no import time auto-instrumentation, so wrap the clients you
// hand to your LLM provider SDKs explicitly:
//
//	openaiClient := openai.NewClient(
//	    option.WithHTTPClient(instrument.HTTPClient(http.DefaultClient)),
//	)
package instrument

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"
)

// HTTPTransport wraps the given http.RoundTripper so every request
// through it is recorded as a span. A nil base defaults to
// http.DefaultTransport.
func HTTPTransport(base http.RoundTripper, opts ...otelhttp.Option) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return otelhttp.NewTransport(base, opts...)
}

// HTTPClient returns a copy of the given http.Client whose transport
// records every request as a span. A nil client defaults to a fresh
// client around http.DefaultTransport. The given client is not modified.
func HTTPClient(c *http.Client, opts ...otelhttp.Option) *http.Client {
	if c == nil {
		c = &http.Client{}
	}
	copied := *c
	copied.Transport = HTTPTransport(c.Transport, opts...)
	return &copied
}

// GRPCDialOption returns a grpc.DialOption which records every unary
// and streaming call on the connection as a span.
func GRPCDialOption(opts ...otelgrpc.Option) grpc.DialOption {
	return grpc.WithStatsHandler(otelgrpc.NewClientHandler(opts...))
}
