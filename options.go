// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package grep

import (
	"log/slog"

	"github.com/greplabs/grep-go/telemetry"
)

type options struct {
	apiKey   string
	endpoint string
	appName  string

	immediate bool
	strict    bool
	transport telemetry.Transport

	logHandler  slog.Handler
	initializer telemetry.Initializer
}

// Option configures [Init].
type Option func(*options)

// WithAPIKey configures your Grep API key from app.grep.com.
//
// The key can also be set via the GREP_API_KEY environment variable.
func WithAPIKey(key string) Option {
	return func(o *options) {
		o.apiKey = key
	}
}

// WithCollectorEndpoint configures the collector your spans are sent to.
//
// The endpoint can also be set via the GREP_COLLECTOR_ENDPOINT
// environment variable. Default is [DefaultCollectorEndpoint].
func WithCollectorEndpoint(endpoint string) Option {
	return func(o *options) {
		o.endpoint = endpoint
	}
}

// WithAppName configures the name identifying your application in traces.
//
// Default is [DefaultAppName].
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// Immediate exports each span as soon as it ends instead of batching,
// which is useful when iterating locally.
func Immediate() Option {
	return func(o *options) {
		o.immediate = true
	}
}

// Strict makes exporter setup failures fatal to [Init] instead of being
// downgraded to warnings.
func Strict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithTransport selects how spans are shipped to the collector.
//
// Default is [telemetry.TransportHTTP].
func WithTransport(t telemetry.Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

// LogHandler configures the slog.Handler the SDK logs through.
//
// Default is the handler of [slog.Default]. API keys are always masked
// before reaching the handler.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = h
	}
}

// WithInitializer overrides how the tracer provider is stood up.
// This is an advanced option; the default exports spans to the
// configured Grep collector over OTLP.
func WithInitializer(init telemetry.Initializer) Option {
	return func(o *options) {
		o.initializer = init
	}
}
