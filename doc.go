// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package grep is the Grep SDK for Go.
//
// Grep provides LLM observability. The SDK configures the OpenTelemetry
// trace SDK to export spans to your Grep collector, authenticated with
// your Grep API key.
//
// # Basic Usage
//
// Initialize the SDK once at application startup:
//
//	err := grep.Init(context.Background(), grep.WithAPIKey("grep_myorg_abc123"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer grep.Shutdown(context.Background())
//
// The API key can also be provided via the GREP_API_KEY environment
// variable and the collector address via GREP_COLLECTOR_ENDPOINT.
//
// # Tracing your LLM clients
//
// Wrap the HTTP or gRPC clients your application uses to call LLM
// providers with the [github.com/greplabs/grep-go/instrument] package so
// their calls are recorded as spans.
//
// # Development mode
//
// Pass [Immediate] to flush each span as soon as it ends instead of
// batching, which is useful when iterating locally:
//
//	grep.Init(ctx, grep.WithAPIKey(key), grep.Immediate())
//
// If the collector is unreachable during Init the SDK logs a warning and
// continues; spans are exported once the collector becomes available. Pass
// [Strict] to fail Init instead.
package grep
