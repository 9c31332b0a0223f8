// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/greplabs/grep-go"
	"github.com/greplabs/grep-go/telemetry"

	"go.opentelemetry.io/otel"
)

// Development mode: spans are pretty printed to stdout instead of being
// exported to a collector, and immediate mode flushes each span as soon
// as it ends. No collector and no real API key needed.
func main() {
	ctx := context.Background()

	err := grep.Init(
		ctx,
		grep.WithAPIKey("grep_dev_local"),
		grep.WithAppName("example-devmode"),
		grep.Immediate(),
		grep.WithInitializer(telemetry.Local(
			telemetry.ServiceName("example-devmode"),
			telemetry.Output(os.Stdout),
		)),
	)
	if err != nil {
		slog.Error("failed to initialize grep", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer grep.Shutdown(ctx)

	_, span := otel.Tracer("example-devmode").Start(ctx, "hello")
	span.End()
}
