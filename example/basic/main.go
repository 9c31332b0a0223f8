// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/greplabs/grep-go"

	"go.opentelemetry.io/otel"
)

// Run with GREP_API_KEY set and a collector listening on
// http://localhost:8000 (or set GREP_COLLECTOR_ENDPOINT).
func main() {
	ctx := context.Background()

	err := grep.Init(
		ctx,
		grep.WithAppName("example-basic"),
	)
	if err != nil {
		slog.Error("failed to initialize grep", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer grep.Shutdown(ctx)

	tracer := otel.Tracer("example-basic")
	spanCtx, span := tracer.Start(ctx, "handle_request")
	defer span.End()

	doWork(spanCtx)
}

func doWork(ctx context.Context) {
	_, span := otel.Tracer("example-basic").Start(ctx, "do_work")
	defer span.End()

	time.Sleep(100 * time.Millisecond)
}
