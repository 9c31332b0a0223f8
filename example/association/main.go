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

// Association properties tie spans back to application level entities
// like users and conversations. Every span ended after the call to
// SetAssociationProperties carries them as attributes.
func main() {
	ctx := context.Background()

	err := grep.Init(
		ctx,
		grep.WithAPIKey("grep_dev_local"),
		grep.WithAppName("example-association"),
		grep.Immediate(),
		grep.WithInitializer(telemetry.Local(
			telemetry.ServiceName("example-association"),
		)),
	)
	if err != nil {
		slog.Error("failed to initialize grep", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer grep.Shutdown(ctx)

	err = grep.SetAssociationProperties(map[string]string{
		"user_id": "user_123",
		"chat_id": "chat_456",
	})
	if err != nil {
		slog.Error("failed to set association properties", slog.String("error", err.Error()))
		os.Exit(1)
	}

	_, span := otel.Tracer("example-association").Start(ctx, "chat_completion")
	span.End()
}
