// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package grep

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/greplabs/grep-go/telemetry"

	"github.com/stretchr/testify/assert"
)

func TestDefaultClient(t *testing.T) {
	t.Run("will support the full lifecycle", func(t *testing.T) {
		t.Run("if an api key is set in the environment", func(t *testing.T) {
			t.Setenv(EnvAPIKey, "grep_testorg_abc123demo")

			// Init publishes these for auto-instrumented child processes.
			// Pin them so the test restores whatever was there before.
			t.Setenv(envOTLPEndpoint, "")
			t.Setenv(envOTLPHeaders, "")

			err := Init(
				context.Background(),
				WithInitializer(telemetry.Noop),
				LogHandler(slog.DiscardHandler),
			)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.True(t, IsInitialized()) {
				return
			}
			if !assert.Equal(t, DefaultCollectorEndpoint, CollectorEndpoint()) {
				return
			}
			if !assert.Equal(t, DefaultCollectorEndpoint, os.Getenv(envOTLPEndpoint)) {
				return
			}

			err = SetAssociationProperties(map[string]string{
				"chat_id": "chat_123",
				"user_id": "user_456",
			})
			if !assert.Nil(t, err) {
				return
			}

			Shutdown(context.Background())

			if !assert.False(t, IsInitialized()) {
				return
			}

			var nerr NotInitializedError
			err = SetAssociationProperties(map[string]string{"user_id": "user_789"})
			if !assert.ErrorAs(t, err, &nerr) {
				return
			}
		})
	})
}
