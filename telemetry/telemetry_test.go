// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNoop(t *testing.T) {
	t.Run("will return the globally registered tracer provider", func(t *testing.T) {
		tp, err := Noop.Init(context.Background())
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, otel.GetTracerProvider(), tp) {
			return
		}
	})
}

func TestLocal(t *testing.T) {
	t.Run("will write spans to the configured output", func(t *testing.T) {
		t.Run("if a span is started and ended", func(t *testing.T) {
			var buf bytes.Buffer
			tp, err := Local(
				ServiceName("grep-test"),
				Output(&buf),
			).Init(context.Background())
			if !assert.Nil(t, err) {
				return
			}

			_, span := tp.Tracer("test").Start(context.Background(), "llm.completion")
			span.End()

			sdk, ok := tp.(*sdktrace.TracerProvider)
			if !assert.True(t, ok) {
				return
			}
			err = sdk.Shutdown(context.Background())
			if !assert.Nil(t, err) {
				return
			}

			out := buf.String()
			if !assert.Contains(t, out, "llm.completion") {
				return
			}
			if !assert.Contains(t, out, "grep-test") {
				return
			}
		})
	})
}

func TestOTLP(t *testing.T) {
	t.Run("will return a tracer provider", func(t *testing.T) {
		t.Run("if the endpoint uses http transport", func(t *testing.T) {
			tp, err := OTLP(
				ServiceName("grep-test"),
				Endpoint("http://localhost:8000/v1/traces"),
				Headers(map[string]string{"Authorization": "Bearer grep_myorg_abc123"}),
			).Init(context.Background())
			if !assert.Nil(t, err) {
				return
			}

			sdk, ok := tp.(*sdktrace.TracerProvider)
			if !assert.True(t, ok) {
				return
			}
			_ = sdk.Shutdown(context.Background())
		})

		t.Run("if the endpoint uses grpc transport", func(t *testing.T) {
			tp, err := OTLP(
				ServiceName("grep-test"),
				Endpoint("http://localhost:8000/v1/traces"),
				WithTransport(TransportGRPC),
			).Init(context.Background())
			if !assert.Nil(t, err) {
				return
			}

			sdk, ok := tp.(*sdktrace.TracerProvider)
			if !assert.True(t, ok) {
				return
			}
			_ = sdk.Shutdown(context.Background())
		})

		t.Run("if immediate mode is enabled", func(t *testing.T) {
			tp, err := OTLP(
				ServiceName("grep-test"),
				Endpoint("http://localhost:8000/v1/traces"),
				Immediate(),
			).Init(context.Background())
			if !assert.Nil(t, err) {
				return
			}

			sdk, ok := tp.(*sdktrace.TracerProvider)
			if !assert.True(t, ok) {
				return
			}
			_ = sdk.Shutdown(context.Background())
		})
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the endpoint can not be parsed", func(t *testing.T) {
			_, err := OTLP(
				Endpoint("://nope"),
			).Init(context.Background())
			if !assert.NotNil(t, err) {
				return
			}
		})
	})
}
