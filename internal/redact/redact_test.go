// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package redact

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	t.Run("will truncate the secret", func(t *testing.T) {
		t.Run("if it is longer than n", func(t *testing.T) {
			s := Preview("grep_myorg_abc123", 10)
			if !assert.Equal(t, "grep_myorg...", s) {
				return
			}
		})
	})

	t.Run("will return the whole value", func(t *testing.T) {
		t.Run("if it is shorter than n", func(t *testing.T) {
			s := Preview("bad", 10)
			if !assert.Equal(t, "bad...", s) {
				return
			}
		})
	})

	t.Run("will treat a negative n as zero", func(t *testing.T) {
		s := Preview("grep_myorg_abc123", -1)
		if !assert.Equal(t, "...", s) {
			return
		}
	})
}

func TestHandler(t *testing.T) {
	t.Run("will transform an attr", func(t *testing.T) {
		t.Run("if it is attached to the record", func(t *testing.T) {
			var buf bytes.Buffer
			h := NewHandler(
				slog.NewTextHandler(&buf, nil),
				map[string]func(slog.Attr) slog.Attr{
					"authorization": Mask,
				},
			)

			log := slog.New(h)
			log.Info("request sent", slog.String("authorization", "Bearer grep_secret"))

			out := buf.String()
			if !assert.NotContains(t, out, "grep_secret") {
				return
			}
			if !assert.Contains(t, out, "****") {
				return
			}
		})

		t.Run("if it was attached via Logger.With", func(t *testing.T) {
			var buf bytes.Buffer
			h := NewHandler(
				slog.NewTextHandler(&buf, nil),
				map[string]func(slog.Attr) slog.Attr{
					"api_key": PreviewAttr(4),
				},
			)

			log := slog.New(h).With(slog.String("api_key", "grep_myorg_abc123"))
			log.Info("initialized")

			out := buf.String()
			if !assert.NotContains(t, out, "grep_myorg_abc123") {
				return
			}
			if !assert.Contains(t, out, "grep...") {
				return
			}
		})
	})

	t.Run("will leave attrs untouched", func(t *testing.T) {
		t.Run("if no transformer is registered for their key", func(t *testing.T) {
			var buf bytes.Buffer
			h := NewHandler(
				slog.NewTextHandler(&buf, nil),
				map[string]func(slog.Attr) slog.Attr{
					"authorization": Mask,
				},
			)

			log := slog.New(h)
			log.Info("request sent", slog.String("endpoint", "http://localhost:8000"))

			if !assert.True(t, strings.Contains(buf.String(), "http://localhost:8000")) {
				return
			}
		})
	})
}
