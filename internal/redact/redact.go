// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package redact keeps secrets out of log output and error messages.
package redact

import (
	"context"
	"log/slog"
)

// Preview returns a bounded, non-reversible preview of a secret: at most
// the first n characters followed by an ellipsis. It never returns the
// full secret.
func Preview(secret string, n int) string {
	if n < 0 {
		n = 0
	}
	if len(secret) > n {
		secret = secret[:n]
	}
	return secret + "..."
}

// Mask converts any slog.Attr into the anonymized string "****". It
// completely ignores the given slog.Attr value type and always returns
// a string value.
func Mask(a slog.Attr) slog.Attr {
	return slog.String(a.Key, "****")
}

// PreviewAttr returns an attr transformer which replaces the attr value
// with a [Preview] of its string form.
func PreviewAttr(n int) func(slog.Attr) slog.Attr {
	return func(a slog.Attr) slog.Attr {
		return slog.String(a.Key, Preview(a.Value.String(), n))
	}
}

// Handler is a slog.Handler which transforms the values of registered
// attr keys before delegating to an underlying handler.
type Handler struct {
	slog slog.Handler

	transformers map[string]func(slog.Attr) slog.Attr
}

// NewHandler returns a new Handler. The same transformers are applied
// to attrs regardless of whether they are attached per record or via
// [slog.Logger.With].
func NewHandler(h slog.Handler, transformers map[string]func(slog.Attr) slog.Attr) *Handler {
	return &Handler{
		slog:         h,
		transformers: transformers,
	}
}

// Enabled implements the slog.Handler interface.
func (h *Handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.slog.Enabled(ctx, lvl)
}

// Handle implements the slog.Handler interface.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	attrs := make([]slog.Attr, 0, record.NumAttrs())
	record.Attrs(func(a slog.Attr) bool {
		f, exists := h.transformers[a.Key]
		if exists {
			a = f(a)
		}
		attrs = append(attrs, a)
		return true
	})

	nr := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	nr.AddAttrs(attrs...)
	return h.slog.Handle(ctx, nr)
}

// WithAttrs implements the slog.Handler interface.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nr := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		f, exists := h.transformers[a.Key]
		if !exists {
			nr[i] = a
			continue
		}
		nr[i] = f(a)
	}
	return NewHandler(h.slog.WithAttrs(nr), h.transformers)
}

// WithGroup implements the slog.Handler interface.
func (h *Handler) WithGroup(name string) slog.Handler {
	return NewHandler(h.slog.WithGroup(name), h.transformers)
}
