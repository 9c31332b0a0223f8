// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package telemetry

import (
	"context"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const associationKeyPrefix = "grep.association.properties."

// Association is a [sdktrace.SpanProcessor] which stamps association
// properties onto every span as it starts. Grep uses these properties
// for filtering and grouping traces, for example by user or session id.
//
// The zero value is not usable; use [NewAssociation].
type Association struct {
	attrs atomic.Pointer[[]attribute.KeyValue]
}

// NewAssociation returns an [Association] with no properties set.
func NewAssociation() *Association {
	a := &Association{}
	a.attrs.Store(&[]attribute.KeyValue{})
	return a
}

// Set replaces the association properties. It is safe to call
// concurrently with in-flight spans; spans started after Set returns
// observe the new properties.
func (a *Association) Set(props map[string]string) {
	attrs := make([]attribute.KeyValue, 0, len(props))
	for k, v := range props {
		attrs = append(attrs, attribute.String(associationKeyPrefix+k, v))
	}
	a.attrs.Store(&attrs)
}

// OnStart implements the [sdktrace.SpanProcessor] interface.
func (a *Association) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	attrs := *a.attrs.Load()
	if len(attrs) == 0 {
		return
	}
	s.SetAttributes(attrs...)
}

// OnEnd implements the [sdktrace.SpanProcessor] interface.
func (a *Association) OnEnd(s sdktrace.ReadOnlySpan) {}

// Shutdown implements the [sdktrace.SpanProcessor] interface.
func (a *Association) Shutdown(ctx context.Context) error {
	return nil
}

// ForceFlush implements the [sdktrace.SpanProcessor] interface.
func (a *Association) ForceFlush(ctx context.Context) error {
	return nil
}
