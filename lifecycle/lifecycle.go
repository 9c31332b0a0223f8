// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package lifecycle provides hooks which are executed around the Grep SDK's lifetime.
package lifecycle

import (
	"context"
	"errors"
)

// Hook represents functionality that needs to be performed at a specific
// "time" relative to the SDK's lifetime, for example flushing pending
// spans during shutdown.
type Hook interface {
	Run(context.Context) error
}

// HookFunc is a func variant of the [Hook] interface.
type HookFunc func(context.Context) error

// Run implements the [Hook] interface.
func (f HookFunc) Run(ctx context.Context) error {
	return f(ctx)
}

type multiHook []Hook

func (mh multiHook) Run(ctx context.Context) error {
	errs := make([]error, 0, len(mh))
	for _, h := range mh {
		err := h.Run(ctx)
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

// MultiHook returns a [Hook] that's the logical concatenation of the
// provided [Hook]s. They're applied sequentially and every hook runs
// regardless of whether an earlier one returned an error.
func MultiHook(hooks ...Hook) Hook {
	return multiHook(hooks)
}

// Context collects hooks which should be performed when the SDK shuts down.
type Context struct {
	shutdowns multiHook
}

// OnShutdown registers the given [Hook] to be executed during shutdown.
// This can be called multiple times to register multiple [Hook]s and
// they will all be composed together into a single [Hook] which is
// returned by [Context.Shutdown].
func (c *Context) OnShutdown(hook Hook) {
	c.shutdowns = append(c.shutdowns, hook)
}

// Shutdown returns the composition of all registered shutdown [Hook]s.
func (c *Context) Shutdown() Hook {
	return c.shutdowns
}
