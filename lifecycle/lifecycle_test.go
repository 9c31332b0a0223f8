// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiHook(t *testing.T) {
	t.Run("will run every hook", func(t *testing.T) {
		t.Run("if an earlier hook returns an error", func(t *testing.T) {
			hookErr := errors.New("hook failed")

			ran := false
			h := MultiHook(
				HookFunc(func(ctx context.Context) error {
					return hookErr
				}),
				HookFunc(func(ctx context.Context) error {
					ran = true
					return nil
				}),
			)

			err := h.Run(context.Background())
			if !assert.ErrorIs(t, err, hookErr) {
				return
			}
			if !assert.True(t, ran) {
				return
			}
		})
	})

	t.Run("will return nil", func(t *testing.T) {
		t.Run("if no hooks were provided", func(t *testing.T) {
			err := MultiHook().Run(context.Background())
			if !assert.Nil(t, err) {
				return
			}
		})
	})

	t.Run("will join errors", func(t *testing.T) {
		t.Run("if multiple hooks fail", func(t *testing.T) {
			errOne := errors.New("one")
			errTwo := errors.New("two")

			h := MultiHook(
				HookFunc(func(ctx context.Context) error {
					return errOne
				}),
				HookFunc(func(ctx context.Context) error {
					return errTwo
				}),
			)

			err := h.Run(context.Background())
			if !assert.ErrorIs(t, err, errOne) {
				return
			}
			if !assert.ErrorIs(t, err, errTwo) {
				return
			}
		})
	})
}

func TestContext(t *testing.T) {
	t.Run("will compose registered hooks", func(t *testing.T) {
		t.Run("if OnShutdown is called multiple times", func(t *testing.T) {
			var order []int

			var c Context
			c.OnShutdown(HookFunc(func(ctx context.Context) error {
				order = append(order, 1)
				return nil
			}))
			c.OnShutdown(HookFunc(func(ctx context.Context) error {
				order = append(order, 2)
				return nil
			}))

			err := c.Shutdown().Run(context.Background())
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, []int{1, 2}, order) {
				return
			}
		})
	})

	t.Run("will return a no-op hook", func(t *testing.T) {
		t.Run("if no hooks were registered", func(t *testing.T) {
			var c Context

			err := c.Shutdown().Run(context.Background())
			if !assert.Nil(t, err) {
				return
			}
		})
	})
}
