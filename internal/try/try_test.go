// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package try

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecover(t *testing.T) {
	t.Run("will not set the error", func(t *testing.T) {
		t.Run("if no panic occurred", func(t *testing.T) {
			f := func() (err error) {
				defer Recover(&err)
				return nil
			}

			err := f()
			if !assert.Nil(t, err) {
				return
			}
		})
	})

	t.Run("will set a PanicError", func(t *testing.T) {
		t.Run("if a panic occurred with a non error value", func(t *testing.T) {
			f := func() (err error) {
				defer Recover(&err)
				panic("hello world")
			}

			err := f()

			var perr PanicError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
			if !assert.Equal(t, "hello world", perr.Value) {
				return
			}
			if !assert.Nil(t, perr.Unwrap()) {
				return
			}
		})

		t.Run("if a panic occurred with an error value", func(t *testing.T) {
			cause := errors.New("the cause")
			f := func() (err error) {
				defer Recover(&err)
				panic(cause)
			}

			err := f()
			if !assert.ErrorIs(t, err, cause) {
				return
			}
		})

		t.Run("if a panic occurred after an error was already returned", func(t *testing.T) {
			base := errors.New("base error")
			f := func() (err error) {
				defer Recover(&err)
				err = base
				panic("and then a panic")
			}

			err := f()
			if !assert.ErrorIs(t, err, base) {
				return
			}

			var perr PanicError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
		})
	})
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

func TestClose(t *testing.T) {
	t.Run("will not set the error", func(t *testing.T) {
		t.Run("if the value is not an io.Closer", func(t *testing.T) {
			f := func() (err error) {
				defer Close(&err, "not a closer")
				return nil
			}

			err := f()
			if !assert.Nil(t, err) {
				return
			}
		})

		t.Run("if closing succeeds", func(t *testing.T) {
			c := closerFunc(func() error {
				return nil
			})

			f := func() (err error) {
				defer Close(&err, c)
				return nil
			}

			err := f()
			if !assert.Nil(t, err) {
				return
			}
		})
	})

	t.Run("will set the error", func(t *testing.T) {
		t.Run("if closing fails", func(t *testing.T) {
			closeErr := errors.New("failed to close")
			c := closerFunc(func() error {
				return closeErr
			})

			f := func() (err error) {
				defer Close(&err, c)
				return nil
			}

			err := f()
			if !assert.ErrorIs(t, err, closeErr) {
				return
			}
		})

		t.Run("if closing fails after an error was already returned", func(t *testing.T) {
			base := errors.New("base error")
			closeErr := errors.New("failed to close")
			c := closerFunc(func() error {
				return closeErr
			})

			f := func() (err error) {
				defer Close(&err, c)
				return base
			}

			err := f()
			if !assert.ErrorIs(t, err, base) {
				return
			}
			if !assert.ErrorIs(t, err, closeErr) {
				return
			}
		})
	})
}
