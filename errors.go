// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package grep

import "fmt"

// MissingAPIKeyError occurs when no API key was provided to [Client.Init]
// and the GREP_API_KEY environment variable is unset.
type MissingAPIKeyError struct{}

// Error implements the [builtin.error] interface.
func (MissingAPIKeyError) Error() string {
	return "grep: api key is required: pass grep.WithAPIKey or set the GREP_API_KEY environment variable"
}

// InvalidAPIKeyError occurs when the resolved API key does not begin
// with the required "grep_" prefix. Preview only ever contains a bounded
// prefix of the supplied key, never the full value.
type InvalidAPIKeyError struct {
	Preview string
}

// Error implements the [builtin.error] interface.
func (e InvalidAPIKeyError) Error() string {
	return fmt.Sprintf("grep: invalid api key format: keys must start with %q but yours starts with %q", apiKeyPrefix, e.Preview)
}

// NotInitializedError occurs when an operation requiring a prior
// successful [Client.Init] is invoked too early.
type NotInitializedError struct {
	Op string
}

// Error implements the [builtin.error] interface.
func (e NotInitializedError) Error() string {
	return fmt.Sprintf("grep: %s called before Init", e.Op)
}
