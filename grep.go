// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package grep

import "context"

// defaultClient backs the package level API.
var defaultClient = NewClient()

// Init initializes Grep telemetry for the process. See [Client.Init].
func Init(ctx context.Context, opts ...Option) error {
	return defaultClient.Init(ctx, opts...)
}

// SetAssociationProperties attaches the given properties to every span
// started after it returns. See [Client.SetAssociationProperties].
func SetAssociationProperties(props map[string]string) error {
	return defaultClient.SetAssociationProperties(props)
}

// Shutdown flushes pending spans and shuts the exporter down.
// See [Client.Shutdown].
func Shutdown(ctx context.Context) {
	defaultClient.Shutdown(ctx)
}

// IsInitialized reports whether [Init] has completed successfully and
// [Shutdown] has not been called since.
func IsInitialized() bool {
	return defaultClient.IsInitialized()
}

// CollectorEndpoint returns the resolved collector endpoint, or the
// empty string if [Init] has never completed.
func CollectorEndpoint() string {
	return defaultClient.CollectorEndpoint()
}
