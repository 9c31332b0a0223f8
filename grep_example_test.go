// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package grep

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/greplabs/grep-go/telemetry"
)

func Example() {
	err := Init(
		context.Background(),
		WithAPIKey("grep_myorg_abc123"),
		WithAppName("example-app"),
		WithInitializer(telemetry.Noop),
		LogHandler(slog.DiscardHandler),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer Shutdown(context.Background())

	fmt.Println(IsInitialized())
	fmt.Println(CollectorEndpoint())

	// Output:
	// true
	// http://localhost:8000
}

func ExampleValidateAPIKey() {
	err := ValidateAPIKey("sk-notgrep-123456")
	fmt.Println(err)

	// Output:
	// grep: invalid api key format: keys must start with "grep_" but yours starts with "sk-notgrep..."
}
