// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// grepdoctor diagnoses connectivity between a host and a grep collector.
//
// It validates the shape of the configured API key, probes the collector
// endpoint over both HTTP and gRPC in parallel, and finally initializes
// the SDK in strict immediate mode to push a real test span through the
// full export path.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/greplabs/grep-go"
	"github.com/greplabs/grep-go/collector"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/connectivity"
)

var (
	apiKey   string
	endpoint string
	timeout  time.Duration
	skipSpan bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "grepdoctor",
		Short: "Diagnose connectivity to a grep collector",
		Long: `grepdoctor checks that this host can talk to a grep collector.

It runs three checks:

1. API key shape:
   - The key must carry the grep_ prefix.
   - Resolved from --api-key or the GREP_API_KEY environment variable.

2. Collector reachability (HTTP and gRPC, in parallel):
   - Any HTTP response counts as reachable, including auth failures.
   - The gRPC probe waits for the client connection to become ready.

3. Trace export:
   - Initializes the SDK in strict immediate mode and emits one span.
   - Skipped with --skip-span.`,
		Example: `  # Probe the default local collector
  grepdoctor --api-key grep_myorg_abc123

  # Probe a remote collector with the key from the environment
  GREP_API_KEY=grep_myorg_abc123 grepdoctor --endpoint https://collector.grep.com`,
		SilenceUsage: true,
		RunE:         run,
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "",
		"grep API key (default: the GREP_API_KEY environment variable)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "",
		"Collector base endpoint (default: the GREP_COLLECTOR_ENDPOINT environment variable, then "+grep.DefaultCollectorEndpoint+")")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second,
		"Per-check timeout")
	cmd.Flags().BoolVar(&skipSpan, "skip-span", false,
		"Skip the trace export check")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	key := apiKey
	if key == "" {
		key = os.Getenv(grep.EnvAPIKey)
	}
	if err := grep.ValidateAPIKey(key); err != nil {
		report("api key shape", err)
		return err
	}
	report("api key shape", nil)

	target := endpoint
	if target == "" {
		target = os.Getenv(grep.EnvCollectorEndpoint)
	}
	if target == "" {
		target = grep.DefaultCollectorEndpoint
	}
	fmt.Printf("probing collector at %s\n", target)

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := probeHTTP(gctx, target, key)
		report("http reachability", err)
		return err
	})
	g.Go(func() error {
		err := probeGRPC(gctx, target)
		report("grpc reachability", err)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if skipSpan {
		return nil
	}

	err := probeSpan(cmd.Context(), key, target)
	report("trace export", err)
	return err
}

func report(check string, err error) {
	if err != nil {
		fmt.Printf("[fail] %s: %v\n", check, err)
		return
	}
	fmt.Printf("[ ok ] %s\n", check)
}

// probeHTTP treats any response from the collector as success. A 401 or
// 404 still proves the endpoint is reachable, which is all this check is
// meant to establish.
func probeHTTP(ctx context.Context, endpoint, key string) error {
	client := collector.NewHTTPClient(
		collector.Name("grepdoctor"),
		collector.Headers(map[string]string{
			"Authorization": "Bearer " + key,
		}),
		collector.Retry(1, 100*time.Millisecond, time.Second),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func probeGRPC(ctx context.Context, endpoint string) error {
	conn, err := collector.NewGRPCConn(endpoint)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	conn.Connect()
	for {
		state := conn.GetState()
		if state == connectivity.Ready {
			return nil
		}
		if state == connectivity.TransientFailure {
			return fmt.Errorf("grpc connection entered %s", state)
		}
		if !conn.WaitForStateChange(ctx, state) {
			return ctx.Err()
		}
	}
}

// probeSpan exercises the full export path: strict init so connection
// failures surface, immediate mode so the span is exported before
// Shutdown returns.
func probeSpan(ctx context.Context, key, endpoint string) error {
	c := grep.NewClient()
	err := c.Init(
		ctx,
		grep.WithAPIKey(key),
		grep.WithCollectorEndpoint(endpoint),
		grep.WithAppName("grepdoctor"),
		grep.Immediate(),
		grep.Strict(),
	)
	if err != nil {
		return err
	}
	defer c.Shutdown(ctx)

	_, span := otel.Tracer("grepdoctor").Start(ctx, "grepdoctor.ping")
	span.End()
	return nil
}
