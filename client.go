// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package grep

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/greplabs/grep-go/config"
	"github.com/greplabs/grep-go/internal/redact"
	"github.com/greplabs/grep-go/internal/try"
	"github.com/greplabs/grep-go/lifecycle"
	"github.com/greplabs/grep-go/telemetry"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	// DefaultCollectorEndpoint is where spans are sent when no
	// endpoint is configured explicitly or via the environment.
	DefaultCollectorEndpoint = "http://localhost:8000"

	// DefaultAppName identifies your application in traces when no
	// name is configured.
	DefaultAppName = "grep-app"

	// EnvAPIKey is the environment variable read when no API key is
	// passed to Init.
	EnvAPIKey = "GREP_API_KEY"

	// EnvCollectorEndpoint is the environment variable read when no
	// collector endpoint is passed to Init.
	EnvCollectorEndpoint = "GREP_COLLECTOR_ENDPOINT"
)

const (
	apiKeyPrefix = "grep_"

	tracesPath = "/v1/traces"

	// Environment variables published for any OTLP consumer in this
	// process which configures itself from the environment.
	envOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOTLPHeaders  = "OTEL_EXPORTER_OTLP_HEADERS"

	// How much of an API key may appear in errors and in log output.
	errPreviewLen = 10
	logPreviewLen = 15
)

// ValidateAPIKey reports whether key looks like a Grep API key. The
// returned error never contains more than a bounded prefix of key.
func ValidateAPIKey(key string) error {
	if key == "" {
		return MissingAPIKeyError{}
	}
	if !strings.HasPrefix(key, apiKeyPrefix) {
		return InvalidAPIKeyError{Preview: redact.Preview(key, errPreviewLen)}
	}
	return nil
}

// Client is an explicit instance of the Grep SDK with its own
// initialize → use → shutdown lifecycle. Most applications only need
// the package level functions, which share a single Client.
//
// All methods are safe for concurrent use.
type Client struct {
	mu          sync.Mutex
	initialized bool
	apiKey      string
	endpoint    string

	assoc *telemetry.Association
	life  lifecycle.Context
	log   *slog.Logger

	lookupEnv func(string) (string, bool)
	setEnv    func(string, string) error
}

// NewClient returns an uninitialized Client.
func NewClient() *Client {
	return &Client{
		assoc:     telemetry.NewAssociation(),
		lookupEnv: os.LookupEnv,
		setEnv:    os.Setenv,
	}
}

type settings struct {
	APIKey            string `config:"apiKey"`
	CollectorEndpoint string `config:"collectorEndpoint"`
	AppName           string `config:"appName"`
}

func (c *Client) resolveSettings(o *options) (settings, error) {
	explicit := make(config.Map)
	if o.apiKey != "" {
		explicit["apiKey"] = o.apiKey
	}
	if o.endpoint != "" {
		explicit["collectorEndpoint"] = o.endpoint
	}
	if o.appName != "" {
		explicit["appName"] = o.appName
	}

	m, err := config.Read(
		config.Map{
			"collectorEndpoint": DefaultCollectorEndpoint,
			"appName":           DefaultAppName,
		},
		config.FromEnvLookup(map[string]string{
			EnvAPIKey:            "apiKey",
			EnvCollectorEndpoint: "collectorEndpoint",
		}, c.lookupEnv),
		explicit,
	)
	if err != nil {
		return settings{}, err
	}

	var s settings
	err = m.Unmarshal(&s)
	if err != nil {
		return settings{}, err
	}
	return s, nil
}

type shutdowner interface {
	Shutdown(context.Context) error
}

type spanProcessorAttacher interface {
	WithSpanProcessor(sdktrace.SpanProcessor) telemetry.Initializer
}

// Init initializes Grep telemetry.
//
// The API key is resolved from [WithAPIKey], falling back to the
// GREP_API_KEY environment variable, and must begin with "grep_". The
// collector endpoint is resolved from [WithCollectorEndpoint], falling
// back to GREP_COLLECTOR_ENDPOINT and then [DefaultCollectorEndpoint].
//
// Calling Init on an already initialized Client logs a warning and
// returns nil without re-running any setup.
//
// If the exporter can not be set up, for example because the collector
// address is malformed, Init logs a warning and still succeeds so local
// development works without a running collector. Pass [Strict] to
// surface those errors instead.
func (c *Client) Init(ctx context.Context, opts ...Option) error {
	o := new(options)
	for _, opt := range opts {
		opt(o)
	}

	log := newLogger(o.logHandler)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		log.WarnContext(ctx, "grep is already initialized, skipping re-initialization")
		return nil
	}

	s, err := c.resolveSettings(o)
	if err != nil {
		return err
	}

	err = ValidateAPIKey(s.APIKey)
	if err != nil {
		return err
	}

	authorization := "Bearer " + s.APIKey

	err = c.setEnv(envOTLPEndpoint, s.CollectorEndpoint)
	if err == nil {
		err = c.setEnv(envOTLPHeaders, "authorization="+authorization)
	}
	if err != nil {
		return err
	}

	init := o.initializer
	if init == nil {
		otlpOpts := []telemetry.OTLPOption{
			telemetry.ServiceName(s.AppName),
			telemetry.Endpoint(s.CollectorEndpoint + tracesPath),
			telemetry.Headers(map[string]string{"Authorization": authorization}),
			telemetry.SpanProcessor(c.assoc),
		}
		if o.immediate {
			otlpOpts = append(otlpOpts, telemetry.Immediate())
		}
		if o.transport != "" {
			otlpOpts = append(otlpOpts, telemetry.WithTransport(o.transport))
		}
		init = telemetry.OTLP(otlpOpts...)
	} else if a, ok := init.(spanProcessorAttacher); ok {
		init = a.WithSpanProcessor(c.assoc)
	}

	tp, err := init.Init(ctx)
	if err != nil {
		if o.strict {
			return err
		}

		// Fail open so the SDK can be used without a reachable
		// collector, e.g. during local development.
		log.WarnContext(ctx, "could not connect to grep collector",
			slog.String("collector_endpoint", s.CollectorEndpoint),
			slog.String("error", err.Error()),
		)
	} else {
		otel.SetTracerProvider(tp)
		if sd, ok := tp.(shutdowner); ok {
			c.life.OnShutdown(lifecycle.HookFunc(sd.Shutdown))
		}
	}

	c.initialized = true
	c.apiKey = s.APIKey
	c.endpoint = s.CollectorEndpoint
	c.log = log

	log.InfoContext(ctx, "grep initialized",
		slog.String("collector_endpoint", s.CollectorEndpoint),
		slog.String("api_key", s.APIKey),
	)
	return nil
}

// SetAssociationProperties attaches the given properties to every span
// started after it returns. Grep uses them for filtering and grouping
// traces, for example:
//
//	grep.SetAssociationProperties(map[string]string{
//	    "user_id":    "user_123",
//	    "session_id": "sess_456",
//	})
//
// The properties replace any previously set ones.
func (c *Client) SetAssociationProperties(props map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return NotInitializedError{Op: "SetAssociationProperties"}
	}

	c.assoc.Set(props)
	return nil
}

// Shutdown flushes pending spans and shuts the exporter down. It is a
// no-op on an uninitialized Client. Shutdown never returns an error and
// never panics; failures are logged as warnings so it is always safe on
// application exit paths:
//
//	defer grep.Shutdown(context.Background())
func (c *Client) Shutdown(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	log := c.log
	log.InfoContext(ctx, "grep shutdown initiated")

	err := c.runShutdownHooks(ctx)
	if err != nil {
		log.WarnContext(ctx, "error during grep shutdown", slog.String("error", err.Error()))
	}

	// The api key and endpoint are deliberately retained so reads
	// keep answering after shutdown.
	c.initialized = false

	log.InfoContext(ctx, "grep shutdown complete")
}

func (c *Client) runShutdownHooks(ctx context.Context) (err error) {
	defer try.Recover(&err)

	hook := c.life.Shutdown()
	c.life = lifecycle.Context{}
	return hook.Run(ctx)
}

// IsInitialized reports whether Init has completed successfully and
// Shutdown has not been called since.
func (c *Client) IsInitialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// CollectorEndpoint returns the resolved collector endpoint, or the
// empty string if Init has never completed.
func (c *Client) CollectorEndpoint() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.endpoint
}

func newLogger(h slog.Handler) *slog.Logger {
	if h == nil {
		h = slog.Default().Handler()
	}
	return slog.New(redact.NewHandler(h, map[string]func(slog.Attr) slog.Attr{
		"api_key": redact.PreviewAttr(logPreviewLen),
	}))
}
