// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package collector provides production ready clients for talking to the Grep collector.
package collector

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/greplabs/grep-go/internal/redact"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sony/gobreaker"
)

type circuitOptions struct {
	maxRequests  uint32
	interval     time.Duration
	timeout      time.Duration
	tripCount    uint32
	isSuccessful func(error) bool
	statusCodes  []int
}

func withCircuitOption(f func(*circuitOptions)) Option {
	return func(o *options) {
		if o.co == nil {
			o.co = new(circuitOptions)
		}
		f(o.co)
	}
}

// HalfOpenRequests configures how many requests are let through while
// the circuit is half open.
func HalfOpenRequests(n uint32) Option {
	return withCircuitOption(func(co *circuitOptions) {
		co.maxRequests = n
	})
}

// OpenStateTimeout configures how long the circuit stays open before
// transitioning to half open.
func OpenStateTimeout(d time.Duration) Option {
	return withCircuitOption(func(co *circuitOptions) {
		co.timeout = d
	})
}

// CountResetInterval configures the cyclic period in the closed state
// after which the circuit's failure counts are reset.
func CountResetInterval(d time.Duration) Option {
	return withCircuitOption(func(co *circuitOptions) {
		co.interval = d
	})
}

// TripAfter configures the number of consecutive failures after which
// the circuit opens.
func TripAfter(n uint32) Option {
	return withCircuitOption(func(co *circuitOptions) {
		co.tripCount = n
	})
}

// TripOnStatusCodes configures which response status codes count as
// failures for the circuit.
//
// Default status codes are 401, 403, 500 and 503.
func TripOnStatusCodes(codes ...int) Option {
	return withCircuitOption(func(co *circuitOptions) {
		co.statusCodes = append(co.statusCodes, codes...)
	})
}

type retryOptions struct {
	maxRetries int
	waitMin    time.Duration
	waitMax    time.Duration
}

// Retry configures automatic retries with exponential backoff for
// failed requests.
func Retry(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(o *options) {
		o.ro = &retryOptions{
			maxRetries: maxRetries,
			waitMin:    waitMin,
			waitMax:    waitMax,
		}
	}
}

type options struct {
	timeout time.Duration
	rt      http.RoundTripper

	name       string
	headers    map[string]string
	logHandler slog.Handler

	co *circuitOptions
	ro *retryOptions
}

// Option configures the collector HTTP client.
type Option func(*options)

// Name configures the client name included with log records.
func Name(s string) Option {
	return func(o *options) {
		o.name = s
	}
}

// RoundTripper configures the base http.RoundTripper.
func RoundTripper(rt http.RoundTripper) Option {
	return func(o *options) {
		o.rt = rt
	}
}

// Timeout provides a global timeout value for the http.Client.
func Timeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// Headers configures headers which are attached to every outgoing
// request, for example the bearer style authorization header carrying
// your Grep API key.
func Headers(headers map[string]string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			o.headers[k] = v
		}
	}
}

// LogHandler configures the underlying slog.Handler.
func LogHandler(h slog.Handler) Option {
	return func(o *options) {
		o.logHandler = h
	}
}

// NewHTTPClient returns a *http.Client for talking to the Grep collector.
//
// Every request is logged with the authorization header masked. Retries
// and circuit breaking are enabled via the [Retry] and [TripAfter]
// family of options.
func NewHTTPClient(opts ...Option) *http.Client {
	o := &options{
		rt: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(o)
	}

	logger := newLogger(o.logHandler)
	if o.name != "" {
		logger = logger.With(slog.String("http_client", o.name))
	}

	var rt http.RoundTripper = o.rt
	if len(o.headers) > 0 {
		rt = &headerRoundTripper{
			base:    rt,
			headers: o.headers,
		}
	}

	rt = &logRoundTripper{
		base: rt,
		log:  logger,
	}

	if o.co != nil {
		co := o.co
		if len(co.statusCodes) == 0 {
			co.statusCodes = append(
				co.statusCodes,
				http.StatusUnauthorized,        // 401
				http.StatusForbidden,           // 403
				http.StatusInternalServerError, // 500
				http.StatusServiceUnavailable,  // 503
			)
		}

		codes := map[int]struct{}{}
		for _, code := range co.statusCodes {
			codes[code] = struct{}{}
		}

		rt = &circuitRoundTripper{
			base: rt,
			cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
				Name:        o.name,
				MaxRequests: co.maxRequests,
				Interval:    co.interval,
				Timeout:     co.timeout,
				ReadyToTrip: func(counts gobreaker.Counts) bool {
					return counts.ConsecutiveFailures >= co.tripCount
				},
				OnStateChange: func(name string, from, to gobreaker.State) {
					switch to {
					case gobreaker.StateOpen:
						logger.Error("circuit has been opened")
					case gobreaker.StateHalfOpen:
						logger.Warn(
							"circuit is now half open and letting some requests through",
							slog.Any("max_requests_allowed_through", co.maxRequests),
						)
					case gobreaker.StateClosed:
						logger.Info("circuit has been closed")
					}
				},
				IsSuccessful: co.isSuccessful,
			}),
			isFailureCode: func(n int) bool {
				_, ok := codes[n]
				return ok
			},
		}
	}
	if o.ro == nil {
		return &http.Client{
			Timeout:   o.timeout,
			Transport: rt,
		}
	}

	ro := o.ro
	rc := retryablehttp.Client{
		HTTPClient: &http.Client{
			Timeout:   o.timeout,
			Transport: rt,
		},
		RetryWaitMin: ro.waitMin,
		RetryWaitMax: ro.waitMax,
		RetryMax:     ro.maxRetries,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
		Backoff:      retryablehttp.DefaultBackoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
	return rc.StandardClient()
}

func newLogger(h slog.Handler) *slog.Logger {
	if h == nil {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(redact.NewHandler(h, map[string]func(slog.Attr) slog.Attr{
		"authorization": redact.Mask,
	}))
}

type headerRoundTripper struct {
	base    http.RoundTripper
	headers map[string]string
}

func (rt *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range rt.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	return rt.base.RoundTrip(req)
}

type logRoundTripper struct {
	base http.RoundTripper
	log  *slog.Logger
}

func (rt *logRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	start := time.Now()
	rt.log.InfoContext(
		ctx,
		"request sent",
		slog.String("url", req.URL.String()),
		slog.String("authorization", req.Header.Get("Authorization")),
	)
	resp, err := rt.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	rt.log.InfoContext(
		ctx,
		"response received",
		slog.String("url", req.URL.String()),
		slog.Int("status_code", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)
	return resp, err
}

type statusCodeError struct {
	code int
}

func (e statusCodeError) Error() string {
	return fmt.Sprintf("received failure status code: %d", e.code)
}

type circuitRoundTripper struct {
	base          http.RoundTripper
	cb            *gobreaker.CircuitBreaker
	isFailureCode func(int) bool
}

func (rt *circuitRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	v, err := rt.cb.Execute(func() (interface{}, error) {
		resp, err := rt.base.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		if rt.isFailureCode(resp.StatusCode) {
			return resp, statusCodeError{code: resp.StatusCode}
		}
		return resp, nil
	})

	// A failure status code trips the breaker but the response is
	// still returned to the caller.
	var sce statusCodeError
	if errors.As(err, &sce) {
		return v.(*http.Response), nil
	}
	if err != nil {
		return nil, err
	}
	return v.(*http.Response), nil
}
