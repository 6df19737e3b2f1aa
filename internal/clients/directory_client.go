// internal/clients/directory_client.go
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"gymdesk/internal/apperr"
	"gymdesk/internal/config"
)

const (
	apiPrefix        = "/api/v1"
	maxResponseBytes = 10 << 20
)

// DirectoryClient talks to the member directory service. Every call is rate
// limited and runs behind a circuit breaker that only counts transport
// failures and 5xx answers.
type DirectoryClient struct {
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	breaker  *gobreaker.CircuitBreaker
	tracer   trace.Tracer
	duration metric.Float64Histogram
}

func NewDirectoryClient(cfg config.DirectoryConfig) *DirectoryClient {
	duration, _ := otel.Meter("gymdesk/clients").Float64Histogram(
		"gymdesk.directory.duration",
		metric.WithDescription("Directory request latency"),
		metric.WithUnit("s"),
	)

	return &DirectoryClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "directory",
			Timeout: cfg.BreakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.BreakerFailures
			},
			IsSuccessful: countsAsSuccess,
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Printf("Circuit breaker %s changed from %s to %s", name, from, to)
			},
		}),
		tracer:   otel.Tracer("gymdesk/clients"),
		duration: duration,
	}
}

// call describes one directory request. Results maps envelope keys to the
// values they decode into.
type call struct {
	method  string
	path    string
	query   url.Values
	body    interface{}
	results map[string]interface{}
}

// envelope is the wrapper every directory response comes in.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func (c *DirectoryClient) do(ctx context.Context, cl call) error {
	ctx, span := c.tracer.Start(ctx, "directory "+cl.method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", cl.method),
			attribute.String("directory.path", cl.path),
		))
	defer span.End()

	start := time.Now()
	err := c.send(ctx, cl)
	c.duration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("http.method", cl.method), attribute.Bool("error", err != nil)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *DirectoryClient) send(ctx context.Context, cl call) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	var payload []byte
	if cl.body != nil {
		var err error
		if payload, err = json.Marshal(cl.body); err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	target := c.baseURL + apiPrefix + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	raw, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, cl.method, target, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("X-Request-ID", requestID(ctx))

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		return decode(resp.StatusCode, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", apperr.ErrUnavailable, err)
		}
		return err
	}

	fields := raw.(map[string]json.RawMessage)
	for key, dst := range cl.results {
		value, ok := fields[key]
		if !ok {
			return fmt.Errorf("directory response is missing %q", key)
		}
		if err := json.Unmarshal(value, dst); err != nil {
			return fmt.Errorf("failed to decode %q: %w", key, err)
		}
	}
	return nil
}

// decode unwraps a directory envelope. A success flag of false is a failure
// regardless of the HTTP status.
func decode(status int, body []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	var env envelope
	if len(bytes.TrimSpace(body)) == 0 && status < 400 {
		return map[string]json.RawMessage{}, nil
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, &apperr.RemoteError{Status: statusOrBadGateway(status), Message: snippet(body)}
	}
	_ = json.Unmarshal(body, &env)

	switch {
	case status == http.StatusNotFound:
		if env.Message != "" {
			return nil, fmt.Errorf("%w: %s", apperr.ErrNotFound, env.Message)
		}
		return nil, apperr.ErrNotFound
	case status >= 400:
		return nil, &apperr.RemoteError{Status: status, Message: env.Message}
	case env.Success != nil && !*env.Success:
		return nil, &apperr.RemoteError{Status: http.StatusUnprocessableEntity, Message: env.Message}
	}
	return fields, nil
}

// countsAsSuccess keeps client errors from tripping the breaker.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, apperr.ErrNotFound) {
		return true
	}
	var remote *apperr.RemoteError
	return errors.As(err, &remote) && remote.Status < 500
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func statusOrBadGateway(status int) int {
	if status >= 400 {
		return status
	}
	return http.StatusBadGateway
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	if s == "" {
		return "directory returned an empty response"
	}
	return s
}

func escape(id string) string {
	return url.PathEscape(id)
}
