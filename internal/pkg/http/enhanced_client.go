package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/piresc/vigilante/internal/pkg/circuitbreaker"
	"github.com/piresc/vigilante/internal/pkg/logger"
	"github.com/piresc/vigilante/internal/pkg/metrics"
	nrpkg "github.com/piresc/vigilante/internal/pkg/newrelic"
	"github.com/piresc/vigilante/internal/pkg/retry"
)

// DefaultTimeout for provider requests
const DefaultTimeout = 10 * time.Second

// maxErrorBody bounds how much of an error response is kept for logs
const maxErrorBody = 512

// EnhancedClient wraps http.Client with retry and circuit breaker functionality
type EnhancedClient struct {
	client         *http.Client
	retrier        *retry.Retrier
	circuitManager *circuitbreaker.Manager
	logger         *logger.ZapLogger
	provider       string
}

// NewEnhancedClient creates a new enhanced HTTP client. provider labels the
// upstream in metrics ("weather", "route").
func NewEnhancedClient(log *logger.ZapLogger, provider string, timeout time.Duration) *EnhancedClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &EnhancedClient{
		client:         &http.Client{Timeout: timeout},
		retrier:        retry.NewWithDefaults(log),
		circuitManager: circuitbreaker.NewManager(log),
		logger:         log,
		provider:       provider,
	}
}

// RequestFunc builds a fresh request for every attempt
type RequestFunc func(ctx context.Context) (*http.Request, error)

// Do executes a request with retry and circuit breaker protection and returns
// the body of a 2xx response. Non-2xx responses become *HTTPError.
func (c *EnhancedClient) Do(ctx context.Context, build RequestFunc) ([]byte, error) {
	var body []byte

	probe, err := build(ctx)
	if err != nil {
		return nil, err
	}
	host := probe.URL.Host
	if host == "" {
		host = "unknown"
	}

	err = c.circuitManager.Execute(ctx, host, func(ctx context.Context) error {
		return c.retrier.Execute(ctx, func(ctx context.Context) error {
			req, err := build(ctx)
			if err != nil {
				return err
			}

			resp, err := nrpkg.InstrumentHTTPRequest(ctx, req, func() (*http.Response, error) {
				return c.client.Do(req)
			})
			if err != nil {
				metrics.ProviderRequests.WithLabelValues(c.provider, "error").Inc()
				return err
			}
			defer resp.Body.Close()
			metrics.ProviderRequests.WithLabelValues(c.provider, fmt.Sprintf("%dxx", resp.StatusCode/100)).Inc()

			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
				return &HTTPError{StatusCode: resp.StatusCode, Message: string(snippet)}
			}

			body, err = io.ReadAll(resp.Body)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// GetJSON performs a GET request and decodes the JSON response into out
func (c *EnhancedClient) GetJSON(ctx context.Context, url string, headers map[string]string, out interface{}) error {
	body, err := c.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		setHeaders(req, headers)
		return req, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// PostJSON performs a POST request with a JSON payload and decodes the JSON response into out
func (c *EnhancedClient) PostJSON(ctx context.Context, url string, headers map[string]string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		setHeaders(req, headers)
		return req, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// CircuitStates returns the breaker state per upstream host
func (c *EnhancedClient) CircuitStates() map[string]string {
	return c.circuitManager.States()
}

func setHeaders(req *http.Request, headers map[string]string) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}

// HTTPError represents a non-2xx upstream response
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

// Status exposes the upstream status to the retry policy
func (e *HTTPError) Status() int {
	return e.StatusCode
}
