// Package client is the Go SDK for the insurance API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/Sideko-Inc/insurance-api-demo/client/internal/api"
	clerrors "github.com/Sideko-Inc/insurance-api-demo/client/internal/errors"
	"github.com/Sideko-Inc/insurance-api-demo/devmode"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

type Client struct {
	baseURL string
	http    *http.Client
	apiKey  string

	// retryMaxElapsed bounds GET retries; zero disables them.
	retryMaxElapsed time.Duration
}

// New constructs a Client with the specified baseURL and apiKey.
// Additional options can be provided via functional arguments.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey cannot be empty")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.wrapTransportWithAPIKey()
	return c, nil
}

// NewWithDevMode constructs a Client that authenticates with the demo API key.
func NewWithDevMode(baseURL string, opts ...Option) (*Client, error) {
	return New(baseURL, devmode.DemoAPIKey, opts...)
}

// BaseURL returns the server root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// wrapTransportWithAPIKey wraps the HTTP client's transport so every request
// carries the configured API key.
func (c *Client) wrapTransportWithAPIKey() {
	baseTransport := c.http.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	c.http.Transport = &apiKeyTransport{
		base:   baseTransport,
		apiKey: c.apiKey,
	}
}

// apiKeyTransport wraps an http.RoundTripper to add the x-api-key header.
type apiKeyTransport struct {
	base   http.RoundTripper
	apiKey string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	cloned.Header.Set(devmode.HeaderName, t.apiKey)
	return t.base.RoundTrip(cloned)
}

// call sends method to /api/<path>. GETs are retried with exponential backoff
// on recoverable failures when WithRetry is set.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	target := c.baseURL + "/api/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	op := method + " /api/" + strings.TrimPrefix(path, "/")

	if method != http.MethodGet || c.retryMaxElapsed <= 0 {
		raw, err := api.Do(ctx, c.http, method, target, body, op)
		observeRequest(method, err)
		return raw, err
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 100 * time.Millisecond
	exp.MaxInterval = 2 * time.Second
	exp.MaxElapsedTime = c.retryMaxElapsed

	var out json.RawMessage
	attempt := 0
	err := backoff.Retry(func() error {
		if attempt > 0 {
			retriesTotal.WithLabelValues(method).Inc()
		}
		attempt++
		raw, err := api.Do(ctx, c.http, method, target, body, op)
		observeRequest(method, err)
		if err != nil {
			if clerrors.IsIrrecoverable(err) || ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		out = raw
		return nil
	}, backoff.WithContext(exp, ctx))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// decode calls the API and unmarshals the reply into out.
func (c *Client) decode(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.call(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s /api/%s: decode response: %w", method, path, err)
	}
	return nil
}
