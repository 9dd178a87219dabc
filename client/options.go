package client

// This file defines functional options that configure the Client during
// construction.

import (
	"fmt"
	"time"
)

// Option configures a Client during construction in New.
//
// Options are applied before the API-key transport wrapper is installed, so
// transport-related options (like debug logging) sit underneath it.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout bounds
// the total time spent on a single HTTP request. The value must be greater
// than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true. Do not enable it in production: dumps include
// request bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}

// WithRetry retries read-only (GET) calls on 5xx, 408, 429 and transport
// errors with exponential backoff for at most maxElapsed. Mutating calls are
// never retried.
func WithRetry(maxElapsed time.Duration) Option {
	return func(c *Client) error {
		if maxElapsed <= 0 {
			return fmt.Errorf("retry window must be > 0")
		}
		c.retryMaxElapsed = maxElapsed
		return nil
	}
}
