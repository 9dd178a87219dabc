// Package api performs the raw JSON exchanges of the SDK.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	clerrors "github.com/Sideko-Inc/insurance-api-demo/client/internal/errors"
)

const maxResponseBytes = 8 << 20

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrorBody is the error envelope written by the server.
type ErrorBody struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatusError carries the decoded error envelope of a non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Status, e.Message)
}

// Do sends one request with an optional JSON body and returns the raw body of
// a 2xx reply. Failures are *clerrors.ClassifiedError wrapping *StatusError
// for HTTP errors. Context errors are returned unwrapped.
func Do(ctx context.Context, hc HTTPClient, method, url string, body any, op string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", op, err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Note: x-api-key header will be added by transport layer

	resp, err := hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, clerrors.NewNetworkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, clerrors.NewNetworkError(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{StatusCode: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
		var eb ErrorBody
		if json.Unmarshal(raw, &eb) == nil {
			if eb.Error != "" {
				se.Status = eb.Error
			}
			se.Message = eb.Message
		}
		return nil, clerrors.ClassifyHTTPError(resp.StatusCode, string(raw), fmt.Errorf("%s: %w", op, se))
	}
	return raw, nil
}
