package errors

import (
	"fmt"
	"net/http"
)

// ClassifyHTTPError wraps the failure of a non-2xx response.
// 4xx responses other than 408 and 429 are irrecoverable; 5xx and anything
// unexpected are recoverable.
func ClassifyHTTPError(statusCode int, body string, underlyingErr error) *ClassifiedError {
	return &ClassifiedError{
		Category:   categoryFor(statusCode),
		StatusCode: statusCode,
		Body:       body,
		Underlying: underlyingErr,
	}
}

func categoryFor(statusCode int) ErrorCategory {
	switch {
	case statusCode == http.StatusRequestTimeout, statusCode == http.StatusTooManyRequests:
		return Recoverable
	case statusCode >= 400 && statusCode < 500:
		return Irrecoverable
	default:
		return Recoverable
	}
}

// NewNetworkError creates a classified error for transport-level failures.
// Network errors are always recoverable as they may be transient.
func NewNetworkError(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Category:   Recoverable,
		Underlying: fmt.Errorf("%s network error: %w", operation, err),
	}
}
