package client

import (
	"errors"
	"net/http"

	"github.com/Sideko-Inc/insurance-api-demo/client/internal/api"
)

// APIError is the decoded error envelope of a non-2xx response. Every SDK
// method that fails on an HTTP status returns an error wrapping one.
type APIError = api.StatusError

// AsAPIError extracts the *APIError from err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool { return hasStatus(err, http.StatusNotFound) }

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }

// IsValidation reports whether err is a 400 from the API.
func IsValidation(err error) bool { return hasStatus(err, http.StatusBadRequest) }

func hasStatus(err error, code int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == code
}
