package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Sideko-Inc/insurance-api-demo/server/internal/api/respond"
	"github.com/Sideko-Inc/insurance-api-demo/server/internal/model"
)

const maxBodyBytes = 1 << 20

// writeServiceError maps a service error onto the response envelope. Storage
// failures are logged with their stack and reported as failure.
func writeServiceError(w http.ResponseWriter, log zerolog.Logger, err error, failure string) {
	switch {
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, errorDetail(err, model.ErrValidation))
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, errorDetail(err, model.ErrNotFound))
	default:
		log.Error().Stack().Err(err).Msg(failure)
		respond.WriteInternalError(w, failure)
	}
}

// errorDetail strips the sentinel prefix added by fmt.Errorf("%w: ...").
func errorDetail(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

// decodeObject reads a JSON object body.
func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	var fields map[string]any
	if err := decodeBody(w, r, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("request body must be a JSON object")
	}
	return fields, nil
}

// decodeBody decodes the request body into v, bounded to maxBodyBytes. The
// body must hold exactly one JSON value.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

var errTrailingData = errors.New("unexpected data after JSON body")

// decodeOptional decodes into v and treats an empty body as "no fields".
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) error {
	if err := decodeBody(w, r, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
