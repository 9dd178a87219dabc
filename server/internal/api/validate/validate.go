package validate

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-openapi/strfmt"
)

// Errors collects every failing field of one record so a single 400 can list them all.
type Errors struct {
	problems []string
}

func (e *Errors) add(format string, args ...any) {
	e.problems = append(e.problems, fmt.Sprintf(format, args...))
}

// Err returns nil when no check failed.
func (e *Errors) Err() error {
	if len(e.problems) == 0 {
		return nil
	}
	return errors.New(strings.Join(e.problems, "; "))
}

// NonEmpty requires a non-empty string.
func (e *Errors) NonEmpty(field, v string) {
	if v == "" {
		e.add("%s is required", field)
	}
}

// Email requires a syntactically valid address.
func (e *Errors) Email(field, v string) {
	if v == "" {
		e.add("%s is required", field)
		return
	}
	if len(v) > 320 || !strfmt.IsEmail(v) {
		e.add("%s must be a valid email", field)
	}
}

// DateTime requires an RFC 3339 timestamp.
func (e *Errors) DateTime(field, v string) {
	if v == "" {
		e.add("%s is required", field)
		return
	}
	e.OptionalDateTime(field, v)
}

// OptionalDateTime checks the format only when v is set.
func (e *Errors) OptionalDateTime(field, v string) {
	if v != "" && !strfmt.IsDateTime(v) {
		e.add("%s must be an ISO 8601 date-time", field)
	}
}

// Positive requires v > 0.
func (e *Errors) Positive(field string, v float64) {
	if v <= 0 {
		e.add("%s must be positive", field)
	}
}

// NonNegative requires v >= 0.
func (e *Errors) NonNegative(field string, v float64) {
	if v < 0 {
		e.add("%s must not be negative", field)
	}
}

// Range requires lo <= v <= hi.
func (e *Errors) Range(field string, v, lo, hi float64) {
	if v < lo || v > hi {
		e.add("%s must be between %g and %g", field, lo, hi)
	}
}

// Percentage requires 0 < v <= 100.
func (e *Errors) Percentage(field string, v float64) {
	if v <= 0 || v > 100 {
		e.add("%s must be greater than 0 and at most 100", field)
	}
}

// OneOf requires v to be one of allowed.
func (e *Errors) OneOf(field, v string, allowed []string) {
	if !slices.Contains(allowed, v) {
		e.add("%s must be one of %s", field, strings.Join(allowed, ", "))
	}
}
