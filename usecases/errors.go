package usecases

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound covers both a missing id and an id owned by someone
	// else; callers cannot tell the two apart.
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// FieldErrors maps a field name to one or more validation messages.
type FieldErrors map[string][]string

// ValidationError reports per-field problems with a request payload.
type ValidationError struct {
	Fields FieldErrors
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: FieldErrors{}}
}

func (e *ValidationError) add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// orNil lets validation code build up errors and return nil when none
// were recorded.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Fields[f], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
