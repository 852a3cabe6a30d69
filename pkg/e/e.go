// Package e declares the error taxonomy shared by services and the HTTP layer.
package e

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnauthenticated: missing or unknown bearer token.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUnauthorized: bad credentials at login.
	ErrUnauthorized = errors.New("invalid credentials")
	ErrNotFound     = errors.New("not found")
	// ErrBadRequest: body is not decodable JSON.
	ErrBadRequest = errors.New("bad request")
	// ErrTooLarge: body exceeds MAX_BODY_BYTES.
	ErrTooLarge = errors.New("request body too large")
	// ErrValidationFailed is matched by every *ValidationError.
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError carries field-level messages keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(keys, ", "))
}

func (v *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
