package client

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BloggingApp/comment-service/internal/dto"
)

// ValidationError is a 422 response: the server rejected one or more fields.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError(violations []dto.Violation) *ValidationError {
	fields := make(map[string]string, len(violations))
	for _, v := range violations {
		if _, exists := fields[v.PropertyPath]; !exists {
			fields[v.PropertyPath] = v.Message
		}
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FieldErrors exposes the field messages to callers that only know the
// behaviour, not the type.
func (e *ValidationError) FieldErrors() map[string]string {
	return e.Fields
}

// StatusError is any other non-2xx response.
type StatusError struct {
	StatusCode int
	Details    string
}

func (e *StatusError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Details)
}
