package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("matching query does not exist")
	ErrPermissionDenied   = errors.New("You do not have permission to perform this action.")
	ErrUnauthenticated    = errors.New("Authentication credentials were not provided.")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// NotFoundError reports a missing row for the named entity.
// errors.Is(err, ErrNotFound) holds for it.
type NotFoundError struct {
	Entity string
}

func NotFound(entity string) *NotFoundError {
	return &NotFoundError{Entity: entity}
}

func (e *NotFoundError) Error() string {
	return e.Entity + " matching query does not exist."
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError carries per field messages for a rejected payload.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError(field, msg string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, msg)
	return v
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// InvalidReference reports a foreign key that points at nothing.
func InvalidReference(field string, id int64) *ValidationError {
	return NewValidationError(field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
}

// DuplicateUsername is returned when registering a taken username.
func DuplicateUsername() *ValidationError {
	return NewValidationError("username", "A user with that username already exists.")
}
