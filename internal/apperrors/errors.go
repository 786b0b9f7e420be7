// Package apperrors holds the error taxonomy shared by repositories, services
// and handlers. Callers classify errors with errors.Is against the sentinels.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrConflict        = errors.New("conflict")
	ErrStore           = errors.New("store failure")
)

// Violation describes one failed field rule.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// ValidationError carries every rule a candidate entity violated.
type ValidationError struct {
	Violations []Violation
}

// NewValidationError builds a ValidationError with a single violation.
func NewValidationError(field, rule, message string) *ValidationError {
	return &ValidationError{Violations: []Violation{{Field: field, Rule: rule, Message: message}}}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Fields maps each violated field to its first message.
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.Violations))
	for _, v := range e.Violations {
		if _, ok := out[v.Field]; !ok {
			out[v.Field] = v.Message
		}
	}
	return out
}

// DuplicateKeyError reports a uniqueness invariant that a write would break.
type DuplicateKeyError struct {
	Entity string
	Field  string
	Value  string
}

func (e *DuplicateKeyError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s with the same %s already exists", e.Entity, e.Field)
	}
	return fmt.Sprintf("%s with %s '%s' already exists", e.Entity, e.Field, e.Value)
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

// NotFound returns an error matching ErrNotFound, e.g. "product with ID 42 not found".
func NotFound(entity, id string) error {
	return fmt.Errorf("%s with ID %s %w", entity, id, ErrNotFound)
}

// Store wraps an infrastructure failure so it matches ErrStore.
func Store(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, ErrStore, err)
}
