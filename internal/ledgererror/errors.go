// Package ledgererror defines the typed errors returned by the ledger.
package ledgererror

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every NotFoundError through errors.Is.
var ErrNotFound = errors.New("not found")

// ErrValidation matches every ValidationError through errors.Is.
var ErrValidation = errors.New("validation failed")

// ParseError represents a numeric or date field that could not be read.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s='%s': %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports ParseError as a validation failure.
func (e *ParseError) Is(target error) bool {
	return target == ErrValidation
}

// ValidationError represents input rejected by the validation gate
type ValidationError struct {
	Entity string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError represents a lookup by id that matched nothing.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotFound is shorthand for a NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// Invalid is shorthand for a ValidationError.
func Invalid(entity, reason string) error {
	return &ValidationError{Entity: entity, Reason: reason}
}
