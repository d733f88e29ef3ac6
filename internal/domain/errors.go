package domain

import (
	"errors"
	"fmt"
)

// ErrConcurrentModification is returned when a product write loses the
// optimistic-concurrency check (version token mismatch at commit time).
var ErrConcurrentModification = errors.New("concurrent modification")

// NotFoundError identifies which entity and which id was missing.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %v not found", e.Entity, e.ID)
}

func NewNotFound(entity string, id any) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is any NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ValidationError carries field-keyed messages, e.g.
// {"Quantity": "Insufficient stock"}.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for k, v := range e.Fields {
		return fmt.Sprintf("%s: %s", k, v)
	}
	return "validation error"
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
