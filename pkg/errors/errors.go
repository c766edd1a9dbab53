package custom_error

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ValidationError means the input to a store write was malformed
// (empty model, negative price) before any SQL ran.
type ValidationError struct {
	message string
}

// ConflictError means a uniqueness constraint (asset tag or GLPI id)
// was violated.
type ConflictError struct {
	message string
}

// NotFoundError means the target of an update/archive/restore does not exist.
type NotFoundError struct {
	resource string
}

func (e *ValidationError) Error() string {
	return e.message
}

func (e *ConflictError) Error() string {
	return e.message
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.resource)
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{message: message}
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{message: message}
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{resource: resource}
}

// WrapDBError maps sqlite constraint failures onto the typed errors above.
// Anything that is not a constraint violation passes through wrapped.
func WrapDBError(message string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return &ConflictError{message: message}
		case sqlite3.ErrConstraintForeignKey:
			return &ConflictError{message: "value is already used by other resources: " + message}
		}
	}
	return fmt.Errorf("%s: %w", message, err)
}

func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}

func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

func IsValidation(err error) bool {
	var validation *ValidationError
	return errors.As(err, &validation)
}
