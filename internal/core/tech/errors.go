package tech

import (
	"errors"

	"github.com/hay-kot/criterio"
)

// ErrInvalidDocument is returned when an import document has the wrong
// top-level shape.
var ErrInvalidDocument = errors.New("invalid import document")

// ValidationError reports every field that failed validation on a write.
// The write that produced it was rejected and prior state is unchanged.
type ValidationError struct {
	Fields criterio.FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Fields
}

// asValidationError converts the result of a criterio builder into a
// *ValidationError. A nil error stays nil.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		return &ValidationError{Fields: fieldErrs}
	}
	return err
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NewFieldError returns a *ValidationError for a single field.
func NewFieldError(field string, err error) error {
	return asValidationError(criterio.NewFieldErrors(field, err))
}
