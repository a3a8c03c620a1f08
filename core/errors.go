package core

import (
	"strings"

	"github.com/pkg/errors"
)

// Failure kinds surfaced by the data layer. Match them with errors.Is.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrStorageFailure      = errors.New("storage failure")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports rejected input. It always matches ErrInvalidInput.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	if err == nil {
		err = ErrInvalidInput
	}
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if len(err.Fields) == 0 {
		return err.Err.Error()
	}
	msgs := make([]string, 0, len(err.Fields))
	for _, fld := range err.Fields {
		msgs = append(msgs, fld.Field+": "+fld.Error)
	}
	return err.Err.Error() + ": " + strings.Join(msgs, "; ")
}

func (err ValidationError) Unwrap() error { return err.Err }

func (err ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// FieldErrors returns the field errors carried by err, if it is a ValidationError.
func FieldErrors(err error) map[string]string {
	var vErr *ValidationError
	if !errors.As(err, &vErr) || len(vErr.Fields) == 0 {
		return nil
	}
	flds := make(map[string]string, len(vErr.Fields))
	for _, fErr := range vErr.Fields {
		flds[fErr.Field] = fErr.Error
	}
	return flds
}
