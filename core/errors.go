package core

import (
	"strings"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific input field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			parts := make([]string, 0, len(err.Fields))
			for _, fld := range err.Fields {
				parts = append(parts, fld.Field+": "+fld.Error)
			}
			return strings.Join(parts, "; ")
		}
		return ""
	}
	return err.Err.Error()
}

func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// PersistenceError wraps a durable store failure. The mutation that caused it
// has been rolled back; the session continues on in-memory state only.
type PersistenceError struct {
	Key string
	Err error
}

func NewPersistenceError(key string, err error) error {
	return &PersistenceError{Key: key, Err: err}
}

func (err PersistenceError) Error() string {
	return "persisting " + err.Key + ": " + err.Err.Error()
}

func (err PersistenceError) Unwrap() error { return err.Err }

func IsPersistenceError(err error) bool {
	var pErr *PersistenceError
	return errors.As(err, &pErr)
}

// ErrCollaborator marks an external collaborator (text generation, mail
// dispatch) as unavailable. Always recoverable by retrying the action.
var ErrCollaborator = errors.New("service temporarily unavailable")
