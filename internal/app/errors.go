package app

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrMissingField      = errors.New("missing required field")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrInvalidField      = errors.New("invalid field value")
	ErrUsernameExists    = errors.New("username already exists")
	ErrEmailExists       = errors.New("email already exists")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrStorageConstraint = errors.New("storage constraint violated")
	ErrContentNotFound   = errors.New("content not found")
)

// FieldErrors maps a form field name to a message shown next to it.
type FieldErrors map[string]string

// ValidationError carries the per-field messages of a rejected form and
// unwraps to every sentinel that caused them, so errors.Is(err,
// ErrUsernameExists) works on the aggregate.
type ValidationError struct {
	Fields FieldErrors
	kinds  []error
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: FieldErrors{}}
}

func (e *ValidationError) add(field, message string, kind error) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
	for _, k := range e.kinds {
		if k == kind {
			return
		}
	}
	e.kinds = append(e.kinds, kind)
}

func (e *ValidationError) empty() bool {
	return e == nil || len(e.Fields) == 0
}

// orNil keeps a typed nil *ValidationError from becoming a non-nil error.
func (e *ValidationError) orNil() error {
	if e.empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	return e.kinds
}

// FieldErrorsOf extracts the field messages from err, if it is a validation
// failure.
func FieldErrorsOf(err error) (FieldErrors, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}
