package chat

import (
	"errors"
	"strings"
)

var (
	ErrNameTaken       = errors.New("name already in use")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("only the sender may delete a message")
	ErrUnknownSender   = errors.New("sender is not a registered participant")
	ErrMissingIdentity = errors.New("identity is required")

	// ErrStoreFailure matches every *StoreError.
	ErrStoreFailure = errors.New("store failure")
)

// ValidationError lists every field of an input that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// StoreError reports an infrastructure failure of the record store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStoreFailure, e.Err}
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
