package media

import (
	"errors"
	"fmt"
)

// Checkout state errors, wrapped by InvalidStateError.
var (
	// ErrAlreadyCheckedOut is returned when checking out an item that is not available.
	ErrAlreadyCheckedOut = errors.New("item is already checked out")

	// ErrAlreadyCheckedIn is returned when checking in an item that is available.
	ErrAlreadyCheckedIn = errors.New("item is already checked in")
)

// ValidationError reports a field that violates its invariant.
type ValidationError struct {
	Field   string // Field name as stored in the catalog file (e.g. "isbn", "pageCount")
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// InvalidStateError reports an illegal checkout or check-in.
type InvalidStateError struct {
	ISBN string
	Err  error // ErrAlreadyCheckedOut or ErrAlreadyCheckedIn
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s (ISBN: %s)", e.Err, e.ISBN)
}

func (e *InvalidStateError) Unwrap() error {
	return e.Err
}

// IsValidation returns true if err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// IsInvalidState returns true if err is or wraps an InvalidStateError.
func IsInvalidState(err error) bool {
	var sErr *InvalidStateError
	return errors.As(err, &sErr)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
