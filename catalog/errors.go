package catalog

import (
	"errors"
	"fmt"
)

// Validation reasons. A Rejection wraps exactly one of them.
var (
	ErrEmptyName         = errors.New("name is empty")
	ErrInvalidCharacters = errors.New("name may only contain letters, spaces and periods")
	ErrBadDateFormat     = errors.New("date must be formatted as YYYY-MM-DD")
	ErrDeathBeforeBirth  = errors.New("date of death must be after birth date")
	ErrInvalidISBN       = errors.New("ISBN must be exactly 10 or 13 digits")
	ErrInvalidTitle      = errors.New("title must contain at least one letter")
	ErrInvalidYear       = errors.New("publication year is out of range")
)

// Store outcomes. Repositories translate driver errors into these.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("already exists")
	ErrUnknownAuthor = errors.New("unknown author")
)

// Rejection is a structured validation failure for a single field
type Rejection struct {
	Field  string
	Reason error
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Field, r.Reason)
}

func (r *Rejection) Unwrap() error {
	return r.Reason
}

func reject(field string, reason error) error {
	return &Rejection{Field: field, Reason: reason}
}

// Warning is what the service hands back instead of a result.
// Message is safe to show to the user; Err keeps the cause for errors.Is.
type Warning struct {
	Message string
	Err     error
}

func (w *Warning) Error() string {
	return w.Message
}

func (w *Warning) Unwrap() error {
	return w.Err
}

func warn(err error, format string, args ...any) error {
	return &Warning{Message: fmt.Sprintf(format, args...), Err: err}
}

// IsValidation reports whether err stems from rejected input
func IsValidation(err error) bool {
	var r *Rejection
	return errors.As(err, &r)
}

// IsConflict reports whether err is a duplicate or a dangling author reference
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicate) || errors.Is(err, ErrUnknownAuthor)
}
