package resolve

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is matched by every [InvalidInputError] through errors.Is.
	ErrInvalidInput = errors.New("invalid resolution input")

	// ErrNotFound is matched by every [NotFoundError] through errors.Is.
	ErrNotFound = errors.New("no catalog match")
)

// InvalidInputError reports a malformed request: a blank query or a missing
// or empty catalog. HTTP callers map it to 400 Bad Request.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) true for any InvalidInputError.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NotFoundError reports that no strategy matched. Query is the value exactly
// as the caller supplied it, before normalisation.
type NotFoundError struct {
	Query   string
	Catalog string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no match for %q in %s", e.Query, e.Catalog)
}

// Is makes errors.Is(err, ErrNotFound) true for any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
