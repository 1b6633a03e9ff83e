package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound signals an operation referenced a visitor id that does not
// exist in the store.
var ErrNotFound = errors.New("visitor not found")

// ValidationError reports which required intake fields were missing.
// It is returned before any store call is made.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.MissingFields, ", "))
}

type StoreErrorKind string

const (
	StoreUnavailable StoreErrorKind = "unavailable"
	StoreQuery       StoreErrorKind = "query"
	StoreWrite       StoreErrorKind = "write"
)

// StoreError wraps a record store failure with the operation that hit it.
// The underlying error is preserved for logging; callers branch on Kind.
type StoreError struct {
	Op   string
	Kind StoreErrorKind
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("visitor store: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// AsStoreError unwraps err to a StoreError if one is in the chain.
func AsStoreError(err error) (*StoreError, bool) {
	var se *StoreError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
