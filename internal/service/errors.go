package service

import (
	"errors"
	"fmt"
)

// ErrTransactionNotFound is returned by lookups for an unknown transaction id.
var ErrTransactionNotFound = errors.New("transaction not found")

// ValidationError reports a webhook field that failed validation. The store is
// never touched for an invalid payload, and validation failures are not retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnavailableError wraps a store or queue outage. Callers surface it as a 5xx;
// the service performs no retry of its own.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}
