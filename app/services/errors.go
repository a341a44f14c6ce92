package services

import "errors"

var (
	// ErrNotLinked means the tenant has no active ledger; the caller can
	// recover by linking to a property first.
	ErrNotLinked = errors.New("tenant is not linked to a property")

	// ErrInvalidCode means a property code resolved to nothing. Surfaced
	// to the user verbatim, never retried automatically.
	ErrInvalidCode = errors.New("invalid property code")

	// ErrConflict means the store could not obtain exclusive access for a
	// mutating call. No partial mutation is visible, so the caller may
	// retry safely.
	ErrConflict = errors.New("concurrent ledger update conflict")
)
