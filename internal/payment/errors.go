package payment

import "errors"

var (
	// ErrInvalidAmount rejects non-positive charge amounts before any
	// persistence happens.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrMissingRider rejects requests without a rider reference.
	ErrMissingRider = errors.New("rider is required")

	// ErrNotFound is returned by store lookups with no matching payment.
	ErrNotFound = errors.New("payment not found")
)
