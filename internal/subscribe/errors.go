package subscribe

import "errors"

var (
	// ErrNotFound indicates the requested subscription doesn't exist.
	ErrNotFound = errors.New("subscription not found")

	// ErrInvalid indicates a subscription failed validation or a check constraint.
	ErrInvalid = errors.New("invalid subscription")
)
