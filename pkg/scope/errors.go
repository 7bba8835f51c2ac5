package scope

import "errors"

var (
	// ErrNilAction is returned when a guard is built without an action.
	ErrNilAction = errors.New("scope: nil action")

	// ErrUnknownPolicy is returned when a guard is built with a policy other
	// than Always, OnFailure or OnSuccess.
	ErrUnknownPolicy = errors.New("scope: unknown policy")
)
