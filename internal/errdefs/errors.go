package errdefs

import "errors"

var (
	// ErrValidation marks failures caused by the caller's input
	// (bad locator, unreadable image). Handlers map it to 400.
	ErrValidation = errors.New("validation error")

	// ErrUnauthorized marks failed credential checks. Handlers map it to 401.
	ErrUnauthorized = errors.New("unauthorized")
)
