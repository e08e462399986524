package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrSuperseded marks a response that lost the race against a newer
	// request for the same resource.
	ErrSuperseded = errors.New("request superseded")
)
