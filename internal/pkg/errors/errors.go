package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when a view restriction is not satisfied.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAmbiguousSite is returned when a ?site= filter matches more than one site.
	ErrAmbiguousSite = errors.New("ambiguous site")
	// ErrConfiguration marks a content-model or response declaration mistake.
	ErrConfiguration = errors.New("configuration error")
)
