package jwks

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyRetrieval is returned when the JWKS document cannot be
	// fetched or parsed. The underlying cause is available via Unwrap.
	ErrKeyRetrieval = errors.New("could not retrieve JWKS")

	// ErrKeyNotFound is returned when the fetched JWKS document contains
	// no key matching the requested kid.
	ErrKeyNotFound = errors.New("no JWK found for kid")

	// ErrMalformedKey is returned when the matching JWK carries no usable
	// certificate material.
	ErrMalformedKey = errors.New("JWK has no certificate material")
)

// retrievalError wraps a fetch failure with the concrete error
// ErrKeyRetrieval. Not exposed publicly; Is and Unwrap give callers all
// they need.
type retrievalError struct {
	cause error
}

func (e *retrievalError) Error() string {
	return fmt.Sprintf("%s: %s", ErrKeyRetrieval, e.cause)
}

func (e *retrievalError) Is(target error) bool {
	return target == ErrKeyRetrieval
}

func (e *retrievalError) Unwrap() error {
	return e.cause
}

// notFoundError wraps ErrKeyNotFound with the offending kid.
type notFoundError struct {
	kid string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrKeyNotFound, e.kid)
}

func (e *notFoundError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// malformedKeyError wraps ErrMalformedKey with the offending kid and,
// when certificate decoding failed, the underlying cause.
type malformedKeyError struct {
	kid   string
	cause error
}

func (e *malformedKeyError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %q: %s", ErrMalformedKey, e.kid, e.cause)
	}
	return fmt.Sprintf("%s: %q", ErrMalformedKey, e.kid)
}

func (e *malformedKeyError) Is(target error) bool {
	return target == ErrMalformedKey
}

func (e *malformedKeyError) Unwrap() error {
	return e.cause
}
