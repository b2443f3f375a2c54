package auth0strategy

import (
	"errors"
	"fmt"

	"github.com/hookauth/go-auth0-strategy/jwks"
	"github.com/hookauth/go-auth0-strategy/service"
)

var (
	// ErrNotAuthenticated is the single category every failure out of
	// Authenticate and the authenticate hook normalizes to. The precise
	// cause stays reachable via errors.Is/errors.As and ErrorCode.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrConfiguration is returned for invalid strategy configuration.
	// Configuration errors are never normalized; they propagate to
	// application startup and should abort it.
	ErrConfiguration = errors.New("invalid auth0 configuration")

	// ErrMalformedToken is returned for absent or structurally invalid
	// access tokens.
	ErrMalformedToken = errors.New("malformed access token")

	// ErrVerification is returned when a structurally valid token fails
	// key resolution, signature or claims verification. The specific
	// reason is available via Unwrap.
	ErrVerification = errors.New("token could not be verified")

	// ErrEntityNotFound is returned when no local entity matches the
	// verified token subject and auto-creation is disabled.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrHookUsage reports programmer misuse of a hook: wrong lifecycle
	// phase or wrong service.
	ErrHookUsage = errors.New("authenticate hook misused")
)

// Code is the machine-readable discriminant carried by authentication
// failures. Callers inspect it (or use errors.Is against the sentinels)
// instead of parsing messages.
type Code string

const (
	CodeConfiguration   Code = "configuration"
	CodeMalformedToken  Code = "malformed-token"
	CodeKeyRetrieval    Code = "key-retrieval"
	CodeKeyNotFound     Code = "key-not-found"
	CodeMalformedKey    Code = "malformed-key"
	CodeVerification    Code = "verification"
	CodeEntityNotFound  Code = "entity-not-found"
	CodeServiceNotFound Code = "service-not-found"
	CodeHookUsage       Code = "hook-usage"
	CodeCredentials     Code = "credentials"
	CodeUnknown         Code = "unknown"
)

// ErrorCode classifies err into a Code. The most specific category wins:
// a verification failure caused by an unknown signing key reports
// CodeKeyNotFound, not CodeVerification.
func ErrorCode(err error) Code {
	switch {
	case errors.Is(err, jwks.ErrKeyRetrieval):
		return CodeKeyRetrieval
	case errors.Is(err, jwks.ErrKeyNotFound):
		return CodeKeyNotFound
	case errors.Is(err, jwks.ErrMalformedKey):
		return CodeMalformedKey
	case errors.Is(err, ErrMalformedToken):
		return CodeMalformedToken
	case errors.Is(err, ErrVerification):
		return CodeVerification
	case errors.Is(err, ErrEntityNotFound):
		return CodeEntityNotFound
	case errors.Is(err, service.ErrServiceNotFound):
		return CodeServiceNotFound
	case errors.Is(err, ErrConfiguration):
		return CodeConfiguration
	case errors.Is(err, ErrHookUsage):
		return CodeHookUsage
	case errors.Is(err, errNoAccessToken), errors.Is(err, ErrNotAuthenticated):
		return CodeCredentials
	default:
		return CodeUnknown
	}
}

// NotAuthenticatedError normalizes a failure at the strategy/hook boundary.
// It carries a stable top-level message, a Code discriminant and the
// underlying cause.
type NotAuthenticatedError struct {
	Code  Code
	cause error
}

func notAuthenticated(cause error) *NotAuthenticatedError {
	code := ErrorCode(cause)
	if code == CodeUnknown {
		// An unclassified cause is still a credential failure once it is
		// wrapped, matching what ErrorCode reports for the wrapped error.
		code = CodeCredentials
	}
	return &NotAuthenticatedError{Code: code, cause: cause}
}

func (e *NotAuthenticatedError) Error() string {
	if e.cause == nil {
		return ErrNotAuthenticated.Error()
	}
	return fmt.Sprintf("%s: %s", ErrNotAuthenticated, e.cause)
}

// Is allows the error to support equality to ErrNotAuthenticated.
func (e *NotAuthenticatedError) Is(target error) bool {
	return target == ErrNotAuthenticated
}

// Unwrap exposes the underlying cause so errors.Is reaches the specific
// category sentinels.
func (e *NotAuthenticatedError) Unwrap() error {
	return e.cause
}

// configurationError wraps ErrConfiguration naming the offending option.
type configurationError struct {
	option string
	reason string
}

func (e *configurationError) Error() string {
	return fmt.Sprintf("%s: option %q %s", ErrConfiguration, e.option, e.reason)
}

func (e *configurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// malformedTokenError wraps a bad-input failure with the concrete error
// ErrMalformedToken.
type malformedTokenError struct {
	cause error
}

func (e *malformedTokenError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedToken, e.cause)
}

func (e *malformedTokenError) Is(target error) bool {
	return target == ErrMalformedToken
}

func (e *malformedTokenError) Unwrap() error {
	return e.cause
}

// verificationError wraps a verification failure with the concrete error
// ErrVerification, keeping the specific reason reachable via Unwrap.
type verificationError struct {
	cause error
}

func (e *verificationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrVerification, e.cause)
}

func (e *verificationError) Is(target error) bool {
	return target == ErrVerification
}

func (e *verificationError) Unwrap() error {
	return e.cause
}

// entityNotFoundError wraps ErrEntityNotFound with the entity name and the
// subject that failed to resolve.
type entityNotFoundError struct {
	entity  string
	subject string
}

func (e *entityNotFoundError) Error() string {
	return fmt.Sprintf("%s: no %q for subject %q", ErrEntityNotFound, e.entity, e.subject)
}

func (e *entityNotFoundError) Is(target error) bool {
	return target == ErrEntityNotFound
}

// hookUsageError wraps ErrHookUsage with the misuse description.
type hookUsageError struct {
	reason string
}

func (e *hookUsageError) Error() string {
	return fmt.Sprintf("%s: %s", ErrHookUsage, e.reason)
}

func (e *hookUsageError) Is(target error) bool {
	return target == ErrHookUsage
}
