package auth0strategy

import (
	"errors"
	"net/http"
	"time"

	"github.com/hookauth/go-auth0-strategy/jwks"
)

// Option configures the Strategy. Returns an error for invalid values.
type Option func(*Strategy) error

// Sentinel errors for option validation.
var (
	ErrLoggerNil   = errors.New("logger cannot be nil")
	ErrTracerNil   = errors.New("tracer cannot be nil")
	ErrKeyCacheNil = errors.New("key cache cannot be nil")
	ErrClockNil    = errors.New("clock cannot be nil")
)

// WithLogger sets the logger used throughout the authentication flow.
//
// Example:
//
//	strategy, err := auth0strategy.New(cfg,
//	    auth0strategy.WithLogger(auth0strategy.NewLogrusLogger(logrus.StandardLogger())),
//	)
func WithLogger(logger Logger) Option {
	return func(s *Strategy) error {
		if logger == nil {
			return ErrLoggerNil
		}
		s.logger = logger
		return nil
	}
}

// WithTracer sets the tracer used around authenticate and key resolution.
func WithTracer(tracer Tracer) Option {
	return func(s *Strategy) error {
		if tracer == nil {
			return ErrTracerNil
		}
		s.tracer = tracer
		return nil
	}
}

// WithKeyCache injects the signing-key cache, replacing the one
// VerifyConfiguration would build from the configuration. Tests use this to
// substitute a fresh cache per run.
func WithKeyCache(keys *jwks.KeyCache) Option {
	return func(s *Strategy) error {
		if keys == nil {
			return ErrKeyCacheNil
		}
		s.keys = keys
		return nil
	}
}

// WithHTTPClient sets the client used for JWKS fetches when the strategy
// builds its own key cache.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Strategy) error {
		if client == nil {
			return errors.New("http client cannot be nil")
		}
		s.httpClient = client
		return nil
	}
}

// WithClock overrides the time source used for expiry checks.
func WithClock(clock func() time.Time) Option {
	return func(s *Strategy) error {
		if clock == nil {
			return ErrClockNil
		}
		s.clock = clock
		return nil
	}
}
