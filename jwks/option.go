package jwks

import (
	"errors"

	gocache "github.com/patrickmn/go-cache"

	"github.com/hookauth/go-auth0-strategy/service"
)

// Option configures the KeyCache. Returns an error for invalid values.
type Option func(*KeyCache) error

// Sentinel errors for option validation.
var (
	ErrFetcherNil = errors.New("fetcher cannot be nil")
	ErrStoreNil   = errors.New("store cannot be nil")
)

// WithFetcher sets the JWKS transport (REQUIRED).
func WithFetcher(f Fetcher) Option {
	return func(c *KeyCache) error {
		if f == nil {
			return ErrFetcherNil
		}
		c.fetcher = f
		return nil
	}
}

// WithStore sets a backing data service that persists resolved keys as
// {kid, pem} records across restarts. Optional.
func WithStore(s service.Service) Option {
	return func(c *KeyCache) error {
		if s == nil {
			return ErrStoreNil
		}
		c.store = s
		return nil
	}
}

// WithMemoryCache replaces the in-memory cache, letting tests substitute a
// fresh cache per run.
func WithMemoryCache(cache *gocache.Cache) Option {
	return func(c *KeyCache) error {
		if cache == nil {
			return errors.New("memory cache cannot be nil")
		}
		c.memory = cache
		return nil
	}
}
