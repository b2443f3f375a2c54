package jwks

import (
	"context"
	"errors"
	"fmt"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/hookauth/go-auth0-strategy/service"
)

// KeyCache resolves a token's kid to a PEM-encoded public certificate.
//
// Resolution order: in-memory cache, then the optional persisted store,
// then a network fetch through the injected Fetcher. Concurrent cold-cache
// resolutions of the same kid are coalesced into a single fetch. Resolved
// keys never expire; see the package documentation.
type KeyCache struct {
	fetcher Fetcher
	store   service.Service
	memory  *gocache.Cache
	group   singleflight.Group
}

// NewKeyCache builds a KeyCache from the supplied options. A Fetcher is
// required.
func NewKeyCache(opts ...Option) (*KeyCache, error) {
	c := &KeyCache{
		memory: gocache.New(gocache.NoExpiration, 0),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if c.fetcher == nil {
		return nil, errors.New("fetcher is required (use WithFetcher)")
	}

	return c, nil
}

// ResolveKey returns the PEM-encoded certificate for kid.
//
// A cache or store hit costs no network call. On a miss the JWKS document
// is fetched once (concurrent callers for the same kid share the fetch),
// the matching key's first x5c certificate is converted to PEM, persisted
// to the store when one is configured, and cached.
func (c *KeyCache) ResolveKey(ctx context.Context, kid string) (string, error) {
	if kid == "" {
		return "", &notFoundError{kid: kid}
	}

	if pem, ok := c.memory.Get(kid); ok {
		return pem.(string), nil
	}

	if pem, ok := c.storeLookup(ctx, kid); ok {
		c.memory.Set(kid, pem, gocache.NoExpiration)
		return pem, nil
	}

	v, err, _ := c.group.Do(kid, func() (any, error) {
		// Re-check under the flight: a concurrent resolution may have
		// populated the cache between our miss and this call.
		if pem, ok := c.memory.Get(kid); ok {
			return pem.(string), nil
		}
		return c.resolve(ctx, kid)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *KeyCache) resolve(ctx context.Context, kid string) (string, error) {
	set, err := c.fetcher.Fetch(ctx)
	if err != nil {
		if !errors.Is(err, ErrKeyRetrieval) {
			err = &retrievalError{cause: err}
		}
		return "", err
	}

	key, ok := set.LookupKeyID(kid)
	if !ok {
		return "", &notFoundError{kid: kid}
	}

	pem, err := CertificatePEM(key)
	if err != nil {
		return "", err
	}

	c.persist(ctx, kid, pem)
	c.memory.Set(kid, pem, gocache.NoExpiration)
	return pem, nil
}

// storeLookup consults the persisted store for a previously resolved kid.
func (c *KeyCache) storeLookup(ctx context.Context, kid string) (string, bool) {
	if c.store == nil {
		return "", false
	}
	recs, err := c.store.Find(ctx, service.Params{Query: map[string]any{"kid": kid}})
	if err != nil || len(recs) == 0 {
		return "", false
	}
	pem, ok := recs[0]["pem"].(string)
	return pem, ok && pem != ""
}

// persist writes a resolved key to the store. Best effort: a store failure
// only costs a refetch on the next cold start.
func (c *KeyCache) persist(ctx context.Context, kid, pem string) {
	if c.store == nil {
		return
	}
	_, _ = c.store.Create(ctx, service.Record{"kid": kid, "pem": pem}, service.Params{})
}
