// Package jwks resolves JWT key ids against an identity provider's
// published JSON Web Key Set.
//
// The KeyCache maps a token's kid to the PEM encoding of the first
// certificate in the matching key's x5c chain. Resolved keys are held in an
// in-memory cache and optionally persisted to a backing data service, so a
// given kid costs at most one network fetch per process lifetime. Keys are
// never invalidated automatically; rotating a stale key requires operator
// action.
//
// The network transport is an injected Fetcher capability, so tests and
// alternative deployments supply their own by composition:
//
//	cache, err := jwks.NewKeyCache(
//	    jwks.WithFetcher(jwks.NewHTTPFetcher("https://tenant.auth0.com/.well-known/jwks.json", nil)),
//	    jwks.WithStore(keysService),
//	)
package jwks
