package jwks

import (
	"context"
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// Fetcher retrieves the identity provider's JWKS document. Implementations
// must be safe for concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context) (jwk.Set, error)
}

// HTTPFetcher fetches a JWKS document over HTTP from a fixed endpoint URI.
type HTTPFetcher struct {
	uri    string
	client *http.Client
}

// NewHTTPFetcher returns an HTTPFetcher for the given JWKS endpoint URI.
// A nil client gets a default with a 30 second timeout; the timeout bounds
// every fetch, and an elapsed timeout surfaces as ErrKeyRetrieval.
func NewHTTPFetcher(uri string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPFetcher{uri: uri, client: client}
}

// Fetch retrieves and parses the JWKS document. Network failures,
// non-success status codes and unparseable bodies all surface as
// ErrKeyRetrieval carrying the underlying cause.
func (f *HTTPFetcher) Fetch(ctx context.Context) (jwk.Set, error) {
	set, err := jwk.Fetch(ctx, f.uri, jwk.WithHTTPClient(f.client))
	if err != nil {
		return nil, &retrievalError{cause: err}
	}
	return set, nil
}
