package auth0strategy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hookauth/go-auth0-strategy/service"
)

// errNoAccessToken distinguishes "no credential supplied" from a credential
// that was supplied but malformed.
var errNoAccessToken = errors.New("no access token")

// ParseCredentials extracts the bearer credential the strategy would
// authenticate from the call params: transport-parsed credentials when the
// transport already split them out, otherwise the configured header.
//
// A missing credential and a malformed one fail differently: missing wraps
// errNoAccessToken, malformed wraps ErrMalformedToken. Both satisfy
// errors.Is(err, ErrNotAuthenticated).
func (s *Strategy) ParseCredentials(p service.Params) (Credentials, error) {
	if p.Credentials != nil {
		token, _ := p.Credentials["accessToken"].(string)
		if token == "" {
			return Credentials{}, notAuthenticated(errNoAccessToken)
		}
		name, _ := p.Credentials["strategy"].(string)
		if name == "" {
			name = s.name
		}
		return Credentials{Strategy: name, AccessToken: token}, nil
	}

	header := p.Headers[s.config.Header]
	if header == "" {
		return Credentials{}, notAuthenticated(errNoAccessToken)
	}

	token, err := tokenFromHeader(header, s.config.Schemes)
	if err != nil {
		return Credentials{}, notAuthenticated(&malformedTokenError{cause: err})
	}

	return Credentials{Strategy: s.name, AccessToken: token}, nil
}

// tokenFromHeader splits a header value into scheme and token. A bare token
// without a scheme is accepted; a two-part value must use one of the
// accepted schemes.
func tokenFromHeader(header string, schemes []string) (string, error) {
	parts := strings.Fields(header)
	switch len(parts) {
	case 1:
		return parts[0], nil
	case 2:
		for _, scheme := range schemes {
			if strings.EqualFold(parts[0], scheme) {
				return parts[1], nil
			}
		}
		return "", fmt.Errorf("unsupported authorization scheme %q", parts[0])
	default:
		return "", fmt.Errorf("header format must be {scheme} {token}")
	}
}
