package auth0strategy

import (
	"context"

	"github.com/hookauth/go-auth0-strategy/service"
)

// ConnectionAuthenticationKey is where the connection hooks store the
// authentication result on a persistent connection.
const ConnectionAuthenticationKey = "authentication"

// NewAuthenticateHook returns the before hook that gates service methods
// behind the authentication service. The allowed strategy names restrict
// which registered strategies may satisfy the call; with none given, every
// registered strategy is allowed.
//
// Per invocation the hook runs a fixed sequence of gates:
//
//  1. must run in the before phase, anything else is programmer misuse
//  2. must not be installed on the authentication service's own routes,
//     which would recurse
//  3. internal calls (no transport provider) pass through, they are trusted
//  4. calls already carrying a verified result pass through unchanged, as
//     do calls on a connection that authenticated earlier
//  5. otherwise the bearer credential is extracted and delegated to the
//     strategy; success annotates the returned context, failure propagates
//     the strategy's error unchanged
func NewAuthenticateHook(auth *AuthService, strategies ...string) service.Hook {
	return func(ctx context.Context, c service.Context) (service.Context, error) {
		if c.Type != service.Before {
			return c, &hookUsageError{reason: "the authenticate hook must be used as a before hook"}
		}
		if c.Service == auth.Path() {
			return c, &hookUsageError{reason: "the authenticate hook must not be used on the authentication service itself"}
		}

		p := c.Params
		if p.Provider == "" {
			return c, nil
		}
		if p.Authenticated {
			return c, nil
		}

		// A connection that logged in earlier is already authenticated.
		if p.Connection != nil {
			if result, ok := p.Connection.Get(ConnectionAuthenticationKey); ok {
				p.Authentication = result
				p.Authenticated = true
				return c.WithParams(p), nil
			}
		}

		allowed := strategies
		if len(allowed) == 0 {
			allowed = auth.StrategyNames()
		}

		creds, err := extractCredentials(auth, allowed, p)
		if err != nil {
			return c, err
		}

		result, err := auth.AuthenticateWith(ctx, creds, p, allowed...)
		if err != nil {
			return c, err
		}

		p.Authentication = result
		p.Authenticated = true
		return c.WithParams(p), nil
	}
}

// extractCredentials asks each allowed strategy to parse the call params,
// returning the first credential found. With no credential anywhere the
// first strategy's error is reported.
func extractCredentials(auth *AuthService, allowed []string, p service.Params) (Credentials, error) {
	if len(allowed) == 0 {
		return Credentials{}, notAuthenticated(errNoAccessToken)
	}

	var firstErr error
	for _, name := range allowed {
		strategy, ok := auth.Strategy(name)
		if !ok {
			continue
		}
		creds, err := strategy.ParseCredentials(p)
		if err == nil {
			return creds, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	if firstErr == nil {
		firstErr = notAuthenticated(errNoAccessToken)
	}
	return Credentials{}, firstErr
}
