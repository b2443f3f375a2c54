/*
Package auth0strategy authenticates service calls against JWTs issued by an
Auth0 tenant.

The strategy verifies a bearer token's signature against the tenant's
published JWKS signing keys, checks issuer, audience and expiry policy, maps
the verified subject onto a local user entity, and plugs into a hook-driven
service layer so individual service methods are gated on a verified
identity.

# Quick Start

	import (
	    auth0 "github.com/hookauth/go-auth0-strategy"
	    "github.com/hookauth/go-auth0-strategy/service"
	)

	func main() {
	    app := service.NewApp()
	    app.Use("users", service.NewMemoryService("user_id"))
	    app.Use("auth0-keys", service.NewMemoryService("kid"))

	    strategy, err := auth0.New(auth0.Config{
	        Domain:   "your-tenant.auth0.com",
	        Service:  "users",
	        EntityID: "user_id",
	        Create:   true,
	        JWTOptions: auth0.JWTOptions{
	            Audience: []string{"https://your-api.example.com"},
	        },
	    })
	    if err != nil {
	        log.Fatal(err)
	    }

	    auth := auth0.NewAuthService(app, "authentication")
	    if err := auth.Register("auth0", strategy); err != nil {
	        log.Fatal(err) // configuration errors abort startup
	    }

	    // Gate a service's methods behind authentication.
	    protect := auth0.NewAuthenticateHook(auth, "auth0")
	    ...
	}

# Components

  - Config / ParseConfig: the provider configuration, decoded from the host
    application's raw config map with unknown keys rejected.
  - Strategy: VerifyConfiguration and Authenticate, composing key
    resolution (package jwks), token verification and entity resolution.
  - AuthService: the named-strategy registry bound to the authentication
    service path.
  - NewAuthenticateHook: the before hook gating service methods.
  - NewConnectionHook / NewEventsHook: per-connection login state and
    login/logout events for persistent transports.
  - IPWhitelist: a predicate verifying a call originated from the identity
    provider's published addresses.

# Errors

All failures surfaced by Authenticate satisfy errors.Is(err,
ErrNotAuthenticated). The precise cause stays reachable through the wrap
chain (ErrVerification, ErrMalformedToken, jwks.ErrKeyNotFound, ...) and as
a machine-readable discriminant via ErrorCode, so callers never parse
message strings.
*/
package auth0strategy
