package auth0strategy

import (
	"context"
	"crypto"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hookauth/go-auth0-strategy/jwks"
	"github.com/hookauth/go-auth0-strategy/service"
)

// Credentials is the bearer credential extracted from a call.
type Credentials struct {
	// Strategy names the authentication strategy the credential targets.
	Strategy string

	// AccessToken is the raw JWT.
	AccessToken string
}

// Authentication describes how a result was produced.
type Authentication struct {
	// Strategy is the name of the strategy that verified the token.
	Strategy string

	// Payload is the decoded token payload.
	Payload jwt.MapClaims
}

// Result is the outcome of a successful authentication. It lives for the
// duration of a single call and is never persisted.
type Result struct {
	// AccessToken is the exact token that was verified.
	AccessToken string

	// Authentication carries the strategy name and decoded payload.
	Authentication Authentication

	// Entity is the resolved local user record, nil when entity
	// resolution is disabled.
	Entity service.Record
}

// Strategy verifies Auth0-issued JWTs and resolves their subjects to local
// entities. Register it with an AuthService; registration wires the
// application, names the strategy and verifies its configuration.
type Strategy struct {
	name       string
	app        service.Registry
	auth       *AuthService
	config     Config
	keys       *jwks.KeyCache
	httpClient *http.Client
	logger     Logger
	tracer     Tracer
	clock      func() time.Time
}

// New builds a Strategy from the given configuration. The configuration is
// validated later by VerifyConfiguration, which the AuthService calls at
// registration.
func New(config Config, opts ...Option) (*Strategy, error) {
	s := &Strategy{
		name:   "auth0",
		config: config,
		logger: &noopLogger{},
		tracer: &NoopTracer{},
		clock:  time.Now,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return s, nil
}

// SetName sets the name the strategy is registered under.
func (s *Strategy) SetName(name string) { s.name = name }

// Name returns the registered strategy name.
func (s *Strategy) Name() string { return s.name }

// SetApplication attaches the host application's service registry.
func (s *Strategy) SetApplication(app service.Registry) { s.app = app }

// SetAuthentication attaches the owning authentication service.
func (s *Strategy) SetAuthentication(auth *AuthService) { s.auth = auth }

// Configuration returns the strategy configuration. Only meaningful after
// VerifyConfiguration has applied defaults.
func (s *Strategy) Configuration() Config { return s.config }

// KeyCache returns the signing-key cache, nil before VerifyConfiguration.
func (s *Strategy) KeyCache() *jwks.KeyCache { return s.keys }

// VerifyConfiguration validates the configuration, derives the JWKS
// endpoint from the domain and builds the signing-key cache. Failures are
// ErrConfiguration naming the offending option and should abort startup.
func (s *Strategy) VerifyConfiguration() error {
	if err := s.config.validate(); err != nil {
		return err
	}

	if s.keys == nil {
		opts := []jwks.Option{
			jwks.WithFetcher(jwks.NewHTTPFetcher(s.config.JWKSURI, s.httpClient)),
		}
		// Persist resolved keys when the backing service is registered.
		if s.app != nil {
			if store, err := s.app.Service(s.config.KeysService); err == nil {
				opts = append(opts, jwks.WithStore(store))
			}
		}

		keys, err := jwks.NewKeyCache(opts...)
		if err != nil {
			return &configurationError{option: "jwksUri", reason: err.Error()}
		}
		s.keys = keys
	}

	return nil
}

// Authenticate verifies the credential and resolves its subject to a local
// entity. Every failure is terminal for the call and satisfies
// errors.Is(err, ErrNotAuthenticated); the specific cause stays reachable
// through the wrap chain and via ErrorCode.
func (s *Strategy) Authenticate(ctx context.Context, creds Credentials, params service.Params) (*Result, error) {
	ctx, span := s.tracer.StartSpan(ctx, "auth0.authenticate")
	defer span.Finish()

	if creds.AccessToken == "" {
		return nil, notAuthenticated(&malformedTokenError{cause: errNoAccessToken})
	}

	payload, err := s.verify(ctx, creds.AccessToken)
	if err != nil {
		s.logger.Debugf("token verification failed: %v", err)
		span.SetTag("error", ErrorCode(err))
		return nil, notAuthenticated(err)
	}

	result := &Result{
		AccessToken: creds.AccessToken,
		Authentication: Authentication{
			Strategy: s.name,
			Payload:  payload,
		},
	}

	if s.config.Entity != EntityDisabled {
		sub, _ := payload.GetSubject()
		entity, err := s.resolveEntity(ctx, sub, params)
		if err != nil {
			s.logger.Debugf("entity resolution failed for subject %q: %v", sub, err)
			span.SetTag("error", ErrorCode(err))
			return nil, notAuthenticated(err)
		}
		result.Entity = entity
	}

	return result, nil
}

// verify parses the token, resolves its signing key and checks signature
// and claims against the configured policy.
func (s *Strategy) verify(ctx context.Context, token string) (jwt.MapClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods(s.config.JWTOptions.Algorithms),
		jwt.WithoutClaimsValidation(),
	)

	claims := jwt.MapClaims{}
	_, err := parser.ParseWithClaims(token, claims, s.keyfunc(ctx))
	if err != nil {
		switch {
		case errors.Is(err, ErrMalformedToken):
			// Missing kid, reported by our keyfunc.
			return nil, err
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, &malformedTokenError{cause: err}
		default:
			// Key resolution, algorithm and signature failures. The
			// jwks sentinels survive the wrap for ErrorCode.
			return nil, &verificationError{cause: err}
		}
	}

	if err := s.validateClaims(claims); err != nil {
		return nil, err
	}

	return claims, nil
}

// keyfunc resolves the token's kid through the key cache. Key lookup runs
// before any signature verification, so an unknown kid surfaces as
// jwks.ErrKeyNotFound rather than a signature failure.
func (s *Strategy) keyfunc(ctx context.Context) jwt.Keyfunc {
	return func(t *jwt.Token) (any, error) {
		kid, ok := t.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, &malformedTokenError{cause: errors.New("token header has no kid")}
		}

		pem, err := s.keys.ResolveKey(ctx, kid)
		if err != nil {
			return nil, err
		}

		return publicKeyFromPEM([]byte(pem), t.Method.Alg())
	}
}

// validateClaims checks issuer, audience and expiry in that order, each
// failure carrying the specific golang-jwt sentinel as its reason.
func (s *Strategy) validateClaims(claims jwt.MapClaims) error {
	issuer, _ := claims.GetIssuer()
	if issuer != s.config.JWTOptions.Issuer {
		return &verificationError{
			cause: fmt.Errorf("%w: %q, expected %q", jwt.ErrTokenInvalidIssuer, issuer, s.config.JWTOptions.Issuer),
		}
	}

	if len(s.config.JWTOptions.Audience) > 0 {
		audience, _ := claims.GetAudience()
		if !intersects(audience, s.config.JWTOptions.Audience) {
			return &verificationError{
				cause: fmt.Errorf("%w: %v, expected one of %v", jwt.ErrTokenInvalidAudience, []string(audience), s.config.JWTOptions.Audience),
			}
		}
	}

	if !s.config.JWTOptions.IgnoreExpiration {
		exp, err := claims.GetExpirationTime()
		if err != nil {
			return &verificationError{
				cause: fmt.Errorf("%w: invalid exp claim: %w", jwt.ErrTokenInvalidClaims, err),
			}
		}
		if exp != nil && s.clock().After(exp.Time) {
			return &verificationError{cause: jwt.ErrTokenExpired}
		}
	}

	return nil
}

// resolveEntity maps a verified subject to a local record, creating one
// when auto-creation is enabled. Creation is not transactional against the
// backing service, so a lost create race falls back to re-reading the
// record the winner created.
func (s *Strategy) resolveEntity(ctx context.Context, subject string, _ service.Params) (service.Record, error) {
	svc, err := s.app.Service(s.config.Service)
	if err != nil {
		return nil, fmt.Errorf("could not find the configured entity service: %w", err)
	}

	query := service.Params{Query: map[string]any{s.config.EntityID: subject}}
	recs, err := svc.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(recs) > 0 {
		return recs[0], nil
	}

	if !s.config.Create {
		return nil, &entityNotFoundError{entity: s.config.Entity, subject: subject}
	}

	created, err := svc.Create(ctx, service.Record{s.config.EntityID: subject}, service.Params{})
	if err != nil {
		if errors.Is(err, service.ErrRecordExists) {
			if recs, ferr := svc.Find(ctx, query); ferr == nil && len(recs) > 0 {
				return recs[0], nil
			}
		}
		return nil, err
	}

	s.logger.Infof("created %s for subject %q", s.config.Entity, subject)
	return created, nil
}

func intersects(got, want []string) bool {
	for _, w := range want {
		for _, g := range got {
			if g == w {
				return true
			}
		}
	}
	return false
}

// publicKeyFromPEM parses the cached certificate PEM into the key type the
// token's algorithm verifies with.
func publicKeyFromPEM(pem []byte, alg string) (crypto.PublicKey, error) {
	switch {
	case strings.HasPrefix(alg, "RS"), strings.HasPrefix(alg, "PS"):
		return jwt.ParseRSAPublicKeyFromPEM(pem)
	case strings.HasPrefix(alg, "ES"):
		return jwt.ParseECPublicKeyFromPEM(pem)
	case alg == "EdDSA":
		return jwt.ParseEdPublicKeyFromPEM(pem)
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}
}
