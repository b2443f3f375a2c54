package auth0strategy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// EntityDisabled is the sentinel value for Config.Entity that skips entity
// resolution entirely: authentication then succeeds without a local user
// record.
const EntityDisabled = "none"

// Defaults applied by Config.validate.
const (
	defaultEntity      = "user"
	defaultEntityID    = "id"
	defaultHeader      = "Authorization"
	defaultKeysService = "auth0-keys"
)

var (
	defaultSchemes    = []string{"Bearer", "JWT"}
	defaultAlgorithms = []string{"RS256"}
)

// JWTOptions is the token verification policy.
type JWTOptions struct {
	// Algorithms are the accepted signing algorithms. Default: RS256.
	Algorithms []string `mapstructure:"algorithms"`

	// Audience lists the accepted audiences. A token passes when its aud
	// claim intersects this list. Empty means audience is not checked.
	Audience []string `mapstructure:"audience"`

	// Issuer is the expected iss claim. Default: "https://{domain}/".
	Issuer string `mapstructure:"issuer"`

	// IgnoreExpiration disables the exp check.
	IgnoreExpiration bool `mapstructure:"ignoreExpiration"`
}

// Config is the strategy configuration as supplied by the host application.
type Config struct {
	// Domain is the identity provider tenant domain,
	// for example "my-tenant.auth0.com". Required.
	Domain string `mapstructure:"domain"`

	// JWKSURI is the signing-key endpoint. Derived from Domain when
	// unset: "https://{domain}/.well-known/jwks.json".
	JWKSURI string `mapstructure:"jwksUri"`

	// Entity names the authenticated principal on the result, default
	// "user". Set to EntityDisabled to skip entity resolution.
	Entity string `mapstructure:"entity"`

	// EntityID is the entity field matched against the token subject.
	// Default "id".
	EntityID string `mapstructure:"entityId"`

	// Service names the data service holding entity records. Required
	// whenever entity resolution is enabled.
	Service string `mapstructure:"service"`

	// KeysService names the data service persisting resolved signing
	// keys. Default "auth0-keys"; persistence is skipped when the service
	// is not registered.
	KeysService string `mapstructure:"keysService"`

	// Create makes entity resolution create a missing entity instead of
	// failing. Default false.
	Create bool `mapstructure:"create"`

	// Header is the transport header carrying the bearer credential.
	// Default "Authorization".
	Header string `mapstructure:"header"`

	// Schemes are the accepted authorization schemes.
	// Default ["Bearer", "JWT"].
	Schemes []string `mapstructure:"schemes"`

	// JWTOptions is the token verification policy.
	JWTOptions JWTOptions `mapstructure:"jwtOptions"`

	// Whitelist overrides the provider addresses accepted by IPWhitelist.
	// An override fully replaces the built-in list.
	Whitelist []string `mapstructure:"whitelist"`
}

// ParseConfig decodes the raw configuration map the host application holds
// under the provider's namespace. Unknown keys are rejected by name so
// misspelled options fail at startup instead of being silently ignored.
func ParseConfig(raw map[string]any) (Config, error) {
	var (
		cfg Config
		md  mapstructure.Metadata
	)

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:   &cfg,
		Metadata: &md,
	})
	if err != nil {
		return Config{}, fmt.Errorf("building config decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, &configurationError{option: "auth0", reason: fmt.Sprintf("could not be decoded: %s", err)}
	}

	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		return Config{}, &configurationError{
			option: md.Unused[0],
			reason: fmt.Sprintf("is not a recognized option (unknown keys: %s)", strings.Join(md.Unused, ", ")),
		}
	}

	return cfg, nil
}

// validate applies defaults, derives the JWKS endpoint and issuer from the
// domain, and checks the invariants the strategy relies on.
func (c *Config) validate() error {
	if c.Domain == "" {
		return &configurationError{option: "domain", reason: "is required"}
	}

	domain := strings.TrimSuffix(c.Domain, "/")
	if c.JWKSURI == "" {
		c.JWKSURI = fmt.Sprintf("https://%s/.well-known/jwks.json", domain)
	}
	if c.JWTOptions.Issuer == "" {
		c.JWTOptions.Issuer = fmt.Sprintf("https://%s/", domain)
	}
	if len(c.JWTOptions.Algorithms) == 0 {
		c.JWTOptions.Algorithms = defaultAlgorithms
	}

	if c.Entity == "" {
		c.Entity = defaultEntity
	}
	if c.EntityID == "" {
		c.EntityID = defaultEntityID
	}
	if c.KeysService == "" {
		c.KeysService = defaultKeysService
	}
	if c.Entity != EntityDisabled && c.Service == "" {
		return &configurationError{option: "service", reason: "is required when an entity is configured"}
	}

	if c.Header == "" {
		c.Header = defaultHeader
	}
	if len(c.Schemes) == 0 {
		c.Schemes = defaultSchemes
	}

	return nil
}
