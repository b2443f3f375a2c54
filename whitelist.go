package auth0strategy

import "github.com/hookauth/go-auth0-strategy/service"

// DefaultWhitelist is the identity provider's published webhook egress
// addresses. Overriding the whitelist fully replaces this list.
var DefaultWhitelist = []string{
	"138.91.154.99",
	"54.183.64.135",
	"54.67.77.38",
	"54.67.15.170",
	"54.183.204.205",
	"54.173.21.107",
	"54.85.173.28",
	"35.167.74.121",
	"35.160.3.103",
	"35.166.202.113",
	"52.14.40.253",
	"52.14.38.78",
	"52.14.17.114",
	"52.71.209.77",
	"34.195.142.251",
	"52.200.94.42",
}

// IPExtractor reads the originating address from a call context. The
// default reads Params.IP, which upstream transport middleware populates.
type IPExtractor func(c service.Context) string

// IPWhitelist verifies that a call genuinely originated from one of the
// identity provider's published addresses. Used to gate webhook-style
// endpoints such as key ingestion. Matching is exact, not CIDR.
type IPWhitelist struct {
	allowed map[string]struct{}
	extract IPExtractor
}

// WhitelistOption configures an IPWhitelist.
type WhitelistOption func(*IPWhitelist)

// WithWhitelist replaces the default address list. The override is total;
// the default list is not merged in.
func WithWhitelist(ips []string) WhitelistOption {
	return func(w *IPWhitelist) {
		w.allowed = make(map[string]struct{}, len(ips))
		for _, ip := range ips {
			w.allowed[ip] = struct{}{}
		}
	}
}

// WithIPExtractor replaces how the originating address is read from the
// call context.
func WithIPExtractor(fn IPExtractor) WhitelistOption {
	return func(w *IPWhitelist) {
		if fn != nil {
			w.extract = fn
		}
	}
}

// NewIPWhitelist builds a whitelist with the built-in provider addresses,
// unless overridden.
func NewIPWhitelist(opts ...WhitelistOption) *IPWhitelist {
	w := &IPWhitelist{
		extract: func(c service.Context) string { return c.Params.IP },
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.allowed == nil {
		w.allowed = make(map[string]struct{}, len(DefaultWhitelist))
		for _, ip := range DefaultWhitelist {
			w.allowed[ip] = struct{}{}
		}
	}

	return w
}

// FromProvider reports whether the call originated from a whitelisted
// address. It never fails; an unreadable or absent address is simply not
// whitelisted, and the access decision stays with the caller.
func (w *IPWhitelist) FromProvider(c service.Context) bool {
	ip := w.extract(c)
	if ip == "" {
		return false
	}
	_, ok := w.allowed[ip]
	return ok
}
