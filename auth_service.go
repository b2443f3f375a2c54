package auth0strategy

import (
	"context"
	"fmt"
	"sync"

	"github.com/hookauth/go-auth0-strategy/service"
)

// AuthService is the authentication service: a registry of named strategies
// bound to a service path. The authenticate hook consults it to dispatch
// credentials and to guard against being installed on the authentication
// service itself.
type AuthService struct {
	app  *service.App
	path string

	mu         sync.RWMutex
	strategies map[string]*Strategy
	order      []string
}

// NewAuthService binds an authentication service to the given path on the
// host application.
func NewAuthService(app *service.App, path string) *AuthService {
	return &AuthService{
		app:        app,
		path:       path,
		strategies: make(map[string]*Strategy),
	}
}

// Path returns the service path the authentication service is bound to.
func (a *AuthService) Path() string { return a.path }

// App returns the host application.
func (a *AuthService) App() *service.App { return a.app }

// Register wires a strategy into the service under the given name and
// verifies its configuration. A configuration failure is returned untouched
// so it aborts application startup.
func (a *AuthService) Register(name string, s *Strategy) error {
	s.SetName(name)
	s.SetApplication(a.app)
	s.SetAuthentication(a)

	if err := s.VerifyConfiguration(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.strategies[name]; !exists {
		a.order = append(a.order, name)
	}
	a.strategies[name] = s
	return nil
}

// Strategy returns the strategy registered under name.
func (a *AuthService) Strategy(name string) (*Strategy, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	s, ok := a.strategies[name]
	return s, ok
}

// StrategyNames returns the registered strategy names in registration
// order.
func (a *AuthService) StrategyNames() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, len(a.order))
	copy(names, a.order)
	return names
}

// AuthenticateWith dispatches the credentials to the named strategy. When
// allowed is non-empty the credential's strategy must be in the list.
func (a *AuthService) AuthenticateWith(ctx context.Context, creds Credentials, params service.Params, allowed ...string) (*Result, error) {
	name := creds.Strategy
	if name == "" && len(allowed) > 0 {
		name = allowed[0]
	}
	if name == "" {
		return nil, notAuthenticated(fmt.Errorf("no authentication strategy specified"))
	}
	if len(allowed) > 0 && !contains(allowed, name) {
		return nil, notAuthenticated(fmt.Errorf("strategy %q is not allowed here", name))
	}

	strategy, ok := a.Strategy(name)
	if !ok {
		return nil, notAuthenticated(fmt.Errorf("strategy %q is not registered", name))
	}

	return strategy.Authenticate(ctx, creds, params)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
