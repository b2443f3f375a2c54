package auth0strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hookauth/go-auth0-strategy/service"
)

func Test_AuthenticateHook(t *testing.T) {
	ctx := context.Background()

	t.Run("must run in the before phase", func(t *testing.T) {
		env := newTestEnv(t, nil)
		hook := NewAuthenticateHook(env.auth)

		_, err := hook(ctx, service.Context{Type: service.After, Service: "users", Method: "find"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrHookUsage)
		assert.Equal(t, CodeHookUsage, ErrorCode(err))
	})

	t.Run("must not guard the authentication service itself", func(t *testing.T) {
		env := newTestEnv(t, nil)
		hook := NewAuthenticateHook(env.auth)

		_, err := hook(ctx, service.Context{Type: service.Before, Service: "authentication", Method: "create"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrHookUsage)
	})

	t.Run("passes internal calls through", func(t *testing.T) {
		env := newTestEnv(t, nil)
		hook := NewAuthenticateHook(env.auth)

		c, err := hook(ctx, service.Context{Type: service.Before, Service: "users", Method: "find"})
		require.NoError(t, err)
		assert.False(t, c.Params.Authenticated, "internal calls are trusted, not authenticated")
	})

	t.Run("passes already-authenticated calls through", func(t *testing.T) {
		env := newTestEnv(t, nil)
		hook := NewAuthenticateHook(env.auth)

		in := service.Context{
			Type:    service.Before,
			Service: "users",
			Method:  "find",
			Params:  service.Params{Provider: "rest", Authenticated: true},
		}
		c, err := hook(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, in.Params, c.Params)
	})

	t.Run("is idempotent across hook chains", func(t *testing.T) {
		env := newTestEnv(t, nil)
		hook := NewAuthenticateHook(env.auth)
		token := env.mint(t, validClaims())

		c := service.Context{
			Type:    service.Before,
			Service: "users",
			Method:  "find",
			Params: service.Params{
				Provider: "rest",
				Headers:  map[string]string{"Authorization": "Bearer " + token},
			},
		}

		c, err := hook(ctx, c)
		require.NoError(t, err)
		first := c.Params.Authentication

		c, err = hook(ctx, c)
		require.NoError(t, err)
		assert.Same(t, first.(*Result), c.Params.Authentication.(*Result), "a second pass must not re-verify")
	})

	t.Run("reports a missing credential", func(t *testing.T) {
		env := newTestEnv(t, nil)
		hook := NewAuthenticateHook(env.auth)

		_, err := hook(ctx, service.Context{
			Type:    service.Before,
			Service: "users",
			Method:  "find",
			Params:  service.Params{Provider: "rest"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
		assert.Contains(t, err.Error(), "no access token")
	})

	t.Run("reports a malformed credential", func(t *testing.T) {
		env := newTestEnv(t, nil)
		hook := NewAuthenticateHook(env.auth)

		_, err := hook(ctx, service.Context{
			Type:    service.Before,
			Service: "users",
			Method:  "find",
			Params: service.Params{
				Provider: "rest",
				Headers:  map[string]string{"Authorization": "Basic dXNlcjpwYXNz"},
			},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("authenticates and annotates the context", func(t *testing.T) {
		env := newTestEnv(t, nil)
		hook := NewAuthenticateHook(env.auth, "auth0")
		token := env.mint(t, validClaims())

		in := service.Context{
			Type:    service.Before,
			Service: "users",
			Method:  "find",
			Params: service.Params{
				Provider: "rest",
				Headers:  map[string]string{"Authorization": "Bearer " + token},
			},
		}
		c, err := hook(ctx, in)
		require.NoError(t, err)

		assert.True(t, c.Params.Authenticated)
		result, ok := c.Params.Authentication.(*Result)
		require.True(t, ok)
		assert.Equal(t, token, result.AccessToken)
		assert.Equal(t, testSubject, result.Entity["user_id"])

		assert.False(t, in.Params.Authenticated, "the input context is not mutated")
	})

	t.Run("accepts transport-parsed credentials", func(t *testing.T) {
		env := newTestEnv(t, nil)
		hook := NewAuthenticateHook(env.auth)
		token := env.mint(t, validClaims())

		c, err := hook(ctx, service.Context{
			Type:    service.Before,
			Service: "users",
			Method:  "find",
			Params: service.Params{
				Provider:    "socketio",
				Credentials: map[string]any{"strategy": "auth0", "accessToken": token},
			},
		})
		require.NoError(t, err)
		assert.True(t, c.Params.Authenticated)
	})

	t.Run("short-circuits on an authenticated connection", func(t *testing.T) {
		env := newTestEnv(t, nil)
		hook := NewAuthenticateHook(env.auth)

		stored := &Result{AccessToken: "stored"}
		conn := service.NewConnection()
		conn.Set(ConnectionAuthenticationKey, stored)

		c, err := hook(ctx, service.Context{
			Type:    service.Before,
			Service: "users",
			Method:  "find",
			Params:  service.Params{Provider: "socketio", Connection: conn},
		})
		require.NoError(t, err)
		assert.True(t, c.Params.Authenticated)
		assert.Same(t, stored, c.Params.Authentication.(*Result))
	})

	t.Run("restricts the allowed strategies", func(t *testing.T) {
		env := newTestEnv(t, nil)
		hook := NewAuthenticateHook(env.auth, "local")
		token := env.mint(t, validClaims())

		_, err := hook(ctx, service.Context{
			Type:    service.Before,
			Service: "users",
			Method:  "find",
			Params: service.Params{
				Provider:    "rest",
				Credentials: map[string]any{"strategy": "auth0", "accessToken": token},
			},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})
}
