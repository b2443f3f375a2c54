package auth0strategy

import (
	"context"

	"github.com/hookauth/go-auth0-strategy/service"
)

// NewConnectionHook returns the after hook that maintains per-connection
// authentication state for persistent transports. Installed on the
// authentication service: a successful create (login) stores the result on
// the connection so later calls on it short-circuit the authenticate hook;
// a remove (logout) clears it. Calls without a connection pass through
// untouched.
func NewConnectionHook() service.Hook {
	return func(_ context.Context, c service.Context) (service.Context, error) {
		if c.Type != service.After {
			return c, &hookUsageError{reason: "the connection hook must be used as an after hook"}
		}

		conn := c.Params.Connection
		if conn == nil {
			return c, nil
		}

		switch c.Method {
		case "create":
			conn.Set(ConnectionAuthenticationKey, c.Result)
		case "remove":
			conn.Delete(ConnectionAuthenticationKey)
		}

		return c, nil
	}
}

// NewEventsHook returns the after hook that publishes login and logout
// notifications on the application bus. A create emits "login" and a remove
// emits "logout", each with (result, params, context).
func NewEventsHook(emitter service.Emitter) service.Hook {
	return func(_ context.Context, c service.Context) (service.Context, error) {
		if c.Type != service.After {
			return c, &hookUsageError{reason: "the events hook must be used as an after hook"}
		}

		switch c.Method {
		case "create":
			emitter.Emit("login", c.Result, c.Params, c)
		case "remove":
			emitter.Emit("logout", c.Result, c.Params, c)
		}

		return c, nil
	}
}
