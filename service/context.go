package service

import "context"

// CallType is the lifecycle phase a hook runs in.
type CallType string

const (
	Before CallType = "before"
	After  CallType = "after"
	Error  CallType = "error"
)

// Context is the call record threaded through lifecycle hooks. It is a
// value type: hooks receive a copy and return a (possibly modified) copy,
// so no two concurrent calls ever share mutable hook state. Hooks must not
// retain a Context beyond the call.
type Context struct {
	// Type is the lifecycle phase the hook chain runs in.
	Type CallType

	// Service is the name of the service the call targets.
	Service string

	// Method is the service method being dispatched, for example
	// "find" or "create".
	Method string

	// Params carries the per-call parameters.
	Params Params

	// Data is the payload of create, update and patch calls.
	Data Record

	// Result holds the method result in after hooks.
	Result any

	// Err holds the failure in error hooks.
	Err error
}

// WithParams returns a copy of the context with params replaced.
func (c Context) WithParams(p Params) Context {
	c.Params = p
	return c
}

// WithResult returns a copy of the context carrying a method result.
func (c Context) WithResult(result any) Context {
	c.Result = result
	return c
}

// WithType returns a copy of the context in the given lifecycle phase.
func (c Context) WithType(t CallType) Context {
	c.Type = t
	return c
}

// Hook is a lifecycle gate around a service call. A hook either returns the
// context to hand to the next hook, or an error that aborts the call.
type Hook func(ctx context.Context, c Context) (Context, error)

// Chain composes hooks into one, running them left to right and
// short-circuiting on the first error.
func Chain(hooks ...Hook) Hook {
	return func(ctx context.Context, c Context) (Context, error) {
		var err error
		for _, h := range hooks {
			c, err = h(ctx, c)
			if err != nil {
				return c, err
			}
		}
		return c, nil
	}
}
