package service

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrServiceNotFound is returned by a Registry when no service is
	// registered under the requested name.
	ErrServiceNotFound = errors.New("service not found")

	// ErrRecordNotFound is returned by a Service when no record matches
	// the requested id.
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordExists is returned by a Service when a create collides
	// with an existing record id.
	ErrRecordExists = errors.New("record already exists")
)

// Record is a single data-service record. Services own their records;
// callers receive copies and mutations must go through Update or Patch.
type Record = map[string]any

// Params carries the per-call parameters a transport attaches to a service
// call. The zero value describes a trusted internal call.
type Params struct {
	// Provider names the external transport the call arrived on, for
	// example "rest" or "socketio". Empty means the call originated
	// inside the application and is trusted.
	Provider string

	// Headers holds the transport-level headers of the call.
	Headers map[string]string

	// Query holds field-equality constraints for Find.
	Query map[string]any

	// IP is the originating address as determined by upstream middleware.
	IP string

	// Connection is the persistent transport connection the call arrived
	// on, if any.
	Connection *Connection

	// Credentials holds transport-parsed authentication credentials,
	// for example {"strategy": "auth0", "accessToken": "..."}.
	Credentials map[string]any

	// Authentication carries the verified authentication result once a
	// call has passed the authenticate hook.
	Authentication any

	// Authenticated reports whether Authentication holds a verified
	// result.
	Authenticated bool
}

// Service is the generic data-service contract consumed by the strategy:
// field-equality queries via Params.Query and creates with a plain record
// payload.
type Service interface {
	Find(ctx context.Context, params Params) ([]Record, error)
	Get(ctx context.Context, id string, params Params) (Record, error)
	Create(ctx context.Context, data Record, params Params) (Record, error)
	Update(ctx context.Context, id string, data Record, params Params) (Record, error)
	Patch(ctx context.Context, id string, data Record, params Params) (Record, error)
	Remove(ctx context.Context, id string, params Params) (Record, error)
}

// Registry resolves named services. The host application implements this;
// App is the in-process implementation.
type Registry interface {
	Service(name string) (Service, error)
}

// Emitter publishes named events on the application bus.
type Emitter interface {
	Emit(event string, args ...any)
}

// notFoundError wraps ErrServiceNotFound with the offending service name.
type notFoundError struct {
	name string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrServiceNotFound, e.name)
}

func (e *notFoundError) Is(target error) bool {
	return target == ErrServiceNotFound
}
