package service

import "sync"

// Listener receives the arguments of an emitted event.
type Listener func(args ...any)

// App is the in-process host application: a registry of named services and
// a process-wide event bus. Safe for concurrent use.
type App struct {
	mu        sync.RWMutex
	services  map[string]Service
	listeners map[string][]Listener
}

// NewApp returns an empty application.
func NewApp() *App {
	return &App{
		services:  make(map[string]Service),
		listeners: make(map[string][]Listener),
	}
}

// Use registers a service under the given name, replacing any previous
// registration.
func (a *App) Use(name string, svc Service) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.services[name] = svc
}

// Service resolves a registered service by name.
func (a *App) Service(name string) (Service, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	svc, ok := a.services[name]
	if !ok {
		return nil, &notFoundError{name: name}
	}
	return svc, nil
}

// On subscribes a listener to a named event.
func (a *App) On(event string, l Listener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners[event] = append(a.listeners[event], l)
}

// Emit dispatches an event to all subscribed listeners, synchronously and
// in subscription order.
func (a *App) Emit(event string, args ...any) {
	a.mu.RLock()
	listeners := make([]Listener, len(a.listeners[event]))
	copy(listeners, a.listeners[event])
	a.mu.RUnlock()

	for _, l := range listeners {
		l(args...)
	}
}
