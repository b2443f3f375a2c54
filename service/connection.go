package service

import "sync"

// Connection is the per-connection state bag of a persistent transport
// (for example a websocket). The authentication hooks store the verified
// authentication result on it at login and clear it at logout, so calls
// arriving on the same connection are recognized as already authenticated.
// Safe for concurrent use.
type Connection struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConnection returns an empty connection state bag.
func NewConnection() *Connection {
	return &Connection{values: make(map[string]any)}
}

// Get returns the value stored under key, if any.
func (c *Connection) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

// Set stores value under key.
func (c *Connection) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Delete removes the value stored under key.
func (c *Connection) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
}
