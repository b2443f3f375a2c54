// Package service defines the contract between the authentication strategy
// and its host application: named data services with a generic CRUD surface,
// an immutable call context threaded through lifecycle hooks, per-connection
// state for persistent transports, and a process-wide event bus.
//
// The package also ships MemoryService, a map-backed Service implementation
// used as the backing store for persisted signing keys and user entities in
// tests and small deployments.
package service
