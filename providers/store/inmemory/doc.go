// Package inmemory provides a concurrency-safe, map-backed implementation
// of the [store.Store] interface for keeping game saves in process memory.
// It is designed for tests and single-process use where persistence across
// restarts is not required.
package inmemory
