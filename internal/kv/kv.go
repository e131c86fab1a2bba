// Package kv provides the key-value store the app persists its state
// in: the exercise-log collection, the playlist, and the reminder
// timestamp each live under one fixed key.
package kv

import "errors"

// ErrNotFound is returned by Get for an absent key. Callers treat it
// as "default empty value", never as a failure.
var ErrNotFound = errors.New("kv: key not found")

// Store is a minimal key-value store. Put must be durable before it
// returns; no partial-write state is ever visible to readers.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}
