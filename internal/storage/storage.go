// Package storage defines the local key-value store used to persist user state
// such as bookmarks.
package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by backends used after Close
var ErrClosed = errors.New("storage backend closed")

// Backend is the interface all key-value implementations must satisfy.
// Values are opaque strings; backends that persist to a database require
// them to be JSON documents.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Get returns the value stored under key. found is false when the key
	// has never been set.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}
