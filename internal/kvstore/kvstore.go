// Package kvstore provides the opaque durable key/value storage that backs
// client-side state such as the reminder list.
package kvstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when no value was ever stored under the key.
	ErrNotFound = errors.New("kvstore: key not found")
	// ErrCorrupt is returned by Get when the backing document cannot be decoded.
	ErrCorrupt = errors.New("kvstore: corrupt document")
)

// Store persists whole values under string keys. Put overwrites atomically.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
