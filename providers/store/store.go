package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no data is stored under the key.
var ErrNotFound = errors.New("store: key not found")

// Store persists opaque payloads by key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
