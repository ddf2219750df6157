// Package metadata is the client's durable key/value store. The session store
// keeps the signed-in user and token here so they survive restarts.
package metadata

import (
	"context"
)

// Repository is a small key/value table. Get returns (nil, nil) for a missing
// key; Delete ignores missing keys.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
