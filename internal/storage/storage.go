// Package storage defines the interface for object storage operations.
// Implementations are swapped by changing the concrete type injected at
// startup; the MinIO implementation works with any S3-compatible provider.
package storage

import (
	"context"
	"io"
	"time"
)

// ObjectStore is the interface for persisting and retrieving media objects.
type ObjectStore interface {
	// Put streams data to the store under the given key. Existing objects
	// under the same key are overwritten.
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, metadata map[string]string) error
	// Delete removes an object identified by key. Deleting a missing key
	// is not an error.
	Delete(ctx context.Context, key string) error
	// Exists probes whether an object is present under key.
	Exists(ctx context.Context, key string) bool
	// SignedURL produces a time-limited access URL for a private key.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
}
