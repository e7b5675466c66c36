package storage

import (
	"context"
	"io"
)

// ArtifactStore persists step artifacts (raw channel responses,
// screenshots captured by device or browser backends) outside the
// task database.
type ArtifactStore interface {
	// Upload stores an artifact under key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// URL returns the externally reachable URL for a stored artifact.
	URL(key string) string

	// EnsureBucket creates the backing bucket when it does not exist.
	EnsureBucket(ctx context.Context) error
}
