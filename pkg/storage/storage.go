// Package storage persists uploaded files. It defines a System interface for
// keyed blob operations, a filesystem implementation, and SecureFilename for
// turning client supplied names into safe keys.
package storage

import (
	"context"
	"io"

	"github.com/JaimeStill/web-quickstart/pkg/lifecycle"
)

// System defines the storage operations for uploaded files.
type System interface {
	// Store streams r to the specified key and returns the number of bytes
	// written. Existing contents are replaced. Parent directories are created
	// as needed. Returns ErrInvalidKey if the key is empty or escapes the
	// storage root.
	Store(ctx context.Context, key string, r io.Reader) (int64, error)

	// Move renames src to dst, replacing any existing contents at dst.
	// Returns ErrNotFound if src does not exist.
	Move(ctx context.Context, src, dst string) error

	// Delete deletes the data at the specified key.
	// Returns nil if the key does not exist.
	Delete(ctx context.Context, key string) error

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}
