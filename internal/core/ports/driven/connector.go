package driven

import (
	"context"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

// Connector discovers and reads requirement documents under one root.
type Connector interface {
	// Root returns the configured root directory.
	Root() string

	// Validate checks the root exists and is a readable directory.
	Validate(ctx context.Context) error

	// Discover recursively lists documents under the root, sorted by
	// relative path.
	Discover(ctx context.Context) ([]domain.FileEntry, error)

	// Watch listens for changes to documents under the root.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan domain.FileChange, error)

	// Close releases resources.
	Close() error
}

// ConnectorFactory creates a Connector for a root directory.
type ConnectorFactory func(root string) Connector

// DocumentReader loads the raw bytes of a single document.
type DocumentReader interface {
	// Read returns the file content with its detected MIME type.
	Read(ctx context.Context, path string) (*domain.RawDocument, error)
}
