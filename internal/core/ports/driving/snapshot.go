package driving

import (
	"context"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

// SnapshotService stores parsed requirement sets and compares them later.
type SnapshotService interface {
	// Save parses path and stores its requirements under name.
	Save(ctx context.Context, name, path string) (*domain.Snapshot, error)

	// Load returns the requirements stored under name.
	Load(ctx context.Context, name string) ([]domain.Requirement, error)

	// List returns all stored snapshots.
	List(ctx context.Context) ([]domain.Snapshot, error)

	// Delete removes a stored snapshot.
	Delete(ctx context.Context, name string) error

	// Diff compares two stored snapshots.
	Diff(ctx context.Context, before, after string) (*domain.ComparisonResult, error)
}
