package driven

import (
	"context"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

// SnapshotStore persists named requirement sets in flat table form.
type SnapshotStore interface {
	// SaveSnapshot stores requirements under name, replacing any snapshot
	// with the same name.
	SaveSnapshot(ctx context.Context, snap domain.Snapshot, rows []domain.TableRow) error

	// LoadSnapshot returns the snapshot metadata and its rows.
	// Returns ErrNotFound if no snapshot has that name.
	LoadSnapshot(ctx context.Context, name string) (*domain.Snapshot, []domain.TableRow, error)

	// ListSnapshots returns all snapshots ordered by creation time.
	ListSnapshots(ctx context.Context) ([]domain.Snapshot, error)

	// DeleteSnapshot removes a snapshot.
	DeleteSnapshot(ctx context.Context, name string) error

	// Close releases the underlying database.
	Close() error
}
