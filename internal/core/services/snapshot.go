package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driven"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driving"
)

// Ensure SnapshotService implements the interface.
var _ driving.SnapshotService = (*SnapshotService)(nil)

// SnapshotService stores parsed requirement sets as flat tables.
type SnapshotService struct {
	store     driven.SnapshotStore
	documents driving.DocumentService
}

// NewSnapshotService creates a new snapshot service.
func NewSnapshotService(store driven.SnapshotStore, documents driving.DocumentService) *SnapshotService {
	return &SnapshotService{
		store:     store,
		documents: documents,
	}
}

// Save parses path and stores its requirements under name, replacing
// any snapshot of the same name.
func (s *SnapshotService) Save(ctx context.Context, name, path string) (*domain.Snapshot, error) {
	if s.store == nil || s.documents == nil {
		return nil, domain.ErrNotImplemented
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: snapshot name is required", domain.ErrInvalidInput)
	}

	reqs, _, err := s.documents.ParseDocument(ctx, path)
	if err != nil {
		return nil, err
	}

	snap := domain.Snapshot{
		Name:         name,
		Source:       path,
		CreatedAt:    time.Now(),
		Requirements: len(reqs),
	}
	if err := s.store.SaveSnapshot(ctx, snap, domain.Flatten(reqs)); err != nil {
		return nil, fmt.Errorf("save snapshot %s: %w", name, err)
	}
	return &snap, nil
}

// Load returns the requirements stored under name.
func (s *SnapshotService) Load(ctx context.Context, name string) ([]domain.Requirement, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	_, rows, err := s.store.LoadSnapshot(ctx, name)
	if err != nil {
		return nil, err
	}
	return domain.Unflatten(rows), nil
}

// List returns all stored snapshots.
func (s *SnapshotService) List(ctx context.Context) ([]domain.Snapshot, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.ListSnapshots(ctx)
}

// Delete removes a stored snapshot.
func (s *SnapshotService) Delete(ctx context.Context, name string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	return s.store.DeleteSnapshot(ctx, name)
}

// Diff compares two stored snapshots.
func (s *SnapshotService) Diff(ctx context.Context, before, after string) (*domain.ComparisonResult, error) {
	beforeReqs, err := s.Load(ctx, before)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", before, err)
	}
	afterReqs, err := s.Load(ctx, after)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", after, err)
	}
	return CompareRequirements(beforeReqs, afterReqs), nil
}
