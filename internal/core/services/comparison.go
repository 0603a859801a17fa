package services

import (
	"context"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driving"
)

// Ensure ComparisonService implements the interface.
var _ driving.ComparisonService = (*ComparisonService)(nil)

// ComparisonService compares two single documents.
type ComparisonService struct {
	documents driving.DocumentService
}

// NewComparisonService creates a new comparison service.
func NewComparisonService(documents driving.DocumentService) *ComparisonService {
	return &ComparisonService{documents: documents}
}

// CompareFiles parses before and after and compares their requirements.
func (s *ComparisonService) CompareFiles(ctx context.Context, before, after string) (*domain.ComparisonResult, error) {
	if s.documents == nil {
		return nil, domain.ErrNotImplemented
	}

	beforeReqs, _, err := s.documents.ParseDocument(ctx, before)
	if err != nil {
		return nil, err
	}
	afterReqs, _, err := s.documents.ParseDocument(ctx, after)
	if err != nil {
		return nil, err
	}
	return CompareRequirements(beforeReqs, afterReqs), nil
}
