package driving

import (
	"context"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

// DocumentService parses and validates single requirement documents.
type DocumentService interface {
	// ParseDocument parses a plain or archived document.
	// A *domain.ParseError is returned for file-level failures only.
	ParseDocument(ctx context.Context, path string) ([]domain.Requirement, *domain.Diagnostics, error)

	// Validate performs a quick structural check without a full parse.
	Validate(ctx context.Context, path string) (*domain.ValidationReport, error)
}
