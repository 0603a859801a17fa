package driven

import (
	"context"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

// Normaliser transforms raw documents into canonical requirements.
// Each normaliser handles specific MIME types.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Normalise parses a raw document into requirements and diagnostics.
	// Only file-level failures return an error; everything else is
	// recorded in the diagnostics.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)

	// Validate performs a quick structural check without a full parse.
	Validate(ctx context.Context, raw *domain.RawDocument) *domain.ValidationReport
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Requirements are the assembled requirement records in document order.
	Requirements []domain.Requirement

	// Diagnostics describes what was found and skipped.
	Diagnostics *domain.Diagnostics
}
