package driving

import (
	"context"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driven"
)

// ComparisonService compares two documents.
type ComparisonService interface {
	// CompareFiles parses both documents and compares their requirements.
	CompareFiles(ctx context.Context, before, after string) (*domain.ComparisonResult, error)
}

// FolderOptions tunes a single folder comparison run.
type FolderOptions struct {
	// Progress is called once per finished pair or unpaired file. May be nil.
	Progress driven.ProgressFunc

	// Pool runs parse and compare tasks. Nil runs them inline.
	Pool driven.WorkerPool

	// Threshold overrides the configured fuzzy match threshold when set.
	Threshold *float64
}

// FolderService compares two directory trees of documents.
type FolderService interface {
	// MatchFiles discovers and pairs documents without parsing them. A nil
	// threshold uses the configured one.
	MatchFiles(ctx context.Context, rootA, rootB string, threshold *float64) (*domain.FolderComparisonResult, error)

	// CompareFolders discovers, pairs, parses and compares documents.
	// When ctx is cancelled the partial result is returned with
	// Cancelled set, together with ctx.Err().
	CompareFolders(ctx context.Context, rootA, rootB string, opts FolderOptions) (*domain.FolderComparisonResult, error)
}
