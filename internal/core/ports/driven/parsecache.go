package driven

import (
	"time"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

// ParseKey identifies one version of a file on disk.
type ParseKey struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// ParsedDocument is a cached parse outcome.
type ParsedDocument struct {
	Requirements []domain.Requirement
	Diagnostics  *domain.Diagnostics
}

// ParseCache keeps recent parse results so unchanged files are not
// parsed twice.
type ParseCache interface {
	// Get returns the cached parse for key.
	Get(key ParseKey) (*ParsedDocument, bool)

	// Put stores a parse result.
	Put(key ParseKey, doc *ParsedDocument)

	// Len returns the number of cached entries.
	Len() int

	// Purge drops every entry.
	Purge()
}
