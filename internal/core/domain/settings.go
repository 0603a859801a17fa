package domain

import (
	"fmt"
	"runtime"
)

// MatchingSettings controls how files are paired across two trees.
type MatchingSettings struct {
	// Threshold is the minimum fuzzy similarity, in [0,1].
	Threshold float64

	// MaxFiles caps the number of discovered files. 0 means unlimited.
	MaxFiles int
}

// DiscoverySettings controls which files are considered documents.
type DiscoverySettings struct {
	// Extensions are lower-case extensions with a leading dot.
	Extensions []string

	// Include, when non-empty, keeps only relative paths matching a glob.
	Include []string

	// Exclude drops relative paths matching any glob.
	Exclude []string

	// SkipHidden skips dot-files and dot-directories.
	SkipHidden bool
}

// ParsingSettings controls the document parser.
type ParsingSettings struct {
	// MaxIssues caps the issue messages kept in diagnostics.
	MaxIssues int

	// CacheSize is the number of parsed documents kept in memory.
	CacheSize int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Matching  MatchingSettings
	Discovery DiscoverySettings
	Parsing   ParsingSettings

	// Workers is the size of the parse/compare worker pool.
	Workers int
}

// Default values.
const (
	DefaultMaxFiles  = 1000
	DefaultCacheSize = 64
	DefaultWorkers   = 4
)

// DefaultExtensions returns the recognised document and archive extensions.
func DefaultExtensions() []string {
	return []string{".reqif", ".reqifz"}
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	workers := DefaultWorkers
	if n := runtime.NumCPU(); n < workers {
		workers = n
	}
	return AppSettings{
		Matching: MatchingSettings{
			Threshold: DefaultMatchThreshold,
			MaxFiles:  DefaultMaxFiles,
		},
		Discovery: DiscoverySettings{
			Extensions: DefaultExtensions(),
			SkipHidden: true,
		},
		Parsing: ParsingSettings{
			MaxIssues: DefaultMaxIssues,
			CacheSize: DefaultCacheSize,
		},
		Workers: workers,
	}
}

// Validate checks settings ranges.
func (s AppSettings) Validate() error {
	if s.Matching.Threshold < 0 || s.Matching.Threshold > 1 {
		return fmt.Errorf("%w: threshold %.2f outside [0,1]", ErrInvalidInput, s.Matching.Threshold)
	}
	if s.Matching.MaxFiles < 0 {
		return fmt.Errorf("%w: max_files must not be negative", ErrInvalidInput)
	}
	if s.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidInput)
	}
	if len(s.Discovery.Extensions) == 0 {
		return fmt.Errorf("%w: no discovery extensions", ErrInvalidInput)
	}
	if s.Parsing.MaxIssues < 0 || s.Parsing.CacheSize < 0 {
		return fmt.Errorf("%w: parsing limits must not be negative", ErrInvalidInput)
	}
	return nil
}
