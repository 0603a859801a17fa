// Package domain defines the core business entities for reqdiff.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Requirement: A canonical requirement record with an open attribute map
//   - Diagnostics: What a single document parse found and what it skipped
//   - ComparisonResult: The partition of two requirement sets
//   - FileEntry / FileMatch: Discovered documents and their pairing across trees
//   - FolderComparisonResult: Aggregated outcome of a folder-level comparison
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
