package domain

import "time"

// DefaultMatchThreshold is the minimum fuzzy similarity for pairing files.
const DefaultMatchThreshold = 0.6

// FileEntry is one discovered document under a comparison root.
type FileEntry struct {
	// FullPath is the absolute (or root-joined) path on disk.
	FullPath string `yaml:"full_path"`

	// RelativePath is the slash-separated path below the root.
	RelativePath string `yaml:"relative_path"`

	// ParentDir is the slash-separated directory part of RelativePath.
	ParentDir string `yaml:"parent_dir"`

	// Filename is the base name including extension.
	Filename string `yaml:"filename"`

	// Extension is the lower-case extension with leading dot.
	Extension string `yaml:"extension"`

	Size    int64     `yaml:"size"`
	ModTime time.Time `yaml:"mod_time"`
}

// MatchType is how two files were paired.
type MatchType string

// Match types.
const (
	MatchExact MatchType = "exact"
	MatchFuzzy MatchType = "fuzzy"
)

// FileMatch pairs a file from the first tree with one from the second.
type FileMatch struct {
	File1      FileEntry `yaml:"file1"`
	File2      FileEntry `yaml:"file2"`
	MatchType  MatchType `yaml:"match_type"`
	Similarity float64   `yaml:"similarity"`
}

// FileStatus classifies a file in a folder comparison.
type FileStatus string

// File statuses.
const (
	FileAdded     FileStatus = "added"
	FileDeleted   FileStatus = "deleted"
	FileChanged   FileStatus = "changed"
	FileUnchanged FileStatus = "unchanged"
	FileError     FileStatus = "error"
)

// FileSummary describes an added or deleted file and its requirement count.
type FileSummary struct {
	File         FileEntry `yaml:"file"`
	Requirements int       `yaml:"requirements"`

	// Err is set when the file could not be parsed for counting.
	Err string `yaml:"error,omitempty"`
}

// PairResult is the outcome of comparing one matched file pair.
type PairResult struct {
	Match  FileMatch         `yaml:"match"`
	Status FileStatus        `yaml:"status"`
	Result *ComparisonResult `yaml:"result,omitempty"`
	Err    *PairError        `yaml:"error,omitempty"`
}

// FolderStats holds file-level and requirement-level totals.
type FolderStats struct {
	FilesAdded     int `yaml:"files_added"`
	FilesDeleted   int `yaml:"files_deleted"`
	FilesChanged   int `yaml:"files_changed"`
	FilesUnchanged int `yaml:"files_unchanged"`
	FilesErrored   int `yaml:"files_errored"`
	ExactMatches   int `yaml:"exact_matches"`
	FuzzyMatches   int `yaml:"fuzzy_matches"`

	RequirementsBefore    int     `yaml:"requirements_before"`
	RequirementsAfter     int     `yaml:"requirements_after"`
	RequirementsAdded     int     `yaml:"requirements_added"`
	RequirementsDeleted   int     `yaml:"requirements_deleted"`
	RequirementsModified  int     `yaml:"requirements_modified"`
	RequirementsUnchanged int     `yaml:"requirements_unchanged"`
	ChangePercentage      float64 `yaml:"change_percentage"`
}

// FolderComparisonResult aggregates a folder-level comparison run.
type FolderComparisonResult struct {
	// RunID identifies this comparison run.
	RunID string `yaml:"run_id"`

	RootA      string    `yaml:"root_a"`
	RootB      string    `yaml:"root_b"`
	Threshold  float64   `yaml:"threshold"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`

	Matches []FileMatch   `yaml:"matches"`
	Pairs   []PairResult  `yaml:"pairs"`
	Added   []FileSummary `yaml:"added_files"`
	Deleted []FileSummary `yaml:"deleted_files"`
	Errors  []PairError   `yaml:"errors,omitempty"`
	Stats   FolderStats   `yaml:"stats"`

	// Cancelled is true when the run stopped before processing every pair.
	Cancelled bool `yaml:"cancelled,omitempty"`
}

// Duration returns how long the run took.
func (r *FolderComparisonResult) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
