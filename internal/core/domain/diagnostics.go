package domain

import "fmt"

// DefaultMaxIssues is the issue cap used when none is configured.
const DefaultMaxIssues = 50

// Header holds best-effort metadata from the document header.
type Header struct {
	Identifier   string `yaml:"identifier,omitempty"`
	Title        string `yaml:"title,omitempty"`
	Comment      string `yaml:"comment,omitempty"`
	CreationTime string `yaml:"creation_time,omitempty"`
	RepositoryID string `yaml:"repository_id,omitempty"`
	ReqIFToolID  string `yaml:"reqif_tool_id,omitempty"`
	ReqIFVersion string `yaml:"reqif_version,omitempty"`
	SourceToolID string `yaml:"source_tool_id,omitempty"`
}

// IsEmpty returns true if no header field was found.
func (h Header) IsEmpty() bool {
	return h == Header{}
}

// Diagnostics summarises what a single document parse found and skipped.
type Diagnostics struct {
	// Path is the parsed file.
	Path string `yaml:"path"`

	// Entry is the archive member parsed, empty for plain documents.
	Entry string `yaml:"entry,omitempty"`

	// Namespace is the root namespace URI, empty when undeclared.
	Namespace string `yaml:"namespace,omitempty"`

	// Header is the document header metadata.
	Header Header `yaml:"header,omitempty"`

	// Elements is the total number of elements in the tree.
	Elements int `yaml:"elements"`

	// Definitions counts attribute definitions per kind.
	Definitions map[AttributeKind]int `yaml:"definitions"`

	SpecObjectTypes  int `yaml:"spec_object_types"`
	Enumerations     int `yaml:"enumerations"`
	EnumValues       int `yaml:"enum_values"`
	SkippedDefs      int `yaml:"skipped_definitions"`
	ObjectsFound     int `yaml:"objects_found"`
	ObjectsProcessed int `yaml:"objects_processed"`

	// ObjectsFailed counts requirements assembled with at least one issue.
	ObjectsFailed int `yaml:"objects_failed"`

	// DuplicateIDs lists ids seen more than once in the document.
	DuplicateIDs []string `yaml:"duplicate_ids,omitempty"`

	// Issues holds the first MaxIssues issue messages.
	Issues []string `yaml:"issues,omitempty"`

	// IssuesTotal counts every issue, including those beyond the cap.
	IssuesTotal int `yaml:"issues_total"`

	// MaxIssues caps Issues. Zero means DefaultMaxIssues.
	MaxIssues int `yaml:"-"`
}

// NewDiagnostics creates diagnostics for a path with the given issue cap.
func NewDiagnostics(path string, maxIssues int) *Diagnostics {
	if maxIssues <= 0 {
		maxIssues = DefaultMaxIssues
	}
	return &Diagnostics{
		Path:        path,
		Definitions: make(map[AttributeKind]int),
		MaxIssues:   maxIssues,
	}
}

// AddIssue records an issue, keeping at most MaxIssues messages.
func (d *Diagnostics) AddIssue(format string, args ...any) {
	d.IssuesTotal++
	limit := d.MaxIssues
	if limit <= 0 {
		limit = DefaultMaxIssues
	}
	if len(d.Issues) < limit {
		d.Issues = append(d.Issues, fmt.Sprintf(format, args...))
	}
}

// TotalDefinitions returns the number of attribute definitions of all kinds.
func (d *Diagnostics) TotalDefinitions() int {
	total := 0
	for _, n := range d.Definitions {
		total += n
	}
	return total
}

// ValidationReport is the outcome of a quick structural check of a file
// without a full parse.
type ValidationReport struct {
	Path     string   `yaml:"path"`
	Valid    bool     `yaml:"valid"`
	Format   string   `yaml:"format,omitempty"`
	Entry    string   `yaml:"entry,omitempty"`
	Errors   []string `yaml:"errors,omitempty"`
	Warnings []string `yaml:"warnings,omitempty"`
}

// Fail records an error and marks the report invalid.
func (r *ValidationReport) Fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Warn records a non-fatal finding.
func (r *ValidationReport) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
