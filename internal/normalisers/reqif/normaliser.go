package reqif

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/beevik/etree"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driven"
	"github.com/custodia-labs/reqdiff/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser parses requirements documents and archives.
type Normaliser struct {
	maxIssues int
}

// Option configures a Normaliser.
type Option func(*Normaliser)

// WithMaxIssues caps the issue messages kept per document.
func WithMaxIssues(n int) Option {
	return func(nm *Normaliser) {
		nm.maxIssues = n
	}
}

// New creates a new requirements document normaliser.
func New(opts ...Option) *Normaliser {
	n := &Normaliser{maxIssues: domain.DefaultMaxIssues}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		domain.MIMETypeReqIF,
		domain.MIMETypeReqIFZ,
		"application/xml",
		"application/zip",
	}
}

// Normalise parses a plain or archived document into requirements.
// A *domain.ParseError is returned when the archive cannot be read or the
// XML is malformed; every other irregularity lands in the diagnostics.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer logger.Timed("parse "+raw.URI, time.Now())

	diag := domain.NewDiagnostics(raw.URI, n.maxIssues)
	content := raw.Content
	if isArchive(raw) {
		entry, data, err := extractDocument(raw.URI, content)
		if err != nil {
			return nil, err
		}
		diag.Entry = entry
		content = data
	}

	root, err := readTree(content)
	if err != nil {
		return nil, &domain.ParseError{Path: raw.URI, Entry: diag.Entry, Line: syntaxLine(err), Err: err}
	}

	reqs := parseTree(root, diag)
	logger.Debug("%s: %d requirements, %d issues", raw.URI, len(reqs), diag.IssuesTotal)

	return &driven.NormaliseResult{
		Requirements: reqs,
		Diagnostics:  diag,
	}, nil
}

// readTree parses XML strictly. Named HTML entities are accepted because
// rich-text values commonly carry them.
func readTree(content []byte) (*etree.Element, error) {
	if err := checkWellFormed(content); err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	doc.ReadSettings.Entity = xml.HTMLEntity
	if err := doc.ReadFromBytes(content); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", domain.ErrInvalidInput)
	}
	return root, nil
}

// checkWellFormed walks every token so that mismatched tags surface as
// *xml.SyntaxError with a line number. Whitespace may follow the root
// element; anything else may not.
func checkWellFormed(content []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.Strict = true
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }

	depth, roots := 0, 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if roots == 0 {
				return errors.New("no root element")
			}
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					line, _ := dec.InputPos()
					return &xml.SyntaxError{Msg: "content after root element", Line: line}
				}
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && roots > 0 && len(bytes.TrimSpace(t)) > 0 {
				line, _ := dec.InputPos()
				return &xml.SyntaxError{Msg: "content after root element", Line: line}
			}
		}
	}
}

// parseTree runs the catalog and assembly stages over a loaded tree.
// Catalog construction completes before any requirement is assembled.
func parseTree(root *etree.Element, diag *domain.Diagnostics) []domain.Requirement {
	loc := NewLocator(root)
	diag.Namespace = loc.Namespace()
	diag.Header = readHeader(root, loc)
	diag.Elements = countElements(root)

	cat := BuildCatalog(root, loc, diag)
	for kind, count := range cat.Counts {
		diag.Definitions[kind] = count
	}
	diag.SpecObjectTypes = len(cat.Types)
	diag.Enumerations = len(cat.Enums)
	diag.EnumValues = len(cat.EnumValues)
	diag.SkippedDefs = cat.Skipped

	asm := NewAssembler(loc, cat)
	objects := loc.Find(root, "SPEC-OBJECT")
	diag.ObjectsFound = len(objects)

	seen := make(map[string]bool, len(objects))
	reqs := make([]domain.Requirement, 0, len(objects))
	for i, obj := range objects {
		req, issues := asm.Assemble(obj, i)
		for _, issue := range issues {
			diag.AddIssue("%s", issue)
		}
		if len(issues) > 0 {
			diag.ObjectsFailed++
		}
		if seen[req.ID] {
			diag.DuplicateIDs = append(diag.DuplicateIDs, req.ID)
			diag.AddIssue("duplicate requirement id %s", req.ID)
		}
		seen[req.ID] = true
		reqs = append(reqs, req)
		diag.ObjectsProcessed++
	}
	return reqs
}

// syntaxLine returns the line of an XML syntax error, or 0.
func syntaxLine(err error) int {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return se.Line
	}
	return 0
}

func logOtherEntries(uri, chosen string, count int) {
	logger.Warn("%s: %d documents in archive, using largest %s", uri, count, chosen)
}
