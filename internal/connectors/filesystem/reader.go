package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.DocumentReader = (*Reader)(nil)

var zipMagic = []byte("PK\x03\x04")

// Reader loads documents from local files.
type Reader struct{}

// NewReader creates a filesystem document reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the content of the file at path.
func (r *Reader) Read(ctx context.Context, path string) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path = ResolvePath(path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &domain.RawDocument{
		URI:      path,
		MIMEType: detectMIMEType(path, content),
		Content:  content,
		Metadata: map[string]any{
			"filename": filepath.Base(path),
			"size":     len(content),
		},
	}, nil
}

// detectMIMEType picks the document form by extension, then by content.
func detectMIMEType(path string, content []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".reqifz":
		return domain.MIMETypeReqIFZ
	case ".reqif":
		return domain.MIMETypeReqIF
	}
	if bytes.HasPrefix(content, zipMagic) {
		return domain.MIMETypeReqIFZ
	}
	return domain.MIMETypeReqIF
}
