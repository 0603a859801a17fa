package reqif

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

var zipMagic = []byte("PK\x03\x04")

// documentExt is the extension of a plain document, also used to pick
// the payload inside an archive.
const documentExt = ".reqif"

// isArchive reports whether raw is a zip archive, by extension or magic bytes.
func isArchive(raw *domain.RawDocument) bool {
	if raw.MIMEType == domain.MIMETypeReqIFZ {
		return true
	}
	if strings.EqualFold(path.Ext(raw.URI), ".reqifz") {
		return true
	}
	return bytes.HasPrefix(raw.Content, zipMagic)
}

// selectEntry returns the largest .reqif entry in the archive. The
// largest document is taken to be the real payload; smaller ones are
// usually manifests or metadata.
func selectEntry(zr *zip.Reader) (*zip.File, int) {
	var best *zip.File
	count := 0
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(path.Ext(f.Name), documentExt) {
			continue
		}
		count++
		if best == nil || f.UncompressedSize64 > best.UncompressedSize64 {
			best = f
		}
	}
	return best, count
}

// extractDocument reads the primary document out of an archive held in
// memory. It returns the entry name with the content.
func extractDocument(uri string, content []byte) (string, []byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", nil, &domain.ParseError{Path: uri, Err: fmt.Errorf("open archive: %w", err)}
	}

	entry, count := selectEntry(zr)
	if entry == nil {
		return "", nil, &domain.ParseError{Path: uri, Err: domain.ErrNoDocument}
	}
	if count > 1 {
		logOtherEntries(uri, entry.Name, count)
	}

	rc, err := entry.Open()
	if err != nil {
		return entry.Name, nil, &domain.ParseError{Path: uri, Entry: entry.Name, Err: fmt.Errorf("open entry: %w", err)}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return entry.Name, nil, &domain.ParseError{Path: uri, Entry: entry.Name, Err: fmt.Errorf("read entry: %w", err)}
	}
	return entry.Name, data, nil
}
