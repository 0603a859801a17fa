package reqif

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"path"
	"strings"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
)

// sniffSize is how much of a document is inspected by Validate.
const sniffSize = 1024

// Validate checks a document without parsing it fully: archive integrity,
// presence of a document entry, and a REQ-IF marker near the start.
func (n *Normaliser) Validate(_ context.Context, raw *domain.RawDocument) *domain.ValidationReport {
	report := &domain.ValidationReport{Valid: true}
	if raw == nil {
		report.Fail("no document")
		return report
	}
	report.Path = raw.URI

	ext := strings.ToLower(path.Ext(raw.URI))
	if ext != documentExt && ext != ".reqifz" {
		report.Warn("unexpected file extension %q", ext)
	}

	head := raw.Content
	if isArchive(raw) {
		report.Format = "reqifz"
		zr, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
		if err != nil {
			report.Fail("not a valid zip archive: %v", err)
			return report
		}
		entry, count := selectEntry(zr)
		if entry == nil {
			report.Fail("no %s document in archive", documentExt)
			return report
		}
		if count > 1 {
			report.Warn("%d documents in archive, %s would be parsed", count, entry.Name)
		}
		report.Entry = entry.Name
		rc, err := entry.Open()
		if err != nil {
			report.Fail("cannot open %s: %v", entry.Name, err)
			return report
		}
		defer rc.Close()
		head, err = io.ReadAll(io.LimitReader(rc, sniffSize))
		if err != nil {
			report.Fail("cannot read %s: %v", entry.Name, err)
			return report
		}
	} else {
		report.Format = "reqif"
	}

	if len(head) > sniffSize {
		head = head[:sniffSize]
	}
	if len(bytes.TrimSpace(head)) == 0 {
		report.Fail("document is empty")
		return report
	}
	if !bytes.Contains(head, []byte("REQ-IF")) && !bytes.Contains(bytes.ToLower(head), []byte("reqif")) {
		report.Warn("file may not be a requirements interchange document")
	}
	return report
}
