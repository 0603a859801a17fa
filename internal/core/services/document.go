package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driven"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driving"
	"github.com/custodia-labs/reqdiff/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService parses single documents, serving unchanged files from
// an optional parse cache.
type DocumentService struct {
	reader     driven.DocumentReader
	normaliser driven.Normaliser
	cache      driven.ParseCache
}

// NewDocumentService creates a new document service. The cache may be nil.
func NewDocumentService(
	reader driven.DocumentReader,
	normaliser driven.Normaliser,
	cache driven.ParseCache,
) *DocumentService {
	return &DocumentService{
		reader:     reader,
		normaliser: normaliser,
		cache:      cache,
	}
}

// ParseDocument reads and parses the document at path. Any failure is
// returned as a *domain.ParseError for that file.
func (s *DocumentService) ParseDocument(ctx context.Context, path string) ([]domain.Requirement, *domain.Diagnostics, error) {
	if s.reader == nil || s.normaliser == nil {
		return nil, nil, domain.ErrNotImplemented
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	key, cacheable := s.cacheKey(path)
	if cacheable {
		if doc, ok := s.cache.Get(key); ok {
			logger.Debug("parse cache hit: %s", path)
			return doc.Requirements, doc.Diagnostics, nil
		}
	}

	raw, err := s.reader.Read(ctx, path)
	if err != nil {
		return nil, nil, asParseError(path, err)
	}

	result, err := s.normaliser.Normalise(ctx, raw)
	if err != nil {
		return nil, nil, asParseError(path, err)
	}

	if cacheable {
		s.cache.Put(key, &driven.ParsedDocument{
			Requirements: result.Requirements,
			Diagnostics:  result.Diagnostics,
		})
	}
	return result.Requirements, result.Diagnostics, nil
}

// Validate runs the quick structural check on the document at path.
// Problems with the file are reported in the returned report; an error
// is returned only when the check itself cannot run.
func (s *DocumentService) Validate(ctx context.Context, path string) (*domain.ValidationReport, error) {
	if s.reader == nil || s.normaliser == nil {
		return nil, domain.ErrNotImplemented
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		report := &domain.ValidationReport{Path: path}
		report.Fail("file does not exist")
		return report, nil
	case err != nil:
		return nil, fmt.Errorf("stat %s: %w", path, err)
	case info.IsDir():
		report := &domain.ValidationReport{Path: path}
		report.Fail("path is a directory")
		return report, nil
	}

	raw, err := s.reader.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.normaliser.Validate(ctx, raw), nil
}

func (s *DocumentService) cacheKey(path string) (driven.ParseKey, bool) {
	if s.cache == nil {
		return driven.ParseKey{}, false
	}
	info, err := os.Stat(path)
	if err != nil {
		return driven.ParseKey{}, false
	}
	return driven.ParseKey{Path: path, Size: info.Size(), ModTime: info.ModTime()}, true
}

// asParseError wraps err as a ParseError for path unless it already is
// one or is a context error.
func asParseError(path string, err error) error {
	var pe *domain.ParseError
	if errors.As(err, &pe) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &domain.ParseError{Path: path, Err: err}
}
