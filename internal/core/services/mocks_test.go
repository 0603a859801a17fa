package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driven"
)

// mockReader returns fixed content for every path.
type mockReader struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *mockReader) Read(_ context.Context, path string) (*domain.RawDocument, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return &domain.RawDocument{URI: path, MIMEType: domain.MIMETypeReqIF, Content: []byte("<REQ-IF/>")}, nil
}

func (m *mockReader) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockNormaliser returns the configured requirements for every document.
type mockNormaliser struct {
	reqs   []domain.Requirement
	err    error
	report *domain.ValidationReport
}

func (m *mockNormaliser) SupportedMIMETypes() []string {
	return []string{domain.MIMETypeReqIF}
}

func (m *mockNormaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &driven.NormaliseResult{
		Requirements: m.reqs,
		Diagnostics:  domain.NewDiagnostics(raw.URI, 0),
	}, nil
}

func (m *mockNormaliser) Validate(_ context.Context, raw *domain.RawDocument) *domain.ValidationReport {
	if m.report != nil {
		return m.report
	}
	return &domain.ValidationReport{Path: raw.URI, Valid: true}
}

// fakeDocuments serves requirements keyed by file content, so tests can
// lay out trees on disk without writing real documents.
type fakeDocuments struct {
	mu     sync.Mutex
	parsed []string
	delay  time.Duration
}

// errParse marks a file whose content is "!broken".
var errParse = errors.New("malformed document")

func (f *fakeDocuments) ParseDocument(ctx context.Context, path string) ([]domain.Requirement, *domain.Diagnostics, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f.mu.Lock()
	f.parsed = append(f.parsed, path)
	f.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &domain.ParseError{Path: path, Err: err}
	}
	if string(data) == "!broken" {
		return nil, nil, &domain.ParseError{Path: path, Err: errParse}
	}
	return requirementsFromLines(string(data)), domain.NewDiagnostics(path, 0), nil
}

func (f *fakeDocuments) Validate(_ context.Context, path string) (*domain.ValidationReport, error) {
	return &domain.ValidationReport{Path: path, Valid: true}, nil
}

// requirementsFromLines turns "ID=text" lines into requirements with a
// single Text attribute.
func requirementsFromLines(s string) []domain.Requirement {
	var reqs []domain.Requirement
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if line == "" {
			continue
		}
		id, text, _ := strings.Cut(line, "=")
		reqs = append(reqs, req(id, "", map[string]string{"Text": text}))
	}
	return reqs
}

// mockSnapshotStore keeps snapshots in memory.
type mockSnapshotStore struct {
	snaps map[string]domain.Snapshot
	rows  map[string][]domain.TableRow
	err   error
}

func newMockSnapshotStore() *mockSnapshotStore {
	return &mockSnapshotStore{
		snaps: make(map[string]domain.Snapshot),
		rows:  make(map[string][]domain.TableRow),
	}
}

func (m *mockSnapshotStore) SaveSnapshot(_ context.Context, snap domain.Snapshot, rows []domain.TableRow) error {
	if m.err != nil {
		return m.err
	}
	m.snaps[snap.Name] = snap
	m.rows[snap.Name] = rows
	return nil
}

func (m *mockSnapshotStore) LoadSnapshot(_ context.Context, name string) (*domain.Snapshot, []domain.TableRow, error) {
	snap, ok := m.snaps[name]
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	return &snap, m.rows[name], nil
}

func (m *mockSnapshotStore) ListSnapshots(_ context.Context) ([]domain.Snapshot, error) {
	var out []domain.Snapshot
	for _, s := range m.snaps {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockSnapshotStore) DeleteSnapshot(_ context.Context, name string) error {
	if _, ok := m.snaps[name]; !ok {
		return domain.ErrNotFound
	}
	delete(m.snaps, name)
	delete(m.rows, name)
	return nil
}

func (m *mockSnapshotStore) Close() error {
	return nil
}

// req builds a requirement with string attributes.
func req(id, typ string, attrs map[string]string) domain.Requirement {
	r := domain.Requirement{ID: id, Type: typ, Attributes: map[string]domain.AttributeValue{}}
	for k, v := range attrs {
		r.Attributes[k] = domain.AttributeValue{Kind: domain.KindString, Text: v}
	}
	return r
}

// writeTree creates files under a fresh temp directory.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0600))
	}
	return root
}
