package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reqdiff/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/reqdiff/internal/core/domain"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driven"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driving"
	"github.com/custodia-labs/reqdiff/internal/core/services"
)

type mockDocumentService struct {
	reqs     []domain.Requirement
	diag     *domain.Diagnostics
	err      error
	reports  map[string]*domain.ValidationReport
	parsed   []string
	validErr error
}

func (m *mockDocumentService) ParseDocument(_ context.Context, path string) ([]domain.Requirement, *domain.Diagnostics, error) {
	m.parsed = append(m.parsed, path)
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.reqs, m.diag, nil
}

func (m *mockDocumentService) Validate(_ context.Context, path string) (*domain.ValidationReport, error) {
	if m.validErr != nil {
		return nil, m.validErr
	}
	if r, ok := m.reports[path]; ok {
		return r, nil
	}
	return &domain.ValidationReport{Path: path, Valid: true, Format: "reqif"}, nil
}

type mockComparisonService struct {
	result *domain.ComparisonResult
	err    error
}

func (m *mockComparisonService) CompareFiles(context.Context, string, string) (*domain.ComparisonResult, error) {
	return m.result, m.err
}

type mockFolderService struct {
	result    *domain.FolderComparisonResult
	err       error
	calls     int
	lastOpts  driving.FolderOptions
	matchOnly int
	lastMatch *float64
}

func (m *mockFolderService) MatchFiles(_ context.Context, _, _ string, threshold *float64) (*domain.FolderComparisonResult, error) {
	m.matchOnly++
	m.lastMatch = threshold
	return m.result, m.err
}

func (m *mockFolderService) CompareFolders(_ context.Context, _, _ string, opts driving.FolderOptions) (*domain.FolderComparisonResult, error) {
	m.calls++
	m.lastOpts = opts
	if opts.Progress != nil {
		opts.Progress(1, 1, "a.reqif")
	}
	return m.result, m.err
}

type mockSnapshotService struct {
	saved   []string
	deleted []string
	snaps   []domain.Snapshot
	diff    *domain.ComparisonResult
	err     error
}

func (m *mockSnapshotService) Save(_ context.Context, name, path string) (*domain.Snapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.saved = append(m.saved, name)
	return &domain.Snapshot{Name: name, Source: path, Requirements: 3}, nil
}

func (m *mockSnapshotService) Load(context.Context, string) ([]domain.Requirement, error) {
	return nil, m.err
}

func (m *mockSnapshotService) List(context.Context) ([]domain.Snapshot, error) {
	return m.snaps, m.err
}

func (m *mockSnapshotService) Delete(_ context.Context, name string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, name)
	return nil
}

func (m *mockSnapshotService) Diff(context.Context, string, string) (*domain.ComparisonResult, error) {
	return m.diff, m.err
}

// fakeConnector emits a fixed list of changes from Watch, then closes.
type fakeConnector struct {
	root    string
	changes []domain.FileChange
	closed  bool
}

func (c *fakeConnector) Root() string { return c.root }
func (c *fakeConnector) Validate(context.Context) error { return nil }
func (c *fakeConnector) Discover(context.Context) ([]domain.FileEntry, error) {
	return nil, nil
}
func (c *fakeConnector) Close() error {
	c.closed = true
	return nil
}

func (c *fakeConnector) Watch(ctx context.Context) (<-chan domain.FileChange, error) {
	ch := make(chan domain.FileChange, len(c.changes))
	for _, change := range c.changes {
		ch <- change
	}
	close(ch)
	return ch, nil
}

// testServices holds the fakes installed by setupTestServices.
type testServices struct {
	documents  *mockDocumentService
	comparison *mockComparisonService
	folders    *mockFolderService
	snapshots  *mockSnapshotService
	config     *memory.ConfigStore
}

// setupTestServices installs fakes, resets command flags and restores
// everything when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	oldDoc, oldCmp, oldFolder := documentService, comparisonService, folderService
	oldSettings, oldSnap := settingsService, snapshotService
	oldFactory, oldPool, oldBuilder, oldClose := connectorFactory, workerPool, builder, closeServices

	ts := &testServices{
		documents:  &mockDocumentService{diag: domain.NewDiagnostics("spec.reqif", 0)},
		comparison: &mockComparisonService{},
		folders:    &mockFolderService{},
		snapshots:  &mockSnapshotService{},
		config:     memory.NewConfigStore(nil),
	}
	documentService = ts.documents
	comparisonService = ts.comparison
	folderService = ts.folders
	settingsService = services.NewSettingsService(ts.config)
	snapshotService = ts.snapshots
	connectorFactory = nil
	workerPool = nil
	builder = nil
	closeServices = nil
	resetFlags()

	t.Cleanup(func() {
		documentService, comparisonService, folderService = oldDoc, oldCmp, oldFolder
		settingsService, snapshotService = oldSettings, oldSnap
		connectorFactory, workerPool, builder, closeServices = oldFactory, oldPool, oldBuilder, oldClose
		resetFlags()
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})
	return ts
}

func resetFlags() {
	globalOpts = Options{}
	parseYAML, parseQuiet = false, false
	exportFormat, exportOutput = "csv", ""
	compareDetailed, compareYAML, compareOutput = false, false, ""
	folderThreshold, folderMatchOnly, folderYAML, folderOutput, folderQuiet = 0, false, false, "", false
	for _, cmd := range []*cobra.Command{foldersCmd, watchCmd} {
		cmd.Flags().Lookup("threshold").Changed = false
	}
	snapshotDetailed = false
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

var _ driven.Connector = (*fakeConnector)(nil)
