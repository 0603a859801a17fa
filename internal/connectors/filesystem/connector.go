// Package filesystem discovers, reads and watches requirement documents
// on the local filesystem.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/reqdiff/internal/core/domain"
	"github.com/custodia-labs/reqdiff/internal/core/ports/driven"
	"github.com/custodia-labs/reqdiff/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// defaultDebounce is how long Watch collects events before emitting them.
const defaultDebounce = 200 * time.Millisecond

// Options controls which files are discovered and watched.
type Options struct {
	// Extensions are lower-case extensions with leading dot.
	Extensions []string

	// Include, when set, keeps only files whose relative path matches
	// one of these doublestar patterns.
	Include []string

	// Exclude drops files whose relative path matches any pattern.
	Exclude []string

	// SkipHidden ignores dot files and dot directories.
	SkipHidden bool

	// Debounce is the watch event batching window.
	Debounce time.Duration
}

// OptionsFromSettings builds Options from discovery settings.
func OptionsFromSettings(s domain.DiscoverySettings) Options {
	return Options{
		Extensions: s.Extensions,
		Include:    s.Include,
		Exclude:    s.Exclude,
		SkipHidden: s.SkipHidden,
	}
}

// Connector discovers documents under one root directory.
type Connector struct {
	rootPath string
	opts     Options

	mu       sync.Mutex
	closed   bool
	watchers []*fsnotify.Watcher
}

// New creates a filesystem connector.
func New(rootPath string, opts Options) *Connector {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	return &Connector{
		rootPath: rootPath,
		opts:     opts,
	}
}

// NewFactory returns a ConnectorFactory sharing opts.
func NewFactory(opts Options) driven.ConnectorFactory {
	return func(root string) driven.Connector {
		return New(root, opts)
	}
}

// Root returns the configured root directory.
func (c *Connector) Root() string {
	return c.rootPath
}

// Validate checks the root exists and is a directory.
func (c *Connector) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(c.rootPath)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("root path does not exist: %s", c.rootPath)
	}
	if err != nil {
		return fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", domain.ErrNotDirectory, c.rootPath)
	}
	return nil
}

// Discover lists accepted documents below the root, sorted by relative path.
func (c *Connector) Discover(ctx context.Context) ([]domain.FileEntry, error) {
	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	var files []domain.FileEntry
	err := filepath.WalkDir(c.rootPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("skipping %s: %v", p, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, relErr := filepath.Rel(c.rootPath, p)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if c.opts.SkipHidden && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !c.accept(rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn("skipping %s: %v", p, err)
			return nil
		}
		files = append(files, newEntry(p, rel, info))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelativePath < files[j].RelativePath
	})
	logger.Debug("discovered %d documents under %s", len(files), c.rootPath)
	return files, nil
}

// Watch emits debounced changes to accepted documents under the root.
// The channel is closed when ctx is cancelled or the connector is closed.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.FileChange, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return nil, errors.New("connector is closed")
	}

	if err := c.Validate(ctx); err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := c.addWatchesRecursive(watcher, c.rootPath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", c.rootPath, err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		watcher.Close()
		return nil, errors.New("connector is closed")
	}
	c.watchers = append(c.watchers, watcher)
	c.mu.Unlock()

	changes := make(chan domain.FileChange, 100)
	go c.processEvents(ctx, watcher, changes)
	return changes, nil
}

// processEvents batches fsnotify events and forwards them once the
// debounce window passes with pending changes.
func (c *Connector) processEvents(ctx context.Context, watcher *fsnotify.Watcher, changes chan<- domain.FileChange) {
	defer close(changes)

	ticker := time.NewTicker(c.opts.Debounce)
	defer ticker.Stop()

	pending := make(map[string]domain.ChangeType)
	var order []string

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			change := c.handleFsEvent(watcher, event)
			if change == nil {
				continue
			}
			if _, seen := pending[change.Path]; !seen {
				order = append(order, change.Path)
			}
			pending[change.Path] = change.Type

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watch %s: %v", c.rootPath, err)

		case <-ticker.C:
			for _, p := range order {
				select {
				case changes <- domain.FileChange{Type: pending[p], Path: p}:
				case <-ctx.Done():
					return
				}
			}
			clear(pending)
			order = order[:0]
		}
	}
}

// handleFsEvent converts an fsnotify event into a document change, or
// nil when the event is not about an accepted document. Newly created
// directories are added to the watcher.
func (c *Connector) handleFsEvent(watcher *fsnotify.Watcher, event fsnotify.Event) *domain.FileChange {
	rel, err := filepath.Rel(c.rootPath, event.Name)
	if err != nil {
		return nil
	}
	rel = filepath.ToSlash(rel)
	if c.opts.SkipHidden && isHidden(rel) {
		return nil
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if watcher != nil {
				if err := c.addWatchesRecursive(watcher, event.Name); err != nil {
					logger.Warn("watch new directory %s: %v", event.Name, err)
				}
			}
			return nil
		}
	}

	var changeType domain.ChangeType
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		changeType = domain.ChangeDeleted
	case event.Has(fsnotify.Create):
		changeType = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		changeType = domain.ChangeUpdated
	default:
		return nil
	}

	if !c.accept(rel) {
		return nil
	}
	return &domain.FileChange{Type: changeType, Path: event.Name}
}

func (c *Connector) addWatchesRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != c.rootPath && c.opts.SkipHidden && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := watcher.Add(p); err != nil {
			logger.Warn("watch %s: %v", p, err)
		}
		return nil
	})
}

// Close stops every watcher. It is safe to call more than once.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	for _, w := range c.watchers {
		if err := w.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.watchers = nil
	return errors.Join(errs...)
}

// accept reports whether a slash-separated relative path is a document
// selected by the extension and glob filters.
func (c *Connector) accept(rel string) bool {
	ext := strings.ToLower(path.Ext(rel))
	if len(c.opts.Extensions) > 0 && !containsFold(c.opts.Extensions, ext) {
		return false
	}
	if len(c.opts.Include) > 0 && !matchAny(c.opts.Include, rel) {
		return false
	}
	return !matchAny(c.opts.Exclude, rel)
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		ok, err := doublestar.Match(p, rel)
		if err != nil {
			logger.Warn("bad pattern %q: %v", p, err)
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func newEntry(fullPath, rel string, info fs.FileInfo) domain.FileEntry {
	parent := path.Dir(rel)
	if parent == "." {
		parent = ""
	}
	return domain.FileEntry{
		FullPath:     fullPath,
		RelativePath: rel,
		ParentDir:    parent,
		Filename:     path.Base(rel),
		Extension:    strings.ToLower(path.Ext(rel)),
		Size:         info.Size(),
		ModTime:      info.ModTime(),
	}
}

// isHidden reports whether any element of p starts with a dot.
// "." and ".." are not hidden.
func isHidden(p string) bool {
	for _, part := range strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == filepath.Separator }) {
		if part != "." && part != ".." && strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
