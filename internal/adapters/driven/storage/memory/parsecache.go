package memory

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/reqdiff/internal/core/ports/driven"
)

// Ensure ParseCache implements the interface.
var _ driven.ParseCache = (*ParseCache)(nil)

// DefaultParseCacheSize is used when a non-positive size is requested.
const DefaultParseCacheSize = 64

// ParseCache is a size-bounded LRU of parse results keyed by path, size
// and modification time. It is safe for concurrent use.
type ParseCache struct {
	entries *lru.Cache[driven.ParseKey, *driven.ParsedDocument]
}

// NewParseCache creates a cache holding at most size documents.
func NewParseCache(size int) *ParseCache {
	if size <= 0 {
		size = DefaultParseCacheSize
	}
	// lru.New only fails for non-positive sizes.
	entries, _ := lru.New[driven.ParseKey, *driven.ParsedDocument](size)
	return &ParseCache{entries: entries}
}

// Get returns the cached parse for key and marks it recently used.
func (c *ParseCache) Get(key driven.ParseKey) (*driven.ParsedDocument, bool) {
	return c.entries.Get(key)
}

// Put stores a parse result, evicting the least recently used entry when full.
func (c *ParseCache) Put(key driven.ParseKey, doc *driven.ParsedDocument) {
	if doc == nil {
		return
	}
	c.entries.Add(key, doc)
}

// Len returns the number of cached entries.
func (c *ParseCache) Len() int {
	return c.entries.Len()
}

// Purge drops every entry.
func (c *ParseCache) Purge() {
	c.entries.Purge()
}
