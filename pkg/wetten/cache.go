package wetten

import (
	"sync"
)

// MarkupCache is a thread-safe, in-memory read-through cache mapping BWB
// identifiers to raw page markup. Source documents change rarely, so there
// is no eviction or TTL: an entry lives for the lifetime of the cache.
type MarkupCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMarkupCache creates an empty markup cache.
func NewMarkupCache() *MarkupCache {
	return &MarkupCache{
		entries: make(map[string]string),
	}
}

// Get retrieves cached markup by identifier.
// Returns the markup and true if present, or "" and false otherwise.
func (markupCache *MarkupCache) Get(bwbID string) (string, bool) {
	markupCache.mu.RLock()
	markup, exists := markupCache.entries[bwbID]
	markupCache.mu.RUnlock()
	return markup, exists
}

// Set stores markup for an identifier, replacing any previous entry.
func (markupCache *MarkupCache) Set(bwbID string, markup string) {
	markupCache.mu.Lock()
	markupCache.entries[bwbID] = markup
	markupCache.mu.Unlock()
}

// Invalidate removes a specific entry from the cache.
func (markupCache *MarkupCache) Invalidate(bwbID string) {
	markupCache.mu.Lock()
	delete(markupCache.entries, bwbID)
	markupCache.mu.Unlock()
}

// Len returns the number of entries currently in the cache.
func (markupCache *MarkupCache) Len() int {
	markupCache.mu.RLock()
	count := len(markupCache.entries)
	markupCache.mu.RUnlock()
	return count
}
