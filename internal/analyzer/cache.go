package analyzer

import (
	"sync"

	"github.com/gsocbuddy/gsoc-buddy/internal/utils"
)

const fingerprintDescriptionLen = 100

// analysisCache memoizes successful analyses for the lifetime of the
// analyzer. There is no eviction: the working set is a handful of issues per
// session. The lock keeps read-check-then-write safe should a caller run
// batches concurrently.
type analysisCache struct {
	mu      sync.RWMutex
	entries map[string]*Analysis
}

func newAnalysisCache() *analysisCache {
	return &analysisCache{entries: make(map[string]*Analysis)}
}

func (c *analysisCache) get(key string) (*Analysis, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	return entry, ok
}

func (c *analysisCache) put(key string, a *Analysis) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = a
}

func (c *analysisCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// fingerprint derives the cache key from the title and a bounded prefix of
// the description, so trailing edits to long issue bodies do not defeat
// memoization.
func fingerprint(title, description string) string {
	return title + ":" + utils.TruncateRunes(description, fingerprintDescriptionLen)
}
