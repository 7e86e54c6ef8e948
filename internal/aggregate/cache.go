package aggregate

import (
	"fmt"
	"sync"
	"time"

	"github.com/elimuhub/opportunity-finder/internal/models"
	"github.com/elimuhub/opportunity-finder/internal/sources"
)

// DefaultTTL is how long an aggregated result set stays fresh. Sources
// change slowly; five minutes spares them redundant fetch cycles without
// serving stale listings.
const DefaultTTL = 5 * time.Minute

type cacheEntry struct {
	key       string
	data      []models.Opportunity
	createdAt time.Time
}

// Cache is a time-boxed, key-based store of aggregated result sets. It is
// constructed explicitly and owned by the orchestrator instance, never
// process-wide state. Entries past the TTL are treated as absent and
// evicted lazily on the next read. Concurrent requests for different keys
// are expected, so the map is mutex-guarded.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *Cache) Get(key string) ([]models.Opportunity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.createdAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.data, true
}

func (c *Cache) Set(key string, data []models.Opportunity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{key: key, data: data, createdAt: c.now()}
}

// CacheKey builds a canonical, versioned key from the option fields in a
// fixed order, so equivalent requests always collide and field additions
// cannot silently alias old entries.
func CacheKey(opts sources.FetchOptions) string {
	return fmt.Sprintf("v1|county=%s|constituency=%s|kenyan=%t|limit=%d|type=%s",
		opts.County, opts.Constituency, opts.KenyanOnly, opts.Limit, opts.Type)
}
