package geocode

import (
	"sync"

	"github.com/ekarhu/tripsight/internal/spatial"
)

// DefaultCacheSize bounds the cache; a multi-month scan touches far
// fewer distinct grid cells than this.
const DefaultCacheSize = 4096

// Cache is a bounded, eviction-free country cache keyed by geohash grid
// cell. When full it stops accepting new entries instead of evicting,
// which keeps cache behavior independent of lookup order.
type Cache struct {
	mu         sync.Mutex
	maxEntries int
	entries    map[string]string
}

// NewCache returns a cache holding at most maxEntries cells.
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheSize
	}
	return &Cache{
		maxEntries: maxEntries,
		entries:    make(map[string]string),
	}
}

// Get returns the cached country for the coordinate's grid cell.
func (c *Cache) Get(lat, lon float64) (string, bool) {
	key := spatial.GridKey(lat, lon)
	c.mu.Lock()
	defer c.mu.Unlock()
	country, ok := c.entries[key]
	return country, ok
}

// Put stores the country for the coordinate's grid cell. A no-op once
// the cache is full.
func (c *Cache) Put(lat, lon float64, country string) {
	key := spatial.GridKey(lat, lon)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		return
	}
	c.entries[key] = country
}

// Len returns the number of cached cells.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
