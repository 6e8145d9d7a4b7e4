package staleness

import (
	"sync"
	"time"
)

// Result is the verdict for one URL. Fail-open: anything ambiguous is
// Valid=true with a reason explaining what was (or wasn't) observed.
type Result struct {
	Valid     bool      `json:"valid"`
	Reason    string    `json:"reason"`
	CheckedAt time.Time `json:"checked_at"`
}

// CacheStore bounds request volume against external hosts: results are
// reused within the TTL. The sqlite-backed implementation lives in
// internal/store; MemoryCache serves tests and cache-less runs.
type CacheStore interface {
	Get(url string, ttl time.Duration) (Result, bool)
	Put(url string, r Result)
}

type MemoryCache struct {
	mu sync.RWMutex
	m  map[string]Result
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: make(map[string]Result)}
}

func (c *MemoryCache) Get(url string, ttl time.Duration) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.m[url]
	if !ok || time.Since(r.CheckedAt) > ttl {
		return Result{}, false
	}
	return r, true
}

func (c *MemoryCache) Put(url string, r Result) {
	c.mu.Lock()
	c.m[url] = r
	c.mu.Unlock()
}
