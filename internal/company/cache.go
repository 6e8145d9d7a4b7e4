package company

import (
	"strings"
	"sync"

	"jobagent-engine/internal/domain"
)

// Cache holds classification verdicts for the duration of one run.
// Construct one per run, inject it into the classifier, and discard it
// at run end. Writes are idempotent: classification is a pure function
// of its inputs plus the override store, so two goroutines computing
// the same verdict and racing the write is wasteful but never wrong.
type Cache struct {
	mu sync.RWMutex
	m  map[string]domain.CompanyClassification
}

func NewCache() *Cache {
	return &Cache{m: make(map[string]domain.CompanyClassification)}
}

func (c *Cache) Get(company string) (domain.CompanyClassification, bool) {
	key := NormalizeKey(company)
	c.mu.RLock()
	defer c.mu.RUnlock()
	cl, ok := c.m[key]
	return cl, ok
}

func (c *Cache) Put(cl domain.CompanyClassification) {
	key := NormalizeKey(cl.CompanyName)
	if key == "" {
		return
	}
	c.mu.Lock()
	c.m[key] = cl
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// NormalizeKey canonicalizes a company name for cache and override
// lookups.
func NormalizeKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}
