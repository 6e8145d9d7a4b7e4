package company

import (
	"sync"

	"jobagent-engine/internal/domain"
)

// OverrideStore is a read-mostly lookup of manual classifications,
// consulted synchronously before any automatic signal is computed. A
// hit bypasses the signal vote entirely and is never overwritten by it.
type OverrideStore interface {
	Lookup(company string) (domain.CompanyType, bool)
}

// MapOverrides is an in-memory OverrideStore, used in tests and for
// profile-supplied overrides. The sqlite-backed store lives in
// internal/store.
type MapOverrides struct {
	mu sync.RWMutex
	m  map[string]domain.CompanyType
}

func NewMapOverrides(entries map[string]domain.CompanyType) *MapOverrides {
	o := &MapOverrides{m: make(map[string]domain.CompanyType, len(entries))}
	for name, t := range entries {
		o.m[NormalizeKey(name)] = t
	}
	return o
}

func (o *MapOverrides) Lookup(company string) (domain.CompanyType, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	t, ok := o.m[NormalizeKey(company)]
	return t, ok
}

func (o *MapOverrides) Set(company string, t domain.CompanyType) {
	o.mu.Lock()
	o.m[NormalizeKey(company)] = t
	o.mu.Unlock()
}
