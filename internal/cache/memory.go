package cache

import (
	"context"
	"sync"
	"time"

	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/service"
)

// MemoryStore is the default in-process cache backend. Expiry is lazy:
// a read past the deadline reports a miss and drops the entry.
type MemoryStore struct {
	entries map[string]*service.CacheEntry
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory cache store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*service.CacheEntry)}
}

// Get returns the entry for the fingerprint or common.ErrCacheMiss.
func (m *MemoryStore) Get(_ context.Context, fingerprint string) (*service.CacheEntry, error) {
	m.mu.RLock()
	entry, ok := m.entries[fingerprint]
	m.mu.RUnlock()
	if !ok {
		return nil, common.ErrCacheMiss
	}
	if entry.Expired(time.Now()) {
		m.mu.Lock()
		delete(m.entries, fingerprint)
		m.mu.Unlock()
		return nil, common.ErrCacheMiss
	}
	return entry, nil
}

// Set stores the entry under the fingerprint, replacing any previous
// entry whole.
func (m *MemoryStore) Set(_ context.Context, fingerprint string, entry *service.CacheEntry) error {
	m.mu.Lock()
	m.entries[fingerprint] = entry
	m.mu.Unlock()
	return nil
}

// Invalidate drops every entry computed under a rule set version older
// than activeVersion.
func (m *MemoryStore) Invalidate(_ context.Context, activeVersion int64) error {
	m.mu.Lock()
	for fp, entry := range m.entries {
		if entry.RuleSetVersion < activeVersion {
			delete(m.entries, fp)
		}
	}
	m.mu.Unlock()
	return nil
}

// Len reports the number of live entries, counting expired ones not
// yet lazily dropped.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
