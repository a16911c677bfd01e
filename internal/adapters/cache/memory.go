// Package cache implements ports.Cache in process memory.
package cache

import (
	"context"
	"time"

	ggcache "github.com/gogpu/gg/cache"

	"github.com/jsamuelsen/alaqidah-service/internal/domain"
)

type entry struct {
	value   []byte
	expires time.Time
}

// Memory is a sharded LRU cache with per-entry expiry. It is safe for
// concurrent use.
type Memory struct {
	entries *ggcache.ShardedCache[string, entry]
	now     func() time.Time
}

// NewMemory creates a cache holding roughly maxEntries values. Capacity is
// split evenly over the shards, so the bound is approximate.
func NewMemory(maxEntries int) *Memory {
	perShard := (maxEntries + ggcache.DefaultShardCount - 1) / ggcache.DefaultShardCount

	return &Memory{
		entries: ggcache.NewSharded[string, entry](perShard, ggcache.StringHasher),
		now:     time.Now,
	}
}

// Get returns the value for key or domain.ErrNotFound.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	e, ok := m.entries.Get(key)
	if !ok {
		return nil, domain.NewNotFoundError("cache entry", key)
	}

	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.entries.Delete(key)
		return nil, domain.NewNotFoundError("cache entry", key)
	}

	return e.value, nil
}

// Set stores value under key. A zero ttl never expires.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}

	m.entries.Set(key, e)

	return nil
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.entries.Delete(key)
	return nil
}

// Purge drops every entry.
func (m *Memory) Purge(_ context.Context) (int, error) {
	n := m.entries.Len()
	m.entries.Clear()

	return n, nil
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	return m.entries.Len()
}
