// Package cache stores food item id sets that rarely change, such as the
// ingredients of a recipe, so listing recipes does not re-query them.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"demeter/internal/set"
)

// IDSetCache is implemented by the in-process Memory cache and the Redis cache.
type IDSetCache interface {
	Get(ctx context.Context, key string) (set.Set[uint], bool, error)
	Set(ctx context.Context, key string, ids set.Set[uint]) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// RecipeKey is the cache key of a recipe's ingredient ids.
func RecipeKey(recipeID uint) string {
	return fmt.Sprintf("recipe:%d:food-ids", recipeID)
}

type entry struct {
	ids       []uint
	expiresAt time.Time
}

// Memory is a TTL cache held in process memory.
type Memory struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (m *Memory) Get(_ context.Context, key string) (set.Set[uint], bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if m.ttl > 0 && m.now().After(e.expiresAt) {
		m.mu.Lock()
		// A concurrent Set may have refreshed the entry since the read.
		if current, ok := m.entries[key]; ok && m.now().After(current.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return set.Of(e.ids...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, ids set.Set[uint]) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictExpired()
	m.entries[key] = entry{ids: set.Sorted(ids), expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Ping always succeeds; the cache lives in process.
func (m *Memory) Ping(context.Context) error { return nil }

// evictExpired must be called with mu held.
func (m *Memory) evictExpired() {
	if m.ttl <= 0 {
		return
	}
	now := m.now()
	for key, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, key)
		}
	}
}
