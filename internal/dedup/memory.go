package dedup

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process Store backed by a TTL cache.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates a MemoryStore with the given retention. A zero
// retention selects DefaultRetention.
func NewMemoryStore(retention time.Duration) *MemoryStore {
	if retention == 0 {
		retention = DefaultRetention
	}
	return &MemoryStore{cache: cache.New(retention, retention/2)}
}

// Observe implements Store. Add fails when the key is still present, which is
// exactly the "already seen" case.
func (m *MemoryStore) Observe(_ context.Context, key string) (bool, error) {
	if err := m.cache.Add(key, struct{}{}, cache.DefaultExpiration); err != nil {
		return false, nil
	}
	return true, nil
}
