package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process key-value store with per-key expiration
type MemoryStore struct {
	items *gocache.Cache
}

// NewMemoryStore creates a memory store; expired keys are swept every cleanupInterval
func NewMemoryStore(defaultTTL, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{items: gocache.New(defaultTTL, cleanupInterval)}
}

// Set stores a key-value pair. A non-positive expiration uses the store default.
func (ms *MemoryStore) Set(key string, value string, expiration time.Duration) {
	if expiration <= 0 {
		expiration = gocache.DefaultExpiration
	}
	ms.items.Set(key, value, expiration)
}

// Get retrieves a value by key
func (ms *MemoryStore) Get(key string) (string, bool) {
	v, found := ms.items.Get(key)
	if !found {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Delete removes a key
func (ms *MemoryStore) Delete(key string) {
	ms.items.Delete(key)
}

// Flush removes every key
func (ms *MemoryStore) Flush() {
	ms.items.Flush()
}

// Len returns the number of stored keys, including expired ones not yet swept
func (ms *MemoryStore) Len() int {
	return ms.items.ItemCount()
}
