package ai

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore struct {
	mu    sync.Mutex
	items map[string]string
}

func newMapStore() *mapStore { return &mapStore{items: map[string]string{}} }

func (m *mapStore) Set(key, value string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
}

func (m *mapStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *mapStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}

func TestCachedCompleter_HitsCache(t *testing.T) {
	next := &scriptedCompleter{outputs: []string{"first", "second"}}
	c := NewCachedCompleter(next, newMapStore(), time.Hour, nil, nil)

	out, err := c.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "first", out)

	out, err = c.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "first", out)
	assert.Equal(t, 1, next.calls)

	out, err = c.Complete(context.Background(), "other prompt")
	require.NoError(t, err)
	assert.Equal(t, "second", out)
}

func TestCachedCompleter_DoesNotCacheFailures(t *testing.T) {
	next := &scriptedCompleter{errs: []error{errors.New("timeout")}, outputs: []string{"", "ok"}}
	store := newMapStore()
	c := NewCachedCompleter(next, store, time.Hour, nil, nil)

	_, err := c.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Empty(t, store.items)

	out, err := c.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, CacheKey("gpt-4", "p"), CacheKey("gpt-4", "p"))
	assert.NotEqual(t, CacheKey("gpt-4", "p"), CacheKey("gpt-4o", "p"))
	assert.Contains(t, CacheKey("gpt-4", "p"), "completion:")
}
