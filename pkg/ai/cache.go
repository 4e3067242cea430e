package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/legalmind/pkg/metrics"
)

// Store is the key-value backend for cached completions
type Store interface {
	Set(key string, value string, expiration time.Duration)
	Get(key string) (string, bool)
	Delete(key string)
}

// CachedCompleter serves identical (model, prompt) pairs from a Store.
// Only successful completions are cached.
type CachedCompleter struct {
	next    Completer
	store   Store
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewCachedCompleter wraps next with a cache
func NewCachedCompleter(next Completer, store Store, ttl time.Duration, m *metrics.Metrics, logger *zap.Logger) *CachedCompleter {
	return &CachedCompleter{next: next, store: store, ttl: ttl, metrics: m, logger: logger}
}

func (c *CachedCompleter) Model() string {
	return c.next.Model()
}

func (c *CachedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	key := CacheKey(c.next.Model(), prompt)
	if cached, ok := c.store.Get(key); ok {
		c.metrics.ObserveCacheLookup(true)
		if c.logger != nil {
			c.logger.Debug("⚡ Completion served from cache", zap.String("key", key))
		}
		return cached, nil
	}
	c.metrics.ObserveCacheLookup(false)

	out, err := c.next.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	c.store.Set(key, out, c.ttl)
	return out, nil
}

// CacheKey derives the store key for a (model, prompt) pair
func CacheKey(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + prompt))
	return "completion:" + hex.EncodeToString(sum[:])
}
