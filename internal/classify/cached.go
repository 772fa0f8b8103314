package classify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ppiankov/veracity/internal/cache"
)

// Cached memoizes predictions for identical text units within one
// process. Per-sentence scoring re-submits the same sentences across
// repeated analyses of the same article; the cache keeps those calls
// off the backend.
type Cached struct {
	inner Classifier
	store cache.Cache
	ttl   time.Duration
}

// NewCached wraps a classifier with prediction memoization.
func NewCached(inner Classifier, store cache.Cache, ttl time.Duration) *Cached {
	return &Cached{inner: inner, store: store, ttl: ttl}
}

// Name returns the wrapped backend name.
func (c *Cached) Name() string {
	return c.inner.Name()
}

// Classify returns a cached prediction when available, otherwise
// delegates and stores the result. Cache failures are ignored; the
// backend answer always wins.
func (c *Cached) Classify(ctx context.Context, text string) (Prediction, error) {
	key := cache.Key(c.inner.Name(), text)
	if raw, found := c.store.Get(key); found {
		var pred Prediction
		if err := json.Unmarshal(raw, &pred); err == nil {
			return pred, nil
		}
	}

	pred, err := c.inner.Classify(ctx, text)
	if err != nil {
		return Prediction{}, err
	}
	if raw, err := json.Marshal(pred); err == nil {
		_ = c.store.Set(key, raw, c.ttl)
	}
	return pred, nil
}
