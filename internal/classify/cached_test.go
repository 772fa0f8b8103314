package classify

import (
	"context"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/veracity/internal/cache"
)

// countingClassifier counts backend calls.
type countingClassifier struct {
	inner Classifier
	calls atomic.Int32
}

func (c *countingClassifier) Name() string { return c.inner.Name() }

func (c *countingClassifier) Classify(ctx context.Context, text string) (Prediction, error) {
	c.calls.Add(1)
	return c.inner.Classify(ctx, text)
}

func TestCached_Memoizes(t *testing.T) {
	counting := &countingClassifier{inner: NewHeuristic(2048)}
	cached := NewCached(counting, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	text := "Breaking: miracle cure discovered, officials said."

	first, err := cached.Classify(context.Background(), text)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	second, err := cached.Classify(context.Background(), text)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached prediction differs: %+v vs %+v", first, second)
	}
	if got := counting.calls.Load(); got != 1 {
		t.Errorf("expected one backend call, got %d", got)
	}
}

func TestCached_DistinctTexts(t *testing.T) {
	counting := &countingClassifier{inner: NewHeuristic(2048)}
	cached := NewCached(counting, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)

	if _, err := cached.Classify(context.Background(), "first text here."); err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if _, err := cached.Classify(context.Background(), "second text here."); err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if got := counting.calls.Load(); got != 2 {
		t.Errorf("expected two backend calls, got %d", got)
	}
}
