package classify

import (
	"context"
	"fmt"
	"sync"

	"github.com/ppiankov/veracity/internal/model"
)

// Lazy defers backend construction until first use and then reuses the
// instance for the process lifetime. Concurrent first callers share a
// single load: at most one build runs, the rest wait on it. The load
// outcome, success or failure, is cached.
type Lazy struct {
	build func() (Classifier, error)

	once       sync.Once
	classifier Classifier
	err        error
}

// NewLazy wraps a build function with load-once semantics.
func NewLazy(build func() (Classifier, error)) *Lazy {
	return &Lazy{build: build}
}

func (l *Lazy) load() {
	l.once.Do(func() {
		l.classifier, l.err = l.build()
	})
}

// Name returns the backend name, triggering the load if needed.
func (l *Lazy) Name() string {
	l.load()
	if l.err != nil {
		return "unavailable"
	}
	return l.classifier.Name()
}

// Classify delegates to the loaded backend.
func (l *Lazy) Classify(ctx context.Context, text string) (Prediction, error) {
	l.load()
	if l.err != nil {
		return Prediction{}, fmt.Errorf("%w: %v", model.ErrModelUnavailable, l.err)
	}
	return l.classifier.Classify(ctx, text)
}
