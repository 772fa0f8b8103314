package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/veracity/internal/model"
)

// HistoryEntry is one remembered analysis, newest first in listings.
type HistoryEntry struct {
	ID           string                   `json:"id"`
	CreatedAt    time.Time                `json:"created_at"`
	Kind         model.InputKind          `json:"kind"`
	TextLength   int                      `json:"text_length"`
	SourceDomain string                   `json:"source_domain,omitempty"`
	Result       *model.CredibilityResult `json:"result"`
}

// History keeps recent analyses in memory, bounded by size and age.
// It lives entirely outside the scoring core and holds no references
// the core depends on.
type History struct {
	mu      sync.Mutex
	entries []HistoryEntry // newest first
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

// NewHistory creates a bounded in-memory history.
func NewHistory(maxSize int, ttl time.Duration) *History {
	return &History{maxSize: maxSize, ttl: ttl, now: time.Now}
}

// Add records one analysis and returns its entry.
func (h *History) Add(in model.AnalysisInput, result *model.CredibilityResult) HistoryEntry {
	entry := HistoryEntry{
		ID:           uuid.NewString(),
		CreatedAt:    h.now().UTC(),
		Kind:         in.Kind,
		TextLength:   len(in.Text),
		SourceDomain: in.SourceDomain,
		Result:       result,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append([]HistoryEntry{entry}, h.prunedLocked()...)
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[:h.maxSize]
	}
	return entry
}

// List returns the remembered analyses, newest first.
func (h *History) List() []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = h.prunedLocked()
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) prunedLocked() []HistoryEntry {
	if h.ttl <= 0 {
		return h.entries
	}
	cutoff := h.now().Add(-h.ttl)
	kept := h.entries[:0:0]
	for _, e := range h.entries {
		if e.CreatedAt.After(cutoff) {
			kept = append(kept, e)
		}
	}
	return kept
}
