package classify

import (
	"context"
	"strings"
)

// Keyword cues for the deterministic stub. The stub keeps downstream
// logic exercisable without an ML runtime.
var fakeIndicators = []string{
	"miracle cure", "shocking truth", "they don't want you to know",
	"breaking:", "scientists hate him", "doctors shocked",
	"big pharma", "leaked documents", "government secret",
}

var realIndicators = []string{
	"federal reserve", "announced today", "according to",
	"research shows", "study found", "data indicates",
	"officials said", "reported that",
}

// Heuristic is a deterministic keyword-based classifier. Identical
// input always produces an identical prediction.
type Heuristic struct {
	maxLength int
}

// NewHeuristic creates the stub backend.
func NewHeuristic(maxLength int) *Heuristic {
	return &Heuristic{maxLength: maxLength}
}

// Name returns the backend identifier.
func (h *Heuristic) Name() string {
	return "heuristic"
}

// Classify derives a pseudo-label and confidence from keyword presence.
func (h *Heuristic) Classify(_ context.Context, text string) (Prediction, error) {
	truncated, wasCut := Truncate(text, h.maxLength)
	lower := strings.ToLower(truncated)

	fakeHits := countIndicators(lower, fakeIndicators)
	realHits := countIndicators(lower, realIndicators)

	pred := Prediction{Truncated: wasCut}
	switch {
	case fakeHits > realHits:
		pred.RawLabel = "FAKE"
		pred.Confidence = min(0.9, 0.6+0.1*float64(fakeHits))
	case realHits > fakeHits:
		pred.RawLabel = "REAL"
		pred.Confidence = min(0.9, 0.6+0.1*float64(realHits))
	default:
		pred.RawLabel = "UNKNOWN"
		pred.Confidence = 0.5
	}
	return pred, nil
}

func countIndicators(lower string, indicators []string) int {
	n := 0
	for _, ind := range indicators {
		if strings.Contains(lower, ind) {
			n++
		}
	}
	return n
}
