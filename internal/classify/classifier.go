// Package classify wraps text-classification backends behind a single
// capability interface and normalizes their label vocabularies.
package classify

import (
	"context"
	"unicode/utf8"
)

// Prediction is a raw backend output before label normalization.
type Prediction struct {
	RawLabel   string  `json:"raw_label"`
	Confidence float64 `json:"confidence"` // [0,1]
	Truncated  bool    `json:"truncated"`  // input exceeded the configured maximum
}

// Classifier is the single seam between the aggregator and any specific
// model family. Implementations must be safe for concurrent use.
type Classifier interface {
	// Name identifies the backend for logging and cache keying.
	Name() string

	// Classify returns a raw label and confidence for one text unit.
	Classify(ctx context.Context, text string) (Prediction, error)
}

// Truncate bounds text to maxLen bytes on a rune boundary and reports
// whether anything was cut.
func Truncate(text string, maxLen int) (string, bool) {
	if maxLen <= 0 || len(text) <= maxLen {
		return text, false
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut], true
}
