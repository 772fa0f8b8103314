package classify

import (
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

// New builds a classifier from the configured model identifier.
// "heuristic" (or empty) selects the deterministic stub; any other name
// is treated as an OpenAI model. Swapping backends requires only a
// configuration change, never a caller change.
func New(cfg model.ModelConfig) (Classifier, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Name)) {
	case "", "heuristic", "stub", "mock":
		return NewHeuristic(cfg.MaxLength), nil
	default:
		return NewOpenAIClassifier(cfg)
	}
}
