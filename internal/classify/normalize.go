package classify

import (
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

// Normalizer maps heterogeneous raw classifier labels onto the
// canonical set. Rules are substring matches against the lower-cased
// raw label, evaluated in order; the first match wins.
type Normalizer struct {
	rules     []model.LabelRule
	threshold float64
}

// NewNormalizer creates a normalizer from an ordered rule table and the
// suspicious-confidence threshold used for unmapped labels.
func NewNormalizer(cfg model.LabelConfig) *Normalizer {
	rules := cfg.Rules
	if len(rules) == 0 {
		rules = model.DefaultLabelRules()
	}
	return &Normalizer{rules: rules, threshold: cfg.SuspiciousThreshold}
}

// Normalize resolves a raw label to a canonical one. Labels matching no
// rule fall back by confidence: a high-confidence unknown class is
// treated as suspicious and resolves to Fake, otherwise Real.
func (n *Normalizer) Normalize(rawLabel string, confidence float64) model.Label {
	lower := strings.ToLower(strings.TrimSpace(rawLabel))
	for _, r := range n.rules {
		if strings.Contains(lower, r.Match) {
			return r.Label
		}
	}
	if confidence > n.threshold {
		return model.LabelFake
	}
	return model.LabelReal
}
