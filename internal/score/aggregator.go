// Package score combines classifier confidence, fact-check evidence and
// source reputation into one 0-100 credibility score.
package score

import (
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

// Aggregator applies the weighted combination and label mapping that
// turn the three independent signals into a final, explainable verdict.
type Aggregator struct {
	weights          model.Weights
	neutralFactCheck float64
	neutralSource    float64
	highlightCount   int
}

// NewAggregator creates an aggregator from validated scoring config.
func NewAggregator(cfg model.ScoringConfig) *Aggregator {
	return &Aggregator{
		weights:          cfg.Weights,
		neutralFactCheck: cfg.NeutralFactCheck,
		neutralSource:    cfg.NeutralSource,
		highlightCount:   cfg.HighlightCount,
	}
}

// Inputs are the per-request signals feeding one aggregation.
type Inputs struct {
	Label      model.Label
	Confidence float64               // [0,1], whole-text model confidence
	Sentences  []model.SentenceScore // original order
	Verdicts   []model.FactCheckVerdict
	Reputation *float64 // [0,1]; nil when the input carried no source domain
}

// Outcome is the aggregation result.
type Outcome struct {
	CredibilityScore float64 // [0,100], rounded to one decimal
	Breakdown        model.ScoreBreakdown
	Highlights       []model.SentenceScore
}

// Aggregate computes the weighted credibility score. The weighted sum
// runs on unrounded component values; rounding to one decimal happens
// only for presentation.
func (a *Aggregator) Aggregate(in Inputs) Outcome {
	modelScore := a.modelScore(in.Label, in.Confidence)
	factScore := a.factCheckScore(in.Verdicts)

	wModel := a.weights.Model
	wFact := a.weights.FactCheck
	wSource := a.weights.Source
	sourceScore := a.neutralSource

	if in.Reputation != nil {
		sourceScore = *in.Reputation * 100
	} else {
		// No source signal: drop the source weight and re-distribute it
		// proportionally across the two remaining components.
		remaining := wModel + wFact
		wModel /= remaining
		wFact /= remaining
		wSource = 0
	}

	total := wModel*modelScore + wFact*factScore + wSource*sourceScore

	return Outcome{
		CredibilityScore: round1(total),
		Breakdown: model.ScoreBreakdown{
			ModelScore:     round1(modelScore),
			FactCheckScore: round1(factScore),
			SourceScore:    round1(sourceScore),
		},
		Highlights: a.highlights(in.Sentences),
	}
}

// modelScore maps model confidence into [0,100]. High confidence in a
// non-credible label must lower the credibility component, hence the
// inversion for Fake, Biased and Satire.
func (a *Aggregator) modelScore(label model.Label, confidence float64) float64 {
	if label.Credible() {
		return confidence * 100
	}
	return (1 - confidence) * 100
}

// factCheckScore maps external verdicts into [0,100]: 100 when they
// unanimously corroborate the text, 0 when they unanimously contradict
// it, the configured neutral value when mixed, absent or mock.
func (a *Aggregator) factCheckScore(verdicts []model.FactCheckVerdict) float64 {
	if len(verdicts) == 0 {
		return a.neutralFactCheck
	}

	supporting, contradicting := 0, 0
	for _, v := range verdicts {
		if v.IsMock {
			return a.neutralFactCheck
		}
		switch classifyVerdict(v.Verdict) {
		case verdictSupporting:
			supporting++
		case verdictContradicting:
			contradicting++
		}
	}

	switch {
	case supporting == len(verdicts):
		return 100
	case contradicting == len(verdicts):
		return 0
	default:
		return a.neutralFactCheck
	}
}

type verdictClass int

const (
	verdictOther verdictClass = iota
	verdictSupporting
	verdictContradicting
)

// Contradicting keywords are checked first so "untrue" or "mostly
// false" can never match the "true" rule.
var (
	contradictingVerdicts = []string{"untrue", "false", "incorrect", "fabricated", "fake", "pants on fire"}
	supportingVerdicts    = []string{"true", "correct", "accurate", "verified"}
)

func classifyVerdict(verdict string) verdictClass {
	lower := strings.ToLower(verdict)
	for _, kw := range contradictingVerdicts {
		if strings.Contains(lower, kw) {
			return verdictContradicting
		}
	}
	for _, kw := range supportingVerdicts {
		if strings.Contains(lower, kw) {
			return verdictSupporting
		}
	}
	return verdictOther
}

// highlights returns the top-K sentences by suspicion descending, ties
// broken by original position ascending. The input slice is not
// mutated; this is a view, not a re-ordering.
func (a *Aggregator) highlights(sentences []model.SentenceScore) []model.SentenceScore {
	ranked := slices.Clone(sentences)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].SuspicionScore != ranked[j].SuspicionScore {
			return ranked[i].SuspicionScore > ranked[j].SuspicionScore
		}
		return ranked[i].Position < ranked[j].Position
	})
	if len(ranked) > a.highlightCount {
		ranked = ranked[:a.highlightCount]
	}
	return ranked
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
