package score

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ppiankov/veracity/internal/model"
)

func defaultScoring() model.ScoringConfig {
	return model.ScoringConfig{
		Weights:          model.Weights{Model: 0.5, FactCheck: 0.3, Source: 0.2},
		NeutralFactCheck: 50,
		NeutralSource:    50,
		HighlightCount:   3,
		MinTextLength:    10,
	}
}

func ptr(v float64) *float64 { return &v }

func TestAggregate_WeightedSumExact(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		// Random weights summing to 1.0.
		a, b, c := rng.Float64()+0.01, rng.Float64()+0.01, rng.Float64()+0.01
		sum := a + b + c
		w := model.Weights{Model: a / sum, FactCheck: b / sum, Source: c / sum}

		confidence := rng.Float64()
		reputation := rng.Float64()
		neutral := rng.Float64() * 100

		agg := NewAggregator(model.ScoringConfig{
			Weights:          w,
			NeutralFactCheck: neutral,
			NeutralSource:    50,
			HighlightCount:   3,
		})

		// Real label, no verdicts: model = conf*100, factcheck = neutral,
		// source = reputation*100.
		out := agg.Aggregate(Inputs{
			Label:      model.LabelReal,
			Confidence: confidence,
			Reputation: ptr(reputation),
		})

		want := w.Model*confidence*100 + w.FactCheck*neutral + w.Source*reputation*100
		want = math.Round(want*10) / 10

		if math.Abs(out.CredibilityScore-want) > 1e-9 {
			t.Fatalf("iteration %d: score = %v, want %v", i, out.CredibilityScore, want)
		}
		if out.CredibilityScore < 0 || out.CredibilityScore > 100 {
			t.Fatalf("iteration %d: score %v outside [0,100]", i, out.CredibilityScore)
		}
	}
}

func TestAggregate_ModelScoreInversion(t *testing.T) {
	agg := NewAggregator(defaultScoring())

	tests := []struct {
		label      model.Label
		confidence float64
		want       float64
	}{
		{model.LabelReal, 0.85, 85.0},
		{model.LabelFake, 0.9, 10.0},
		{model.LabelBiased, 0.8, 20.0},
		{model.LabelSatire, 0.7, 30.0},
	}
	for _, tt := range tests {
		out := agg.Aggregate(Inputs{Label: tt.label, Confidence: tt.confidence, Reputation: ptr(0.5)})
		if out.Breakdown.ModelScore != tt.want {
			t.Errorf("%s conf=%.2f: model score = %v, want %v", tt.label, tt.confidence, out.Breakdown.ModelScore, tt.want)
		}
	}
}

func TestAggregate_ModelScoreMonotonic(t *testing.T) {
	agg := NewAggregator(defaultScoring())

	// Rising confidence in Real strictly raises the model score.
	prev := -1.0
	for _, conf := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		out := agg.Aggregate(Inputs{Label: model.LabelReal, Confidence: conf, Reputation: ptr(0.5)})
		if out.Breakdown.ModelScore <= prev {
			t.Errorf("Real conf=%.1f: model score %v not strictly increasing from %v", conf, out.Breakdown.ModelScore, prev)
		}
		prev = out.Breakdown.ModelScore
	}

	// Rising confidence in Fake strictly lowers it.
	prev = 101.0
	for _, conf := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		out := agg.Aggregate(Inputs{Label: model.LabelFake, Confidence: conf, Reputation: ptr(0.5)})
		if out.Breakdown.ModelScore >= prev {
			t.Errorf("Fake conf=%.1f: model score %v not strictly decreasing from %v", conf, out.Breakdown.ModelScore, prev)
		}
		prev = out.Breakdown.ModelScore
	}
}

func TestAggregate_SourceWeightRedistribution(t *testing.T) {
	agg := NewAggregator(defaultScoring())

	// No reputation signal: w_model 0.5 -> 0.625, w_factcheck 0.3 -> 0.375.
	out := agg.Aggregate(Inputs{Label: model.LabelReal, Confidence: 0.85})

	want := math.Round((0.625*85+0.375*50)*10) / 10 // 71.9
	if out.CredibilityScore != want {
		t.Errorf("score = %v, want %v", out.CredibilityScore, want)
	}
	// The breakdown still reports the neutral source component.
	if out.Breakdown.SourceScore != 50 {
		t.Errorf("source score = %v, want neutral 50", out.Breakdown.SourceScore)
	}
}

func TestAggregate_FactCheckUnanimity(t *testing.T) {
	agg := NewAggregator(defaultScoring())

	verdict := func(rating string) model.FactCheckVerdict {
		return model.FactCheckVerdict{Claim: "c", Verdict: rating, Publisher: "p"}
	}

	tests := []struct {
		name     string
		verdicts []model.FactCheckVerdict
		want     float64
	}{
		{"unanimous support", []model.FactCheckVerdict{verdict("True"), verdict("Accurate")}, 100},
		{"unanimous contradiction", []model.FactCheckVerdict{verdict("False"), verdict("Pants on Fire")}, 0},
		{"mixed", []model.FactCheckVerdict{verdict("True"), verdict("False")}, 50},
		{"unclassified rating breaks unanimity", []model.FactCheckVerdict{verdict("True"), verdict("Unproven")}, 50},
		{"absent", nil, 50},
		{"mock sentinel", []model.FactCheckVerdict{{Verdict: "service down", IsMock: true}}, 50},
		{"untrue is contradiction", []model.FactCheckVerdict{verdict("Untrue")}, 0},
		{"mostly false is contradiction", []model.FactCheckVerdict{verdict("Mostly False")}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := agg.Aggregate(Inputs{Label: model.LabelReal, Confidence: 0.5, Verdicts: tt.verdicts, Reputation: ptr(0.5)})
			if out.Breakdown.FactCheckScore != tt.want {
				t.Errorf("factcheck score = %v, want %v", out.Breakdown.FactCheckScore, tt.want)
			}
		})
	}
}

func TestAggregate_Highlights(t *testing.T) {
	agg := NewAggregator(defaultScoring())

	sentences := []model.SentenceScore{
		{Sentence: "s0", Position: 0, SuspicionScore: 0.2},
		{Sentence: "s1", Position: 1, SuspicionScore: 0.9},
		{Sentence: "s2", Position: 2, SuspicionScore: 0.5},
		{Sentence: "s3", Position: 3, SuspicionScore: 0.9}, // tie with s1
		{Sentence: "s4", Position: 4, SuspicionScore: 0.7},
	}

	out := agg.Aggregate(Inputs{Label: model.LabelReal, Confidence: 0.5, Sentences: sentences, Reputation: ptr(0.5)})

	if len(out.Highlights) != 3 {
		t.Fatalf("expected 3 highlights, got %d", len(out.Highlights))
	}
	// Suspicion descending; the 0.9 tie resolves by position ascending.
	wantOrder := []string{"s1", "s3", "s4"}
	for i, want := range wantOrder {
		if out.Highlights[i].Sentence != want {
			t.Errorf("highlight[%d] = %s, want %s", i, out.Highlights[i].Sentence, want)
		}
	}

	// The input slice keeps its original order.
	for i, s := range sentences {
		if s.Position != i {
			t.Errorf("input mutated at %d: %+v", i, s)
		}
	}
}

func TestAggregate_HighlightsFewerThanK(t *testing.T) {
	agg := NewAggregator(defaultScoring())

	out := agg.Aggregate(Inputs{
		Label:      model.LabelReal,
		Confidence: 0.5,
		Sentences:  []model.SentenceScore{{Sentence: "only", Position: 0, SuspicionScore: 0.4}},
		Reputation: ptr(0.5),
	})
	if len(out.Highlights) != 1 {
		t.Errorf("expected 1 highlight, got %d", len(out.Highlights))
	}
}

func TestAggregate_RoundsToOneDecimal(t *testing.T) {
	agg := NewAggregator(defaultScoring())

	out := agg.Aggregate(Inputs{Label: model.LabelReal, Confidence: 0.333, Reputation: ptr(0.333)})

	for name, v := range map[string]float64{
		"credibility": out.CredibilityScore,
		"model":       out.Breakdown.ModelScore,
		"factcheck":   out.Breakdown.FactCheckScore,
		"source":      out.Breakdown.SourceScore,
	} {
		if math.Abs(v*10-math.Round(v*10)) > 1e-9 {
			t.Errorf("%s score %v not rounded to one decimal", name, v)
		}
	}
}

func TestAggregate_SensationalScenario(t *testing.T) {
	agg := NewAggregator(defaultScoring())

	// Stub classifier said ("FAKE", 0.9); no fact-check or source signal.
	out := agg.Aggregate(Inputs{Label: model.LabelFake, Confidence: 0.9})

	if out.Breakdown.ModelScore != 10.0 {
		t.Errorf("model score = %v, want 10.0", out.Breakdown.ModelScore)
	}
	if out.CredibilityScore >= 50 {
		t.Errorf("credibility %v, want < 50", out.CredibilityScore)
	}
}
