package classify

import (
	"errors"
	"testing"

	"github.com/ppiankov/veracity/internal/model"
)

func TestParsePrediction(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  bool
		wantPred Prediction
	}{
		{
			name:     "plain json",
			content:  `{"label":"FAKE","confidence":0.92}`,
			wantPred: Prediction{RawLabel: "FAKE", Confidence: 0.92},
		},
		{
			name:     "fenced json",
			content:  "```json\n{\"label\":\"REAL\",\"confidence\":0.7}\n```",
			wantPred: Prediction{RawLabel: "REAL", Confidence: 0.7},
		},
		{
			name:     "surrounding prose",
			content:  `The verdict is {"label":"SATIRE","confidence":0.6} based on tone.`,
			wantPred: Prediction{RawLabel: "SATIRE", Confidence: 0.6},
		},
		{
			name:     "confidence clamped",
			content:  `{"label":"FAKE","confidence":1.7}`,
			wantPred: Prediction{RawLabel: "FAKE", Confidence: 1},
		},
		{
			name:    "no json",
			content: "cannot classify",
			wantErr: true,
		},
		{
			name:    "missing label",
			content: `{"confidence":0.5}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := parsePrediction(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", pred)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePrediction failed: %v", err)
			}
			if pred != tt.wantPred {
				t.Errorf("parsePrediction = %+v, want %+v", pred, tt.wantPred)
			}
		})
	}
}

func TestNewOpenAIClassifier_RequiresKey(t *testing.T) {
	_, err := NewOpenAIClassifier(model.ModelConfig{Name: "gpt-4o-mini"})
	if !errors.Is(err, model.ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable without API key, got %v", err)
	}
}

func TestFactory_SelectsBackend(t *testing.T) {
	for _, name := range []string{"", "heuristic", "Stub", "mock"} {
		c, err := New(model.ModelConfig{Name: name, MaxLength: 100})
		if err != nil {
			t.Fatalf("New(%q) failed: %v", name, err)
		}
		if c.Name() != "heuristic" {
			t.Errorf("New(%q).Name() = %q, want heuristic", name, c.Name())
		}
	}

	c, err := New(model.ModelConfig{Name: "gpt-4o-mini", APIKey: "test-key", MaxLength: 100})
	if err != nil {
		t.Fatalf("New(gpt-4o-mini) failed: %v", err)
	}
	if c.Name() != "gpt-4o-mini" {
		t.Errorf("Name() = %q, want gpt-4o-mini", c.Name())
	}
}
