package model

import (
	"strings"
	"testing"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "weights do not sum to one",
			mutate:    func(c *Config) { c.Scoring.Weights.Model = 0.9 },
			wantField: "scoring.weights",
		},
		{
			name:      "negative weight",
			mutate:    func(c *Config) { c.Scoring.Weights.Source = -0.2; c.Scoring.Weights.Model = 0.7 },
			wantField: "scoring.weights",
		},
		{
			name: "source-only weights",
			mutate: func(c *Config) {
				c.Scoring.Weights = Weights{Model: 0, FactCheck: 0, Source: 1}
			},
			wantField: "scoring.weights",
		},
		{
			name:      "neutral factcheck out of range",
			mutate:    func(c *Config) { c.Scoring.NeutralFactCheck = 150 },
			wantField: "scoring.neutral_factcheck",
		},
		{
			name:      "zero highlight count",
			mutate:    func(c *Config) { c.Scoring.HighlightCount = 0 },
			wantField: "scoring.highlight_count",
		},
		{
			name:      "suspicious threshold above one",
			mutate:    func(c *Config) { c.Labels.SuspiciousThreshold = 1.5 },
			wantField: "labels.suspicious_threshold",
		},
		{
			name:      "empty rule match",
			mutate:    func(c *Config) { c.Labels.Rules[0].Match = "" },
			wantField: "labels.rules[0].match",
		},
		{
			name:      "non-canonical rule label",
			mutate:    func(c *Config) { c.Labels.Rules[2].Label = Label("Dubious") },
			wantField: "labels.rules[2].label",
		},
		{
			name:      "zero max length",
			mutate:    func(c *Config) { c.Model.MaxLength = 0 },
			wantField: "model.max_length",
		},
		{
			name:      "zero sentence workers",
			mutate:    func(c *Config) { c.Model.SentenceWorkers = 0 },
			wantField: "model.sentence_workers",
		},
		{
			name:      "empty factcheck endpoint",
			mutate:    func(c *Config) { c.FactCheck.Endpoint = "" },
			wantField: "factcheck.endpoint",
		},
		{
			name:      "reputation neutral out of range",
			mutate:    func(c *Config) { c.Reputation.Neutral = 2 },
			wantField: "reputation.neutral",
		},
		{
			name:      "zero history size",
			mutate:    func(c *Config) { c.Server.HistorySize = 0 },
			wantField: "server.history_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			cfgErr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("expected *ConfigError, got %T: %v", err, err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestValidate_WeightToleranceAcceptsFloatNoise(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scoring.Weights = Weights{Model: 0.1 + 0.2, FactCheck: 0.3, Source: 0.4}
	if err := cfg.Validate(); err != nil {
		t.Errorf("float noise within tolerance rejected: %v", err)
	}
}

func TestDefaultLabelRules_FakeBeforeReal(t *testing.T) {
	unreliable, reliable := -1, -1
	for i, r := range DefaultLabelRules() {
		if r.Match == "unreliable" {
			unreliable = i
		}
		if r.Match == "reliable" {
			reliable = i
		}
	}
	if unreliable < 0 || reliable < 0 {
		t.Fatal("expected both unreliable and reliable rules")
	}
	if unreliable > reliable {
		t.Error("unreliable must be listed before reliable")
	}
}

func TestConfigError_Message(t *testing.T) {
	err := &ConfigError{Field: "scoring.weights", Reason: "must sum to 1.0"}
	if !strings.Contains(err.Error(), "scoring.weights") {
		t.Errorf("message does not name the field: %q", err.Error())
	}
}
