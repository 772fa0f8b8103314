package model

import (
	"fmt"
	"math"
)

const weightTolerance = 1e-6

// Config is the complete application configuration. It is loaded once
// at startup and validated before any component is constructed; an
// invalid configuration aborts initialization.
type Config struct {
	Model      ModelConfig      `yaml:"model" mapstructure:"model"`
	Labels     LabelConfig      `yaml:"labels" mapstructure:"labels"`
	FactCheck  FactCheckConfig  `yaml:"factcheck" mapstructure:"factcheck"`
	Reputation ReputationConfig `yaml:"reputation" mapstructure:"reputation"`
	Scoring    ScoringConfig    `yaml:"scoring" mapstructure:"scoring"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
}

// ModelConfig selects and bounds the classifier backend.
type ModelConfig struct {
	// Name identifies the backend: "heuristic" (or empty) for the
	// deterministic keyword stub, anything else is an OpenAI model name.
	Name string `yaml:"name" mapstructure:"name"`

	APIKey    string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	MaxLength int    `yaml:"max_length" mapstructure:"max_length"` // characters before truncation
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"`       // seconds per inference call

	SentenceWorkers   int `yaml:"sentence_workers" mapstructure:"sentence_workers"`
	MinSentenceLength int `yaml:"min_sentence_length" mapstructure:"min_sentence_length"`

	CacheTTL int `yaml:"cache_ttl" mapstructure:"cache_ttl"` // seconds; 0 disables memoization
}

// LabelRule maps a lower-cased raw-label substring to a canonical label.
type LabelRule struct {
	Match string `yaml:"match" mapstructure:"match"`
	Label Label  `yaml:"label" mapstructure:"label"`
}

// LabelConfig drives raw-label normalization. Rules are evaluated in
// order; the first substring match wins.
type LabelConfig struct {
	Rules []LabelRule `yaml:"rules" mapstructure:"rules"`

	// SuspiciousThreshold decides the fallback for unmapped labels:
	// confidence above it resolves to Fake, otherwise Real.
	SuspiciousThreshold float64 `yaml:"suspicious_threshold" mapstructure:"suspicious_threshold"`
}

// FactCheckConfig configures the external evidence service.
type FactCheckConfig struct {
	APIKey     string  `yaml:"api_key,omitempty" mapstructure:"api_key"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Timeout    int     `yaml:"timeout" mapstructure:"timeout"` // seconds per lookup call
	MaxClaims  int     `yaml:"max_claims" mapstructure:"max_claims"`
	RatePerSec float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	Burst      int     `yaml:"burst" mapstructure:"burst"`
	HTTPProxy  string  `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string  `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// ReputationConfig locates the static domain-reputation table.
type ReputationConfig struct {
	File    string  `yaml:"file,omitempty" mapstructure:"file"`
	Neutral float64 `yaml:"neutral" mapstructure:"neutral"` // [0,1] default for unknown domains
}

// Weights are the aggregation weights. They must sum to 1.0.
type Weights struct {
	Model     float64 `yaml:"model" mapstructure:"model"`
	FactCheck float64 `yaml:"factcheck" mapstructure:"factcheck"`
	Source    float64 `yaml:"source" mapstructure:"source"`
}

// ScoringConfig drives the credibility aggregator.
type ScoringConfig struct {
	Weights Weights `yaml:"weights" mapstructure:"weights"`

	NeutralFactCheck float64 `yaml:"neutral_factcheck" mapstructure:"neutral_factcheck"` // [0,100]
	NeutralSource    float64 `yaml:"neutral_source" mapstructure:"neutral_source"`       // [0,100]
	HighlightCount   int     `yaml:"highlight_count" mapstructure:"highlight_count"`
	MinTextLength    int     `yaml:"min_text_length" mapstructure:"min_text_length"`
}

// ServerConfig configures the HTTP boundary.
type ServerConfig struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	HistorySize    int      `yaml:"history_size" mapstructure:"history_size"`
	HistoryTTL     int      `yaml:"history_ttl" mapstructure:"history_ttl"` // seconds
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			Name:              "heuristic",
			MaxLength:         2048,
			Timeout:           30,
			SentenceWorkers:   4,
			MinSentenceLength: 10,
			CacheTTL:          300,
		},
		Labels: LabelConfig{
			Rules:               DefaultLabelRules(),
			SuspiciousThreshold: 0.65,
		},
		FactCheck: FactCheckConfig{
			Endpoint:   "https://factchecktools.googleapis.com/v1alpha1/claims:search",
			Timeout:    10,
			MaxClaims:  5,
			RatePerSec: 2,
			Burst:      2,
		},
		Reputation: ReputationConfig{
			Neutral: 0.5,
		},
		Scoring: ScoringConfig{
			Weights: Weights{
				Model:     0.5,
				FactCheck: 0.3,
				Source:    0.2,
			},
			NeutralFactCheck: 50,
			NeutralSource:    50,
			HighlightCount:   3,
			MinTextLength:    10,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
			HistorySize:    100,
			HistoryTTL:     3600,
		},
	}
}

// DefaultLabelRules covers the common classifier vocabularies: binary
// fake/real, HF-style LABEL_N, sentiment-style and multi-class schemes.
// Fake-ish substrings come first so "unreliable" cannot match "reliable".
func DefaultLabelRules() []LabelRule {
	return []LabelRule{
		{Match: "satire", Label: LabelSatire},
		{Match: "humor", Label: LabelSatire},
		{Match: "comedy", Label: LabelSatire},
		{Match: "parody", Label: LabelSatire},
		{Match: "bias", Label: LabelBiased},
		{Match: "opinion", Label: LabelBiased},
		{Match: "misleading", Label: LabelBiased},
		{Match: "unreliable", Label: LabelFake},
		{Match: "fake", Label: LabelFake},
		{Match: "false", Label: LabelFake},
		{Match: "fabricated", Label: LabelFake},
		{Match: "hoax", Label: LabelFake},
		{Match: "label_1", Label: LabelFake},
		{Match: "negative", Label: LabelFake},
		{Match: "real", Label: LabelReal},
		{Match: "true", Label: LabelReal},
		{Match: "reliable", Label: LabelReal},
		{Match: "factual", Label: LabelReal},
		{Match: "label_0", Label: LabelReal},
		{Match: "positive", Label: LabelReal},
	}
}

// Validate checks the configuration. Any error here is fatal at startup.
func (c *Config) Validate() error {
	w := c.Scoring.Weights
	if w.Model < 0 || w.FactCheck < 0 || w.Source < 0 {
		return &ConfigError{Field: "scoring.weights", Reason: "weights must be non-negative"}
	}
	sum := w.Model + w.FactCheck + w.Source
	if math.Abs(sum-1.0) > weightTolerance {
		return &ConfigError{
			Field:  "scoring.weights",
			Reason: fmt.Sprintf("weights must sum to 1.0, got %g", sum),
		}
	}
	if w.Model+w.FactCheck <= 0 {
		// Re-normalization for text-only input divides by this sum.
		return &ConfigError{Field: "scoring.weights", Reason: "model and factcheck weights cannot both be zero"}
	}
	if c.Scoring.NeutralFactCheck < 0 || c.Scoring.NeutralFactCheck > 100 {
		return &ConfigError{Field: "scoring.neutral_factcheck", Reason: "must be in [0,100]"}
	}
	if c.Scoring.NeutralSource < 0 || c.Scoring.NeutralSource > 100 {
		return &ConfigError{Field: "scoring.neutral_source", Reason: "must be in [0,100]"}
	}
	if c.Scoring.HighlightCount <= 0 {
		return &ConfigError{Field: "scoring.highlight_count", Reason: "must be positive"}
	}
	if c.Scoring.MinTextLength <= 0 {
		return &ConfigError{Field: "scoring.min_text_length", Reason: "must be positive"}
	}
	if c.Labels.SuspiciousThreshold < 0 || c.Labels.SuspiciousThreshold > 1 {
		return &ConfigError{Field: "labels.suspicious_threshold", Reason: "must be in [0,1]"}
	}
	for i, r := range c.Labels.Rules {
		if r.Match == "" {
			return &ConfigError{Field: fmt.Sprintf("labels.rules[%d].match", i), Reason: "cannot be empty"}
		}
		if !r.Label.Valid() {
			return &ConfigError{
				Field:  fmt.Sprintf("labels.rules[%d].label", i),
				Reason: fmt.Sprintf("%q is not a canonical label", r.Label),
			}
		}
	}
	if c.Model.MaxLength <= 0 {
		return &ConfigError{Field: "model.max_length", Reason: "must be positive"}
	}
	if c.Model.SentenceWorkers <= 0 {
		return &ConfigError{Field: "model.sentence_workers", Reason: "must be positive"}
	}
	if c.Model.Timeout <= 0 {
		return &ConfigError{Field: "model.timeout", Reason: "must be positive"}
	}
	if c.FactCheck.Endpoint == "" {
		return &ConfigError{Field: "factcheck.endpoint", Reason: "cannot be empty"}
	}
	if c.FactCheck.Timeout <= 0 {
		return &ConfigError{Field: "factcheck.timeout", Reason: "must be positive"}
	}
	if c.FactCheck.MaxClaims <= 0 {
		return &ConfigError{Field: "factcheck.max_claims", Reason: "must be positive"}
	}
	if c.Reputation.Neutral < 0 || c.Reputation.Neutral > 1 {
		return &ConfigError{Field: "reputation.neutral", Reason: "must be in [0,1]"}
	}
	if c.Server.HistorySize <= 0 {
		return &ConfigError{Field: "server.history_size", Reason: "must be positive"}
	}
	return nil
}
