package model

import (
	"strings"
)

// InputKind distinguishes plain text from URL-derived input.
type InputKind string

const (
	KindText InputKind = "text"
	KindURL  InputKind = "url"
)

// AnalysisInput is one piece of news text to score. URL-kind input
// arrives with the article text already extracted by an external
// scraper; the core never fetches pages itself.
type AnalysisInput struct {
	Kind         InputKind `json:"kind"`
	Text         string    `json:"text"`
	SourceDomain string    `json:"source_domain,omitempty"` // set only for URL-kind input
}

// TextInput builds a plain-text input.
func TextInput(text string) AnalysisInput {
	return AnalysisInput{Kind: KindText, Text: text}
}

// URLInput builds a URL-derived input from pre-extracted article text
// and the domain it came from.
func URLInput(text, sourceDomain string) AnalysisInput {
	return AnalysisInput{Kind: KindURL, Text: text, SourceDomain: sourceDomain}
}

// Validate checks the input against the configured minimum text length.
func (in AnalysisInput) Validate(minLength int) error {
	trimmed := strings.TrimSpace(in.Text)
	if trimmed == "" {
		return NewInputError("text is empty")
	}
	if len(trimmed) < minLength {
		return NewInputError("text shorter than %d characters", minLength)
	}
	if in.Kind != KindURL && in.SourceDomain != "" {
		return NewInputError("source_domain is only valid for url input")
	}
	return nil
}
