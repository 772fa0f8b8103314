package model

// Label is the canonical classification vocabulary. Normalization always
// resolves to one of these; unrecognized raw labels never pass through.
type Label string

const (
	LabelFake   Label = "Fake"
	LabelReal   Label = "Real"
	LabelBiased Label = "Biased"
	LabelSatire Label = "Satire"
)

// Credible reports whether the label counts as credible for the model
// score component. Fake, Biased and Satire all lower credibility.
func (l Label) Credible() bool {
	return l == LabelReal
}

// Valid reports whether l is one of the canonical labels.
func (l Label) Valid() bool {
	switch l {
	case LabelFake, LabelReal, LabelBiased, LabelSatire:
		return true
	}
	return false
}

// SentenceScore is the per-sentence suspicion assessment. Position is
// the zero-based index in the original text; slices are ordered by
// position at creation and re-ordered by suspicion only in the top-K
// highlight view.
type SentenceScore struct {
	Sentence       string  `json:"sentence"`
	Position       int     `json:"position"`
	SuspicionScore float64 `json:"suspicion_score"` // [0,1]
	Label          Label   `json:"label"`
}

// FactCheckVerdict is one piece of external fact-check evidence.
// IsMock marks the sentinel returned when the evidence service could
// not be queried at all, as opposed to "queried, no match found".
type FactCheckVerdict struct {
	Claim      string `json:"claim"`
	URL        string `json:"url"`
	Verdict    string `json:"verdict"`
	Publisher  string `json:"publisher"`
	ReviewDate string `json:"review_date,omitempty"`
	IsMock     bool   `json:"is_mock"`
}

// ScoreBreakdown exposes the three weighted components, each in [0,100].
type ScoreBreakdown struct {
	ModelScore     float64 `json:"model_score"`
	FactCheckScore float64 `json:"factcheck_score"`
	SourceScore    float64 `json:"source_score"`
}

// Explainability describes how the highlight analysis was produced.
type Explainability struct {
	Method  string `json:"method"`
	Details string `json:"details"`
}

// AnalysisMeta carries non-scoring metadata about one analysis.
type AnalysisMeta struct {
	TextLength        int  `json:"text_length"`
	SentencesAnalyzed int  `json:"sentences_analyzed"`
	ModelTruncated    bool `json:"model_truncated"`
	DegradedModel     bool `json:"degraded_model,omitempty"` // heuristic fallback was substituted
}

// CredibilityResult is the sole output artifact of the core. It is
// built once per request and never mutated afterwards; field names and
// numeric ranges are the compatibility contract with external consumers.
type CredibilityResult struct {
	Label            Label              `json:"label"`
	ModelConfidence  float64            `json:"model_confidence"`  // [0,1]
	CredibilityScore float64            `json:"credibility_score"` // [0,100], rounded to one decimal
	Breakdown        ScoreBreakdown     `json:"breakdown"`
	Highlights       []SentenceScore    `json:"highlights"` // top-K by suspicion desc
	FactCheck        []FactCheckVerdict `json:"fact_check"`
	Source           string             `json:"source,omitempty"`
	SourceReputation *float64           `json:"source_reputation,omitempty"` // [0,1]
	Explainability   Explainability     `json:"explainability"`
	Meta             AnalysisMeta       `json:"metadata"`
}
