package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ppiankov/veracity/internal/model"
)

const classifySystemPrompt = "You are a news credibility classifier. " +
	"Given an article or sentence, respond with ONLY a JSON object of the form " +
	`{"label":"FAKE|REAL|BIASED|SATIRE","confidence":0.0} ` +
	"where confidence is your probability for the chosen label. No other text."

// OpenAIClassifier runs classification through OpenAI's chat completion
// API. Any model exposed by the API can back it; the model name is the
// configuration seam.
type OpenAIClassifier struct {
	client    *openai.Client
	model     string
	maxLength int
	timeout   time.Duration
}

// NewOpenAIClassifier creates the OpenAI-backed classifier.
func NewOpenAIClassifier(cfg model.ModelConfig) (*OpenAIClassifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai classifier %q: %w: no API key configured", cfg.Name, model.ErrModelUnavailable)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIClassifier{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.Name,
		maxLength: cfg.MaxLength,
		timeout:   timeout,
	}, nil
}

// Name returns the configured model identifier.
func (c *OpenAIClassifier) Name() string {
	return c.model
}

// Classify sends one text unit for classification. Long inputs are
// truncated to the configured maximum before inference and the cut is
// recorded on the prediction.
func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (Prediction, error) {
	truncated, wasCut := Truncate(text, c.maxLength)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: truncated},
		},
		MaxTokens:   64,
		Temperature: 0,
	})
	if err != nil {
		return Prediction{}, fmt.Errorf("openai inference: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Prediction{}, fmt.Errorf("openai inference: empty response")
	}

	pred, err := parsePrediction(resp.Choices[0].Message.Content)
	if err != nil {
		return Prediction{}, err
	}
	pred.Truncated = wasCut
	return pred, nil
}

// parsePrediction extracts the label/confidence JSON from a completion,
// tolerating surrounding prose or code fences.
func parsePrediction(content string) (Prediction, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return Prediction{}, fmt.Errorf("openai inference: no JSON object in response %q", content)
	}

	var parsed struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err != nil {
		return Prediction{}, fmt.Errorf("openai inference: parse response: %w", err)
	}
	if parsed.Label == "" {
		return Prediction{}, fmt.Errorf("openai inference: response has no label")
	}

	return Prediction{
		RawLabel:   parsed.Label,
		Confidence: clamp01(parsed.Confidence),
	}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
