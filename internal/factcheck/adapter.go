// Package factcheck queries an external fact-check evidence service and
// degrades to a mock sentinel whenever the service cannot be reached.
package factcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/util"
	"github.com/ppiankov/veracity/internal/worker"
)

// MockVerdict is the fixed verdict string on the sentinel result that
// signals "the evidence service could not be queried at all". An empty
// verdict slice, by contrast, means "queried successfully, no match".
const MockVerdict = "fact-check service unavailable"

// Checker looks up external fact-check evidence for a piece of text.
// Implementations never fail the caller: infrastructure problems are
// converted to the mock sentinel.
type Checker interface {
	Lookup(ctx context.Context, text string) []model.FactCheckVerdict
	Configured() bool
}

// Client queries the Google Fact Check Tools claims:search API.
type Client struct {
	apiKey     string
	endpoint   string
	maxClaims  int
	httpClient *http.Client
	limiter    *worker.Limiter
	log        *slog.Logger
}

// NewClient creates a fact-check client. With no API key configured it
// stays in degraded mode and always answers with the mock sentinel.
func NewClient(cfg model.FactCheckConfig, log *slog.Logger) *Client {
	return &Client{
		apiKey:    cfg.APIKey,
		endpoint:  cfg.Endpoint,
		maxClaims: cfg.MaxClaims,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
		},
		limiter: worker.NewLimiter(cfg.RatePerSec, cfg.Burst),
		log:     log,
	}
}

// Configured reports whether a credential is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Lookup extracts claim candidates from text and queries each one.
// Single attempt per claim, fail-fast: the first transport or payload
// failure turns the whole lookup into the mock sentinel.
func (c *Client) Lookup(ctx context.Context, text string) []model.FactCheckVerdict {
	if !c.Configured() {
		return mockResult()
	}

	claims := ExtractClaims(text, c.maxClaims)
	verdicts := []model.FactCheckVerdict{}
	for _, claim := range claims {
		found, err := c.query(ctx, claim)
		if err != nil {
			c.log.Warn("fact-check query failed, degrading to mock sentinel", "error", err)
			return mockResult()
		}
		verdicts = append(verdicts, found...)
		if len(verdicts) >= c.maxClaims {
			verdicts = verdicts[:c.maxClaims]
			break
		}
	}
	return verdicts
}

func (c *Client) query(ctx context.Context, claim string) ([]model.FactCheckVerdict, error) {
	host := c.endpoint
	if u, err := url.Parse(c.endpoint); err == nil {
		host = u.Host
	}
	if err := c.limiter.Wait(ctx, host); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("query", claim)
	params.Set("languageCode", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var verdicts []model.FactCheckVerdict
	for _, apiClaim := range payload.Claims {
		if len(apiClaim.ClaimReview) == 0 {
			continue
		}
		review := apiClaim.ClaimReview[0]
		claimText := apiClaim.Text
		if claimText == "" {
			claimText = claim
		}
		verdicts = append(verdicts, model.FactCheckVerdict{
			Claim:      claimText,
			URL:        review.URL,
			Verdict:    review.TextualRating,
			Publisher:  review.Publisher.Name,
			ReviewDate: review.ReviewDate,
		})
	}
	return verdicts, nil
}

// searchResponse mirrors the claims:search payload shape.
type searchResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		ClaimReview []struct {
			URL           string `json:"url"`
			TextualRating string `json:"textualRating"`
			ReviewDate    string `json:"reviewDate"`
			Publisher     struct {
				Name string `json:"name"`
			} `json:"publisher"`
		} `json:"claimReview"`
	} `json:"claims"`
}

func mockResult() []model.FactCheckVerdict {
	return []model.FactCheckVerdict{{
		Claim:     "Fact-check evidence could not be retrieved",
		Verdict:   MockVerdict,
		Publisher: "system",
		IsMock:    true,
	}}
}
