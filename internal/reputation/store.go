// Package reputation maps publisher domains to a static credibility
// prior in [0,1].
package reputation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

// Store is a read-only domain-to-score table with a neutral default for
// unknown domains. It is loaded once at process start; reloading
// requires an explicit re-init.
type Store struct {
	scores  map[string]float64
	neutral float64
}

// NewStore builds a store from an in-memory table. Keys are normalized
// on insertion.
func NewStore(scores map[string]float64, neutral float64) *Store {
	normalized := make(map[string]float64, len(scores))
	for domain, score := range scores {
		normalized[Normalize(domain)] = score
	}
	return &Store{scores: normalized, neutral: neutral}
}

// Load reads the reputation table from a JSON file mapping domain to
// score. A missing file yields an empty store (every lookup answers the
// neutral default); a malformed file or out-of-range score is a fatal
// configuration error.
func Load(path string, neutral float64) (*Store, error) {
	if path == "" {
		return NewStore(nil, neutral), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewStore(nil, neutral), nil
	}
	if err != nil {
		return nil, &model.ConfigError{Field: "reputation.file", Reason: err.Error()}
	}

	var scores map[string]float64
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, &model.ConfigError{Field: "reputation.file", Reason: fmt.Sprintf("parse %s: %v", path, err)}
	}
	for domain, score := range scores {
		if score < 0 || score > 1 {
			return nil, &model.ConfigError{
				Field:  "reputation.file",
				Reason: fmt.Sprintf("score for %q is %g, must be in [0,1]", domain, score),
			}
		}
	}
	return NewStore(scores, neutral), nil
}

// Lookup returns the reputation for a domain and whether it was known.
// Unknown domains resolve to the neutral default; a miss is not an
// error. Matching is exact after normalization, with no wildcard or
// subdomain inference.
func (s *Store) Lookup(domain string) (float64, bool) {
	score, ok := s.scores[Normalize(domain)]
	if !ok {
		return s.neutral, false
	}
	return score, true
}

// Len reports the number of known domains.
func (s *Store) Len() int {
	return len(s.scores)
}

// Normalize lower-cases a domain and strips a single leading "www.".
func Normalize(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimPrefix(d, "www.")
}
