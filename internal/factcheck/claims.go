package factcheck

import (
	"regexp"

	"github.com/ppiankov/veracity/internal/segment"
)

const minClaimLength = 20

// Sentences containing numbers, reporting verbs or quantity words are
// the most likely to match a fact-check database entry.
var (
	digitPattern = regexp.MustCompile(`\d`)
	claimPattern = regexp.MustCompile(`(?i)\b(said|reported|according|study|research|data|percent|million|billion|thousand)\b`)
)

// ExtractClaims selects up to max sentences likely to contain checkable
// factual assertions, in original order.
func ExtractClaims(text string, max int) []string {
	var claims []string
	for s := range segment.Sentences(text) {
		if len(claims) >= max {
			break
		}
		if len(s.Text) <= minClaimLength {
			continue
		}
		if !digitPattern.MatchString(s.Text) && !claimPattern.MatchString(s.Text) {
			continue
		}
		claims = append(claims, s.Text)
	}
	return claims
}
