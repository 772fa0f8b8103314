// Package segment splits raw text into ordered sentences for granular
// analysis.
package segment

import (
	"iter"
	"slices"
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

// Sentence is one sentence of the input text with its zero-based
// position among the emitted sentences.
type Sentence struct {
	Text     string
	Position int
}

// Sentences returns a lazy, restartable sequence over the sentences of
// text in original order. A sentence boundary is terminal punctuation
// (. ! ?) followed by whitespace or end of text; abbreviation and
// decimal false positives are tolerated, not corrected. Whitespace-only
// fragments are dropped.
func Sentences(text string) iter.Seq[Sentence] {
	return func(yield func(Sentence) bool) {
		pos := 0
		start := 0
		for i := 0; i < len(text); i++ {
			c := text[i]
			if c != '.' && c != '!' && c != '?' {
				continue
			}
			if i+1 < len(text) && !isSpace(text[i+1]) {
				continue
			}
			frag := strings.TrimSpace(text[start : i+1])
			start = i + 1
			if frag == "" {
				continue
			}
			if !yield(Sentence{Text: frag, Position: pos}) {
				return
			}
			pos++
		}
		if frag := strings.TrimSpace(text[start:]); frag != "" {
			yield(Sentence{Text: frag, Position: pos})
		}
	}
}

// Split materializes Sentences. It fails with an InputError when the
// text is empty after trimming.
func Split(text string) ([]Sentence, error) {
	if strings.TrimSpace(text) == "" {
		return nil, model.NewInputError("cannot segment empty text")
	}
	return slices.Collect(Sentences(text)), nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
