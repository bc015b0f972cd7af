package ranking

import (
	"strings"

	"github.com/hyperjump/kotae/internal/knowledge"
)

// KeywordScorer adds a fixed weight for every domain keyword that appears as
// a substring of both the lower-cased question and the lower-cased content.
// Substring matching is intentional: "gpt-4" counts for "gpt".
type KeywordScorer struct {
	weights []knowledge.KeywordWeight
}

// NewKeywordScorer creates a scorer over the given keyword table.
func NewKeywordScorer(weights []knowledge.KeywordWeight) *KeywordScorer {
	return &KeywordScorer{weights: weights}
}

// Name returns the scorer name.
func (s *KeywordScorer) Name() string {
	return "keywords"
}

// Score returns the sum of weights of keywords found in both texts.
func (s *KeywordScorer) Score(ctx *ScoringContext) float64 {
	if ctx == nil || ctx.Query == nil {
		return 0
	}
	total := 0
	for _, kw := range s.weights {
		if strings.Contains(ctx.Query.Lower, kw.Keyword) && strings.Contains(ctx.Content, kw.Keyword) {
			total += kw.Weight
		}
	}
	return float64(total)
}

// Matches returns the keywords found in both texts, in table order.
func (s *KeywordScorer) Matches(ctx *ScoringContext) []string {
	if ctx == nil || ctx.Query == nil {
		return nil
	}
	var found []string
	for _, kw := range s.weights {
		if strings.Contains(ctx.Query.Lower, kw.Keyword) && strings.Contains(ctx.Content, kw.Keyword) {
			found = append(found, kw.Keyword)
		}
	}
	return found
}
