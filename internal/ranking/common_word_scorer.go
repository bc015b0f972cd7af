package ranking

import "sort"

// CommonWordScorer scores the number of distinct whitespace tokens shared by
// the question and the document.
type CommonWordScorer struct {
	weight float64
}

// NewCommonWordScorer creates a scorer worth weight per shared token.
func NewCommonWordScorer(weight float64) *CommonWordScorer {
	return &CommonWordScorer{weight: weight}
}

// Name returns the scorer name.
func (s *CommonWordScorer) Name() string {
	return "common_words"
}

// Score returns |query words ∩ content words| * weight.
func (s *CommonWordScorer) Score(ctx *ScoringContext) float64 {
	return float64(len(s.Matches(ctx))) * s.weight
}

// Matches returns the shared tokens in sorted order.
func (s *CommonWordScorer) Matches(ctx *ScoringContext) []string {
	if ctx == nil || ctx.Query == nil || len(ctx.Query.Words) == 0 {
		return nil
	}
	content := WordSet(ctx.Content)
	var common []string
	for w := range ctx.Query.Words {
		if _, ok := content[w]; ok {
			common = append(common, w)
		}
	}
	sort.Strings(common)
	return common
}
