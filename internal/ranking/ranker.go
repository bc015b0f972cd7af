package ranking

import (
	"sort"

	"github.com/hyperjump/kotae/internal/models"
)

// Ranker sums its scorers to rank documents against a question. A Ranker
// holds no per-query state and is safe for concurrent use.
type Ranker struct {
	config       *RankingConfig
	commonWords  *CommonWordScorer
	keywords     *KeywordScorer
	extraScorers []Scorer
}

// NewRanker creates a new Ranker with the given configuration.
func NewRanker(config *RankingConfig) *Ranker {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()

	return &Ranker{
		config:      config,
		commonWords: NewCommonWordScorer(config.CommonWordWeight),
		keywords:    NewKeywordScorer(config.KeywordWeights),
	}
}

// WithScorers adds scorers whose results are summed with the built-in ones.
func (r *Ranker) WithScorers(scorers ...Scorer) *Ranker {
	r.extraScorers = append(r.extraScorers, scorers...)
	return r
}

// GetConfig returns the ranking configuration.
func (r *Ranker) GetConfig() *RankingConfig {
	return r.config
}

func (r *Ranker) scorers() []Scorer {
	all := make([]Scorer, 0, 2+len(r.extraScorers))
	all = append(all, r.commonWords, r.keywords)
	return append(all, r.extraScorers...)
}

// Score calculates the relevance of one document for a question.
func (r *Ranker) Score(query string, doc *models.Document) float64 {
	return r.scoreWithContext(NewScoringContext(AnalyzeQuery(query), doc))
}

func (r *Ranker) scoreWithContext(ctx *ScoringContext) float64 {
	var score float64
	for _, s := range r.scorers() {
		score += s.Score(ctx)
	}
	return score
}

// ScoreWithBreakdown returns detailed scoring information.
func (r *Ranker) ScoreWithBreakdown(query string, doc *models.Document) *ScoreBreakdown {
	ctx := NewScoringContext(AnalyzeQuery(query), doc)
	breakdown := NewScoreBreakdown()
	for _, s := range r.scorers() {
		v := s.Score(ctx)
		breakdown.Scores[s.Name()] = v
		breakdown.FinalScore += v
	}
	breakdown.CommonWords = r.commonWords.Matches(ctx)
	breakdown.Keywords = r.keywords.Matches(ctx)
	return breakdown
}

// Rank scores every document and returns the topK best, highest score
// first. Documents scoring zero are dropped; equal scores keep document
// order. topK <= 0 uses the configured default.
func (r *Ranker) Rank(query string, docs []*models.Document, topK int) []models.ScoredMatch {
	if topK <= 0 {
		topK = r.config.TopK
	}
	analyzed := AnalyzeQuery(query)

	results := make([]models.ScoredMatch, 0, len(docs))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		score := r.scoreWithContext(NewScoringContext(analyzed, doc))
		if score > 0 {
			results = append(results, models.ScoredMatch{
				Document: doc,
				Score:    score,
				Source:   doc.Kind,
			})
		}
	}

	// Sort by score descending
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return TopN(results, topK)
}

// TopN returns the top N results.
func TopN(results []models.ScoredMatch, n int) []models.ScoredMatch {
	if n < 0 {
		n = 0
	}
	if n >= len(results) {
		return results
	}
	return results[:n]
}
