// Package ranking scores knowledge base documents against a question.
package ranking

import (
	"strings"

	"github.com/hyperjump/kotae/internal/models"
)

// AnalyzedQuery holds the forms of a question the scorers need. It is built
// once per question and shared by every document scored for it.
type AnalyzedQuery struct {
	// Original is the question as received.
	Original string
	// Lower is the lower-cased question.
	Lower string
	// Words is the set of whitespace-separated tokens of Lower.
	Words map[string]struct{}
}

// AnalyzeQuery lower-cases and tokenizes a question.
func AnalyzeQuery(query string) *AnalyzedQuery {
	lower := strings.ToLower(query)
	return &AnalyzedQuery{
		Original: query,
		Lower:    lower,
		Words:    WordSet(lower),
	}
}

// WordSet splits text on whitespace and collapses duplicates.
func WordSet(text string) map[string]struct{} {
	fields := strings.Fields(text)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// ScoringContext provides everything needed to score one document.
type ScoringContext struct {
	Query    *AnalyzedQuery
	Document *models.Document
	// Content is the lower-cased document content.
	Content string
}

// NewScoringContext creates a ScoringContext for a query and document.
func NewScoringContext(query *AnalyzedQuery, doc *models.Document) *ScoringContext {
	return &ScoringContext{
		Query:    query,
		Document: doc,
		Content:  strings.ToLower(doc.Content),
	}
}

// Scorer is the interface for all scoring components.
type Scorer interface {
	// Score calculates the score for a document given the scoring context.
	Score(ctx *ScoringContext) float64
	// Name returns the name of the scorer for debugging/logging.
	Name() string
}

// ScoreBreakdown provides detailed scoring information for debugging.
type ScoreBreakdown struct {
	// FinalScore is the sum of all scorer contributions.
	FinalScore float64 `json:"final_score"`
	// Scores holds each scorer's contribution keyed by scorer name.
	Scores map[string]float64 `json:"scores"`
	// CommonWords are the query tokens also present in the content.
	CommonWords []string `json:"common_words,omitempty"`
	// Keywords are the weighted domain keywords found in both texts.
	Keywords []string `json:"keywords,omitempty"`
}

// NewScoreBreakdown creates a new ScoreBreakdown instance.
func NewScoreBreakdown() *ScoreBreakdown {
	return &ScoreBreakdown{
		Scores: make(map[string]float64),
	}
}
