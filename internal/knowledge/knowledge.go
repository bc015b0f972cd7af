// Package knowledge holds the editorial data behind ranking and answers:
// the domain keyword weight table and the fixed response texts.
package knowledge

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// KeywordWeight is a domain keyword and the score it adds when both the
// query and a document contain it.
type KeywordWeight struct {
	Keyword string `yaml:"keyword"`
	Weight  int    `yaml:"weight"`
}

// Responses are the fixed texts the answer synthesizer can return.
type Responses struct {
	Default string `yaml:"default"`
	Apology string `yaml:"apology"`

	ModelDirective     string `yaml:"model_directive"`
	ModelExcerptPrefix string `yaml:"model_excerpt_prefix"`
	ModelFallback      string `yaml:"model_fallback"`

	ScoringCanonical     string `yaml:"scoring_canonical"`
	ScoringExcerptPrefix string `yaml:"scoring_excerpt_prefix"`
	ScoringFallback      string `yaml:"scoring_fallback"`

	Containers string `yaml:"containers"`

	LicenseExcerptPrefix string `yaml:"license_excerpt_prefix"`
	LicenseFallback      string `yaml:"license_fallback"`

	ExamFutureDates   string `yaml:"exam_future_dates"`
	ExamExcerptPrefix string `yaml:"exam_excerpt_prefix"`
	ExamFallback      string `yaml:"exam_fallback"`

	ForumPrefix  string `yaml:"forum_prefix"`
	CoursePrefix string `yaml:"course_prefix"`
}

// Knowledge is the complete editorial data set.
type Knowledge struct {
	KeywordWeights []KeywordWeight `yaml:"keyword_weights"`
	Responses      Responses       `yaml:"responses"`
}

// Default returns the built-in keyword table and responses.
func Default() *Knowledge {
	return &Knowledge{
		KeywordWeights: []KeywordWeight{
			{"gpt", 5}, {"model", 3}, {"ai-proxy", 5}, {"openai", 4},
			{"ga4", 4}, {"ga5", 4}, {"dashboard", 3}, {"scoring", 3}, {"bonus", 3},
			{"docker", 4}, {"podman", 4}, {"container", 3},
			{"assignment", 2}, {"project", 2}, {"exam", 3}, {"deadline", 3},
			{"license", 3}, {"mit", 3}, {"github", 2},
			{"vscode", 2}, {"terminal", 2}, {"python", 2}, {"javascript", 2},
		},
		Responses: Responses{
			Default: "I don't have specific information about this topic in my knowledge base. " +
				"Please check the course materials at https://tds.s-anand.net/ or ask on the TDS Discourse forum for more detailed help.",
			Apology: "I apologize, but I encountered an error while processing your question. Please try again.",

			ModelDirective: "You must use `gpt-3.5-turbo-0125`, even if the AI Proxy only supports `gpt-4o-mini`. " +
				"Use the OpenAI API directly for this question.",
			ModelExcerptPrefix: "Based on course discussions: ",
			ModelFallback: "For model selection questions, please refer to the specific assignment instructions " +
				"and use the exact model specified.",

			ScoringCanonical: "If a student scores 10/10 on GA4 as well as a bonus, the dashboard will show '110' " +
				"indicating the full score plus bonus points.",
			ScoringExcerptPrefix: "Regarding scoring: ",
			ScoringFallback:      "Dashboard scoring typically shows your total points including any bonus points earned.",

			Containers: "For this course, Podman is the recommended container tool, though Docker is also acceptable " +
				"if you're more familiar with it. Both tools serve similar purposes for containerization.",

			LicenseExcerptPrefix: "Based on project requirements: ",
			LicenseFallback: "For GitHub projects, you need to include an MIT LICENSE file in the root directory. " +
				"Make sure it's named 'LICENSE' (all caps) or 'LICENSE.md'.",

			ExamFutureDates: "I don't have information about future exam dates for September 2025. " +
				"Please check the official course announcements or contact the course coordinators.",
			ExamExcerptPrefix: "According to course information: ",
			ExamFallback:      "Please check the course calendar and announcements for exam dates and deadlines.",

			ForumPrefix:  "Based on a recent discussion: ",
			CoursePrefix: "According to the course content: ",
		},
	}
}

// Load reads a YAML file and overlays it on the defaults. Keys absent from
// the file keep their built-in value; a keyword_weights list replaces the
// default table as a whole.
func Load(path string) (*Knowledge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge file: %w", err)
	}
	k := Default()
	if err := yaml.Unmarshal(data, k); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge file: %w", err)
	}
	if err := k.Validate(); err != nil {
		return nil, fmt.Errorf("invalid knowledge file %s: %w", path, err)
	}
	return k, nil
}

// Validate checks the keyword table. Keywords are matched against lower-cased
// text, so they must be non-empty and lower case.
func (k *Knowledge) Validate() error {
	seen := make(map[string]bool, len(k.KeywordWeights))
	for i, kw := range k.KeywordWeights {
		if kw.Keyword == "" {
			return fmt.Errorf("keyword_weights[%d]: empty keyword", i)
		}
		if kw.Keyword != strings.ToLower(kw.Keyword) {
			return fmt.Errorf("keyword_weights[%d]: keyword %q must be lower case", i, kw.Keyword)
		}
		if kw.Weight <= 0 {
			return fmt.Errorf("keyword_weights[%d]: weight for %q must be positive", i, kw.Keyword)
		}
		if seen[kw.Keyword] {
			return fmt.Errorf("keyword_weights[%d]: duplicate keyword %q", i, kw.Keyword)
		}
		seen[kw.Keyword] = true
	}
	return nil
}
