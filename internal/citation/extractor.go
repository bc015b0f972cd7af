// Package citation derives short human-readable link texts for ranked matches.
package citation

import (
	"strings"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/pkg/utils"
)

// DefaultLimit is the maximum number of links returned for one answer.
const DefaultLimit = 3

const (
	minSentenceLen   = 20
	maxSnippetLen    = 100
	snippetCutLen    = 97
	fallbackLen      = 80
	minCourseLineLen = 10
	maxCourseLineLen = 150
)

// topic labels used when no course line matches the question, checked in order.
var courseTopics = []struct {
	markers []string
	label   string
}{
	{[]string{"docker", "podman"}, "Containers: Docker, Podman"},
	{[]string{"development tools"}, "Development Tools"},
	{[]string{"data science"}, "Tools in Data Science Course"},
}

const defaultCourseLabel = "Course Content"

// Extractor builds citation links. It is stateless and safe for concurrent use.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractLinks returns up to limit links for ranked, in rank order, skipping
// URLs already emitted. limit <= 0 uses DefaultLimit. The result is never nil.
func (e *Extractor) ExtractLinks(query string, ranked []models.ScoredMatch, limit int) []models.Link {
	if limit <= 0 {
		limit = DefaultLimit
	}
	links := make([]models.Link, 0, limit)
	seen := make(map[string]bool, limit)
	var queryWords []string

	for _, m := range ranked {
		if len(links) >= limit {
			break
		}
		doc := m.Document
		if doc == nil || doc.URL == "" || seen[doc.URL] {
			continue
		}
		seen[doc.URL] = true

		var text string
		if doc.IsForum() {
			text = ForumSnippet(doc.Content)
		} else {
			if queryWords == nil {
				queryWords = strings.Fields(strings.ToLower(query))
			}
			text = courseSnippet(queryWords, doc.Content)
		}
		links = append(links, models.Link{URL: doc.URL, Text: text})
	}
	return links
}

// ForumSnippet returns the first sentence longer than 20 characters, capped
// at 100 characters, or the first 80 characters of the post when no sentence
// qualifies.
func ForumSnippet(content string) string {
	for _, part := range strings.Split(content, ".") {
		sentence := strings.TrimSpace(part)
		if utils.Len(sentence) <= minSentenceLen {
			continue
		}
		text := sentence + "."
		if utils.Len(text) > maxSnippetLen {
			text = utils.Prefix(text, snippetCutLen) + "..."
		}
		return text
	}
	text := strings.TrimSpace(utils.Prefix(content, fallbackLen))
	if utils.Len(content) > fallbackLen {
		text += "..."
	}
	return text
}

// CourseSnippet returns the first short line of content that mentions a
// question word, or a topic label when none does.
func CourseSnippet(query, content string) string {
	return courseSnippet(strings.Fields(strings.ToLower(query)), content)
}

func courseSnippet(queryWords []string, content string) string {
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		n := utils.Len(line)
		if n <= minCourseLineLen || n >= maxCourseLineLen {
			continue
		}
		lower := strings.ToLower(line)
		for _, w := range queryWords {
			if strings.Contains(lower, w) {
				return line
			}
		}
	}
	return courseTopic(content)
}

func courseTopic(content string) string {
	lower := strings.ToLower(content)
	for _, topic := range courseTopics {
		for _, marker := range topic.markers {
			if strings.Contains(lower, marker) {
				return topic.label
			}
		}
	}
	return defaultCourseLabel
}
