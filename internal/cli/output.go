// Package cli provides output rendering and API client helpers for the kotae CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hyperjump/kotae/internal/assistant"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, OutputJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteAnswer writes an answer and its links to w in the given format.
func WriteAnswer(w io.Writer, result *models.AnswerResult, format OutputFormat) error {
	if result == nil {
		result = &models.AnswerResult{}
	}
	if format == OutputJSON {
		out := *result
		if out.Links == nil {
			out.Links = []models.Link{}
		}
		return writeJSON(w, out)
	}
	fmt.Fprintf(w, "\n%s\n", result.Answer)
	if len(result.Links) > 0 {
		fmt.Fprintln(w, "\nLinks:")
		for i, l := range result.Links {
			fmt.Fprintf(w, "  %d. %s\n     %s\n", i+1, l.Text, l.URL)
		}
	}
	fmt.Fprintln(w)
	return nil
}

// WriteExplain writes the ranking breakdown of each match to w.
func WriteExplain(w io.Writer, explained []assistant.Explanation, format OutputFormat) error {
	if format == OutputJSON {
		if explained == nil {
			explained = []assistant.Explanation{}
		}
		return writeJSON(w, explained)
	}
	fmt.Fprintf(w, "\n%d ranked match(es)\n\n", len(explained))
	for i, e := range explained {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "Rank: %d | Score: %.0f | Source: %s\n", i+1, e.Match.Score, e.Match.Source)
		if e.Match.Document != nil {
			fmt.Fprintf(w, "URL: %s\n", e.Match.Document.URL)
		}
		if b := e.Breakdown; b != nil {
			names := make([]string, 0, len(b.Scores))
			for name := range b.Scores {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(w, "  %-12s %.0f\n", name+":", b.Scores[name])
			}
			if len(b.CommonWords) > 0 {
				fmt.Fprintf(w, "  common words: %s\n", strings.Join(b.CommonWords, ", "))
			}
			if len(b.Keywords) > 0 {
				fmt.Fprintf(w, "  keywords:     %s\n", strings.Join(b.Keywords, ", "))
			}
		}
		if e.Match.Document != nil {
			fmt.Fprintf(w, "\n%s\n", utils.Truncate(e.Match.Document.Content, 200))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// WriteHealth writes a server health report to w.
func WriteHealth(w io.Writer, h *Health, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, h)
	}
	fmt.Fprintf(w, "status:                  %s\n", h.Status)
	fmt.Fprintf(w, "course_content_loaded:   %d   # course documents\n", h.CourseContentLoaded)
	fmt.Fprintf(w, "discourse_posts_loaded:  %d   # forum posts, including built-in ones\n", h.DiscoursePostsLoaded)
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
