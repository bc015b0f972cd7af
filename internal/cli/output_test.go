package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/kotae/internal/assistant"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/ranking"
)

func TestParseOutputFormat(t *testing.T) {
	for _, in := range []string{"text", "json"} {
		if f, err := ParseOutputFormat(in); err != nil || string(f) != in {
			t.Errorf("ParseOutputFormat(%q) = %q, %v", in, f, err)
		}
	}
	if _, err := ParseOutputFormat("compact"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriteAnswer_JSON(t *testing.T) {
	result := &models.AnswerResult{
		Answer: "Use Podman.",
		Links:  []models.Link{{URL: "https://tds.example/docker", Text: "Containers: Docker, Podman"}},
	}
	var buf bytes.Buffer
	if err := WriteAnswer(&buf, result, OutputJSON); err != nil {
		t.Fatalf("WriteAnswer(json): %v", err)
	}
	var decoded models.AnswerResult
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Answer != result.Answer || len(decoded.Links) != 1 || decoded.Links[0].URL != "https://tds.example/docker" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteAnswer_JSONNilLinksIsEmptyArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAnswer(&buf, &models.AnswerResult{Answer: "x"}, OutputJSON); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"links": []`) {
		t.Errorf("links should render as []: %s", buf.String())
	}
}

func TestWriteAnswer_Text(t *testing.T) {
	result := &models.AnswerResult{
		Answer: "Use Podman.",
		Links: []models.Link{
			{URL: "https://tds.example/docker", Text: "Containers"},
			{URL: "https://forum.example/t/1", Text: "Podman works."},
		},
	}
	var buf bytes.Buffer
	if err := WriteAnswer(&buf, result, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Use Podman.", "Links:", "1. Containers", "https://tds.example/docker", "2. Podman works."} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteAnswer_TextWithoutLinks(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAnswer(&buf, &models.AnswerResult{Answer: "No idea."}, OutputText); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "Links:") {
		t.Errorf("no links section expected:\n%s", buf.String())
	}
}

func TestWriteExplain_Text(t *testing.T) {
	doc := models.NewCourseDocument("Containers: Docker and Podman", "https://tds.example/docker")
	b := ranking.NewScoreBreakdown()
	b.FinalScore = 10
	b.Scores["keyword"] = 8
	b.Scores["common_words"] = 2
	b.CommonWords = []string{"podman"}
	b.Keywords = []string{"docker", "podman"}
	explained := []assistant.Explanation{{
		Match:     models.ScoredMatch{Document: doc, Score: 10, Source: models.KindCourse},
		Breakdown: b,
	}}
	var buf bytes.Buffer
	if err := WriteExplain(&buf, explained, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"1 ranked match(es)", "Rank: 1 | Score: 10 | Source: course", "URL: https://tds.example/docker", "keywords:     docker, podman", "common words: podman"} {
		if !strings.Contains(out, want) {
			t.Errorf("explain output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "common_words:") > strings.Index(out, "keyword:") {
		t.Errorf("scorer lines should be sorted by name:\n%s", out)
	}
}

func TestWriteExplain_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExplain(&buf, nil, OutputJSON); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("got %q, want []", buf.String())
	}
}

func TestWriteHealth(t *testing.T) {
	h := &Health{Status: "healthy", CourseContentLoaded: 12, DiscoursePostsLoaded: 40}
	var buf bytes.Buffer
	if err := WriteHealth(&buf, h, OutputText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "status:                  healthy") || !strings.Contains(buf.String(), "40") {
		t.Errorf("text output:\n%s", buf.String())
	}
	buf.Reset()
	if err := WriteHealth(&buf, h, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded Health
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != *h {
		t.Errorf("decoded = %+v", decoded)
	}
}
