package citation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForumSnippet(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "first long sentence",
			content: "Hi. Use the model that's mentioned in the question. Thanks.",
			want:    "Use the model that's mentioned in the question.",
		},
		{
			name:    "long sentence is cut to 97 plus ellipsis",
			content: strings.Repeat("word ", 30) + ". tail",
			want:    strings.Repeat("word ", 19) + "wo...",
		},
		{
			name:    "exactly 100 characters is kept",
			content: strings.Repeat("b", 99) + ".",
			want:    strings.Repeat("b", 99) + ".",
		},
		{
			name:    "no qualifying sentence, short content",
			content: "Yes. Agreed. ",
			want:    "Yes. Agreed.",
		},
		{
			name:    "no qualifying sentence, long content",
			content: strings.Repeat("ok. ", 30),
			want:    strings.TrimSpace(strings.Repeat("ok. ", 20)) + "...",
		},
		{
			name:    "sentence of exactly 20 characters does not qualify",
			content: strings.Repeat("c", 20),
			want:    strings.Repeat("c", 20),
		},
		{
			name:    "multi-byte characters counted as characters",
			content: strings.Repeat("é", 150),
			want:    strings.Repeat("é", 97) + "...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ForumSnippet(tt.content))
		})
	}
}

func TestCourseSnippet(t *testing.T) {
	content := "# Tools\nshort\nThis section covers Docker and Podman installs\n" + strings.Repeat("docker ", 30)

	assert.Equal(t, "This section covers Docker and Podman installs", CourseSnippet("How do I install Podman?", content))
	assert.Equal(t, "Containers: Docker, Podman", CourseSnippet("zebra", content), "no line matches, topic label")

	// lines of 10 characters or fewer are skipped even when they match
	assert.Equal(t, "Course Content", CourseSnippet("short", "short\nunrelated text line"))

	// lines of 150 characters or more are skipped
	long := strings.Repeat("python ", 25)
	assert.Equal(t, "Course Content", CourseSnippet("python", long))
}

func TestCourseSnippet_TopicOrder(t *testing.T) {
	assert.Equal(t, "Containers: Docker, Podman", courseTopic("Development Tools with podman"))
	assert.Equal(t, "Development Tools", courseTopic("Development Tools and data science"))
	assert.Equal(t, "Tools in Data Science Course", courseTopic("Welcome to Data Science"))
	assert.Equal(t, "Course Content", courseTopic("Welcome"))
}

func TestExtractLinks_DedupAndLimit(t *testing.T) {
	e := NewExtractor()
	ranked := []models.ScoredMatch{
		{Document: models.NewForumPost("First post says hello to everyone here.", "https://f/1", nil)},
		{Document: models.NewForumPost("Duplicate URL post that should be skipped.", "https://f/1", nil)},
		{Document: models.NewCourseDocument("Docker basics for the course", "https://c/1")},
		{Document: models.NewForumPost("Third distinct post, long enough to count.", "https://f/3", nil)},
		{Document: models.NewForumPost("Fourth distinct post beyond the limit.", "https://f/4", nil)},
	}

	links := e.ExtractLinks("docker", ranked, 3)
	require.Len(t, links, 3)
	assert.Equal(t, "https://f/1", links[0].URL)
	assert.Equal(t, "First post says hello to everyone here.", links[0].Text, "first occurrence wins")
	assert.Equal(t, "https://c/1", links[1].URL)
	assert.Equal(t, "Docker basics for the course", links[1].Text)
	assert.Equal(t, "https://f/3", links[2].URL)
}

func TestExtractLinks_DefaultLimitAndEmpty(t *testing.T) {
	e := NewExtractor()
	links := e.ExtractLinks("anything", nil, 0)
	require.NotNil(t, links)
	assert.Empty(t, links)

	var ranked []models.ScoredMatch
	for i := 0; i < 6; i++ {
		ranked = append(ranked, models.ScoredMatch{
			Document: models.NewCourseDocument("content", fmt.Sprintf("https://c/%d", i)),
		})
	}
	links = e.ExtractLinks("anything", ranked, 0)
	assert.Len(t, links, DefaultLimit)
}

func TestExtractLinks_PropertyDistinctAndBounded(t *testing.T) {
	e := NewExtractor()
	urls := []string{"a", "b", "a", "c", "b", "d", "a"}
	var ranked []models.ScoredMatch
	for _, u := range urls {
		ranked = append(ranked, models.ScoredMatch{Document: models.NewForumPost("some forum content here", u, nil)})
	}
	for n := 0; n <= len(ranked); n++ {
		links := e.ExtractLinks("q", ranked[:n], 3)
		assert.LessOrEqual(t, len(links), 3)
		seen := map[string]bool{}
		for _, l := range links {
			assert.False(t, seen[l.URL], "duplicate url %s", l.URL)
			seen[l.URL] = true
		}
	}
}
