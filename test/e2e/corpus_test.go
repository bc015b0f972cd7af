package e2e

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hyperjump/kotae/internal/corpus"
	"github.com/hyperjump/kotae/internal/models"
)

func TestBuildCorpus_Counts(t *testing.T) {
	c := BuildCorpus(60, 40)
	if len(c.Course) != 60 || len(c.Forum) != 40 {
		t.Fatalf("got %d course, %d forum entries", len(c.Course), len(c.Forum))
	}
	if len(c.TestCases) != 10 {
		t.Errorf("want 10 test cases, got %d", len(c.TestCases))
	}
}

func TestBuildCorpus_UniqueURLs(t *testing.T) {
	c := BuildCorpus(60, 40)
	seen := make(map[string]bool)
	for _, e := range append(append([]Entry{}, c.Course...), c.Forum...) {
		if seen[e.URL] {
			t.Errorf("duplicate URL %s", e.URL)
		}
		seen[e.URL] = true
	}
}

func TestBuildCorpus_SignatureInExactlyOneEntry(t *testing.T) {
	c := BuildCorpus(60, 40)
	all := append(append([]Entry{}, c.Course...), c.Forum...)
	for _, tc := range c.TestCases {
		sig := strings.Fields(tc.Question)[0]
		n := 0
		for _, e := range all {
			if strings.Contains(e.Content, sig) {
				n++
				if e.URL != tc.ExpectedURL {
					t.Errorf("%s: signature found in %s, want %s", tc.Description, e.URL, tc.ExpectedURL)
				}
			}
		}
		if n != 1 {
			t.Errorf("%s: signature %s in %d entries", tc.Description, sig, n)
		}
	}
}

func TestCorpus_JSONLLoads(t *testing.T) {
	c := BuildCorpus(25, 15)
	store, err := corpus.Load([]corpus.Source{
		{Kind: models.KindCourse, Name: "course", Reader: bytes.NewReader(c.CourseJSONL())},
		{Kind: models.KindForum, Name: "forum", Reader: bytes.NewReader(c.ForumJSONL())},
	}, corpus.WithoutSeedPosts())
	if err != nil {
		t.Fatal(err)
	}
	if store.CourseCount() != 25 || store.ForumCount() != 15 {
		t.Errorf("loaded %d course, %d forum", store.CourseCount(), store.ForumCount())
	}
	stats := store.Stats()
	if stats.Course.Skipped != 0 || stats.Forum.Skipped != 0 {
		t.Errorf("no generated line should be skipped: %+v", stats)
	}
	post := store.AllDocuments()[25]
	if post.Forum == nil || post.Forum.ID != "0" || post.Forum.CreatedAt == nil {
		t.Errorf("forum metadata not parsed: %+v", post.Forum)
	}
}
