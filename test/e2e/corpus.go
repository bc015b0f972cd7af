// Package e2e provides end-to-end tests that run the full stack over a generated knowledge base.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hyperjump/kotae/internal/models"
)

// Entry is one generated course document or forum post.
type Entry struct {
	Kind    models.Kind
	ID      int
	URL     string
	Content string
}

// QueryTestCase is a question and the URL that must be the first link of its answer.
type QueryTestCase struct {
	Question    string
	ExpectedURL string
	Description string
}

// Corpus holds generated entries and query test cases.
type Corpus struct {
	Course    []Entry
	Forum     []Entry
	TestCases []QueryTestCase
}

// topics are bland subjects; none contains a weighted domain keyword, so a
// signature-only question is scored by word overlap alone.
var topics = []string{
	"pandas dataframes",
	"regular expressions",
	"shell pipelines",
	"json parsing",
	"web scraping basics",
	"spreadsheet formulas",
	"vector embeddings",
	"sql window functions",
	"markdown tables",
	"http status codes",
}

// signature returns the token unique to entry i of a kind.
func signature(kind models.Kind, i int) string {
	if kind == models.KindForum {
		return fmt.Sprintf("fz%04d", i)
	}
	return fmt.Sprintf("cz%04d", i)
}

// BuildCorpus returns nCourse course documents and nForum forum posts. Each
// entry carries a unique signature token so questions can assert which entry
// is cited first. Every tenth entry of each kind gets a test case.
func BuildCorpus(nCourse, nForum int) *Corpus {
	c := &Corpus{}
	for i := 0; i < nCourse; i++ {
		sig := signature(models.KindCourse, i)
		c.Course = append(c.Course, Entry{
			Kind:    models.KindCourse,
			ID:      i,
			URL:     fmt.Sprintf("https://tds.s-anand.net/#/notes/%d", i),
			Content: fmt.Sprintf("Lesson %s\nThis lesson introduces %s with worked examples.\nPractice sheet included.", sig, topics[i%len(topics)]),
		})
	}
	for i := 0; i < nForum; i++ {
		sig := signature(models.KindForum, i)
		c.Forum = append(c.Forum, Entry{
			Kind:    models.KindForum,
			ID:      i,
			URL:     fmt.Sprintf("https://discourse.onlinedegree.iitm.ac.in/t/thread-%d/%d/1", i, 170000+i),
			Content: fmt.Sprintf("Reply %s explains %s in plain words. Thanks to everyone who asked.", sig, topics[i%len(topics)]),
		})
	}
	for _, entries := range [][]Entry{c.Course, c.Forum} {
		for i := 0; i < len(entries); i += 10 {
			e := entries[i]
			c.TestCases = append(c.TestCases, QueryTestCase{
				Question:    signature(e.Kind, e.ID) + " please",
				ExpectedURL: e.URL,
				Description: fmt.Sprintf("%s entry %d by signature", e.Kind, e.ID),
			})
		}
	}
	return c
}

type courseLine struct {
	Content string `json:"content"`
	URL     string `json:"url"`
}

type forumLine struct {
	ID        int    `json:"id"`
	TopicID   int    `json:"topic_id"`
	URL       string `json:"url"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// CourseJSONL renders the course entries in the ingestion format.
func (c *Corpus) CourseJSONL() []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, e := range c.Course {
		_ = enc.Encode(courseLine{Content: e.Content, URL: e.URL})
	}
	return buf.Bytes()
}

// ForumJSONL renders the forum entries in the ingestion format.
func (c *Corpus) ForumJSONL() []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, e := range c.Forum {
		_ = enc.Encode(forumLine{
			ID:        e.ID,
			TopicID:   170000 + e.ID,
			URL:       e.URL,
			Username:  fmt.Sprintf("student%d", e.ID%7),
			Content:   e.Content,
			CreatedAt: "2025-03-01T12:00:00Z",
		})
	}
	return buf.Bytes()
}
