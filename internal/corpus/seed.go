package corpus

import (
	"time"

	"github.com/hyperjump/kotae/internal/models"
)

type seedPost struct {
	id        string
	topicID   int64
	url       string
	author    string
	content   string
	createdAt string
}

var seedPosts = []seedPost{
	{
		id:        "example_1",
		topicID:   155939,
		url:       "https://discourse.onlinedegree.iitm.ac.in/t/ga5-question-8-clarification/155939/4",
		author:    "s.anand",
		content:   "Use the model that's mentioned in the question.",
		createdAt: "2025-04-14T10:00:00Z",
	},
	{
		id:        "example_2",
		topicID:   155939,
		url:       "https://discourse.onlinedegree.iitm.ac.in/t/ga5-question-8-clarification/155939/3",
		author:    "student_ta",
		content:   "My understanding is that you just have to use a tokenizer, similar to what Prof. Anand used, to get the number of tokens and multiply that by the given rate.",
		createdAt: "2025-04-14T09:30:00Z",
	},
	{
		id:        "example_3",
		topicID:   165959,
		url:       "https://discourse.onlinedegree.iitm.ac.in/t/ga4-data-sourcing-discussion-thread-tds-jan-2025/165959/388",
		author:    "course_admin",
		content:   "If a student scores 10/10 on GA4 as well as a bonus, the dashboard will show '110' indicating the full score plus bonus.",
		createdAt: "2025-04-10T14:20:00Z",
	},
}

// SeedPosts returns fresh copies of the built-in forum posts that answer the
// canonical course questions even when no forum file is available.
func SeedPosts() []*models.Document {
	docs := make([]*models.Document, 0, len(seedPosts))
	for _, p := range seedPosts {
		topic := p.topicID
		meta := &models.ForumMeta{ID: p.id, TopicID: &topic, Author: p.author}
		if ts, err := time.Parse(time.RFC3339, p.createdAt); err == nil {
			meta.CreatedAt = &ts
		}
		docs = append(docs, models.NewForumPost(p.content, p.url, meta))
	}
	return docs
}
