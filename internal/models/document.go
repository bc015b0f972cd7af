// Package models defines core data structures for documents, questions, and answers.
package models

import "time"

// Kind discriminates the two document variants of the knowledge base.
type Kind string

const (
	// KindCourse is a passage of structured course content.
	KindCourse Kind = "course"
	// KindForum is a post from the course discussion forum.
	KindForum Kind = "forum"
)

// Document is a single searchable record. Content and URL are always non-empty
// for documents held by the corpus store.
type Document struct {
	Kind    Kind       `json:"kind"`
	Content string     `json:"content"`
	URL     string     `json:"url"`
	Forum   *ForumMeta `json:"forum,omitempty"`
}

// ForumMeta holds the optional fields only forum posts carry.
type ForumMeta struct {
	ID        string     `json:"id,omitempty"`
	TopicID   *int64     `json:"topic_id,omitempty"`
	Author    string     `json:"author,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// NewCourseDocument returns a course content document.
func NewCourseDocument(content, url string) *Document {
	return &Document{Kind: KindCourse, Content: content, URL: url}
}

// NewForumPost returns a forum post document. meta may be nil.
func NewForumPost(content, url string, meta *ForumMeta) *Document {
	if meta == nil {
		meta = &ForumMeta{}
	}
	return &Document{Kind: KindForum, Content: content, URL: url, Forum: meta}
}

// IsForum reports whether the document is a forum post.
func (d *Document) IsForum() bool {
	return d.Kind == KindForum
}

// Valid reports whether the document satisfies the store invariant.
func (d *Document) Valid() bool {
	return d != nil && d.Content != "" && d.URL != ""
}
