package corpus

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/hyperjump/kotae/internal/models"
)

var (
	errMissingContent = errors.New("missing content")
	errMissingURL     = errors.New("missing url")
)

type courseRecord struct {
	Content string `json:"content"`
	URL     string `json:"url"`
}

type forumRecord struct {
	ID        json.RawMessage `json:"id"`
	TopicID   json.RawMessage `json:"topic_id"`
	URL       string          `json:"url"`
	Username  *string         `json:"username"`
	Content   string          `json:"content"`
	CreatedAt *string         `json:"created_at"`
}

func parseLine(kind models.Kind, line []byte) (*models.Document, error) {
	if kind == models.KindCourse {
		var rec courseRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, err
		}
		if err := checkRequired(rec.Content, rec.URL); err != nil {
			return nil, err
		}
		return models.NewCourseDocument(rec.Content, rec.URL), nil
	}

	var rec forumRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return nil, err
	}
	if err := checkRequired(rec.Content, rec.URL); err != nil {
		return nil, err
	}
	meta := &models.ForumMeta{
		ID:      normalizeID(rec.ID),
		TopicID: parseTopicID(rec.TopicID),
	}
	if rec.Username != nil {
		meta.Author = *rec.Username
	}
	if rec.CreatedAt != nil {
		if ts, err := time.Parse(time.RFC3339, *rec.CreatedAt); err == nil {
			meta.CreatedAt = &ts
		}
	}
	return models.NewForumPost(rec.Content, rec.URL, meta), nil
}

func checkRequired(content, url string) error {
	if content == "" {
		return errMissingContent
	}
	if url == "" {
		return errMissingURL
	}
	return nil
}

// normalizeID renders an id of any JSON type as a string: strings are
// unquoted, null is empty, everything else keeps its JSON text.
func normalizeID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		if s, err := strconv.Unquote(string(raw)); err == nil {
			return s
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

// parseTopicID accepts an integer, an integral float or a numeric string.
// Anything else leaves the topic unset.
func parseTopicID(raw json.RawMessage) *int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil
		}
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return &n
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && f == float64(int64(f)) {
		n := int64(f)
		return &n
	}
	return nil
}
