// Package corpus loads the course and forum knowledge base into an immutable
// in-memory store.
package corpus

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hyperjump/kotae/internal/models"
	"go.uber.org/zap"
)

// maxLineSize bounds a single JSONL record.
const maxLineSize = 16 * 1024 * 1024

// Source is one line-delimited JSON input of a known kind.
type Source struct {
	Kind   models.Kind
	Name   string
	Reader io.Reader
}

// KindStats counts records read from sources of one kind.
type KindStats struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
	Seeded  int `json:"seeded,omitempty"`
}

// LoadStats summarizes a load. Errors holds read failures that cut a source short.
type LoadStats struct {
	Course KindStats `json:"course"`
	Forum  KindStats `json:"forum"`
	Errors []string  `json:"errors,omitempty"`
}

// Store is the read-only document collection. It is safe for concurrent
// readers once Load returns.
type Store struct {
	course []*models.Document
	forum  []*models.Document
	all    []*models.Document
	stats  LoadStats
}

// Option configures a load.
type Option func(*loadOptions)

type loadOptions struct {
	seedPosts bool
	logger    *zap.Logger
}

// WithoutSeedPosts skips the built-in forum posts.
func WithoutSeedPosts() Option {
	return func(o *loadOptions) { o.seedPosts = false }
}

// WithSeedPosts sets whether the built-in forum posts are appended.
func WithSeedPosts(enabled bool) Option {
	return func(o *loadOptions) { o.seedPosts = enabled }
}

// WithLogger sets a logger for skipped-line and read-error events.
func WithLogger(l *zap.Logger) Option {
	return func(o *loadOptions) { o.logger = l }
}

// Load builds a store from the given sources. Malformed or incomplete lines
// are skipped; a read error stops only the affected source. Seed posts are
// appended after all file-based forum posts.
func Load(sources []Source, opts ...Option) (*Store, error) {
	o := loadOptions{seedPosts: true, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{}
	for _, src := range sources {
		if src.Reader == nil {
			continue
		}
		if err := s.readSource(src, o.logger); err != nil {
			o.logger.Warn("corpus source read failed", zap.String("source", src.Name), zap.Error(err))
			s.stats.Errors = append(s.stats.Errors, fmt.Sprintf("%s: %v", src.Name, err))
		}
	}
	if o.seedPosts {
		seeds := SeedPosts()
		s.forum = append(s.forum, seeds...)
		s.stats.Forum.Seeded = len(seeds)
	}

	s.all = make([]*models.Document, 0, len(s.course)+len(s.forum))
	s.all = append(s.all, s.course...)
	s.all = append(s.all, s.forum...)
	return s, nil
}

func (s *Store) readSource(src Source, logger *zap.Logger) error {
	var stats *KindStats
	switch src.Kind {
	case models.KindCourse:
		stats = &s.stats.Course
	case models.KindForum:
		stats = &s.stats.Forum
	default:
		return fmt.Errorf("unknown source kind %q", src.Kind)
	}

	scanner := bufio.NewScanner(src.Reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if isBlank(line) {
			continue
		}
		doc, err := parseLine(src.Kind, line)
		if err != nil {
			stats.Skipped++
			logger.Debug("skipping corpus line",
				zap.String("source", src.Name),
				zap.Int("line", lineNo),
				zap.Error(err))
			continue
		}
		stats.Loaded++
		if src.Kind == models.KindCourse {
			s.course = append(s.course, doc)
		} else {
			s.forum = append(s.forum, doc)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("line %d: %w", lineNo+1, err)
	}
	return nil
}

// AllDocuments returns course documents followed by forum documents, each in
// source order. The slice is shared; callers must not modify it.
func (s *Store) AllDocuments() []*models.Document {
	return s.all
}

// CourseCount returns the number of course documents.
func (s *Store) CourseCount() int {
	return len(s.course)
}

// ForumCount returns the number of forum posts, seed posts included.
func (s *Store) ForumCount() int {
	return len(s.forum)
}

// Stats returns the load summary.
func (s *Store) Stats() LoadStats {
	return s.stats
}

func isBlank(line []byte) bool {
	for _, b := range line {
		switch b {
		case ' ', '\t', '\r', '\n', '\v', '\f':
		default:
			return false
		}
	}
	return true
}
