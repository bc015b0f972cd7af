// Package assistant answers course questions by ranking the knowledge base,
// synthesizing an answer and attaching citations.
package assistant

import (
	"github.com/hyperjump/kotae/internal/answer"
	"github.com/hyperjump/kotae/internal/citation"
	"github.com/hyperjump/kotae/internal/corpus"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/ranking"
	"go.uber.org/zap"
)

// citedMatches is how many top matches are considered for links.
const citedMatches = 3

// Service runs the question-answering pipeline over an immutable store.
// It is safe for concurrent use.
type Service struct {
	store     *corpus.Store
	ranker    *ranking.Ranker
	synth     *answer.Synthesizer
	citations *citation.Extractor
	topK      int
	linkLimit int
	logger    *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a logger for per-question debug output.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTopK sets how many ranked matches feed the synthesizer.
func WithTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithLinkLimit sets the maximum number of links per answer.
func WithLinkLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.linkLimit = n
		}
	}
}

// New creates a Service. Nil ranker, synthesizer or extractor are replaced
// by defaults.
func New(
	store *corpus.Store,
	ranker *ranking.Ranker,
	synth *answer.Synthesizer,
	citations *citation.Extractor,
	opts ...Option,
) *Service {
	if ranker == nil {
		ranker = ranking.NewRanker(nil)
	}
	if synth == nil {
		synth = answer.NewSynthesizer(nil)
	}
	if citations == nil {
		citations = citation.NewExtractor()
	}
	s := &Service{
		store:     store,
		ranker:    ranker,
		synth:     synth,
		citations: citations,
		topK:      ranker.GetConfig().TopK,
		linkLimit: citation.DefaultLimit,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer returns the answer and citation links for a question. It never
// returns nil and never fails; with no relevant content the answer is the
// configured default text and links is empty.
func (s *Service) Answer(question string) *models.AnswerResult {
	ranked := s.Rank(question)
	text := s.synth.Synthesize(question, ranked)

	cited := ranked
	if len(cited) > citedMatches {
		cited = cited[:citedMatches]
	}
	links := s.citations.ExtractLinks(question, cited, s.linkLimit)

	if ce := s.logger.Check(zap.DebugLevel, "question answered"); ce != nil {
		fields := []zap.Field{
			zap.String("category", answer.Classify(question).String()),
			zap.Int("matches", len(ranked)),
			zap.Int("links", len(links)),
		}
		if len(ranked) > 0 {
			fields = append(fields, zap.Float64("top_score", ranked[0].Score))
		}
		ce.Write(fields...)
	}

	return &models.AnswerResult{Answer: text, Links: links}
}

// Rank returns the ranked matches for a question.
func (s *Service) Rank(question string) []models.ScoredMatch {
	return s.ranker.Rank(question, s.documents(), s.topK)
}

// Explanation pairs a ranked match with how its score was computed.
type Explanation struct {
	Match     models.ScoredMatch      `json:"match"`
	Breakdown *ranking.ScoreBreakdown `json:"breakdown"`
}

// Explain returns the score breakdown of each ranked match, in rank order.
func (s *Service) Explain(question string) []Explanation {
	ranked := s.Rank(question)
	out := make([]Explanation, 0, len(ranked))
	for _, m := range ranked {
		out = append(out, Explanation{
			Match:     m,
			Breakdown: s.ranker.ScoreWithBreakdown(question, m.Document),
		})
	}
	return out
}

// Stats returns the store load summary.
func (s *Service) Stats() Stats {
	if s.store == nil {
		return Stats{}
	}
	return Stats{
		CourseDocuments: s.store.CourseCount(),
		ForumPosts:      s.store.ForumCount(),
		Load:            s.store.Stats(),
	}
}

// Stats describes the loaded knowledge base.
type Stats struct {
	CourseDocuments int              `json:"course_documents"`
	ForumPosts      int              `json:"forum_posts"`
	Load            corpus.LoadStats `json:"load"`
}

func (s *Service) documents() []*models.Document {
	if s.store == nil {
		return nil
	}
	return s.store.AllDocuments()
}
