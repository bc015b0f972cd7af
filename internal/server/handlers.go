package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/hyperjump/kotae/internal/models"
	"go.uber.org/zap"
)

const (
	errNoJSON     = "No JSON data provided"
	errNoQuestion = "No question provided"

	welcomeText = "Welcome to the TDS Virtual Teaching Assistant API! Use POST /api/ to ask questions."
)

// maxBodyBytes bounds the request body; questions are short.
const maxBodyBytes = 1 << 20

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	req, err := decodeQuestion(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.logger.Debug("rejected question", zap.Error(err))
		if errors.Is(err, models.ErrEmptyQuestion) {
			s.respondError(w, http.StatusBadRequest, errNoQuestion)
			return
		}
		s.respondError(w, http.StatusBadRequest, errNoJSON)
		return
	}
	if req.Image != "" {
		s.logger.Debug("ignoring attached image", zap.Int("bytes", len(req.Image)))
	}

	result, err := s.safeAnswer(req.Question)
	if err != nil {
		s.logger.Error("answer failed", zap.Error(err))
		s.respondJSON(w, http.StatusInternalServerError, &models.AnswerResult{
			Answer: s.apology,
			Links:  []models.Link{},
		})
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

// decodeQuestion parses a question request. An empty body, invalid JSON or
// an empty object is reported as missing data; a blank question as
// models.ErrEmptyQuestion.
func decodeQuestion(body io.Reader) (*models.QuestionRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("empty request object")
	}
	req := &models.QuestionRequest{}
	if q, ok := raw["question"]; ok {
		if err := json.Unmarshal(q, &req.Question); err != nil {
			return nil, models.ErrEmptyQuestion
		}
	}
	if img, ok := raw["image"]; ok {
		_ = json.Unmarshal(img, &req.Image)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// safeAnswer runs the pipeline and converts a panic into an error.
func (s *Server) safeAnswer(question string) (result *models.AnswerResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while answering: %v", rec)
		}
	}()
	if s.svc == nil {
		return nil, errors.New("no answer service configured")
	}
	return s.svc.Answer(question), nil
}

type usageResponse struct {
	Message    string     `json:"message"`
	Usage      string     `json:"usage"`
	Example    string     `json:"example"`
	Status     string     `json:"status"`
	DataLoaded dataLoaded `json:"data_loaded"`
}

type dataLoaded struct {
	CourseContent  int `json:"course_content"`
	DiscoursePosts int `json:"discourse_posts"`
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	course, forum := s.counts()
	s.respondJSON(w, http.StatusOK, usageResponse{
		Message: "TDS Virtual TA API Endpoint",
		Usage:   "Send POST request with JSON: {'question': 'your question'}",
		Example: `curl -X POST [URL]/api/ -H 'Content-Type: application/json' -d '{"question": "Should I use gpt-4o-mini or gpt-3.5-turbo?"}'`,
		Status:  "ready",
		DataLoaded: dataLoaded{
			CourseContent:  course,
			DiscoursePosts: forum,
		},
	})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, welcomeText)
}

type healthResponse struct {
	Status               string `json:"status"`
	CourseContentLoaded  int    `json:"course_content_loaded"`
	DiscoursePostsLoaded int    `json:"discourse_posts_loaded"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	course, forum := s.counts()
	s.respondJSON(w, http.StatusOK, healthResponse{
		Status:               "healthy",
		CourseContentLoaded:  course,
		DiscoursePostsLoaded: forum,
	})
}

func (s *Server) counts() (course, forum int) {
	if s.svc == nil {
		return 0, 0
	}
	st := s.svc.Stats()
	return st.CourseDocuments, st.ForumPosts
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
