package models

import (
	"errors"
	"strings"
)

// ErrEmptyQuestion is returned when a request carries no question text.
var ErrEmptyQuestion = errors.New("no question provided")

// QuestionRequest is the body of an answer request.
type QuestionRequest struct {
	Question string `json:"question"`
	// Image is an optional base64 attachment. It is accepted for client
	// compatibility and not used for retrieval.
	Image string `json:"image,omitempty"`
}

// Validate returns ErrEmptyQuestion when the question is missing or blank.
func (q *QuestionRequest) Validate() error {
	if q == nil || strings.TrimSpace(q.Question) == "" {
		return ErrEmptyQuestion
	}
	return nil
}
