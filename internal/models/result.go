package models

// ScoredMatch is a document with its relevance score for one query.
type ScoredMatch struct {
	Document *Document `json:"document"`
	Score    float64   `json:"score"`
	Source   Kind      `json:"source"`
}

// Link is a citation shown alongside an answer.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// AnswerResult is the response to a question. Links holds at most three
// entries with unique URLs.
type AnswerResult struct {
	Answer string `json:"answer"`
	Links  []Link `json:"links"`
}
