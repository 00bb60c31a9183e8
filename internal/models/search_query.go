package models

import "time"

// SearchQuery persists one policy search request together with its outcome.
// Degraded and error results are recorded the same way successful ones are.
type SearchQuery struct {
	ID        string       `json:"id" badgerhold:"key"`
	Query     string       `json:"query"`
	UserID    string       `json:"user_id"`
	Result    AnswerResult `json:"result"`
	CreatedAt time.Time    `json:"created_at"`
}
