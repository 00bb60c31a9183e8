package models

import "time"

// Policy represents a published policy record. Policies are authored by the
// CRUD layer and consumed read-only by the search orchestrator.
type Policy struct {
	ID        int       `json:"id" badgerhold:"key"`
	Title     string    `json:"title"`
	Reference string    `json:"reference"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
