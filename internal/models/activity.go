package models

import "time"

// Activity is an audit record describing who did what to which resource.
// Terminal pipeline transitions and every search outcome append one.
type Activity struct {
	ID           string    `json:"id" badgerhold:"key"`
	UserID       string    `json:"user_id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Details      string    `json:"details,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
