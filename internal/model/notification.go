package model

import "time"

// Notification ids are the dispatch-time unix-millisecond timestamp,
// so two dispatches in the same millisecond share an id.
type Notification struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Read      bool           `json:"read"`
}
