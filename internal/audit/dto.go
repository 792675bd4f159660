package audit

import "time"

// Entry is one audit-trail record.
type Entry struct {
	ID         string         `json:"_id"`
	Action     string         `json:"action"`
	ActorID    string         `json:"actor_id"`
	ActorName  string         `json:"actor_name,omitempty"`
	Resource   string         `json:"resource"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ListParams filters and paginates the trail.
type ListParams struct {
	Page     int
	Limit    int
	Action   string
	ActorID  string
	Resource string
	From     *time.Time
	To       *time.Time
}

// ListResult is one page of entries.
type ListResult struct {
	Items []Entry `json:"items"`
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}

// RecordInput captures a new audit event.
type RecordInput struct {
	Action     string         `json:"action" validate:"required"`
	Resource   string         `json:"resource" validate:"required"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}
