package model

import (
	"encoding/json"
	"time"
)

type AgentTaskType string

const (
	AgentTaskTypeLeadResponse AgentTaskType = "lead_response"
	AgentTaskTypeQuoteRequest AgentTaskType = "quote_request"
)

type AgentTaskStatus string

const (
	AgentTaskStatusInProgress AgentTaskStatus = "in_progress"
	AgentTaskStatusCompleted  AgentTaskStatus = "completed"
)

// AgentTask is an append-only audit record of something an agent did.
// One row is written per processed inquiry, capturing the result payload
// (the generated response text) for later inspection.
type AgentTask struct {
	ID          int64           `json:"id"`
	Type        AgentTaskType   `json:"type"`
	Status      AgentTaskStatus `json:"status"`
	UserID      *string         `json:"user_id,omitempty"`
	ListingID   *string         `json:"listing_id,omitempty"`
	ListingType *ListingType    `json:"listing_type,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
