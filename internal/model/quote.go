package model

import "time"

type QuoteRequestStatus string

const (
	QuoteRequestStatusCollecting QuoteRequestStatus = "collecting"
	QuoteRequestStatusCompleted  QuoteRequestStatus = "completed"
	QuoteRequestStatusExpired    QuoteRequestStatus = "expired"
)

type QuoteResponseStatus string

const (
	QuoteResponseStatusPending   QuoteResponseStatus = "pending"
	QuoteResponseStatusSent      QuoteResponseStatus = "sent"
	QuoteResponseStatusResponded QuoteResponseStatus = "responded"
	QuoteResponseStatusDeclined  QuoteResponseStatus = "declined"
	QuoteResponseStatusExpired   QuoteResponseStatus = "expired"
)

// BudgetRange is the buyer's investment budget, in rupees. Either bound may
// be absent.
type BudgetRange struct {
	Min *int64 `json:"min,omitempty"`
	Max *int64 `json:"max,omitempty"`
}

// QuoteRequirements captures what the buyer is looking for; all fields are
// optional free-form input echoed into the generated seller message.
type QuoteRequirements struct {
	BudgetRange        *BudgetRange `json:"budget_range,omitempty"`
	Timeline           *string      `json:"timeline,omitempty"`
	LocationPreference *string      `json:"location_preference,omitempty"`
	ExperienceLevel    *string      `json:"experience_level,omitempty"`
	AdditionalNotes    *string      `json:"additional_notes,omitempty"`
}

// QuoteRequest fans one buyer's requirements out to up to five listings.
type QuoteRequest struct {
	ID          int64              `json:"id"`
	UserID      string             `json:"user_id"`
	ListingIDs  []string           `json:"listing_ids"`
	ListingType ListingType        `json:"listing_type"`
	Requirements QuoteRequirements `json:"requirements"`
	Status      QuoteRequestStatus `json:"status"`
	ExpiresAt   time.Time          `json:"expires_at"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// QuoteResponse tracks one listing owner's side of a quote request.
type QuoteResponse struct {
	ID              int64               `json:"id"`
	QuoteRequestID  int64               `json:"quote_request_id"`
	ListingID       string              `json:"listing_id"`
	ListingType     ListingType         `json:"listing_type"`
	ResponderID     *string             `json:"responder_id,omitempty"`
	InitialMessage  string              `json:"initial_message"`
	ResponseMessage *string             `json:"response_message,omitempty"`
	Status          QuoteResponseStatus `json:"status"`
	RespondedAt     *time.Time          `json:"responded_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}
