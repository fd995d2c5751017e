package store

import (
	"context"
	"time"

	"bizsearch.app/leadagent/internal/model"
)

// InquiryStore defines read access to inbound inquiries. Inquiries are
// written by the marketplace's submission flow, never by this service.
type InquiryStore interface {
	// GetByID fetches an inquiry joined with its listing context.
	GetByID(ctx context.Context, id string) (*model.Inquiry, error)
	// ListUnprocessedIDs returns IDs of inquiries with no corresponding lead.
	ListUnprocessedIDs(ctx context.Context) ([]string, error)
}

// LeadStore defines the contract for lead queue data access.
type LeadStore interface {
	Create(ctx context.Context, lead *model.Lead) error
	GetByID(ctx context.Context, id int64) (*model.Lead, error)
	GetByInquiryID(ctx context.Context, inquiryID string) (*model.Lead, error)
	MarkAutoResponded(ctx context.Context, id int64, at time.Time) error
	MarkSellerNotified(ctx context.Context, id int64, at time.Time) error
	UpdateStatus(ctx context.Context, id int64, status model.LeadStatus) error
	ListBySeller(ctx context.Context, sellerID string, limit int32) ([]model.Lead, error)
}

// ListingStore provides listing lookups for the quote agent.
type ListingStore interface {
	ListByIDs(ctx context.Context, listingType model.ListingType, ids []string) ([]model.Listing, error)
}

// AgentTaskStore is the append-only audit sink.
type AgentTaskStore interface {
	Create(ctx context.Context, task *model.AgentTask) error
}

// ProfileStore provides user profile lookups for the quote agent.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*model.Profile, error)
	GetByAPIToken(ctx context.Context, token string) (*model.Profile, error)
}

// QuoteRequestStore defines the contract for quote request data access.
type QuoteRequestStore interface {
	Create(ctx context.Context, req *model.QuoteRequest) error
	GetByIDForUser(ctx context.Context, id int64, userID string) (*model.QuoteRequest, error)
	ListByUser(ctx context.Context, userID string, limit int32) ([]model.QuoteRequest, error)
	// ExpireOverdue marks collecting requests past their expiry as expired
	// and returns how many rows changed.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
	ListCollectingIDs(ctx context.Context, now time.Time) ([]int64, error)
	MarkCompleted(ctx context.Context, id int64) error
}

// QuoteResponseStore defines the contract for per-listing quote responses.
type QuoteResponseStore interface {
	CreateBatch(ctx context.Context, responses []model.QuoteResponse) error
	ListByRequest(ctx context.Context, requestID int64) ([]model.QuoteResponse, error)
}
