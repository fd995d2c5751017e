package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bizsearch.app/leadagent/common/id"
	"bizsearch.app/leadagent/common/logger"
	"bizsearch.app/leadagent/internal/model"
	"bizsearch.app/leadagent/internal/store"
)

var (
	ErrQuoteRequestNotFound = errors.New("quote request not found")
	ErrNoListings           = errors.New("at least one listing is required")
	ErrTooManyListings      = errors.New("too many listings requested")
	ErrUnknownListings      = errors.New("one or more listings do not exist")
)

// CreateQuoteInput is the validated payload for fanning a quote request out
// to a set of listings.
type CreateQuoteInput struct {
	UserID       string
	ListingIDs   []string
	ListingType  model.ListingType
	Requirements model.QuoteRequirements
}

// QuoteStatus is a quote request with its per-listing responses and progress
// counts.
type QuoteStatus struct {
	Request   *model.QuoteRequest   `json:"request"`
	Responses []QuoteResponseDetail `json:"responses"`
	Responded int                   `json:"responded"`
	Pending   int                   `json:"pending"`
}

// QuoteResponseDetail is a quote response enriched with its listing's
// display name.
type QuoteResponseDetail struct {
	model.QuoteResponse
	ListingName string `json:"listing_name"`
}

// SweepResult reports one periodic maintenance pass over quote requests.
type SweepResult struct {
	Expired   int64
	Completed int
}

// QuoteService fans buyer requirements out to listings as quote requests
// and tracks the collected responses.
type QuoteService interface {
	// Create validates the listing set, persists the request with one pending
	// response per listing and an audit task, all in one transaction.
	Create(ctx context.Context, input CreateQuoteInput) (*model.QuoteRequest, error)
	Status(ctx context.Context, requestID int64, userID string) (*QuoteStatus, error)
	List(ctx context.Context, userID string) ([]model.QuoteRequest, error)
	// ProcessPending expires overdue requests and completes requests whose
	// listings have all answered.
	ProcessPending(ctx context.Context) (*SweepResult, error)
}

type quoteService struct {
	listings  store.ListingStore
	profiles  store.ProfileStore
	requests  store.QuoteRequestStore
	responses store.QuoteResponseStore
	tx        TxRunner

	maxListings int
	expiry      time.Duration
}

func NewQuoteService(
	listings store.ListingStore,
	profiles store.ProfileStore,
	requests store.QuoteRequestStore,
	responses store.QuoteResponseStore,
	tx TxRunner,
	maxListings int,
	expiryHours int,
) QuoteService {
	return &quoteService{
		listings:    listings,
		profiles:    profiles,
		requests:    requests,
		responses:   responses,
		tx:          tx,
		maxListings: maxListings,
		expiry:      time.Duration(expiryHours) * time.Hour,
	}
}

func (s *quoteService) Create(ctx context.Context, input CreateQuoteInput) (*model.QuoteRequest, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "leadagent.quotes",
	})

	if len(input.ListingIDs) == 0 {
		return nil, ErrNoListings
	}
	if len(input.ListingIDs) > s.maxListings {
		return nil, fmt.Errorf("%w: %d exceeds the limit of %d", ErrTooManyListings, len(input.ListingIDs), s.maxListings)
	}

	listings, err := s.listings.ListByIDs(ctx, input.ListingType, input.ListingIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching listings: %w", err)
	}
	if len(listings) != len(input.ListingIDs) {
		return nil, ErrUnknownListings
	}

	var buyerName string
	if profile, err := s.profiles.GetByID(ctx, input.UserID); err == nil {
		if profile.DisplayName != nil {
			buyerName = *profile.DisplayName
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("fetching buyer profile: %w", err)
	}

	now := time.Now().UTC()
	request := &model.QuoteRequest{
		ID:           id.New(),
		UserID:       input.UserID,
		ListingIDs:   input.ListingIDs,
		ListingType:  input.ListingType,
		Requirements: input.Requirements,
		Status:       model.QuoteRequestStatusCollecting,
		ExpiresAt:    now.Add(s.expiry),
	}

	message := sellerMessage(buyerName, input.Requirements)
	responses := make([]model.QuoteResponse, 0, len(listings))
	for _, listing := range listings {
		responses = append(responses, model.QuoteResponse{
			ID:             id.New(),
			QuoteRequestID: request.ID,
			ListingID:      listing.ID,
			ListingType:    input.ListingType,
			ResponderID:    listing.OwnerID,
			InitialMessage: message,
			Status:         model.QuoteResponseStatusSent,
		})
	}

	metadata, err := json.Marshal(map[string]any{
		"quote_request_id": request.ID,
		"listing_count":    len(listings),
		"listing_type":     input.ListingType,
	})
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.QuoteRequests().Create(ctx, request); err != nil {
			return fmt.Errorf("creating quote request: %w", err)
		}
		if err := stores.QuoteResponses().CreateBatch(ctx, responses); err != nil {
			return fmt.Errorf("creating quote responses: %w", err)
		}
		completedAt := time.Now().UTC()
		listingType := input.ListingType
		return stores.AgentTasks().Create(ctx, &model.AgentTask{
			ID:          id.New(),
			Type:        model.AgentTaskTypeQuoteRequest,
			Status:      model.AgentTaskStatusCompleted,
			UserID:      &input.UserID,
			ListingType: &listingType,
			Metadata:    metadata,
			CompletedAt: &completedAt,
		})
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "quote request created",
		"quote_request_id", request.ID,
		"listings", len(listings))
	return request, nil
}

func (s *quoteService) Status(ctx context.Context, requestID int64, userID string) (*QuoteStatus, error) {
	request, err := s.requests.GetByIDForUser(ctx, requestID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrQuoteRequestNotFound
		}
		return nil, fmt.Errorf("fetching quote request: %w", err)
	}

	responses, err := s.responses.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("fetching quote responses: %w", err)
	}

	listings, err := s.listings.ListByIDs(ctx, request.ListingType, request.ListingIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching listings: %w", err)
	}
	names := make(map[string]string, len(listings))
	for i := range listings {
		names[listings[i].ID] = listings[i].DisplayName()
	}

	status := &QuoteStatus{Request: request}
	for _, resp := range responses {
		name, ok := names[resp.ListingID]
		if !ok {
			name = "this listing"
		}
		status.Responses = append(status.Responses, QuoteResponseDetail{
			QuoteResponse: resp,
			ListingName:   name,
		})
		if resp.Status == model.QuoteResponseStatusResponded {
			status.Responded++
		} else if resp.Status == model.QuoteResponseStatusPending || resp.Status == model.QuoteResponseStatusSent {
			status.Pending++
		}
	}
	return status, nil
}

func (s *quoteService) List(ctx context.Context, userID string) ([]model.QuoteRequest, error) {
	requests, err := s.requests.ListByUser(ctx, userID, 20)
	if err != nil {
		return nil, fmt.Errorf("listing quote requests: %w", err)
	}
	return requests, nil
}

func (s *quoteService) ProcessPending(ctx context.Context) (*SweepResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "leadagent.quotes.sweep",
	})

	now := time.Now().UTC()
	expired, err := s.requests.ExpireOverdue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("expiring overdue requests: %w", err)
	}

	collecting, err := s.requests.ListCollectingIDs(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("listing collecting requests: %w", err)
	}

	completed := 0
	for _, requestID := range collecting {
		responses, err := s.responses.ListByRequest(ctx, requestID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to inspect quote request",
				"error", err,
				"quote_request_id", requestID)
			continue
		}
		if !allAnswered(responses) {
			continue
		}
		if err := s.requests.MarkCompleted(ctx, requestID); err != nil {
			slog.ErrorContext(ctx, "failed to complete quote request",
				"error", err,
				"quote_request_id", requestID)
			continue
		}
		completed++
	}

	if expired > 0 || completed > 0 {
		slog.InfoContext(ctx, "quote sweep complete", "expired", expired, "completed", completed)
	}
	return &SweepResult{Expired: expired, Completed: completed}, nil
}

func allAnswered(responses []model.QuoteResponse) bool {
	if len(responses) == 0 {
		return false
	}
	for _, resp := range responses {
		if resp.Status != model.QuoteResponseStatusResponded && resp.Status != model.QuoteResponseStatusDeclined {
			return false
		}
	}
	return true
}

// sellerMessage renders the requirements into the message each listing owner
// receives when the quote request fans out.
func sellerMessage(buyerName string, req model.QuoteRequirements) string {
	var b strings.Builder

	if buyerName != "" {
		fmt.Fprintf(&b, "%s is interested in your listing and has requested a quote.\n\n", buyerName)
	} else {
		b.WriteString("A buyer is interested in your listing and has requested a quote.\n\n")
	}

	b.WriteString("Buyer requirements:\n")
	if req.BudgetRange != nil && (req.BudgetRange.Min != nil || req.BudgetRange.Max != nil) {
		b.WriteString("- Budget: " + formatBudget(req.BudgetRange) + "\n")
	}
	if req.Timeline != nil && *req.Timeline != "" {
		b.WriteString("- Timeline: " + *req.Timeline + "\n")
	}
	if req.LocationPreference != nil && *req.LocationPreference != "" {
		b.WriteString("- Preferred location: " + *req.LocationPreference + "\n")
	}
	if req.ExperienceLevel != nil && *req.ExperienceLevel != "" {
		b.WriteString("- Experience: " + *req.ExperienceLevel + "\n")
	}
	if req.AdditionalNotes != nil && *req.AdditionalNotes != "" {
		b.WriteString("- Notes: " + *req.AdditionalNotes + "\n")
	}

	b.WriteString("\nPlease respond with your quote through your BizSearch dashboard.")
	return b.String()
}

func formatBudget(r *model.BudgetRange) string {
	switch {
	case r.Min != nil && r.Max != nil:
		return formatAmount(*r.Min) + " - " + formatAmount(*r.Max)
	case r.Min != nil:
		return formatAmount(*r.Min) + "+"
	default:
		return "up to " + formatAmount(*r.Max)
	}
}

// formatAmount renders rupee amounts in the Indian convention: crores above
// one crore, lakhs above one lakh, plain rupees otherwise.
func formatAmount(amount int64) string {
	const (
		lakh  = 100_000
		crore = 10_000_000
	)
	switch {
	case amount >= crore:
		return trimDecimal(fmt.Sprintf("₹%.2f Cr", float64(amount)/crore))
	case amount >= lakh:
		return trimDecimal(fmt.Sprintf("₹%.2f L", float64(amount)/lakh))
	default:
		return fmt.Sprintf("₹%d", amount)
	}
}

func trimDecimal(s string) string {
	return strings.ReplaceAll(s, ".00", "")
}
