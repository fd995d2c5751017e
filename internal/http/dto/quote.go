package dto

import (
	"time"

	"bizsearch.app/leadagent/internal/model"
	"bizsearch.app/leadagent/internal/service"
)

type CreateQuoteRequest struct {
	ListingIDs   []string          `json:"listing_ids" binding:"required,min=1,max=5,dive,min=1"`
	ListingType  model.ListingType `json:"listing_type" binding:"required,oneof=business franchise"`
	Requirements QuoteRequirements `json:"requirements"`
}

type QuoteRequirements struct {
	BudgetMin          *int64  `json:"budget_min,omitempty" binding:"omitempty,min=0"`
	BudgetMax          *int64  `json:"budget_max,omitempty" binding:"omitempty,min=0"`
	Timeline           *string `json:"timeline,omitempty" binding:"omitempty,max=255"`
	LocationPreference *string `json:"location_preference,omitempty" binding:"omitempty,max=255"`
	ExperienceLevel    *string `json:"experience_level,omitempty" binding:"omitempty,max=255"`
	AdditionalNotes    *string `json:"additional_notes,omitempty" binding:"omitempty,max=2000"`
}

func (r QuoteRequirements) ToModel() model.QuoteRequirements {
	req := model.QuoteRequirements{
		Timeline:           r.Timeline,
		LocationPreference: r.LocationPreference,
		ExperienceLevel:    r.ExperienceLevel,
		AdditionalNotes:    r.AdditionalNotes,
	}
	if r.BudgetMin != nil || r.BudgetMax != nil {
		req.BudgetRange = &model.BudgetRange{Min: r.BudgetMin, Max: r.BudgetMax}
	}
	return req
}

type QuoteRequestResponse struct {
	ID          int64                    `json:"id,string"`
	ListingIDs  []string                 `json:"listing_ids"`
	ListingType model.ListingType        `json:"listing_type"`
	Status      model.QuoteRequestStatus `json:"status"`
	ExpiresAt   time.Time                `json:"expires_at"`
	CreatedAt   time.Time                `json:"created_at"`
}

func ToQuoteRequestResponse(req *model.QuoteRequest) *QuoteRequestResponse {
	return &QuoteRequestResponse{
		ID:          req.ID,
		ListingIDs:  req.ListingIDs,
		ListingType: req.ListingType,
		Status:      req.Status,
		ExpiresAt:   req.ExpiresAt,
		CreatedAt:   req.CreatedAt,
	}
}

type QuoteStatusResponse struct {
	Request   *QuoteRequestResponse `json:"request"`
	Responses []QuoteResponseItem   `json:"responses"`
	Responded int                   `json:"responded"`
	Pending   int                   `json:"pending"`
}

type QuoteResponseItem struct {
	ListingID       string                    `json:"listing_id"`
	ListingName     string                    `json:"listing_name"`
	Status          model.QuoteResponseStatus `json:"status"`
	ResponseMessage *string                   `json:"response_message,omitempty"`
	RespondedAt     *time.Time                `json:"responded_at,omitempty"`
}

func ToQuoteStatusResponse(status *service.QuoteStatus) *QuoteStatusResponse {
	resp := &QuoteStatusResponse{
		Request:   ToQuoteRequestResponse(status.Request),
		Responses: make([]QuoteResponseItem, 0, len(status.Responses)),
		Responded: status.Responded,
		Pending:   status.Pending,
	}
	for _, item := range status.Responses {
		resp.Responses = append(resp.Responses, QuoteResponseItem{
			ListingID:       item.ListingID,
			ListingName:     item.ListingName,
			Status:          item.Status,
			ResponseMessage: item.ResponseMessage,
			RespondedAt:     item.RespondedAt,
		})
	}
	return resp
}

type QuoteListResponse struct {
	Requests []QuoteRequestResponse `json:"requests"`
}

func ToQuoteListResponse(requests []model.QuoteRequest) *QuoteListResponse {
	resp := &QuoteListResponse{Requests: make([]QuoteRequestResponse, 0, len(requests))}
	for i := range requests {
		resp.Requests = append(resp.Requests, *ToQuoteRequestResponse(&requests[i]))
	}
	return resp
}

type QuoteSweepResponse struct {
	Message   string `json:"message"`
	Expired   int64  `json:"expired"`
	Completed int    `json:"completed"`
}
