package dto

import (
	"time"

	"bizsearch.app/leadagent/internal/model"
	"bizsearch.app/leadagent/internal/service"
)

type ProcessInquiryRequest struct {
	InquiryID string `json:"inquiry_id" binding:"required,min=1,max=255"`
}

type ProcessInquiryResponse struct {
	Success            bool   `json:"success"`
	LeadID             int64  `json:"lead_id,string"`
	QualificationScore int    `json:"qualification_score"`
	AutoResponseSent   bool   `json:"auto_response_sent"`
	SellerNotified     bool   `json:"seller_notified"`
	Message            string `json:"message"`
}

func ToProcessInquiryResponse(result *service.ProcessResult) *ProcessInquiryResponse {
	resp := &ProcessInquiryResponse{
		Success:            true,
		LeadID:             result.LeadID,
		QualificationScore: result.QualificationScore,
		AutoResponseSent:   result.AutoResponseSent,
		SellerNotified:     result.SellerNotified,
		Message:            "Lead processed",
	}
	if result.AlreadyProcessed {
		resp.Message = "Inquiry already processed"
	}
	return resp
}

type ProcessAllResponse struct {
	Message   string `json:"message"`
	Processed int    `json:"processed"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type LeadResponse struct {
	ID                 int64             `json:"id,string"`
	InquiryID          string            `json:"inquiry_id"`
	ListingID          string            `json:"listing_id"`
	ListingType        model.ListingType `json:"listing_type"`
	BuyerName          string            `json:"buyer_name"`
	BuyerEmail         string            `json:"buyer_email"`
	BuyerPhone         string            `json:"buyer_phone"`
	QualificationScore int               `json:"qualification_score"`
	QualificationNotes map[string]bool   `json:"qualification_notes"`
	Status             model.LeadStatus  `json:"status"`
	AutoResponseSent   bool              `json:"auto_response_sent"`
	SellerNotified     bool              `json:"seller_notified"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type SellerQueueResponse struct {
	Leads   []LeadResponse    `json:"leads"`
	Summary model.LeadSummary `json:"summary"`
}

func ToSellerQueueResponse(leads []model.Lead, summary model.LeadSummary) *SellerQueueResponse {
	resp := &SellerQueueResponse{
		Leads:   make([]LeadResponse, 0, len(leads)),
		Summary: summary,
	}
	for i := range leads {
		resp.Leads = append(resp.Leads, ToLeadResponse(&leads[i]))
	}
	return resp
}

func ToLeadResponse(lead *model.Lead) LeadResponse {
	return LeadResponse{
		ID:                 lead.ID,
		InquiryID:          lead.InquiryID,
		ListingID:          lead.ListingID,
		ListingType:        lead.ListingType,
		BuyerName:          lead.BuyerName,
		BuyerEmail:         lead.BuyerEmail,
		BuyerPhone:         lead.BuyerPhone,
		QualificationScore: lead.QualificationScore,
		QualificationNotes: lead.QualificationNotes,
		Status:             lead.Status,
		AutoResponseSent:   lead.AutoResponseSent,
		SellerNotified:     lead.SellerNotified,
		CreatedAt:          lead.CreatedAt,
		UpdatedAt:          lead.UpdatedAt,
	}
}
