package model

import "time"

type LeadStatus string

const (
	LeadStatusNew           LeadStatus = "new"
	LeadStatusAutoResponded LeadStatus = "auto_responded"
	LeadStatusQualified     LeadStatus = "qualified"
	LeadStatusContacted     LeadStatus = "contacted"
	LeadStatusConverted     LeadStatus = "converted"
	LeadStatusLost          LeadStatus = "lost"
)

// ValidLeadStatus reports whether s is one of the known funnel statuses.
// The funnel is a flat enum: any valid status may be set from any other.
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadStatusNew, LeadStatusAutoResponded, LeadStatusQualified,
		LeadStatusContacted, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// Lead is the qualification record derived from exactly one inquiry.
// At most one lead exists per inquiry, enforced by a unique index on
// inquiry_id.
type Lead struct {
	ID          int64       `json:"id"`
	InquiryID   string      `json:"inquiry_id"`
	ListingID   string      `json:"listing_id"`
	ListingType ListingType `json:"listing_type"`
	SellerID    *string     `json:"seller_id,omitempty"`
	BuyerID     *string     `json:"buyer_id,omitempty"`
	BuyerName   string      `json:"buyer_name"`
	BuyerEmail  string      `json:"buyer_email"`
	BuyerPhone  string      `json:"buyer_phone"`

	QualificationScore int             `json:"qualification_score"`
	QualificationNotes map[string]bool `json:"qualification_notes"`

	Status LeadStatus `json:"status"`

	AutoResponseSent bool       `json:"auto_response_sent"`
	AutoResponseAt   *time.Time `json:"auto_response_at,omitempty"`
	SellerNotified   bool       `json:"seller_notified"`
	SellerNotifiedAt *time.Time `json:"seller_notified_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LeadSummary is the counts-by-status breakdown attached to a seller's queue.
type LeadSummary struct {
	Total         int `json:"total"`
	New           int `json:"new"`
	AutoResponded int `json:"auto_responded"`
	Qualified     int `json:"qualified"`
	Contacted     int `json:"contacted"`
	Converted     int `json:"converted"`
}
