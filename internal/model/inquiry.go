package model

import "time"

type ListingType string

const (
	ListingTypeBusiness  ListingType = "business"
	ListingTypeFranchise ListingType = "franchise"
)

// Listing is the slice of a marketplace listing the lead pipeline cares
// about. Businesses carry a name, franchises a brand name; the owner
// reference is normalized at the store boundary (owner_id vs seller_id).
type Listing struct {
	ID        string      `json:"id"`
	Type      ListingType `json:"type"`
	Name      *string     `json:"name,omitempty"`
	BrandName *string     `json:"brand_name,omitempty"`
	OwnerID   *string     `json:"owner_id,omitempty"`
	Industry  *string     `json:"industry,omitempty"`
}

// DisplayName returns the buyer-facing name for the listing, falling back to
// a generic label when neither a business name nor a franchise brand is set.
func (l *Listing) DisplayName() string {
	if l == nil {
		return "this listing"
	}
	if l.Name != nil && *l.Name != "" {
		return *l.Name
	}
	if l.BrandName != nil && *l.BrandName != "" {
		return *l.BrandName
	}
	return "this listing"
}

// Inquiry is a buyer's message about a listing. Inquiries are created by the
// marketplace's submission flow and are read-only to this service.
type Inquiry struct {
	ID          string      `json:"id"`
	ListingID   string      `json:"listing_id"`
	ListingType ListingType `json:"listing_type"`
	UserID      *string     `json:"user_id,omitempty"` // nil for anonymous inquiries
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Message     string      `json:"message"`
	CreatedAt   time.Time   `json:"created_at"`

	// Listing is the joined listing context, populated by the store.
	Listing *Listing `json:"listing,omitempty"`
}
