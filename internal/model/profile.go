package model

import "time"

// Profile is the slice of a marketplace user profile the quote agent needs
// for personalized messages and bearer-token auth.
type Profile struct {
	ID          string    `json:"id"`
	DisplayName *string   `json:"display_name,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
