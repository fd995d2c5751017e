package service

import (
	"strings"

	"bizsearch.app/leadagent/internal/model"
)

// Responder produces the deterministic auto-response sent to a buyer the
// moment their inquiry is processed. It never fails: missing fields degrade
// to generic fallbacks.
type Responder struct {
	notifyThreshold int
}

func NewResponder(notifyThreshold int) *Responder {
	return &Responder{notifyThreshold: notifyThreshold}
}

func (r *Responder) AutoResponse(inquiry *model.Inquiry, score int) string {
	buyerName := inquiry.Name
	if buyerName == "" {
		buyerName = "there"
	}
	listingName := inquiry.Listing.DisplayName()

	var b strings.Builder
	b.WriteString("Hi " + buyerName + ",\n\n")
	b.WriteString("Thank you for your interest in " + listingName + "!\n\n")

	if score >= r.notifyThreshold {
		b.WriteString("Your inquiry has been marked as high-priority and the seller will be reaching out to you shortly.\n\n")
	} else {
		b.WriteString("We've received your inquiry and shared it with the seller. You can expect a response within 24-48 hours.\n\n")
	}

	b.WriteString("In the meantime, here are a few things you can do:\n")
	b.WriteString("• Review the complete listing details on BizSearch\n")
	b.WriteString("• Prepare any questions you'd like to ask\n")
	b.WriteString("• Check out similar opportunities in your area\n\n")

	b.WriteString("Best regards,\nBizSearch Concierge\n\n")
	b.WriteString("---\nThis is an automated message from BizSearch Lead Agent.")

	return b.String()
}
