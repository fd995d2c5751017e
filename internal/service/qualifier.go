package service

import (
	"strings"

	"bizsearch.app/leadagent/internal/model"
)

// Weights is the qualification rubric. Points are awarded independently per
// criterion and summed; the default table sums to exactly 100.
type Weights struct {
	HasEmail            float64
	HasPhone            float64
	HasName             float64
	MessageLength       float64
	SpecificQuestions   float64
	UrgencySignals      float64
	ExperienceMentioned float64
}

// DefaultWeights returns the production rubric.
func DefaultWeights() Weights {
	return Weights{
		HasEmail:            15,
		HasPhone:            20,
		HasName:             10,
		MessageLength:       15, // longer messages indicate more serious interest
		SpecificQuestions:   20, // asks about price, terms, timeline
		UrgencySignals:      10, // mentions "asap", "urgent", "soon"
		ExperienceMentioned: 10, // mentions relevant experience
	}
}

var specificKeywords = []string{
	"price", "cost", "revenue", "profit", "terms", "timeline",
	"financing", "training", "support", "roi", "investment",
}

var urgencyKeywords = []string{
	"asap", "urgent", "immediately", "soon", "quickly", "this week", "this month",
}

var experienceKeywords = []string{
	"experience", "background", "years", "currently", "business owner", "entrepreneur",
}

// QualificationResult carries the 0-100 score and the per-criterion notes
// explaining it.
type QualificationResult struct {
	Score int             `json:"score"`
	Notes map[string]bool `json:"notes"`
}

// Qualifier scores inquiries against an immutable rubric. Qualify is a pure
// function: it never fails, and missing optional fields simply contribute
// zero points.
type Qualifier struct {
	weights Weights
}

func NewQualifier(weights Weights) *Qualifier {
	return &Qualifier{weights: weights}
}

func (q *Qualifier) Qualify(inquiry *model.Inquiry) QualificationResult {
	var score float64
	notes := make(map[string]bool)

	if inquiry.Email != "" && strings.Contains(inquiry.Email, "@") {
		score += q.weights.HasEmail
		notes["has_email"] = true
	}

	if len(inquiry.Phone) >= 10 {
		score += q.weights.HasPhone
		notes["has_phone"] = true
	}

	if len(inquiry.Name) > 2 {
		score += q.weights.HasName
		notes["has_name"] = true
	}

	// Message length indicates seriousness; half credit for moderate length.
	switch {
	case len(inquiry.Message) > 100:
		score += q.weights.MessageLength
		notes["detailed_message"] = true
	case len(inquiry.Message) > 50:
		score += q.weights.MessageLength / 2
		notes["moderate_message"] = true
	}

	lowerMessage := strings.ToLower(inquiry.Message)

	if containsAny(lowerMessage, specificKeywords) {
		score += q.weights.SpecificQuestions
		notes["asks_specifics"] = true
	}

	if containsAny(lowerMessage, urgencyKeywords) {
		score += q.weights.UrgencySignals
		notes["shows_urgency"] = true
	}

	if containsAny(lowerMessage, experienceKeywords) {
		score += q.weights.ExperienceMentioned
		notes["mentions_experience"] = true
	}

	return QualificationResult{
		Score: clampScore(score),
		Notes: notes,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// clampScore floors the fractional sum and clamps it to [0,100]. The default
// rubric's raw maximum is exactly 100; overridden weights may exceed it.
func clampScore(score float64) int {
	n := int(score)
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
