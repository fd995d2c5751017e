package service

import (
	"bizsearch.app/leadagent/core/config"
	"bizsearch.app/leadagent/core/db"
	"bizsearch.app/leadagent/internal/store"
)

// Services bundles the constructed service layer.
type Services struct {
	Leads  LeadService
	Quotes QuoteService
}

// New wires the service layer from the shared stores and configuration.
func New(cfg *config.Config, database *db.DB, stores *store.Stores) *Services {
	qualifier := NewQualifier(WeightsFromConfig(cfg.Scoring))
	responder := NewResponder(cfg.Scoring.NotifyThreshold)
	txRunner := NewTxRunner(database)

	return &Services{
		Leads: NewLeadService(
			stores.Inquiries(),
			stores.Leads(),
			stores.AgentTasks(),
			qualifier,
			responder,
			cfg.Scoring.NotifyThreshold,
		),
		Quotes: NewQuoteService(
			stores.Listings(),
			stores.Profiles(),
			stores.QuoteRequests(),
			stores.QuoteResponses(),
			txRunner,
			cfg.Quotes.MaxListingsPerRequest,
			cfg.Quotes.ExpiryHours,
		),
	}
}

// WeightsFromConfig maps the configured rubric weights onto the qualifier's
// weight table, so deployments can rebalance criteria without a rebuild.
func WeightsFromConfig(sc config.ScoringConfig) Weights {
	return Weights{
		HasEmail:            float64(sc.WeightEmail),
		HasPhone:            float64(sc.WeightPhone),
		HasName:             float64(sc.WeightName),
		MessageLength:       float64(sc.WeightMessage),
		SpecificQuestions:   float64(sc.WeightSpecifics),
		UrgencySignals:      float64(sc.WeightUrgency),
		ExperienceMentioned: float64(sc.WeightExperience),
	}
}
