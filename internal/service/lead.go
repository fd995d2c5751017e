package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bizsearch.app/leadagent/common/id"
	"bizsearch.app/leadagent/common/logger"
	"bizsearch.app/leadagent/internal/model"
	"bizsearch.app/leadagent/internal/store"
)

var (
	ErrInquiryNotFound = errors.New("inquiry not found")
	ErrLeadNotFound    = errors.New("lead not found")
	ErrInvalidStatus   = errors.New("invalid status")

	// ErrLeadRejected means the database refused the lead row itself, e.g.
	// a foreign key or check constraint. Retrying cannot succeed.
	ErrLeadRejected = errors.New("lead rejected")
)

// ProcessResult summarizes one pipeline run over an inquiry.
type ProcessResult struct {
	LeadID             int64
	QualificationScore int
	AutoResponseSent   bool
	SellerNotified     bool

	// AlreadyProcessed is set when a lead for the inquiry existed before
	// this call; no mutation happened.
	AlreadyProcessed bool
}

// BatchResult reports a batch sweep over pending inquiries.
type BatchResult struct {
	Processed int
}

// LeadService runs the lead qualification and auto-response pipeline.
type LeadService interface {
	// ProcessInquiry qualifies one inquiry, persists a lead, records the
	// auto-response and flags the seller when the score crosses the notify
	// threshold. Calling it again for the same inquiry is a no-op.
	ProcessInquiry(ctx context.Context, inquiryID string) (*ProcessResult, error)
	// ProcessAllPending sweeps inquiries that have no lead yet, sequentially.
	// Individual failures are logged and skipped, never aborting the batch.
	ProcessAllPending(ctx context.Context) (*BatchResult, error)
	UpdateStatus(ctx context.Context, leadID int64, status model.LeadStatus) error
	SellerQueue(ctx context.Context, sellerID string) ([]model.Lead, model.LeadSummary, error)
}

type leadService struct {
	inquiries store.InquiryStore
	leads     store.LeadStore
	tasks     store.AgentTaskStore

	qualifier *Qualifier
	responder *Responder

	notifyThreshold int
}

func NewLeadService(
	inquiries store.InquiryStore,
	leads store.LeadStore,
	tasks store.AgentTaskStore,
	qualifier *Qualifier,
	responder *Responder,
	notifyThreshold int,
) LeadService {
	return &leadService{
		inquiries:       inquiries,
		leads:           leads,
		tasks:           tasks,
		qualifier:       qualifier,
		responder:       responder,
		notifyThreshold: notifyThreshold,
	}
}

func (s *leadService) ProcessInquiry(ctx context.Context, inquiryID string) (*ProcessResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		InquiryID: logger.Ptr(inquiryID),
		Component: "leadagent.pipeline",
	})

	inquiry, err := s.inquiries.GetByID(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("fetching inquiry: %w", err)
	}

	// Idempotency pre-check. Concurrent callers can both pass this read; the
	// unique index on inquiry_id is the real guard, reconciled below.
	existing, err := s.leads.GetByInquiryID(ctx, inquiryID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking existing lead: %w", err)
	}
	if existing != nil {
		slog.InfoContext(ctx, "inquiry already processed", "lead_id", existing.ID)
		return alreadyProcessed(existing), nil
	}

	slog.DebugContext(ctx, "qualifying inquiry",
		"message", logger.Truncate(inquiry.Message, 200))

	qualification := s.qualifier.Qualify(inquiry)

	lead := &model.Lead{
		ID:                 id.New(),
		InquiryID:          inquiryID,
		ListingID:          inquiry.ListingID,
		ListingType:        listingTypeOrDefault(inquiry.ListingType),
		BuyerID:            inquiry.UserID,
		BuyerName:          inquiry.Name,
		BuyerEmail:         inquiry.Email,
		BuyerPhone:         inquiry.Phone,
		QualificationScore: qualification.Score,
		QualificationNotes: qualification.Notes,
		Status:             model.LeadStatusNew,
	}
	if inquiry.Listing != nil {
		lead.SellerID = inquiry.Listing.OwnerID
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Lost the race to a concurrent call; the other caller's lead
			// stands and this call reports it as already processed.
			winner, getErr := s.leads.GetByInquiryID(ctx, inquiryID)
			if getErr != nil {
				return nil, fmt.Errorf("fetching lead after duplicate insert: %w", getErr)
			}
			slog.InfoContext(ctx, "duplicate lead insert reconciled", "lead_id", winner.ID)
			return alreadyProcessed(winner), nil
		}
		if errors.Is(err, store.ErrConstraint) {
			return nil, fmt.Errorf("%w: %v", ErrLeadRejected, err)
		}
		return nil, fmt.Errorf("creating lead: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		LeadID:   logger.Ptr(lead.ID),
		SellerID: lead.SellerID,
	})

	autoResponse := s.responder.AutoResponse(inquiry, qualification.Score)

	now := time.Now().UTC()
	if err := s.leads.MarkAutoResponded(ctx, lead.ID, now); err != nil {
		return nil, fmt.Errorf("recording auto-response: %w", err)
	}

	if err := s.recordAuditTask(ctx, lead, inquiry, qualification.Score, autoResponse, now); err != nil {
		return nil, fmt.Errorf("recording agent task: %w", err)
	}

	sellerNotified := false
	if qualification.Score >= s.notifyThreshold {
		if err := s.leads.MarkSellerNotified(ctx, lead.ID, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("flagging seller notification: %w", err)
		}
		sellerNotified = true
	}

	slog.InfoContext(ctx, "inquiry processed",
		"score", qualification.Score,
		"seller_notified", sellerNotified)

	return &ProcessResult{
		LeadID:             lead.ID,
		QualificationScore: qualification.Score,
		AutoResponseSent:   true,
		SellerNotified:     sellerNotified,
	}, nil
}

func (s *leadService) ProcessAllPending(ctx context.Context) (*BatchResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "leadagent.pipeline.batch",
	})

	ids, err := s.inquiries.ListUnprocessedIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing unprocessed inquiries: %w", err)
	}

	processed := 0
	for _, inquiryID := range ids {
		if _, err := s.ProcessInquiry(ctx, inquiryID); err != nil {
			// A failed inquiry keeps no lead row and is picked up again on
			// the next sweep.
			slog.ErrorContext(ctx, "failed to process inquiry",
				"error", err,
				"inquiry_id", inquiryID)
			continue
		}
		processed++
	}

	slog.InfoContext(ctx, "batch sweep complete", "pending", len(ids), "processed", processed)
	return &BatchResult{Processed: processed}, nil
}

func (s *leadService) UpdateStatus(ctx context.Context, leadID int64, status model.LeadStatus) error {
	if !model.ValidLeadStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if err := s.leads.UpdateStatus(ctx, leadID, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrLeadNotFound
		}
		return fmt.Errorf("updating lead status: %w", err)
	}
	return nil
}

func (s *leadService) SellerQueue(ctx context.Context, sellerID string) ([]model.Lead, model.LeadSummary, error) {
	leads, err := s.leads.ListBySeller(ctx, sellerID, 50)
	if err != nil {
		return nil, model.LeadSummary{}, fmt.Errorf("listing seller leads: %w", err)
	}

	summary := model.LeadSummary{Total: len(leads)}
	for _, lead := range leads {
		switch lead.Status {
		case model.LeadStatusNew:
			summary.New++
		case model.LeadStatusAutoResponded:
			summary.AutoResponded++
		case model.LeadStatusQualified:
			summary.Qualified++
		case model.LeadStatusContacted:
			summary.Contacted++
		case model.LeadStatusConverted:
			summary.Converted++
		}
	}

	return leads, summary, nil
}

func (s *leadService) recordAuditTask(ctx context.Context, lead *model.Lead, inquiry *model.Inquiry, score int, autoResponse string, completedAt time.Time) error {
	metadata, err := json.Marshal(map[string]any{
		"lead_id":             lead.ID,
		"inquiry_id":          inquiry.ID,
		"qualification_score": score,
		"auto_response_sent":  true,
	})
	if err != nil {
		return err
	}
	result, err := json.Marshal(map[string]string{
		"response_message": autoResponse,
	})
	if err != nil {
		return err
	}

	listingType := lead.ListingType
	return s.tasks.Create(ctx, &model.AgentTask{
		ID:          id.New(),
		Type:        model.AgentTaskTypeLeadResponse,
		Status:      model.AgentTaskStatusCompleted,
		ListingID:   &lead.ListingID,
		ListingType: &listingType,
		Metadata:    metadata,
		Result:      result,
		CompletedAt: &completedAt,
	})
}

func alreadyProcessed(lead *model.Lead) *ProcessResult {
	return &ProcessResult{
		LeadID:             lead.ID,
		QualificationScore: lead.QualificationScore,
		AutoResponseSent:   lead.AutoResponseSent,
		SellerNotified:     lead.SellerNotified,
		AlreadyProcessed:   true,
	}
}

func listingTypeOrDefault(t model.ListingType) model.ListingType {
	if t == "" {
		return model.ListingTypeBusiness
	}
	return t
}
