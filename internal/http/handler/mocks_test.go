package handler_test

import (
	"context"

	"bizsearch.app/leadagent/internal/model"
	"bizsearch.app/leadagent/internal/service"
	"bizsearch.app/leadagent/internal/store"
)

type mockLeadService struct {
	processInquiryFn    func(ctx context.Context, inquiryID string) (*service.ProcessResult, error)
	processAllPendingFn func(ctx context.Context) (*service.BatchResult, error)
	updateStatusFn      func(ctx context.Context, leadID int64, status model.LeadStatus) error
	sellerQueueFn       func(ctx context.Context, sellerID string) ([]model.Lead, model.LeadSummary, error)
}

func (m *mockLeadService) ProcessInquiry(ctx context.Context, inquiryID string) (*service.ProcessResult, error) {
	if m.processInquiryFn != nil {
		return m.processInquiryFn(ctx, inquiryID)
	}
	return &service.ProcessResult{}, nil
}

func (m *mockLeadService) ProcessAllPending(ctx context.Context) (*service.BatchResult, error) {
	if m.processAllPendingFn != nil {
		return m.processAllPendingFn(ctx)
	}
	return &service.BatchResult{}, nil
}

func (m *mockLeadService) UpdateStatus(ctx context.Context, leadID int64, status model.LeadStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, leadID, status)
	}
	return nil
}

func (m *mockLeadService) SellerQueue(ctx context.Context, sellerID string) ([]model.Lead, model.LeadSummary, error) {
	if m.sellerQueueFn != nil {
		return m.sellerQueueFn(ctx, sellerID)
	}
	return nil, model.LeadSummary{}, nil
}

type mockQuoteService struct {
	createFn         func(ctx context.Context, input service.CreateQuoteInput) (*model.QuoteRequest, error)
	statusFn         func(ctx context.Context, requestID int64, userID string) (*service.QuoteStatus, error)
	listFn           func(ctx context.Context, userID string) ([]model.QuoteRequest, error)
	processPendingFn func(ctx context.Context) (*service.SweepResult, error)
}

func (m *mockQuoteService) Create(ctx context.Context, input service.CreateQuoteInput) (*model.QuoteRequest, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return &model.QuoteRequest{}, nil
}

func (m *mockQuoteService) Status(ctx context.Context, requestID int64, userID string) (*service.QuoteStatus, error) {
	if m.statusFn != nil {
		return m.statusFn(ctx, requestID, userID)
	}
	return &service.QuoteStatus{Request: &model.QuoteRequest{}}, nil
}

func (m *mockQuoteService) List(ctx context.Context, userID string) ([]model.QuoteRequest, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockQuoteService) ProcessPending(ctx context.Context) (*service.SweepResult, error) {
	if m.processPendingFn != nil {
		return m.processPendingFn(ctx)
	}
	return &service.SweepResult{}, nil
}

type mockProfileStore struct {
	getByIDFn       func(ctx context.Context, id string) (*model.Profile, error)
	getByAPITokenFn func(ctx context.Context, token string) (*model.Profile, error)
}

func (m *mockProfileStore) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockProfileStore) GetByAPIToken(ctx context.Context, token string) (*model.Profile, error) {
	if m.getByAPITokenFn != nil {
		return m.getByAPITokenFn(ctx, token)
	}
	return nil, store.ErrNotFound
}
