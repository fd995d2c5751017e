package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bizsearch.app/leadagent/common/logger"
	"bizsearch.app/leadagent/internal/queue"
	"bizsearch.app/leadagent/internal/service"
	"bizsearch.app/leadagent/internal/store"
)

type SweeperConfig struct {
	Interval time.Duration
}

// Sweeper periodically enqueues inquiries that never made it onto the stream
// (submitted while the worker was down, or whose message was lost) and runs
// the quote maintenance pass. The unique constraint on leads makes double
// enqueueing harmless.
type Sweeper struct {
	inquiries store.InquiryStore
	producer  queue.Producer
	quotes    service.QuoteService
	cfg       SweeperConfig

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewSweeper(inquiries store.InquiryStore, producer queue.Producer, quotes service.QuoteService, cfg SweeperConfig) *Sweeper {
	return &Sweeper{
		inquiries: inquiries,
		producer:  producer,
		quotes:    quotes,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Run starts the sweep loop. Blocks until Stop() is called.
func (s *Sweeper) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "leadagent.worker.sweeper",
	})

	defer close(s.stoppedCh)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "sweeper started", "interval", s.cfg.Interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			slog.InfoContext(ctx, "sweeper stopping")
			return
		case <-ticker.C:
			if err := s.sweepOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "sweep cycle error", "error", err)
			}
		}
	}
}

// Stop signals the sweeper to stop gracefully.
func (s *Sweeper) Stop() {
	close(s.stopCh)
	<-s.stoppedCh
}

func (s *Sweeper) sweepOnce(ctx context.Context) error {
	ids, err := s.inquiries.ListUnprocessedIDs(ctx)
	if err != nil {
		return fmt.Errorf("listing unprocessed inquiries: %w", err)
	}

	enqueued := 0
	for _, inquiryID := range ids {
		if err := s.producer.Enqueue(ctx, queue.InquiryMessage{InquiryID: inquiryID}); err != nil {
			slog.ErrorContext(ctx, "failed to enqueue inquiry",
				"error", err,
				"inquiry_id", inquiryID)
			continue
		}
		enqueued++
	}

	if enqueued > 0 {
		slog.InfoContext(ctx, "swept unprocessed inquiries", "enqueued", enqueued)
	}

	if _, err := s.quotes.ProcessPending(ctx); err != nil {
		return fmt.Errorf("quote sweep: %w", err)
	}

	return nil
}
