package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bizsearch.app/leadagent/internal/queue"
	"bizsearch.app/leadagent/internal/service"
)

type Config struct {
	MaxAttempts int
}

// Worker drains the inquiry stream and runs each message through the lead
// pipeline. Processing is idempotent, so redelivery after a crash is safe.
type Worker struct {
	consumer *queue.RedisConsumer
	leads    service.LeadService
	cfg      Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer *queue.RedisConsumer, leads service.LeadService, cfg Config) *Worker {
	return &Worker{
		consumer:  consumer,
		leads:     leads,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	slog.InfoContext(ctx, "worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				// Brief backoff on error
				time.Sleep(time.Second)
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		if err := w.processMessageSafe(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "message processing failed",
				"error", err,
				"message_id", msg.ID,
				"inquiry_id", msg.InquiryID)
			w.handleFailedMessage(ctx, msg, err)
		}
	}

	return nil
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.InquiryMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing",
				"panic", r,
				"message_id", msg.ID,
				"inquiry_id", msg.InquiryID)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// ProcessMessage runs one queued inquiry through the pipeline and acks it.
// Exported so it can be reused by the reclaimer.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.InquiryMessage) error {
	slog.InfoContext(ctx, "processing message",
		"message_id", msg.ID,
		"inquiry_id", msg.InquiryID,
		"attempt", msg.Attempt)

	result, err := w.leads.ProcessInquiry(ctx, msg.InquiryID)
	if err != nil {
		if errors.Is(err, service.ErrInquiryNotFound) {
			// The inquiry row is gone; retrying cannot help.
			slog.WarnContext(ctx, "inquiry no longer exists, dropping message",
				"inquiry_id", msg.InquiryID)
			return w.consumer.Ack(ctx, msg)
		}
		return err
	}

	if result.AlreadyProcessed {
		slog.InfoContext(ctx, "inquiry already processed, acking",
			"inquiry_id", msg.InquiryID,
			"lead_id", result.LeadID)
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// The reclaimer will redeliver; processing is idempotent.
		slog.WarnContext(ctx, "failed to ACK message",
			"error", err,
			"message_id", msg.ID)
	}

	return nil
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.InquiryMessage, err error) {
	if msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ",
			"message_id", msg.ID,
			"inquiry_id", msg.InquiryID,
			"attempts", msg.Attempt)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message",
		"message_id", msg.ID,
		"inquiry_id", msg.InquiryID,
		"attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}
