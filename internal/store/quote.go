package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"bizsearch.app/leadagent/internal/model"
)

type quoteRequestStore struct {
	db DBTX
}

func newQuoteRequestStore(db DBTX) QuoteRequestStore {
	return &quoteRequestStore{db: db}
}

func (s *quoteRequestStore) Create(ctx context.Context, req *model.QuoteRequest) error {
	reqJSON, err := json.Marshal(req.Requirements)
	if err != nil {
		return fmt.Errorf("marshaling requirements: %w", err)
	}

	query, args, err := psql.
		Insert("quote_requests").
		Columns("id", "user_id", "listing_ids", "listing_type", "requirements", "status", "expires_at").
		Values(req.ID, req.UserID, req.ListingIDs, req.ListingType, reqJSON, req.Status, req.ExpiresAt).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("building quote request insert: %w", err)
	}

	return s.db.QueryRow(ctx, query, args...).Scan(&req.CreatedAt, &req.UpdatedAt)
}

func (s *quoteRequestStore) GetByIDForUser(ctx context.Context, id int64, userID string) (*model.QuoteRequest, error) {
	query, args, err := psql.
		Select("id", "user_id", "listing_ids", "listing_type", "requirements", "status", "expires_at", "created_at", "updated_at").
		From("quote_requests").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building quote request query: %w", err)
	}

	req, err := scanQuoteRequest(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *quoteRequestStore) ListByUser(ctx context.Context, userID string, limit int32) ([]model.QuoteRequest, error) {
	query, args, err := psql.
		Select("id", "user_id", "listing_ids", "listing_type", "requirements", "status", "expires_at", "created_at", "updated_at").
		From("quote_requests").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building quote requests query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []model.QuoteRequest
	for rows.Next() {
		req, err := scanQuoteRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (s *quoteRequestStore) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := psql.
		Update("quote_requests").
		Set("status", model.QuoteRequestStatusExpired).
		Set("updated_at", now).
		Where(sq.Eq{"status": model.QuoteRequestStatusCollecting}).
		Where(sq.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building expire update: %w", err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *quoteRequestStore) ListCollectingIDs(ctx context.Context, now time.Time) ([]int64, error) {
	query, args, err := psql.
		Select("id").
		From("quote_requests").
		Where(sq.Eq{"status": model.QuoteRequestStatusCollecting}).
		Where(sq.GtOrEq{"expires_at": now}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building collecting query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *quoteRequestStore) MarkCompleted(ctx context.Context, id int64) error {
	query, args, err := psql.
		Update("quote_requests").
		Set("status", model.QuoteRequestStatusCompleted).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building complete update: %w", err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanQuoteRequest(row pgx.Row) (*model.QuoteRequest, error) {
	var (
		req     model.QuoteRequest
		reqJSON []byte
	)
	if err := row.Scan(
		&req.ID, &req.UserID, &req.ListingIDs, &req.ListingType,
		&reqJSON, &req.Status, &req.ExpiresAt, &req.CreatedAt, &req.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(reqJSON) > 0 {
		if err := json.Unmarshal(reqJSON, &req.Requirements); err != nil {
			return nil, fmt.Errorf("unmarshaling requirements: %w", err)
		}
	}
	return &req, nil
}

type quoteResponseStore struct {
	db DBTX
}

func newQuoteResponseStore(db DBTX) QuoteResponseStore {
	return &quoteResponseStore{db: db}
}

func (s *quoteResponseStore) CreateBatch(ctx context.Context, responses []model.QuoteResponse) error {
	if len(responses) == 0 {
		return nil
	}

	builder := psql.
		Insert("quote_responses").
		Columns("id", "quote_request_id", "listing_id", "listing_type", "responder_id", "initial_message", "status")
	for _, r := range responses {
		builder = builder.Values(r.ID, r.QuoteRequestID, r.ListingID, r.ListingType, r.ResponderID, r.InitialMessage, r.Status)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("building quote responses insert: %w", err)
	}

	_, err = s.db.Exec(ctx, query, args...)
	return err
}

func (s *quoteResponseStore) ListByRequest(ctx context.Context, requestID int64) ([]model.QuoteResponse, error) {
	query, args, err := psql.
		Select("id", "quote_request_id", "listing_id", "listing_type", "responder_id",
			"initial_message", "response_message", "status", "responded_at", "created_at").
		From("quote_responses").
		Where(sq.Eq{"quote_request_id": requestID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building quote responses query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []model.QuoteResponse
	for rows.Next() {
		var r model.QuoteResponse
		if err := rows.Scan(
			&r.ID, &r.QuoteRequestID, &r.ListingID, &r.ListingType, &r.ResponderID,
			&r.InitialMessage, &r.ResponseMessage, &r.Status, &r.RespondedAt, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}
