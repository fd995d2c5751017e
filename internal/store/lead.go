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

type leadStore struct {
	db DBTX
}

func newLeadStore(db DBTX) LeadStore {
	return &leadStore{db: db}
}

const leadColumns = "id, inquiry_id, listing_id, listing_type, seller_id, buyer_id, " +
	"buyer_name, buyer_email, buyer_phone, qualification_score, qualification_notes, " +
	"status, auto_response_sent, auto_response_at, seller_notified, seller_notified_at, " +
	"created_at, updated_at"

func (s *leadStore) Create(ctx context.Context, lead *model.Lead) error {
	notesJSON, err := json.Marshal(lead.QualificationNotes)
	if err != nil {
		return fmt.Errorf("marshaling qualification notes: %w", err)
	}

	query, args, err := psql.
		Insert("lead_queue").
		Columns(
			"id", "inquiry_id", "listing_id", "listing_type", "seller_id",
			"buyer_id", "buyer_name", "buyer_email", "buyer_phone",
			"qualification_score", "qualification_notes", "status",
		).
		Values(
			lead.ID, lead.InquiryID, lead.ListingID, lead.ListingType, lead.SellerID,
			lead.BuyerID, lead.BuyerName, lead.BuyerEmail, lead.BuyerPhone,
			lead.QualificationScore, notesJSON, lead.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("building lead insert: %w", err)
	}

	row := s.db.QueryRow(ctx, query, args...)
	if err := row.Scan(&lead.CreatedAt, &lead.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		if msg, ok := constraintViolation(err); ok {
			return fmt.Errorf("%w: %s", ErrConstraint, msg)
		}
		return err
	}
	return nil
}

func (s *leadStore) GetByID(ctx context.Context, id int64) (*model.Lead, error) {
	return s.getOne(ctx, sq.Eq{"id": id})
}

func (s *leadStore) GetByInquiryID(ctx context.Context, inquiryID string) (*model.Lead, error) {
	return s.getOne(ctx, sq.Eq{"inquiry_id": inquiryID})
}

func (s *leadStore) getOne(ctx context.Context, pred any) (*model.Lead, error) {
	query, args, err := psql.
		Select(leadColumns).
		From("lead_queue").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building lead query: %w", err)
	}

	lead, err := scanLead(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return lead, nil
}

func (s *leadStore) MarkAutoResponded(ctx context.Context, id int64, at time.Time) error {
	query, args, err := psql.
		Update("lead_queue").
		Set("auto_response_sent", true).
		Set("auto_response_at", at).
		Set("status", model.LeadStatusAutoResponded).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building auto-response update: %w", err)
	}
	return s.execExpectingRow(ctx, query, args)
}

func (s *leadStore) MarkSellerNotified(ctx context.Context, id int64, at time.Time) error {
	query, args, err := psql.
		Update("lead_queue").
		Set("seller_notified", true).
		Set("seller_notified_at", at).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building seller-notified update: %w", err)
	}
	return s.execExpectingRow(ctx, query, args)
}

func (s *leadStore) UpdateStatus(ctx context.Context, id int64, status model.LeadStatus) error {
	query, args, err := psql.
		Update("lead_queue").
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building status update: %w", err)
	}
	return s.execExpectingRow(ctx, query, args)
}

func (s *leadStore) ListBySeller(ctx context.Context, sellerID string, limit int32) ([]model.Lead, error) {
	query, args, err := psql.
		Select(leadColumns).
		From("lead_queue").
		Where(sq.Eq{"seller_id": sellerID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building seller leads query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

func (s *leadStore) execExpectingRow(ctx context.Context, query string, args []any) error {
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanLead(row pgx.Row) (*model.Lead, error) {
	var (
		lead  model.Lead
		notes []byte
	)
	if err := row.Scan(
		&lead.ID, &lead.InquiryID, &lead.ListingID, &lead.ListingType,
		&lead.SellerID, &lead.BuyerID, &lead.BuyerName, &lead.BuyerEmail,
		&lead.BuyerPhone, &lead.QualificationScore, &notes, &lead.Status,
		&lead.AutoResponseSent, &lead.AutoResponseAt,
		&lead.SellerNotified, &lead.SellerNotifiedAt,
		&lead.CreatedAt, &lead.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(notes) > 0 {
		if err := json.Unmarshal(notes, &lead.QualificationNotes); err != nil {
			return nil, fmt.Errorf("unmarshaling qualification notes: %w", err)
		}
	}
	return &lead, nil
}
