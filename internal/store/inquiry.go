package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"bizsearch.app/leadagent/internal/model"
)

type inquiryStore struct {
	db DBTX
}

func newInquiryStore(db DBTX) InquiryStore {
	return &inquiryStore{db: db}
}

func (s *inquiryStore) GetByID(ctx context.Context, id string) (*model.Inquiry, error) {
	// The listing owner lives in owner_id for businesses and seller_id for
	// franchises; COALESCE normalizes the shape here so the pipeline never
	// sees the difference.
	query, args, err := psql.
		Select(
			"i.id", "i.listing_id", "i.listing_type", "i.user_id",
			"i.name", "i.email", "i.phone", "i.message", "i.created_at",
			"l.id", "l.listing_type", "l.name", "l.brand_name",
			"COALESCE(l.owner_id, l.seller_id)", "l.industry",
		).
		From("inquiries i").
		LeftJoin("listings l ON l.id = i.listing_id").
		Where(sq.Eq{"i.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building inquiry query: %w", err)
	}

	var (
		inq     model.Inquiry
		listing model.Listing

		listingID   *string
		listingType *string
	)

	row := s.db.QueryRow(ctx, query, args...)
	if err := row.Scan(
		&inq.ID, &inq.ListingID, &inq.ListingType, &inq.UserID,
		&inq.Name, &inq.Email, &inq.Phone, &inq.Message, &inq.CreatedAt,
		&listingID, &listingType, &listing.Name, &listing.BrandName,
		&listing.OwnerID, &listing.Industry,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if listingID != nil {
		listing.ID = *listingID
		if listingType != nil {
			listing.Type = model.ListingType(*listingType)
		}
		inq.Listing = &listing
	}

	return &inq, nil
}

func (s *inquiryStore) ListUnprocessedIDs(ctx context.Context) ([]string, error) {
	// Anti-join: inquiries that have no lead yet. Failed pipeline runs leave
	// no lead row, so they show up here again on the next sweep.
	query, args, err := psql.
		Select("i.id").
		From("inquiries i").
		LeftJoin("lead_queue lq ON lq.inquiry_id = i.id").
		Where("lq.id IS NULL").
		OrderBy("i.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building unprocessed inquiries query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
