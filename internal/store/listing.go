package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"bizsearch.app/leadagent/internal/model"
)

type listingStore struct {
	db DBTX
}

func newListingStore(db DBTX) ListingStore {
	return &listingStore{db: db}
}

func (s *listingStore) ListByIDs(ctx context.Context, listingType model.ListingType, ids []string) ([]model.Listing, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := psql.
		Select("id", "listing_type", "name", "brand_name", "COALESCE(owner_id, seller_id)", "industry").
		From("listings").
		Where(sq.Eq{"listing_type": listingType, "id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building listings query: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []model.Listing
	for rows.Next() {
		var l model.Listing
		if err := rows.Scan(&l.ID, &l.Type, &l.Name, &l.BrandName, &l.OwnerID, &l.Industry); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
