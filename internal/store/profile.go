package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"bizsearch.app/leadagent/internal/model"
)

type profileStore struct {
	db DBTX
}

func newProfileStore(db DBTX) ProfileStore {
	return &profileStore{db: db}
}

func (s *profileStore) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	return s.getOne(ctx, sq.Eq{"id": id})
}

func (s *profileStore) GetByAPIToken(ctx context.Context, token string) (*model.Profile, error) {
	return s.getOne(ctx, sq.Eq{"api_token": token})
}

func (s *profileStore) getOne(ctx context.Context, pred any) (*model.Profile, error) {
	query, args, err := psql.
		Select("id", "display_name", "email", "phone", "created_at").
		From("profiles").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building profile query: %w", err)
	}

	var p model.Profile
	row := s.db.QueryRow(ctx, query, args...)
	if err := row.Scan(&p.ID, &p.DisplayName, &p.Email, &p.Phone, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
