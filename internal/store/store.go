package store

import (
	"context"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint,
// e.g. a second lead for the same inquiry. Callers in the pipeline treat it
// as "already processed" rather than a hard failure.
var ErrDuplicate = errors.New("duplicate")

// ErrConstraint is returned when a write is rejected by a non-uniqueness
// constraint (foreign key, check). The row data itself is invalid, so the
// same write can never succeed on retry.
var ErrConstraint = errors.New("constraint violation")

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so the same store code
// runs inside and outside transactions.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// psql builds queries with Postgres-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const uniqueViolationCode = "23505"

// Postgres class 23 groups the integrity constraint violations.
const integrityViolationClass = "23"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// constraintViolation reports whether err is an integrity constraint
// rejection and returns the database's message for it. Uniqueness is part of
// the same class, so callers check isUniqueViolation first.
func constraintViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, integrityViolationClass) {
		return pgErr.Message, true
	}
	return "", false
}
