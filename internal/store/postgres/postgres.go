// Package postgres implements the LedgerStore on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "go-ticket-sales/pkg/app_errors"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate creates the schema if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			date TEXT NOT NULL,
			venue TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			capacity INTEGER NOT NULL,
			sold INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id BIGSERIAL PRIMARY KEY,
			sale_id UUID NOT NULL UNIQUE,
			event_id BIGINT NOT NULL REFERENCES events (id),
			buyer TEXT NOT NULL,
			contact TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			total DOUBLE PRECISION NOT NULL,
			sold_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_event_id ON sales (event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_sold_at ON sales (sold_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return wrapStoreErr(err)
		}
	}
	return nil
}

// wrapStoreErr maps low-level pgx failures to ErrStoreUnavailable so callers
// get a stable taxonomy. Not-found mapping happens at the query sites where
// pgx.ErrNoRows is meaningful.
func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrEventNotFound) || errors.Is(err, apperrors.ErrSaleNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
}
