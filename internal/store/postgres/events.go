package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"go-ticket-sales/internal/model"
	apperrors "go-ticket-sales/pkg/app_errors"
)

func (s *Store) CreateEvent(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (name, date, venue, price, capacity, sold)
		VALUES ($1, $2, $3, $4, $5, 0)
		RETURNING id, name, date, venue, price, capacity, sold, created_at, updated_at
	`

	created := &model.Event{}
	err := s.pool.QueryRow(ctx, query,
		event.Name, event.Date, event.Venue, event.Price, event.Capacity,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Date,
		&created.Venue,
		&created.Price,
		&created.Capacity,
		&created.Sold,
		&created.CreatedAt,
		&created.UpdatedAt,
	)

	if err != nil {
		return nil, wrapStoreErr(err)
	}

	return created, nil
}

func (s *Store) GetEvent(ctx context.Context, id int64) (*model.Event, error) {
	query := `
		SELECT id, name, date, venue, price, capacity, sold, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	event := &model.Event{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.Date,
		&event.Venue,
		&event.Price,
		&event.Capacity,
		&event.Sold,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, wrapStoreErr(err)
	}

	return event, nil
}

func (s *Store) ListEvents(ctx context.Context) ([]*model.Event, error) {
	query := `
		SELECT id, name, date, venue, price, capacity, sold, created_at, updated_at
		FROM events
		ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event := &model.Event{}
		err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.Date,
			&event.Venue,
			&event.Price,
			&event.Capacity,
			&event.Sold,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, wrapStoreErr(err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr(err)
	}

	return events, nil
}

func (s *Store) SetSoldCount(ctx context.Context, eventID int64, value int) error {
	query := `
		UPDATE events
		SET sold = $1, updated_at = $2
		WHERE id = $3
	`

	tag, err := s.pool.Exec(ctx, query, value, time.Now().UTC(), eventID)
	if err != nil {
		return wrapStoreErr(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (s *Store) IncrementSoldCount(ctx context.Context, eventID int64, delta int) error {
	query := `
		UPDATE events
		SET sold = sold + $1, updated_at = $2
		WHERE id = $3
	`

	tag, err := s.pool.Exec(ctx, query, delta, time.Now().UTC(), eventID)
	if err != nil {
		return wrapStoreErr(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}
