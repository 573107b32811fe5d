package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"go-ticket-sales/internal/model"
	"go-ticket-sales/internal/store"
)

// Snapshot reads events and sales inside one repeatable-read transaction so
// the backup is a consistent point-in-time copy while sales keep committing.
func (s *Store) Snapshot(ctx context.Context) (*store.Snapshot, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	defer tx.Rollback(ctx)

	snap := &store.Snapshot{TakenAt: time.Now().UTC()}

	snap.Events, err = snapshotEvents(ctx, tx)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	snap.Sales, err = snapshotSales(ctx, tx)
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, wrapStoreErr(err)
	}
	return snap, nil
}

func snapshotEvents(ctx context.Context, tx pgx.Tx) ([]*model.Event, error) {
	query := `
		SELECT id, name, date, venue, price, capacity, sold, created_at, updated_at
		FROM events
		ORDER BY id
	`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
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
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func snapshotSales(ctx context.Context, tx pgx.Tx) ([]*model.Sale, error) {
	query := `
		SELECT id, sale_id, event_id, buyer, contact, quantity, total, sold_at
		FROM sales
		ORDER BY sold_at DESC, id
	`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]*model.Sale, 0)
	for rows.Next() {
		sale := &model.Sale{}
		err := rows.Scan(
			&sale.ID,
			&sale.SaleID,
			&sale.EventID,
			&sale.Buyer,
			&sale.Contact,
			&sale.Quantity,
			&sale.Total,
			&sale.SoldAt,
		)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func (s *Store) SalesStats(ctx context.Context) (*store.SalesStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(total), 0),
			COALESCE(AVG(total), 0),
			COUNT(DISTINCT event_id)
		FROM sales
	`

	stats := &store.SalesStats{}
	err := s.pool.QueryRow(ctx, query).Scan(
		&stats.TotalSales,
		&stats.TotalRevenue,
		&stats.AverageSale,
		&stats.EventsWithSales,
	)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return stats, nil
}

// Maintain runs VACUUM and ANALYZE. VACUUM cannot run inside a transaction,
// so both statements go straight to the pool.
func (s *Store) Maintain(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, "VACUUM"); err != nil {
		return wrapStoreErr(err)
	}
	if _, err := s.pool.Exec(ctx, "ANALYZE"); err != nil {
		return wrapStoreErr(err)
	}
	return nil
}
