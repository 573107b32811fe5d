package postgres

import (
	"context"

	"go-ticket-sales/internal/model"
)

func (s *Store) AppendSale(ctx context.Context, sale *model.Sale) (*model.Sale, error) {
	query := `
		INSERT INTO sales (sale_id, event_id, buyer, contact, quantity, total, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, sale_id, event_id, buyer, contact, quantity, total, sold_at
	`

	created := &model.Sale{}
	err := s.pool.QueryRow(ctx, query,
		sale.SaleID, sale.EventID, sale.Buyer, sale.Contact,
		sale.Quantity, sale.Total, sale.SoldAt,
	).Scan(
		&created.ID,
		&created.SaleID,
		&created.EventID,
		&created.Buyer,
		&created.Contact,
		&created.Quantity,
		&created.Total,
		&created.SoldAt,
	)

	if err != nil {
		return nil, wrapStoreErr(err)
	}

	return created, nil
}

func (s *Store) ListSales(ctx context.Context) ([]*model.Sale, error) {
	query := `
		SELECT id, sale_id, event_id, buyer, contact, quantity, total, sold_at
		FROM sales
		ORDER BY sold_at DESC, id
	`
	return s.querySales(ctx, query)
}

func (s *Store) ListSalesForEvent(ctx context.Context, eventID int64) ([]*model.Sale, error) {
	query := `
		SELECT id, sale_id, event_id, buyer, contact, quantity, total, sold_at
		FROM sales
		WHERE event_id = $1
		ORDER BY sold_at DESC, id
	`
	return s.querySales(ctx, query, eventID)
}

func (s *Store) querySales(ctx context.Context, query string, args ...any) ([]*model.Sale, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr(err)
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
			return nil, wrapStoreErr(err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr(err)
	}

	return sales, nil
}
