// Package store defines the ledger store contract: durable storage of events
// and the append-only sale ledger. The coordinator owns the per-event
// critical section; implementations only need atomic single operations.
package store

import (
	"context"
	"time"

	"go-ticket-sales/internal/model"
)

// LedgerStore is the persistence collaborator for events and sales.
// Implementations: postgres (production), memory (tests/dev).
//
// Both SetSoldCount and IncrementSoldCount are exposed so callers can choose
// absolute-set semantics (reconciliation) or delta semantics (sale).
// Operations return ErrStoreUnavailable (wrapped) when storage is unreachable.
type LedgerStore interface {
	CreateEvent(ctx context.Context, event *model.Event) (*model.Event, error)
	GetEvent(ctx context.Context, id int64) (*model.Event, error)
	ListEvents(ctx context.Context) ([]*model.Event, error)

	// AppendSale persists one immutable ledger entry. No update or delete
	// operations exist for sales.
	AppendSale(ctx context.Context, sale *model.Sale) (*model.Sale, error)
	// ListSales returns the full ledger, newest first (sold_at desc, id as
	// tie-break).
	ListSales(ctx context.Context) ([]*model.Sale, error)
	ListSalesForEvent(ctx context.Context, eventID int64) ([]*model.Sale, error)

	SetSoldCount(ctx context.Context, eventID int64, value int) error
	IncrementSoldCount(ctx context.Context, eventID int64, delta int) error

	// Snapshot returns a point-in-time copy of the durable state for backup.
	Snapshot(ctx context.Context) (*Snapshot, error)
	// SalesStats aggregates the ledger for the statistics job.
	SalesStats(ctx context.Context) (*SalesStats, error)
	// Maintain performs storage compaction/optimization.
	Maintain(ctx context.Context) error
}

// Snapshot is a point-in-time copy of all durable state. Mutating it never
// affects the store.
type Snapshot struct {
	TakenAt time.Time      `json:"taken_at"`
	Events  []*model.Event `json:"events"`
	Sales   []*model.Sale  `json:"sales"`
}

// SalesStats are the aggregates reported by the statistics job.
type SalesStats struct {
	TotalSales      int     `json:"total_sales"`
	TotalRevenue    float64 `json:"total_revenue"`
	AverageSale     float64 `json:"average_sale"`
	EventsWithSales int     `json:"events_with_sales"`
}
