package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-ticket-sales/internal/store"
	"go-ticket-sales/pkg/logger"
)

// SalesSummary is the periodic roll-up of the full sale ledger.
type SalesSummary struct {
	TotalSales   int     `json:"total_sales"`
	TotalRevenue float64 `json:"total_revenue"`
}

// Reporter periodically aggregates the ledger into a summary. Read-only.
type Reporter struct {
	store    store.LedgerStore
	interval time.Duration
	log      *zap.Logger
}

func NewReporter(ledger store.LedgerStore, interval time.Duration) *Reporter {
	return &Reporter{
		store:    ledger,
		interval: interval,
		log:      logger.WithComponent("reporter"),
	}
}

func (r *Reporter) Name() string { return "reporter" }

func (r *Reporter) Interval() time.Duration { return r.interval }

func (r *Reporter) Tick(ctx context.Context) error {
	summary, err := r.Summarize(ctx)
	if err != nil {
		return err
	}

	if summary.TotalSales > 0 {
		r.log.Info("sales report",
			zap.Int("total_sales", summary.TotalSales),
			zap.Float64("total_revenue", summary.TotalRevenue))
	}
	return nil
}

func (r *Reporter) Summarize(ctx context.Context) (*SalesSummary, error) {
	sales, err := r.store.ListSales(ctx)
	if err != nil {
		return nil, err
	}

	summary := &SalesSummary{}
	for _, sale := range sales {
		summary.TotalSales++
		summary.TotalRevenue += sale.Total
	}
	return summary, nil
}
