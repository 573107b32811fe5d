package worker

import (
	"context"

	"go.uber.org/zap"

	"go-ticket-sales/internal/store"
	"go-ticket-sales/pkg/logger"
)

// StatisticsJob computes aggregate counts, sums and averages over the sale
// ledger. It runs with relaxed consistency: a sale committing mid-computation
// only decides whether that sale is included in the snapshot.
type StatisticsJob struct {
	store store.LedgerStore
	log   *zap.Logger
}

func NewStatisticsJob(ledger store.LedgerStore) *StatisticsJob {
	return &StatisticsJob{store: ledger, log: logger.WithComponent("statistics_job")}
}

func (j *StatisticsJob) Name() string { return "statistics_job" }

func (j *StatisticsJob) Run(ctx context.Context) error {
	stats, err := j.Compute(ctx)
	if err != nil {
		return err
	}

	j.log.Info("statistics computed",
		zap.Int("total_sales", stats.TotalSales),
		zap.Float64("total_revenue", stats.TotalRevenue),
		zap.Float64("average_sale", stats.AverageSale),
		zap.Int("events_with_sales", stats.EventsWithSales))
	return nil
}

func (j *StatisticsJob) Compute(ctx context.Context) (*store.SalesStats, error) {
	return j.store.SalesStats(ctx)
}

// MaintenanceJob compacts and optimizes storage. It never touches the
// coordinator's critical section.
type MaintenanceJob struct {
	store store.LedgerStore
	log   *zap.Logger
}

func NewMaintenanceJob(ledger store.LedgerStore) *MaintenanceJob {
	return &MaintenanceJob{store: ledger, log: logger.WithComponent("maintenance_job")}
}

func (j *MaintenanceJob) Name() string { return "maintenance_job" }

func (j *MaintenanceJob) Run(ctx context.Context) error {
	if err := j.store.Maintain(ctx); err != nil {
		return err
	}
	j.log.Info("storage maintenance completed")
	return nil
}
