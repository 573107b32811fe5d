package worker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ticket-sales/internal/store/memory"
	"go-ticket-sales/internal/worker"
)

func TestStatisticsJob_Compute(t *testing.T) {
	ledger := memory.New()
	seedLedger(t, ledger, 100.0, 200.0, 300.0)

	job := worker.NewStatisticsJob(ledger)
	stats, err := job.Compute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalSales)
	assert.InDelta(t, 600.0, stats.TotalRevenue, 1e-9)
	assert.InDelta(t, 200.0, stats.AverageSale, 1e-9)
	assert.Equal(t, 1, stats.EventsWithSales)

	assert.NoError(t, job.Run(context.Background()))
}

func TestMaintenanceJob_Run(t *testing.T) {
	ledger := memory.New()
	seedLedger(t, ledger, 10.0)

	job := worker.NewMaintenanceJob(ledger)
	assert.NoError(t, job.Run(context.Background()))
}
