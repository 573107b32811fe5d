package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ticket-sales/internal/model"
	"go-ticket-sales/internal/store/memory"
	"go-ticket-sales/internal/worker"
)

func seedLedger(t *testing.T, ledger *memory.Store, totals ...float64) {
	t.Helper()
	ctx := context.Background()

	event, err := ledger.CreateEvent(ctx, &model.Event{
		Name: "Show", Date: "2026-01-01", Venue: "Venue", Price: 10, Capacity: 1000,
	})
	require.NoError(t, err)

	for _, total := range totals {
		_, err := ledger.AppendSale(ctx, &model.Sale{
			SaleID:   uuid.New(),
			EventID:  event.ID,
			Buyer:    "Buyer",
			Quantity: 1,
			Total:    total,
			SoldAt:   time.Now().UTC(),
		})
		require.NoError(t, err)
	}
}

func TestReporter_Summarize(t *testing.T) {
	ledger := memory.New()
	seedLedger(t, ledger, 100.0, 250.0, 75.5)

	reporter := worker.NewReporter(ledger, time.Second)
	summary, err := reporter.Summarize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalSales)
	assert.InDelta(t, 425.5, summary.TotalRevenue, 1e-9)
}

func TestReporter_EmptyLedger(t *testing.T) {
	reporter := worker.NewReporter(memory.New(), time.Second)

	summary, err := reporter.Summarize(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalSales)
	assert.Zero(t, summary.TotalRevenue)

	assert.NoError(t, reporter.Tick(context.Background()))
}
