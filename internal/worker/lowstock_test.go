package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ticket-sales/internal/model"
	"go-ticket-sales/internal/store/memory"
	"go-ticket-sales/internal/worker"
)

type alertRecord struct {
	eventID   int64
	remaining int
}

func newMonitorFixture(t *testing.T) (*memory.Store, *worker.LowStockMonitor, *[]alertRecord) {
	t.Helper()
	ledger := memory.New()
	monitor := worker.NewLowStockMonitor(ledger, 5, time.Second)

	alerts := &[]alertRecord{}
	monitor.SetNotifier(func(event *model.Event, remaining int) {
		*alerts = append(*alerts, alertRecord{eventID: event.ID, remaining: remaining})
	})
	return ledger, monitor, alerts
}

// Walks the threshold scenario: capacity 8, sold 3 -> remaining 5 alerts;
// one more sale -> remaining 4 still alerts; sold out -> no alert.
func TestLowStockMonitor_ThresholdScenario(t *testing.T) {
	ledger, monitor, alerts := newMonitorFixture(t)
	ctx := context.Background()

	event, err := ledger.CreateEvent(ctx, &model.Event{
		Name: "Club Night", Date: "2026-01-01", Venue: "Club", Price: 20, Capacity: 8,
	})
	require.NoError(t, err)
	require.NoError(t, ledger.SetSoldCount(ctx, event.ID, 3))

	require.NoError(t, monitor.Tick(ctx))
	require.Len(t, *alerts, 1)
	assert.Equal(t, 5, (*alerts)[0].remaining)

	require.NoError(t, ledger.IncrementSoldCount(ctx, event.ID, 1))
	require.NoError(t, monitor.Tick(ctx))
	require.Len(t, *alerts, 2)
	assert.Equal(t, 4, (*alerts)[1].remaining)

	require.NoError(t, ledger.SetSoldCount(ctx, event.ID, 8))
	require.NoError(t, monitor.Tick(ctx))
	assert.Len(t, *alerts, 2, "remaining=0 is excluded from alerting")
}

func TestLowStockMonitor_IgnoresHealthyStock(t *testing.T) {
	ledger, monitor, alerts := newMonitorFixture(t)
	ctx := context.Background()

	event, err := ledger.CreateEvent(ctx, &model.Event{
		Name: "Stadium Show", Date: "2026-01-01", Venue: "Stadium", Price: 80, Capacity: 100,
	})
	require.NoError(t, err)
	require.NoError(t, ledger.SetSoldCount(ctx, event.ID, 10))

	require.NoError(t, monitor.Tick(ctx))
	assert.Empty(t, *alerts)
}

func TestLowStockMonitor_ScansEveryEvent(t *testing.T) {
	ledger, monitor, alerts := newMonitorFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		event, err := ledger.CreateEvent(ctx, &model.Event{
			Name: "Show", Date: "2026-01-01", Venue: "Venue", Price: 10, Capacity: 10,
		})
		require.NoError(t, err)
		require.NoError(t, ledger.SetSoldCount(ctx, event.ID, 8))
	}

	require.NoError(t, monitor.Tick(ctx))
	assert.Len(t, *alerts, 3)
}
