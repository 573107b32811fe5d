package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ticket-sales/internal/model"
	apperrors "go-ticket-sales/pkg/app_errors"
)

func newTestEvent(t *testing.T, s *Store, capacity int) *model.Event {
	t.Helper()
	event, err := s.CreateEvent(context.Background(), &model.Event{
		Name:     "Test Concert",
		Date:     "2026-05-01",
		Venue:    "Arena",
		Price:    50.0,
		Capacity: capacity,
	})
	require.NoError(t, err)
	return event
}

func appendSale(t *testing.T, s *Store, eventID int64, quantity int, soldAt time.Time) *model.Sale {
	t.Helper()
	sale, err := s.AppendSale(context.Background(), &model.Sale{
		SaleID:   uuid.New(),
		EventID:  eventID,
		Buyer:    "Buyer",
		Contact:  "buyer@example.com",
		Quantity: quantity,
		Total:    50.0 * float64(quantity),
		SoldAt:   soldAt,
	})
	require.NoError(t, err)
	return sale
}

func TestCreateAndGetEvent(t *testing.T) {
	s := New()
	ctx := context.Background()

	event := newTestEvent(t, s, 100)
	assert.NotZero(t, event.ID)
	assert.Equal(t, 0, event.Sold)

	got, err := s.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.Name, got.Name)
	assert.Equal(t, 100, got.Capacity)
}

func TestGetEvent_NotFound(t *testing.T) {
	s := New()
	_, err := s.GetEvent(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestGetEvent_ReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	event := newTestEvent(t, s, 100)
	got, err := s.GetEvent(ctx, event.ID)
	require.NoError(t, err)

	got.Sold = 42

	again, err := s.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Sold, "mutating a read result must not touch the store")
}

func TestAppendSale_UnknownEvent(t *testing.T) {
	s := New()
	_, err := s.AppendSale(context.Background(), &model.Sale{EventID: 12345, Quantity: 1})
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestListSales_NewestFirstWithIDTieBreak(t *testing.T) {
	s := New()
	ctx := context.Background()
	event := newTestEvent(t, s, 100)

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	first := appendSale(t, s, event.ID, 1, base)
	second := appendSale(t, s, event.ID, 2, base.Add(time.Minute))
	// Same timestamp as second: insertion order decides.
	third := appendSale(t, s, event.ID, 3, base.Add(time.Minute))

	sales, err := s.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 3)
	assert.Equal(t, second.ID, sales[0].ID)
	assert.Equal(t, third.ID, sales[1].ID)
	assert.Equal(t, first.ID, sales[2].ID)
}

func TestListSalesForEvent_FiltersByEvent(t *testing.T) {
	s := New()
	ctx := context.Background()
	eventA := newTestEvent(t, s, 100)
	eventB := newTestEvent(t, s, 100)

	now := time.Now().UTC()
	appendSale(t, s, eventA.ID, 1, now)
	appendSale(t, s, eventB.ID, 2, now)
	appendSale(t, s, eventA.ID, 3, now.Add(time.Second))

	sales, err := s.ListSalesForEvent(ctx, eventA.ID)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	for _, sale := range sales {
		assert.Equal(t, eventA.ID, sale.EventID)
	}
}

func TestSoldCountWrites(t *testing.T) {
	s := New()
	ctx := context.Background()
	event := newTestEvent(t, s, 100)

	require.NoError(t, s.IncrementSoldCount(ctx, event.ID, 5))
	require.NoError(t, s.IncrementSoldCount(ctx, event.ID, 3))

	got, err := s.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Sold)

	require.NoError(t, s.SetSoldCount(ctx, event.ID, 2))
	got, err = s.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Sold)

	assert.ErrorIs(t, s.SetSoldCount(ctx, 999, 1), apperrors.ErrEventNotFound)
	assert.ErrorIs(t, s.IncrementSoldCount(ctx, 999, 1), apperrors.ErrEventNotFound)
}

func TestSnapshot_IsIsolatedCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	event := newTestEvent(t, s, 100)
	appendSale(t, s, event.ID, 2, time.Now().UTC())

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Events, 1)
	require.Len(t, snap.Sales, 1)
	assert.False(t, snap.TakenAt.IsZero())

	snap.Events[0].Sold = 99
	snap.Sales[0].Quantity = 99

	got, err := s.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Sold)

	sales, err := s.ListSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, sales[0].Quantity)
}

func TestSalesStats(t *testing.T) {
	s := New()
	ctx := context.Background()
	eventA := newTestEvent(t, s, 100)
	eventB := newTestEvent(t, s, 100)

	now := time.Now().UTC()
	appendSale(t, s, eventA.ID, 1, now) // total 50
	appendSale(t, s, eventA.ID, 2, now) // total 100
	appendSale(t, s, eventB.ID, 3, now) // total 150

	stats, err := s.SalesStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalSales)
	assert.InDelta(t, 300.0, stats.TotalRevenue, 1e-9)
	assert.InDelta(t, 100.0, stats.AverageSale, 1e-9)
	assert.Equal(t, 2, stats.EventsWithSales)
}

func TestSalesStats_Empty(t *testing.T) {
	s := New()
	stats, err := s.SalesStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalSales)
	assert.Zero(t, stats.AverageSale)
}

func TestMaintain(t *testing.T) {
	s := New()
	event := newTestEvent(t, s, 10)
	appendSale(t, s, event.ID, 1, time.Now().UTC())
	assert.NoError(t, s.Maintain(context.Background()))
}
