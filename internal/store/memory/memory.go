// Package memory provides an in-memory LedgerStore for tests and local
// development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-ticket-sales/internal/model"
	"go-ticket-sales/internal/store"
	apperrors "go-ticket-sales/pkg/app_errors"
)

type Store struct {
	mu          sync.RWMutex
	events      map[int64]*model.Event
	sales       []*model.Sale
	nextEventID int64
	nextSaleID  int64
}

func New() *Store {
	return &Store{
		events:      make(map[int64]*model.Event),
		nextEventID: 1,
		nextSaleID:  1,
	}
}

func (s *Store) CreateEvent(_ context.Context, event *model.Event) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := *event
	created.ID = s.nextEventID
	s.nextEventID++
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now
	s.events[created.ID] = &created

	out := created
	return &out, nil
}

func (s *Store) GetEvent(_ context.Context, id int64) (*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	out := *event
	return &out, nil
}

func (s *Store) ListEvents(_ context.Context) ([]*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]*model.Event, 0, len(s.events))
	for _, event := range s.events {
		out := *event
		events = append(events, &out)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (s *Store) AppendSale(_ context.Context, sale *model.Sale) (*model.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[sale.EventID]; !ok {
		return nil, apperrors.ErrEventNotFound
	}

	created := *sale
	created.ID = s.nextSaleID
	s.nextSaleID++
	if created.SoldAt.IsZero() {
		created.SoldAt = time.Now().UTC()
	}
	s.sales = append(s.sales, &created)

	out := created
	return &out, nil
}

func (s *Store) ListSales(_ context.Context) ([]*model.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedCopy(s.sales), nil
}

func (s *Store) ListSalesForEvent(_ context.Context, eventID int64) ([]*model.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*model.Sale, 0)
	for _, sale := range s.sales {
		if sale.EventID == eventID {
			matched = append(matched, sale)
		}
	}
	return sortedCopy(matched), nil
}

func (s *Store) SetSoldCount(_ context.Context, eventID int64, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[eventID]
	if !ok {
		return apperrors.ErrEventNotFound
	}
	event.Sold = value
	event.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Store) IncrementSoldCount(_ context.Context, eventID int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[eventID]
	if !ok {
		return apperrors.ErrEventNotFound
	}
	event.Sold += delta
	event.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Store) Snapshot(_ context.Context) (*store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &store.Snapshot{
		TakenAt: time.Now().UTC(),
		Events:  make([]*model.Event, 0, len(s.events)),
		Sales:   sortedCopy(s.sales),
	}
	for _, event := range s.events {
		out := *event
		snap.Events = append(snap.Events, &out)
	}
	sort.Slice(snap.Events, func(i, j int) bool { return snap.Events[i].ID < snap.Events[j].ID })
	return snap, nil
}

func (s *Store) SalesStats(_ context.Context) (*store.SalesStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &store.SalesStats{}
	eventsSeen := make(map[int64]bool)
	for _, sale := range s.sales {
		stats.TotalSales++
		stats.TotalRevenue += sale.Total
		eventsSeen[sale.EventID] = true
	}
	stats.EventsWithSales = len(eventsSeen)
	if stats.TotalSales > 0 {
		stats.AverageSale = stats.TotalRevenue / float64(stats.TotalSales)
	}
	return stats, nil
}

// Maintain compacts the sales slice. The real work (VACUUM/ANALYZE) only
// matters for the postgres store.
func (s *Store) Maintain(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	compacted := make([]*model.Sale, len(s.sales))
	copy(compacted, s.sales)
	s.sales = compacted
	return nil
}

// sortedCopy returns copies of the given sales newest first: sold_at
// descending, id ascending as the tie-break so insertion order survives.
func sortedCopy(sales []*model.Sale) []*model.Sale {
	out := make([]*model.Sale, 0, len(sales))
	for _, sale := range sales {
		c := *sale
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].SoldAt.Equal(out[j].SoldAt) {
			return out[i].SoldAt.After(out[j].SoldAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
