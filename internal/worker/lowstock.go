package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-ticket-sales/internal/model"
	"go-ticket-sales/internal/store"
	"go-ticket-sales/pkg/logger"
)

// LowStockMonitor scans events and raises an alert when remaining inventory
// drops to the threshold or below (sold-out events are excluded). Pure
// read-only observer.
type LowStockMonitor struct {
	store     store.LedgerStore
	threshold int
	interval  time.Duration
	log       *zap.Logger

	// notify is called for each low-stock event; defaults to a log alert.
	notify func(event *model.Event, remaining int)
}

func NewLowStockMonitor(ledger store.LedgerStore, threshold int, interval time.Duration) *LowStockMonitor {
	m := &LowStockMonitor{
		store:     ledger,
		threshold: threshold,
		interval:  interval,
		log:       logger.WithComponent("low_stock_monitor"),
	}
	m.notify = func(event *model.Event, remaining int) {
		m.log.Warn("low stock alert",
			zap.Int64("event_id", event.ID),
			zap.String("event", event.Name),
			zap.Int("remaining", remaining))
	}
	return m
}

// SetNotifier replaces the default log alert, used by tests and by any
// future alerting integration.
func (m *LowStockMonitor) SetNotifier(fn func(event *model.Event, remaining int)) {
	m.notify = fn
}

func (m *LowStockMonitor) Name() string { return "low_stock_monitor" }

func (m *LowStockMonitor) Interval() time.Duration { return m.interval }

func (m *LowStockMonitor) Tick(ctx context.Context) error {
	events, err := m.store.ListEvents(ctx)
	if err != nil {
		return err
	}

	for _, event := range events {
		remaining := event.Remaining()
		if remaining > 0 && remaining <= m.threshold {
			m.notify(event, remaining)
		}
	}
	return nil
}
