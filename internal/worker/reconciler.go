package worker

import (
	"context"
	"time"

	"go-ticket-sales/internal/service"
)

// Reconciler periodically recomputes each event's sold count from the sale
// ledger and heals drift. It is the sole mechanism that corrects the cached
// counter; the heavy lifting (and the per-event locking) lives in the sales
// service.
type Reconciler struct {
	service  service.SalesService
	interval time.Duration
}

func NewReconciler(salesService service.SalesService, interval time.Duration) *Reconciler {
	return &Reconciler{service: salesService, interval: interval}
}

func (r *Reconciler) Name() string { return "reconciler" }

func (r *Reconciler) Interval() time.Duration { return r.interval }

func (r *Reconciler) Tick(ctx context.Context) error {
	return r.service.Reconcile(ctx)
}
