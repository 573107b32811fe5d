package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-ticket-sales/internal/cache"
	"go-ticket-sales/internal/lock"
	"go-ticket-sales/internal/model"
	"go-ticket-sales/internal/store"
	apperrors "go-ticket-sales/pkg/app_errors"
	"go-ticket-sales/pkg/logger"
)

// SalesService is the inventory coordinator: the sole authority that decides
// whether a sale may proceed and applies the sold-count increment. It also
// owns reconciliation, which shares the same per-event critical section so a
// reconciliation pass can never observe a half-committed sale.
type SalesService interface {
	// AttemptSale validates the request, serializes on the event's lock,
	// checks remaining capacity and commits ledger entry plus counter
	// increment as one unit. Returns the created sale and a confirmation
	// message.
	AttemptSale(ctx context.Context, req model.AttemptSaleRequest) (*model.Sale, string, error)
	History(ctx context.Context) ([]*model.Sale, error)
	HistoryForEvent(ctx context.Context, eventID int64) ([]*model.Sale, error)
	// Reconcile recomputes every event's sold count from the ledger and
	// heals drift. A failure on one event does not abort the rest.
	Reconcile(ctx context.Context) error
	// ReconcileEvent heals a single event. Returns whether a correction was
	// applied and the authoritative ledger sum.
	ReconcileEvent(ctx context.Context, eventID int64) (bool, int, error)
}

type SalesServiceImpl struct {
	store store.LedgerStore
	locks *lock.KeyedMutex
	cache cache.AvailabilityCache
	log   *zap.Logger
}

func NewSalesService(ledger store.LedgerStore, locks *lock.KeyedMutex, availability cache.AvailabilityCache) SalesService {
	return &SalesServiceImpl{
		store: ledger,
		locks: locks,
		cache: availability,
		log:   logger.WithComponent("sales_service"),
	}
}

func (s *SalesServiceImpl) AttemptSale(ctx context.Context, req model.AttemptSaleRequest) (*model.Sale, string, error) {
	if req.Quantity < 1 || req.Buyer == "" {
		return nil, "", apperrors.ErrInvalidInput
	}

	// Critical section keyed by event id: the capacity check and the counter
	// update must not interleave with another sale or a reconciliation pass
	// for the same event. Unrelated events proceed in parallel.
	s.locks.Lock(req.EventID)
	defer s.locks.Unlock(req.EventID)

	event, err := s.store.GetEvent(ctx, req.EventID)
	if err != nil {
		return nil, "", err
	}

	remaining := event.Remaining()
	if req.Quantity > remaining {
		return nil, "", &apperrors.InsufficientInventoryError{
			EventID:   event.ID,
			Requested: req.Quantity,
			Remaining: remaining,
		}
	}

	soldAt := time.Now().UTC()
	sale := &model.Sale{
		SaleID:   uuid.New(),
		EventID:  event.ID,
		Buyer:    req.Buyer,
		Contact:  req.Contact,
		Quantity: req.Quantity,
		Total:    event.Price * float64(req.Quantity),
		SoldAt:   soldAt,
	}

	created, err := s.store.AppendSale(ctx, sale)
	if err != nil {
		return nil, "", err
	}

	if err := s.store.IncrementSoldCount(ctx, event.ID, req.Quantity); err != nil {
		// The ledger entry committed but the counter did not. The sale
		// stands (the ledger is ground truth); the reconciler will converge
		// the counter on its next pass.
		s.log.Error("sold counter update failed after ledger append, awaiting reconciliation",
			zap.Int64("event_id", event.ID),
			zap.String("sale_id", created.SaleID.String()),
			zap.Error(err))
		return nil, "", err
	}

	newRemaining := remaining - req.Quantity
	if err := s.cache.SetRemaining(context.WithoutCancel(ctx), event.ID, newRemaining); err != nil {
		s.log.Warn("failed to refresh availability cache",
			zap.Int64("event_id", event.ID), zap.Error(err))
	}

	confirmation := fmt.Sprintf("Sale confirmed: %d ticket(s) for '%s' - Total: $%.2f - Date: %s",
		created.Quantity, event.Name, created.Total, created.SoldAt.Format("2006-01-02 15:04:05"))

	s.log.Info("sale committed",
		zap.Int64("event_id", event.ID),
		zap.String("sale_id", created.SaleID.String()),
		zap.Int("quantity", created.Quantity),
		zap.Int("remaining", newRemaining))

	return created, confirmation, nil
}

func (s *SalesServiceImpl) History(ctx context.Context) ([]*model.Sale, error) {
	return s.store.ListSales(ctx)
}

func (s *SalesServiceImpl) HistoryForEvent(ctx context.Context, eventID int64) ([]*model.Sale, error) {
	if _, err := s.store.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.ListSalesForEvent(ctx, eventID)
}

func (s *SalesServiceImpl) Reconcile(ctx context.Context) error {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return err
	}

	var lastErr error
	for _, event := range events {
		corrected, ledgerSum, err := s.ReconcileEvent(ctx, event.ID)
		if err != nil {
			s.log.Error("reconciliation failed for event, continuing",
				zap.Int64("event_id", event.ID), zap.Error(err))
			lastErr = err
			continue
		}
		if corrected {
			s.log.Warn("sold counter drift corrected",
				zap.Int64("event_id", event.ID),
				zap.Int("corrected_to", ledgerSum))
		}
	}
	return lastErr
}

func (s *SalesServiceImpl) ReconcileEvent(ctx context.Context, eventID int64) (bool, int, error) {
	// Same lock as AttemptSale: drift detection and the absolute-set write
	// must not race a concurrent sale on this event.
	s.locks.Lock(eventID)
	defer s.locks.Unlock(eventID)

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return false, 0, err
	}

	sales, err := s.store.ListSalesForEvent(ctx, eventID)
	if err != nil {
		return false, 0, err
	}

	ledgerSum := 0
	for _, sale := range sales {
		ledgerSum += sale.Quantity
	}

	if ledgerSum == event.Sold {
		return false, ledgerSum, nil
	}

	if err := s.store.SetSoldCount(ctx, eventID, ledgerSum); err != nil {
		return false, ledgerSum, err
	}

	if err := s.cache.SetRemaining(context.WithoutCancel(ctx), eventID, event.Capacity-ledgerSum); err != nil {
		s.log.Warn("failed to refresh availability cache after correction",
			zap.Int64("event_id", eventID), zap.Error(err))
	}

	return true, ledgerSum, nil
}
