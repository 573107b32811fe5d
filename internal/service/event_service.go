package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"go-ticket-sales/internal/cache"
	"go-ticket-sales/internal/model"
	"go-ticket-sales/internal/store"
	apperrors "go-ticket-sales/pkg/app_errors"
	"go-ticket-sales/pkg/logger"
)

type EventService interface {
	Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	// ListAvailable returns only events with tickets remaining, the public
	// listing view.
	ListAvailable(ctx context.Context) ([]*model.Event, error)
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	// Availability serves the cached remaining count, falling back to the
	// store on a miss.
	Availability(ctx context.Context, id int64) (cache.Availability, error)
	Report(ctx context.Context, id int64) (*model.EventReport, error)
}

type EventServiceImpl struct {
	store store.LedgerStore
	cache cache.AvailabilityCache
	log   *zap.Logger
}

func NewEventService(ledger store.LedgerStore, availability cache.AvailabilityCache) EventService {
	return &EventServiceImpl{
		store: ledger,
		cache: availability,
		log:   logger.WithComponent("event_service"),
	}
}

func (s *EventServiceImpl) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Venue) == "" {
		return nil, apperrors.ErrInvalidInput
	}
	if req.Price < 0 || req.Capacity <= 0 {
		return nil, apperrors.ErrInvalidInput
	}

	event, err := s.store.CreateEvent(ctx, &model.Event{
		Name:     req.Name,
		Date:     req.Date,
		Venue:    req.Venue,
		Price:    req.Price,
		Capacity: req.Capacity,
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.WarmUp(ctx, event.ID, event.Remaining(), event.Price); err != nil {
		s.log.Warn("failed to warm up availability cache",
			zap.Int64("event_id", event.ID), zap.Error(err))
	}

	return event, nil
}

func (s *EventServiceImpl) List(ctx context.Context) ([]*model.Event, error) {
	return s.store.ListEvents(ctx)
}

func (s *EventServiceImpl) ListAvailable(ctx context.Context) ([]*model.Event, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]*model.Event, 0, len(events))
	for _, event := range events {
		if event.IsAvailable() {
			available = append(available, event)
		}
	}
	return available, nil
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	return s.store.GetEvent(ctx, id)
}

func (s *EventServiceImpl) Availability(ctx context.Context, id int64) (cache.Availability, error) {
	avail, err := s.cache.Get(ctx, id)
	if err == nil {
		return avail, nil
	}
	if !errors.Is(err, apperrors.ErrEventNotFound) {
		s.log.Warn("availability cache read failed, falling back to store",
			zap.Int64("event_id", id), zap.Error(err))
	}

	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return cache.Availability{}, err
	}

	avail = cache.Availability{Remaining: event.Remaining(), Price: event.Price}
	if err := s.cache.WarmUp(ctx, event.ID, avail.Remaining, avail.Price); err != nil {
		s.log.Warn("failed to warm up availability cache",
			zap.Int64("event_id", event.ID), zap.Error(err))
	}
	return avail, nil
}

func (s *EventServiceImpl) Report(ctx context.Context, id int64) (*model.EventReport, error) {
	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.EventReport{
		EventID:   event.ID,
		Name:      event.Name,
		Date:      event.Date,
		Venue:     event.Venue,
		Price:     event.Price,
		Capacity:  event.Capacity,
		Sold:      event.Sold,
		Remaining: event.Remaining(),
		Revenue:   float64(event.Sold) * event.Price,
	}, nil
}
