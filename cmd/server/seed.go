package main

import (
	"context"

	"go-ticket-sales/internal/model"
	"go-ticket-sales/internal/service"
	"go-ticket-sales/pkg/logger"
)

// seedDemoEvents loads a few events for local development. Skipped when
// events already exist.
func seedDemoEvents(events service.EventService) {
	ctx := context.Background()
	log := logger.WithComponent("seed")

	existing, err := events.List(ctx)
	if err != nil || len(existing) > 0 {
		return
	}

	demo := []model.CreateEventRequest{
		{Name: "Quevedo", Date: "2025-06-21", Venue: "Movistar Arena", Price: 15000.00, Capacity: 100},
		{Name: "Bad Bunny", Date: "2026-02-13", Venue: "Estadio Monumental", Price: 85000.00, Capacity: 200},
		{Name: "Dua Lipa", Date: "2025-11-07", Venue: "Estadio Monumental", Price: 85000.00, Capacity: 150},
	}

	for _, req := range demo {
		if _, err := events.Create(ctx, req); err != nil {
			log.Sugar().Warnf("failed to seed event %q: %v", req.Name, err)
		}
	}
}
