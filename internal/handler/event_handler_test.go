package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ticket-sales/internal/model"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestCreateEventEndpoint(t *testing.T) {
	router, _ := newAPIFixture(t)

	rec := doJSON(router, http.MethodPost, "/api/v1/events", model.CreateEventRequest{
		Name: "Festival", Date: "2026-07-20", Venue: "Park", Price: 45.0, Capacity: 500,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp model.EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Festival", resp.Name)
	assert.Equal(t, 500, resp.Remaining)
}

func TestCreateEventEndpoint_MissingFields(t *testing.T) {
	router, _ := newAPIFixture(t)

	rec := doJSON(router, http.MethodPost, "/api/v1/events", map[string]interface{}{
		"name": "No capacity",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEventsEndpoint_AvailableOnly(t *testing.T) {
	router, ledger := newAPIFixture(t)
	open := createEvent(t, ledger, "Open", 10.0, 5)
	soldOut := createEvent(t, ledger, "Sold Out", 10.0, 2)
	require.NoError(t, ledger.SetSoldCount(context.Background(), soldOut.ID, 2))

	rec := doJSON(router, http.MethodGet, "/api/v1/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var available []model.EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &available))
	require.Len(t, available, 1)
	assert.Equal(t, open.ID, available[0].ID)

	rec = doJSON(router, http.MethodGet, "/api/v1/events?all=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var all []model.EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)
}

func TestGetEventEndpoint(t *testing.T) {
	router, ledger := newAPIFixture(t)
	event := createEvent(t, ledger, "Concert", 60.0, 100)

	rec := doJSON(router, http.MethodGet, "/api/v1/events/"+itoa(event.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, event.ID, resp.ID)
	assert.Equal(t, 100, resp.Remaining)

	rec = doJSON(router, http.MethodGet, "/api/v1/events/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(router, http.MethodGet, "/api/v1/events/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAvailabilityEndpoint(t *testing.T) {
	router, ledger := newAPIFixture(t)
	event := createEvent(t, ledger, "Concert", 60.0, 100)
	require.NoError(t, ledger.SetSoldCount(context.Background(), event.ID, 40))

	rec := doJSON(router, http.MethodGet, "/api/v1/events/"+itoa(event.ID)+"/availability", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		EventID   int64   `json:"event_id"`
		Remaining int     `json:"remaining"`
		Price     float64 `json:"price"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, event.ID, body.EventID)
	assert.Equal(t, 60, body.Remaining)
	assert.InDelta(t, 60.0, body.Price, 1e-9)
}

func TestEventReportEndpoint(t *testing.T) {
	router, ledger := newAPIFixture(t)
	event := createEvent(t, ledger, "Concert", 25.0, 100)

	rec := doJSON(router, http.MethodPost, "/api/v1/sales", model.AttemptSaleRequest{
		EventID: event.ID, Buyer: "Ana", Quantity: 4,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(router, http.MethodGet, "/api/v1/events/"+itoa(event.ID)+"/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report model.EventReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 4, report.Sold)
	assert.Equal(t, 96, report.Remaining)
	assert.InDelta(t, 100.0, report.Revenue, 1e-9)
}
