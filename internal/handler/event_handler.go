package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-ticket-sales/internal/model"
	"go-ticket-sales/internal/service"
	apperrors "go-ticket-sales/pkg/app_errors"
	"go-ticket-sales/pkg/logger"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.List)
		router.GET("events/:id", h.Get)
		router.GET("events/:id/availability", h.Availability)
		router.GET("events/:id/report", h.Report)
		router.POST("events", h.Create)
	}
}

func (h *EventHandler) Create(c *gin.Context) {
	var req model.CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.service.Create(c, req)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}

	c.JSON(http.StatusCreated, model.NewEventResponse(event))
}

// List returns events that still have tickets; pass ?all=true for every
// event regardless of availability.
func (h *EventHandler) List(c *gin.Context) {
	var (
		events []*model.Event
		err    error
	)
	if c.Query("all") == "true" {
		events, err = h.service.List(c)
	} else {
		events, err = h.service.ListAvailable(c)
	}
	if err != nil {
		h.handleError(c, err, "List")
		return
	}

	responses := make([]*model.EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, model.NewEventResponse(event))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	event, err := h.service.GetByID(c, id)
	if err != nil {
		h.handleError(c, err, "Get")
		return
	}

	c.JSON(http.StatusOK, model.NewEventResponse(event))
}

func (h *EventHandler) Availability(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	avail, err := h.service.Availability(c, id)
	if err != nil {
		h.handleError(c, err, "Availability")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event_id":  id,
		"remaining": avail.Remaining,
		"price":     avail.Price,
	})
}

func (h *EventHandler) Report(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	report, err := h.service.Report(c, id)
	if err != nil {
		h.handleError(c, err, "Report")
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event not found",
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
		})
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		log.Error("Store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Store unavailable",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
