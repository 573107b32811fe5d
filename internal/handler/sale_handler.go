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

type SaleHandler struct {
	service service.SalesService
}

func NewSaleHandler(service service.SalesService) *SaleHandler {
	return &SaleHandler{service: service}
}

func (h *SaleHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("sales", h.AttemptSale)
		router.GET("sales", h.History)
		router.GET("events/:id/sales", h.HistoryForEvent)
	}
}

func (h *SaleHandler) AttemptSale(c *gin.Context) {
	var req model.AttemptSaleRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	sale, confirmation, err := h.service.AttemptSale(c, req)
	if err != nil {
		h.handleError(c, err, "AttemptSale")
		return
	}

	c.JSON(http.StatusCreated, model.SaleResponse{
		ID:           sale.ID,
		SaleID:       sale.SaleID.String(),
		EventID:      sale.EventID,
		Buyer:        sale.Buyer,
		Quantity:     sale.Quantity,
		Total:        sale.Total,
		SoldAt:       sale.SoldAt.Format("2006-01-02 15:04:05"),
		Confirmation: confirmation,
	})
}

func (h *SaleHandler) History(c *gin.Context) {
	sales, err := h.service.History(c)
	if err != nil {
		h.handleError(c, err, "History")
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) HistoryForEvent(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	sales, err := h.service.HistoryForEvent(c, id)
	if err != nil {
		h.handleError(c, err, "HistoryForEvent")
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *SaleHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var insufficient *apperrors.InsufficientInventoryError
	switch {
	case errors.As(err, &insufficient):
		log.Warn("Insufficient inventory", zap.Int("remaining", insufficient.Remaining))
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Insufficient inventory",
			"remaining": insufficient.Remaining,
		})
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
