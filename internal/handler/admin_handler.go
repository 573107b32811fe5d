package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-ticket-sales/internal/worker"
	apperrors "go-ticket-sales/pkg/app_errors"
	"go-ticket-sales/pkg/logger"
)

// AdminHandler exposes the one-shot jobs and the worker lifecycle.
type AdminHandler struct {
	supervisor  *worker.Supervisor
	statistics  *worker.StatisticsJob
	maintenance *worker.MaintenanceJob
	backup      *worker.BackupScheduler
}

func NewAdminHandler(
	supervisor *worker.Supervisor,
	statistics *worker.StatisticsJob,
	maintenance *worker.MaintenanceJob,
	backup *worker.BackupScheduler,
) *AdminHandler {
	return &AdminHandler{
		supervisor:  supervisor,
		statistics:  statistics,
		maintenance: maintenance,
		backup:      backup,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1/admin")
	{
		router.POST("jobs/statistics", h.RunStatistics)
		router.POST("jobs/maintenance", h.RunMaintenance)
		router.POST("jobs/backup", h.RunBackup)
		router.GET("lifecycle", h.LifecycleState)
		router.POST("lifecycle/start", h.StartWorkers)
		router.POST("lifecycle/stop", h.StopWorkers)
	}
}

func (h *AdminHandler) RunStatistics(c *gin.Context) {
	stats, err := h.statistics.Compute(c)
	if err != nil {
		h.handleError(c, err, "RunStatistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) RunMaintenance(c *gin.Context) {
	if err := h.maintenance.Run(c); err != nil {
		h.handleError(c, err, "RunMaintenance")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) RunBackup(c *gin.Context) {
	path, err := h.backup.RunOnce(c)
	if err != nil {
		h.handleError(c, err, "RunBackup")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"path": path})
}

func (h *AdminHandler) LifecycleState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.supervisor.State().String()})
}

func (h *AdminHandler) StartWorkers(c *gin.Context) {
	if err := h.supervisor.Start(); err != nil {
		h.handleError(c, err, "StartWorkers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": h.supervisor.State().String()})
}

func (h *AdminHandler) StopWorkers(c *gin.Context) {
	if err := h.supervisor.Stop(); err != nil {
		h.handleError(c, err, "StopWorkers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": h.supervisor.State().String()})
}

func (h *AdminHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrAlreadyInState):
		log.Warn("Already in requested state")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Already in requested state",
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
