package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"go-ticket-sales/config"
	"go-ticket-sales/internal/cache"
	"go-ticket-sales/internal/database"
	"go-ticket-sales/internal/handler"
	"go-ticket-sales/internal/lock"
	"go-ticket-sales/internal/service"
	"go-ticket-sales/internal/store/postgres"
	"go-ticket-sales/internal/worker"
	"go-ticket-sales/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	ledger := postgres.New(pool)
	if err := ledger.Migrate(context.Background()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	availability := cache.NewRedisAvailabilityCache(rdb)
	locks := lock.NewKeyedMutex()

	eventService := service.NewEventService(ledger, availability)
	salesService := service.NewSalesService(ledger, locks, availability)

	if cfg.Server.SeedDemoData {
		seedDemoEvents(eventService)
	}

	reconciler := worker.NewReconciler(salesService, cfg.Workers.ReconcileInterval)
	monitor := worker.NewLowStockMonitor(ledger, cfg.Workers.LowStockThreshold, cfg.Workers.LowStockInterval)
	reporter := worker.NewReporter(ledger, cfg.Workers.ReportInterval)
	backup := worker.NewBackupScheduler(ledger, cfg.Backup.Dir, cfg.Workers.BackupInterval)
	statistics := worker.NewStatisticsJob(ledger)
	maintenance := worker.NewMaintenanceJob(ledger)

	supervisor := worker.NewSupervisor(
		[]worker.Periodic{reconciler, monitor, reporter, backup},
		[]worker.Job{statistics, maintenance},
		cfg.Workers.StopTimeout,
	)
	if err := supervisor.Start(); err != nil {
		log.Fatalf("Failed to start workers: %v", err)
	}

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	handler.NewEventHandler(eventService).RegisterRoutes(router)
	handler.NewSaleHandler(salesService).RegisterRoutes(router)
	handler.NewAdminHandler(supervisor, statistics, maintenance, backup).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	// Drain in-flight requests first so a sale holding its event lock can
	// finish its critical section, then stop the background workers.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L.Sugar().Errorf("server shutdown: %v", err)
	}
	if err := supervisor.Stop(); err != nil {
		logger.L.Sugar().Errorf("supervisor stop: %v", err)
	}
}
