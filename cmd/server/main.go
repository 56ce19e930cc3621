package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"canchas/internal/api"
	"canchas/internal/config"
	"canchas/internal/db"
	"canchas/internal/entities"
	"canchas/internal/repository"
	"canchas/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	policy, err := entities.ParseBatchPolicy(cfg.BatchPolicy)
	if err != nil {
		log.Fatalf("BATCH_POLICY: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := db.OpenPool(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	reservationRepo := repository.NewReservationRepository(pool)
	courtRepo := repository.NewCourtRepository(pool)
	batches := repository.NewBatchTransactor(repository.NewSQLXPool(pool), logger)
	svc := service.NewReservationService(reservationRepo, courtRepo, batches, policy, logger)

	r := api.NewRouter(api.NewReservationHandler(svc), api.NewHealthHandler(pool))

	jobs := cron.New()
	if cfg.PoolStatsSchedule != "" {
		jobService := service.NewJobService(pool, logger)
		if _, err := jobs.AddFunc(cfg.PoolStatsSchedule, func() { jobService.LogPoolStats() }); err != nil {
			log.Fatalf("POOL_STATS_SCHEDULE: %v", err)
		}
	}
	jobs.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.WithMiddleware(r, cfg.CORSAllowedOrigins, os.Stdout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Servidor corriendo", "addr", "http://localhost:"+cfg.Port, "batch_policy", policy.String(), "db_driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err.Error())
	}
	<-jobs.Stop().Done()
	logger.Info("server stopped")
}
