package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chihoangvnn/sss-sub001/internal/config"
	"github.com/chihoangvnn/sss-sub001/internal/infra"
	"github.com/chihoangvnn/sss-sub001/internal/repository"
	"github.com/chihoangvnn/sss-sub001/internal/router"
	"github.com/chihoangvnn/sss-sub001/internal/service"
	"github.com/chihoangvnn/sss-sub001/internal/tabs"
	"github.com/chihoangvnn/sss-sub001/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalog snapshot — loaded once at startup, refreshed on a ticker.
	productRepo := repository.NewProductRepository(db)
	catalogSvc := service.NewCatalogService(productRepo, rdb)
	if err := catalogSvc.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("initial catalog load failed")
	}
	catalogSvc.StartRefreshLoop(ctx, time.Duration(cfg.CatalogRefreshSeconds)*time.Second)

	// The tab manager is the single mutation surface for every cart; it is
	// constructed here and injected — no ambient global.
	manager := tabs.NewManager()

	// Print job queue + worker pool (auto-print on checkout).
	dispatcher := worker.NewDispatcher(rdb)
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize)

	orderCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	r := router.New(cfg, db, rdb, router.Deps{
		Manager:    manager,
		Catalog:    catalogSvc,
		Dispatcher: dispatcher,
		OrderCB:    orderCB,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("POS engine listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
