package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nexopos/internal/config"
	"nexopos/internal/infra"
	"nexopos/internal/repository"
	"nexopos/internal/router"
	"nexopos/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Pretty console output in development, plain JSON lines in production.
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
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

	// Async pipeline: cotización PDF rendering and mail delivery run on the
	// redis-backed worker pool; the retry cron sweeps up anything stuck.
	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)
	cotizacionRepo := repository.NewCotizacionRepository(db)

	pool := worker.NewPool(rdb, dispatcher, cotizacionRepo, mailer, smtpCB, cfg.PDFStoragePath)
	pool.Start(ctx, cfg.WorkerPoolSize)
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		CotizacionRepo: cotizacionRepo,
		Dispatcher:     dispatcher,
	})

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("nexopos backend listening on :%d", cfg.Port)
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
