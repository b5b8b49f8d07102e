package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"underwriter/internal/platform/config"
	"underwriter/internal/platform/httpserver"
	"underwriter/internal/platform/logger"
	"underwriter/internal/platform/middleware"
	"underwriter/internal/underwriting/classifier"
	"underwriter/internal/underwriting/handler"
	"underwriter/internal/underwriting/metrics"
	"underwriter/internal/underwriting/service"
	"underwriter/internal/underwriting/verification"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	provider := classifier.NewProvider(cfg.ModelPath, log)
	verifier := verification.NewSimulator()

	svc, err := service.New(
		verifier,
		provider.Get(),
		service.WithLogger(log),
		service.WithMetrics(metrics.New()),
		service.WithVerificationTimeout(cfg.VerificationTimeout),
	)
	if err != nil {
		log.Error("service construction failed", "error", err)
		os.Exit(1)
	}

	h := handler.New(svc, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Get("/", h.HandleRoot)
	r.Get("/health", h.HandleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireAPIKey(cfg.APIKeys, log))
		h.Register(r)
	})

	srv := httpserver.New(cfg.Addr, r)

	log.Info("starting underwriter", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("underwriter stopped")
}
