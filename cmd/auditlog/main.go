// Command auditlog subscribes to booking lifecycle events on NATS and writes
// each one to the structured log.
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

	"github.com/gorags/sewa-lapangan/internal/audit"
	"github.com/gorags/sewa-lapangan/pkg/config"
	"github.com/gorags/sewa-lapangan/pkg/events"
	"github.com/gorags/sewa-lapangan/pkg/logger"
	"github.com/gorags/sewa-lapangan/pkg/metrics"
	mw "github.com/gorags/sewa-lapangan/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.NATS.URL == "" {
		logger.Error("NATS_URL is required")
		os.Exit(1)
	}

	bus, err := events.NewNATSPublisher(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer bus.Close()

	m := metrics.New()
	rec := audit.NewRecorder(logger.Default(), m)
	if _, err := bus.Subscribe(events.SewaAll, rec.Handle); err != nil {
		logger.Error("Failed to subscribe", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("auditlog"))
	r.Use(mw.Health)
	r.Use(mw.Metrics(m))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"service":"auditlog","subject":"` + events.SewaAll + `"}`))
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Audit.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down audit log...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Audit log shutdown error", "error", err)
		}
	}()

	logger.Info("Starting audit log", "port", cfg.Audit.Port, "subject", events.SewaAll)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Audit log error", "error", err)
		os.Exit(1)
	}
}
