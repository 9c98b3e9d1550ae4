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
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/gorags/sewa-lapangan/internal/http/handlers"
	httpmw "github.com/gorags/sewa-lapangan/internal/http/middleware"
	"github.com/gorags/sewa-lapangan/internal/http/views"
	"github.com/gorags/sewa-lapangan/internal/jobs"
	"github.com/gorags/sewa-lapangan/internal/repository"
	"github.com/gorags/sewa-lapangan/internal/service"
	"github.com/gorags/sewa-lapangan/internal/session"
	"github.com/gorags/sewa-lapangan/pkg/config"
	"github.com/gorags/sewa-lapangan/pkg/database"
	"github.com/gorags/sewa-lapangan/pkg/events"
	"github.com/gorags/sewa-lapangan/pkg/logger"
	"github.com/gorags/sewa-lapangan/pkg/metrics"
	mw "github.com/gorags/sewa-lapangan/pkg/middleware"
)

const serviceName = "sewa-lapangan"

func main() {
	if err := run(); err != nil {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	// Connect to event bus
	eventBus, err := events.Connect(cfg.NATS.URL)
	if err != nil {
		return err
	}
	defer eventBus.Close()

	store, closeStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	m := metrics.New()

	renderer, err := views.New()
	if err != nil {
		return err
	}

	// Initialize repositories
	sewaRepo := repository.NewSewaRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	pelangganRepo := repository.NewPelangganRepository(pool)
	rateLimitRepo := repository.NewRateLimitRepository(pool)

	// Initialize services
	bookingService := service.NewBookingService(sewaRepo, eventBus, m)
	adminService := service.NewAdminService(adminRepo, m)
	customerService := service.NewCustomerService(pelangganRepo)

	sessions := session.NewManager(store, cfg.Session.CookieName, cfg.Session.TTL, cfg.IsProduction())
	h := handlers.New(bookingService, adminService, customerService, sessions, renderer)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.ServiceName(serviceName))
	r.Use(mw.Logging)
	r.Use(chimw.Recoverer)
	r.Use(mw.SecurityHeaders)
	r.Use(mw.CORS(cfg.Server.CORSOrigins))
	r.Use(mw.Health)
	r.Use(mw.Metrics(m))

	var scheduler *jobs.Scheduler
	if cfg.RateLimit.Enabled {
		limiter := httpmw.NewRateLimiter(rateLimitRepo, httpmw.RateLimitConfig{
			Requests: cfg.RateLimit.Requests,
			Window:   cfg.RateLimit.Window,
			SkipFunc: httpmw.SkipInfrastructure,
		}, m)
		r.Use(limiter.Middleware())

		scheduler, err = jobs.New(cfg.RateLimit.CleanupSchedule, rateLimitRepo)
		if err != nil {
			return err
		}
	}
	r.Use(sessions.Middleware)

	r.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.Dir(cfg.App.StaticDir))))
	h.Routes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server", "service", serviceName, "port", cfg.Server.Port, "env", cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if scheduler != nil {
		scheduler.Start()
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if scheduler != nil {
			scheduler.Stop(shutdownCtx)
		}
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newSessionStore returns the configured store and a func releasing it.
func newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	if cfg.Session.Store == "memory" {
		logger.Warn("Using in-memory session store; sessions are lost on restart")
		return session.NewMemoryStore(), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, err
	}
	return session.NewRedisStore(client), func() { client.Close() }, nil
}
