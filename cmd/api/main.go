package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/lobbykit/frontdesk/internal/handlers"
	appmw "github.com/lobbykit/frontdesk/internal/middleware"
	"github.com/lobbykit/frontdesk/internal/notify"
	"github.com/lobbykit/frontdesk/internal/repository"
	"github.com/lobbykit/frontdesk/internal/repository/postgres"
	"github.com/lobbykit/frontdesk/internal/repository/rest"
	"github.com/lobbykit/frontdesk/internal/service"
	"github.com/lobbykit/frontdesk/pkg/config"
	"github.com/lobbykit/frontdesk/pkg/database"
	"github.com/lobbykit/frontdesk/pkg/events"
	"github.com/lobbykit/frontdesk/pkg/logger"
	mw "github.com/lobbykit/frontdesk/pkg/middleware"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Record store backend: raw SQL or the managed backend's JSON API.
	var visitorRepo repository.VisitorRepository
	switch cfg.Store.Backend {
	case "rest":
		visitorRepo = rest.New(cfg.Store.RESTBaseURL)
		logger.Info("Using REST record store", "base_url", cfg.Store.RESTBaseURL)
	default:
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		visitorRepo = postgres.New(pool)
		logger.Info("Using Postgres record store")
	}

	// Connect to event bus
	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	visitorService := service.NewVisitorService(visitorRepo, eventBus)

	// Visitor notifications ride on the event bus
	mailer := buildMailer(cfg)
	if err := notify.NewListener(eventBus, mailer).Start(); err != nil {
		logger.Error("Failed to start notification listener", "error", err)
		os.Exit(1)
	}

	// Rate limit check-in submissions per kiosk IP
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid redis URL", "error", err)
		os.Exit(1)
	}
	limiter := appmw.NewRateLimiter(redis.NewClient(redisOpts), cfg.RateLimit.CheckInRequests, cfg.RateLimit.CheckInWindow)

	h := handlers.New(visitorService)

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("frontdesk"))
	r.Use(mw.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/visitors", func(r chi.Router) {
			r.Get("/", h.ListVisitors)
			r.With(limiter.Middleware()).Post("/", h.CheckInVisitor)
			r.Post("/{id}/checkout", h.CheckOutVisitor)
		})

		r.Get("/dashboard", h.Dashboard)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/daily", h.DailyReport)
			r.Get("/companies", h.TopCompaniesReport)
			r.Get("/summary", h.SummaryReport)
			r.Get("/export", h.ExportReport)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down frontdesk service...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Frontdesk service shutdown error", "error", err)
		}
	}()

	logger.Info("Starting frontdesk service", "port", cfg.Server.Port, "store", cfg.Store.Backend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Frontdesk service error", "error", err)
		os.Exit(1)
	}
}

func buildMailer(cfg *config.Config) notify.Service {
	if cfg.Email.DevMode {
		return notify.NewDevMailer()
	}
	if cfg.Email.MailerSendKey != "" {
		return notify.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.SMTPFrom)
	}
	return notify.NewSMTPMailer(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPFrom, cfg.Email.SMTPUser, cfg.Email.SMTPPass)
}
