package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/nesthome/lead-service/internal/api/http"
	"github.com/nesthome/lead-service/internal/api/http/handlers"
	"github.com/nesthome/lead-service/internal/auth"
	"github.com/nesthome/lead-service/internal/config"
	"github.com/nesthome/lead-service/internal/events"
	"github.com/nesthome/lead-service/internal/integration/email"
	"github.com/nesthome/lead-service/internal/integration/firebase"
	"github.com/nesthome/lead-service/internal/integration/sheets"
	"github.com/nesthome/lead-service/internal/observability"
	"github.com/nesthome/lead-service/internal/service"
	"github.com/nesthome/lead-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	credentials := auth.NewCredentialStore(cfg.Auth, logger)
	credentials.Current() // seed the admin credential at startup

	var sessionStore auth.SessionStore
	if cfg.Session.Store == "redis" {
		sessionStore = auth.NewRedisSessionStore(cfg.Redis, logger)
	} else {
		sessionStore = auth.NewMemorySessionStore()
	}
	sessions := auth.NewSessionManager(sessionStore, cfg.Session.TTL(), logger)
	gate := auth.NewAdminGate(sessions)

	// Integrations are optional capabilities: constructed only when
	// configured, nil otherwise, and callers branch on presence.
	var documents service.DocumentStore
	if cfg.Firebase.Configured() {
		client, err := firebase.New(cfg.Firebase, logger)
		if err != nil {
			logger.Fatal("failed to init firebase client", zap.Error(err))
		}
		documents = client
		logger.Info("firebase client initialized")
	} else {
		logger.Warn("firebase not configured; document store disabled")
	}

	var tabular service.TabularStore
	if cfg.Sheets.Configured() {
		client, err := sheets.New(cfg.Sheets, logger)
		if err != nil {
			logger.Fatal("failed to init sheets client", zap.Error(err))
		}
		tabular = client
		logger.Info("sheets client initialized")
	} else {
		logger.Warn("google sheets not configured; tabular store disabled")
	}

	var notifier service.Notifier
	if cfg.Email.Configured() {
		notifier = email.New(cfg.Email, logger)
		logger.Info("email client initialized")
	} else {
		logger.Warn("email not configured; notifications disabled")
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	adminService := service.NewAdminService(credentials, sessions, logger)
	leadService := service.NewLeadService(service.LeadDependencies{
		Documents:  documents,
		Tabular:    tabular,
		Notifier:   notifier,
		Dispatcher: dispatcher,
	}, logger)
	contactService := service.NewContactService(notifier, dispatcher, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.CORS)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(),
		Admin:   handlers.NewAdminHandler(adminService),
		Leads:   handlers.NewLeadsHandler(leadService),
		Contact: handlers.NewContactHandler(contactService),
		Gate:    gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
