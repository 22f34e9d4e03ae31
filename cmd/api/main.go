package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/esim-activation-service/internal/api/http"
	"github.com/spec-kit/esim-activation-service/internal/api/http/handlers"
	"github.com/spec-kit/esim-activation-service/internal/auth"
	"github.com/spec-kit/esim-activation-service/internal/config"
	"github.com/spec-kit/esim-activation-service/internal/events"
	"github.com/spec-kit/esim-activation-service/internal/observability"
	"github.com/spec-kit/esim-activation-service/internal/persistence"
	"github.com/spec-kit/esim-activation-service/internal/repository"
	"github.com/spec-kit/esim-activation-service/internal/service"
	"github.com/spec-kit/esim-activation-service/internal/worker"
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

	store, err := newStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open backing store", zap.Error(err))
	}
	defer store.Close()

	activationRepo := repository.NewActivationRepository(store)
	shortLinkRepo := repository.NewShortLinkRepository(store)
	credentialRepo := repository.NewCredentialRepository(store)

	dispatcher := events.NewInMemoryDispatcher()
	auditWorker := worker.StartAuditWorker(dispatcher, logger)
	defer auditWorker.Stop()

	activationService := service.NewActivationService(activationRepo, dispatcher, logger)
	shortLinkService := service.NewShortLinkService(shortLinkRepo, cfg.Links.PublicBaseURL, dispatcher, logger)
	authService := service.NewAuthService(cfg.Auth, credentialRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store),
		Activations:    handlers.NewActivationsHandler(activationService),
		ShortLinks:     handlers.NewShortLinksHandler(shortLinkService),
		Auth:           handlers.NewAuthHandler(authService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func newStore(cfg *config.Config, logger *zap.Logger) (persistence.KV, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendFile:
		logger.Info("using file store", zap.String("path", cfg.Store.FilePath))
		return persistence.NewFileStore(cfg.Store.FilePath)
	default:
		return persistence.NewRedis(cfg.Redis, logger), nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
