package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/tasnees/IBM-hackathon/internal/api/http"
	"github.com/tasnees/IBM-hackathon/internal/api/http/handlers"
	"github.com/tasnees/IBM-hackathon/internal/auth"
	"github.com/tasnees/IBM-hackathon/internal/config"
	ghclient "github.com/tasnees/IBM-hackathon/internal/github"
	"github.com/tasnees/IBM-hackathon/internal/observability"
	"github.com/tasnees/IBM-hackathon/internal/routing"
	"github.com/tasnees/IBM-hackathon/internal/service"
	"github.com/tasnees/IBM-hackathon/internal/servicenow"
	slackclient "github.com/tasnees/IBM-hackathon/internal/slack"
	"github.com/tasnees/IBM-hackathon/internal/stacktrace"
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

	snow := servicenow.NewClient(cfg.ServiceNow, logger)
	notifier := slackclient.NewNotifier(cfg.Slack, logger)
	issues := ghclient.NewIssueFiler(cfg.GitHub, stacktrace.NewDefaultDetector(), logger)

	supportService := service.NewSupportService(service.Dependencies{
		Incidents: snow,
		Notifier:  notifier,
		Issues:    issues,
		Router:    routing.NewDefaultRouter(),
		Metrics:   metrics,
		Logger:    logger,
	})

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version),
		Support:    handlers.NewSupportHandler(supportService),
		Catalog:    handlers.NewCatalogHandler(snow, logger),
		APIKeyGate: auth.NewAPIKeyMiddleware(cfg.Auth.APIKey),
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
