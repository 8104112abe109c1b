package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/analysis"
	httptransport "github.com/mustafashaheen1/ai-support-dashboard/internal/api/http"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/api/http/handlers"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/auth"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/config"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/events"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/live"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/observability"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/persistence"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/repository"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/service"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/worker"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	agentRepo := repository.NewAgentRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	analyzer := analysis.NewWebhookClient(cfg.Analyzer.WebhookURL, cfg.Analyzer.Timeout())

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Analyzer:   analyzer,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	searchService := service.NewSearchService(ticketRepo)
	analyticsService := service.NewAnalyticsService(ticketRepo, nil)
	exportService := service.NewExportService(nil)
	seedService := service.NewSeedService(ticketService, cfg.Seed.SeedDelay(), logger)
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AgentRepo:         agentRepo,
		PasswordResetRepo: resetRepo,
	})
	preferencesService := service.NewPreferencesService(redis.Client)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), agentRepo)

	hub := live.NewHub(ticketRepo, redis.Client, logger)
	go hub.Run(ctx)

	var sink *events.KafkaSink
	if len(cfg.Events.KafkaBrokers) > 0 {
		sink = events.NewKafkaSink(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic, logger)
		defer sink.Close() //nolint:errcheck
	}
	notifier := service.NewNotifier(dispatcher, logger, cfg.Analyzer.NotifyURL)
	worker.StartEventStreamWorker(dispatcher, hub, sink, notifier)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	ticketsHandler := handlers.NewTicketsHandler(ticketService, searchService, exportService, seedService, analyticsService)
	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, metrics, logger)
	streamHandler := handlers.NewStreamHandler(hub, logger)
	agentsHandler := handlers.NewAgentsHandler(authService, preferencesService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Tickets:        ticketsHandler,
		Analyze:        analyzeHandler,
		Stream:         streamHandler,
		Agents:         agentsHandler,
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

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
