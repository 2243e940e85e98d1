package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/realty-service/internal/api/http"
	"github.com/spec-kit/realty-service/internal/api/http/handlers"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/config"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/observability"
	"github.com/spec-kit/realty-service/internal/persistence"
	"github.com/spec-kit/realty-service/internal/repository"
	"github.com/spec-kit/realty-service/internal/search"
	"github.com/spec-kit/realty-service/internal/service"
	"github.com/spec-kit/realty-service/internal/worker"
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

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	seekerRepo := repository.NewSeekerRepository(pool)
	agentRepo := repository.NewAgentRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	propertyRepo := repository.NewPropertyRepository(pool)
	inquiryRepo := repository.NewInquiryRepository(pool)
	favoriteRepo := repository.NewFavoriteRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		SeekerRepo: seekerRepo,
		AgentRepo:  agentRepo,
		AdminRepo:  adminRepo,
		Redis:      redis.Client,
	})
	resolver := auth.NewPrincipalResolver(seekerRepo, agentRepo, adminRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), resolver)

	bounds := search.Bounds{DefaultLimit: cfg.Search.DefaultLimit, MaxLimit: cfg.Search.MaxLimit}
	propertyService := service.NewPropertyService(propertyRepo, dispatcher, bounds, logger)
	inquiryService := service.NewInquiryService(inquiryRepo, propertyRepo, dispatcher, bounds)
	favoriteService := service.NewFavoriteService(favoriteRepo, propertyRepo, bounds)
	adminService := service.NewAdminService(agentRepo, dispatcher, bounds)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:           handlers.NewAuthHandler(authService),
		Properties:     handlers.NewPropertiesHandler(propertyService),
		Engagement:     handlers.NewEngagementHandler(inquiryService, favoriteService),
		Admin:          handlers.NewAdminHandler(adminService),
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
