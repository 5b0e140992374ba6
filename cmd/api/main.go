package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/eftah/restaurant-service/internal/api/http"
	"github.com/eftah/restaurant-service/internal/api/http/handlers"
	"github.com/eftah/restaurant-service/internal/auth"
	"github.com/eftah/restaurant-service/internal/blobstore"
	"github.com/eftah/restaurant-service/internal/cache"
	"github.com/eftah/restaurant-service/internal/config"
	"github.com/eftah/restaurant-service/internal/events"
	"github.com/eftah/restaurant-service/internal/observability"
	"github.com/eftah/restaurant-service/internal/persistence"
	"github.com/eftah/restaurant-service/internal/repository"
	"github.com/eftah/restaurant-service/internal/service"
	"github.com/eftah/restaurant-service/internal/upload"
	"github.com/eftah/restaurant-service/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	menuRepo := repository.NewMenuItemRepository(pool)
	heroRepo := repository.NewHeroRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	menuCache := cache.NewMenuCache(redis.Client, 5*time.Minute, logger)
	limiter := cache.NewRateLimiter(redis.Client, cfg.RateLimit.Limit, cfg.RateLimit.Window(), logger)

	store, err := blobstore.New(cfg.Upload, logger)
	if err != nil {
		logger.Fatal("failed to init blob store", zap.Error(err))
	}
	uploadService := upload.NewService(store, cfg.Upload, logger, metrics)

	authService := service.NewAuthService(cfg.Auth, userRepo, logger)
	if err := authService.EnsureAdmin(ctx, cfg.Auth); err != nil {
		logger.Fatal("failed to ensure admin account", zap.Error(err))
	}

	contentService := service.NewContentService(service.ContentDependencies{
		CategoryRepo: categoryRepo,
		MenuRepo:     menuRepo,
		HeroRepo:     heroRepo,
		SettingsRepo: settingsRepo,
		MenuCache:    menuCache,
		Dispatcher:   dispatcher,
	})
	messageService := service.NewMessageService(messageRepo, limiter, dispatcher)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	session := auth.NewSessionMiddleware(authService.TokenManager(), userRepo, cfg.Auth.CookieName)
	gate := auth.NewRouteGate()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:     handlers.NewAuthHandler(authService, cfg.Auth),
		Upload:   handlers.NewUploadHandler(uploadService, dispatcher),
		Menu:     handlers.NewMenuHandler(contentService),
		Category: handlers.NewCategoryHandler(contentService),
		Settings: handlers.NewSettingsHandler(contentService),
		Contact:  handlers.NewContactHandler(messageService),
		Pages:    handlers.NewPagesHandler(),
		Session:  session,
		Gate:     gate,
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
