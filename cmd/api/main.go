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

	httptransport "github.com/spec-kit/helpdesk-service/internal/api/http"
	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

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

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var (
		clientRepo  repository.ClientRepository
		supportRepo repository.SupportRepository
		ticketRepo  repository.TicketRepository
	)
	if pg.Enabled() {
		clientRepo = repository.NewClientRepository(pg.Pool)
		supportRepo = repository.NewSupportRepository(pg.Pool)
		ticketRepo = repository.NewTicketRepository(pg.Pool)
	} else {
		if len(cfg.Seed.Accounts) == 0 {
			logger.Fatal("in-memory mode needs SEED_ACCOUNTS_FILE: no accounts would be able to authenticate")
		}
		store := repository.NewMemoryStore()
		for _, acc := range cfg.Seed.Accounts {
			user := domain.User{ID: acc.ID, Name: acc.Name, Email: acc.Email, Role: domain.UserRole(acc.Role), CreatedAt: time.Now().UTC()}
			if err := store.AddAccount(user); err != nil {
				logger.Fatal("seed account rejected", zap.Error(err))
			}
		}
		logger.Info("in-memory stores seeded", zap.Int("accounts", len(cfg.Seed.Accounts)))
		clientRepo = store.Clients()
		supportRepo = store.Supports()
		ticketRepo = store.Tickets()
	}

	dispatcher := events.NewInMemoryDispatcher()
	sinks := worker.EventSinks{
		Notifications: service.NewNotificationService(dispatcher, logger, cfg.Notification),
	}
	if redis.Enabled() {
		sinks.Redis = events.NewRedisForwarder(redis.Client, cfg.Events.RedisChannel, logger)
	}
	worker.StartEventWorkers(dispatcher, sinks)

	ticketService := service.NewTicketService(service.TicketDependencies{
		ClientRepo:  clientRepo,
		SupportRepo: supportRepo,
		TicketRepo:  ticketRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, 0)
	authMiddleware := auth.NewAuthMiddleware(tokens, clientRepo, supportRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		SupportTickets: handlers.NewSupportTicketsHandler(ticketService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("http server starting",
			zap.String("addr", cfg.App.Addr()),
			zap.String("env", cfg.App.Env),
			zap.Bool("in_memory", !pg.Enabled()),
		)
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
