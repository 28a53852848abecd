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

	"github.com/spec-kit/support-dashboard/internal/agent"
	httptransport "github.com/spec-kit/support-dashboard/internal/api/http"
	"github.com/spec-kit/support-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/support-dashboard/internal/auth"
	"github.com/spec-kit/support-dashboard/internal/config"
	"github.com/spec-kit/support-dashboard/internal/events"
	"github.com/spec-kit/support-dashboard/internal/history"
	"github.com/spec-kit/support-dashboard/internal/observability"
	"github.com/spec-kit/support-dashboard/internal/orchestrator"
	"github.com/spec-kit/support-dashboard/internal/persistence"
	"github.com/spec-kit/support-dashboard/internal/repository"
	"github.com/spec-kit/support-dashboard/internal/service"
	"github.com/spec-kit/support-dashboard/internal/store"
	"github.com/spec-kit/support-dashboard/internal/worker"
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

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	responseCache := persistence.NewResponseCache(redis)

	ticketStore := store.NewTicketStore()
	for _, ticket := range store.SeedTickets(time.Now()) {
		ticketStore.PutTicket(ticket)
	}

	conn := service.NewConnectionManager(cfg.Model, logger)
	if conn.Mode() == config.ModeBackend {
		loadBackendTickets(ctx, conn, ticketStore, logger)
	}

	index := buildHistoryIndex(ctx, pg, logger)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	agents := agent.NewSuite(conn, logger)
	processor := orchestrator.New(cfg.Model, orchestrator.Dependencies{
		Store:      ticketStore,
		Index:      index,
		Agents:     agents,
		Backend:    conn,
		Cache:      cacheOrNil(responseCache),
		Dispatcher: dispatcher,
		Logger:     logger,
		Conn:       conn,
	})

	ticketService := service.NewTicketService(ticketStore, dispatcher)

	operators, err := auth.NewOperatorDirectory(cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to seed operators", zap.Error(err))
	}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens, operators)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Session:        handlers.NewSessionHandler(operators, tokens),
		Tickets:        handlers.NewTicketsHandler(ticketService, ticketStore),
		Agent:          handlers.NewAgentHandler(processor, ticketStore),
		Connection:     handlers.NewConnectionHandler(conn),
		AuthMiddleware: authMiddleware,
	})

	// Initial connectivity probe; the dashboard shows the result, startup
	// does not depend on it.
	state := conn.Check(ctx)
	logger.Info("model connection",
		zap.String("mode", state.Mode),
		zap.String("base_url", state.BaseURL),
		zap.String("status", state.Status))

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// loadBackendTickets replaces the built-in sample tickets with the backend's
// ticket list when the backend is reachable.
func loadBackendTickets(ctx context.Context, conn *service.ConnectionManager, ticketStore *store.TicketStore, logger *zap.Logger) {
	fetchCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tickets, err := conn.FetchTickets(fetchCtx)
	if err != nil {
		logger.Info("backend tickets unavailable, keeping sample set", zap.Error(err))
		return
	}
	if len(tickets) == 0 {
		return
	}
	ticketStore.ReplaceAllTickets(tickets)
	logger.Info("loaded tickets from backend", zap.Int("count", len(tickets)))
}

// buildHistoryIndex prefers the Postgres case catalog when available.
func buildHistoryIndex(ctx context.Context, pg *persistence.Postgres, logger *zap.Logger) *history.Index {
	if pg.PoolHandle() == nil {
		return history.NewIndex()
	}
	repo := repository.NewHistoricalCaseRepository(pg.PoolHandle())
	cases, err := repo.ListAll(ctx)
	if err != nil {
		logger.Warn("loading historical cases failed, using built-in catalog", zap.Error(err))
		return history.NewIndex()
	}
	logger.Info("loaded historical cases", zap.Int("count", len(cases)))
	return history.NewIndexWithCases(cases)
}

// cacheOrNil avoids handing the orchestrator a typed-nil interface value.
func cacheOrNil(cache *persistence.ResponseCache) orchestrator.ResponseCache {
	if cache == nil {
		return nil
	}
	return cache
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
