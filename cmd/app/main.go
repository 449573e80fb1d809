package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coinverse/CoinverseBot_Go/internal/admin"
	"github.com/coinverse/CoinverseBot_Go/internal/catalog"
	"github.com/coinverse/CoinverseBot_Go/internal/concurrency"
	"github.com/coinverse/CoinverseBot_Go/internal/config"
	"github.com/coinverse/CoinverseBot_Go/internal/crafting"
	"github.com/coinverse/CoinverseBot_Go/internal/database"
	"github.com/coinverse/CoinverseBot_Go/internal/database/postgres"
	"github.com/coinverse/CoinverseBot_Go/internal/economy"
	"github.com/coinverse/CoinverseBot_Go/internal/event"
	"github.com/coinverse/CoinverseBot_Go/internal/gamble"
	"github.com/coinverse/CoinverseBot_Go/internal/handler"
	"github.com/coinverse/CoinverseBot_Go/internal/lootbox"
	"github.com/coinverse/CoinverseBot_Go/internal/notify"
	"github.com/coinverse/CoinverseBot_Go/internal/quest"
	"github.com/coinverse/CoinverseBot_Go/internal/rank"
	"github.com/coinverse/CoinverseBot_Go/internal/season"
	"github.com/coinverse/CoinverseBot_Go/internal/server"
	"github.com/coinverse/CoinverseBot_Go/internal/user"
	"github.com/coinverse/CoinverseBot_Go/internal/worker"
)

// Connection pool and worker pool sizing.
const (
	dbMaxConns         = 20
	dbMaxIdle          = 5 * time.Minute
	dbMaxLife          = 30 * time.Minute
	broadcastWorkers   = 4
	broadcastQueueSize = 1024
	shutdownTimeout    = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	cat, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		slog.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(context.Background(), cfg.GetDBConnString(), dbMaxConns, dbMaxIdle, dbMaxLife)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	inventoryRepo := postgres.NewInventoryRepository(dbPool)
	questRepo := postgres.NewQuestRepository(dbPool)

	// Shared infrastructure
	bus := event.NewMemoryBus()
	publisher := event.NewResilientPublisher(bus, event.DefaultResilientConfig())
	locks := concurrency.NewLockManager()
	notifier := notify.LogNotifier{}

	pool := worker.NewPool(broadcastWorkers, broadcastQueueSize)
	pool.Start()
	defer pool.Stop()

	// Services
	rankSvc := rank.NewService(userRepo, cat, publisher, notifier)
	economySvc := economy.NewService(userRepo, rankSvc, locks, publisher, cfg.Economy)
	seasonSvc := season.NewService(userRepo, inventoryRepo, economySvc, cat, locks, publisher, notifier)
	questSvc := quest.NewService(questRepo, cat, seasonSvc, locks, publisher)
	lootboxSvc := lootbox.NewService(economySvc, inventoryRepo, userRepo, cat, locks, publisher)
	craftingSvc := crafting.NewService(inventoryRepo, cat, publisher)
	gambleSvc := gamble.NewService(economySvc, inventoryRepo, cat, locks, publisher, cfg.Economy)
	userSvc := user.NewService(userRepo, inventoryRepo, economySvc, cat, locks, publisher, notifier, cfg.Economy)
	adminSvc := admin.NewService(userRepo, inventoryRepo, cat, notifier, pool)

	quest.RegisterSubscribers(bus, questSvc)

	handler.InitValidator()

	trustedProxies := []string{} // none by default; front proxy IPs go here
	srv := server.NewServer(cfg.Port, cfg.APIKey, trustedProxies, dbPool, server.Services{
		User:     userSvc,
		Economy:  economySvc,
		Lootbox:  lootboxSvc,
		Gamble:   gambleSvc,
		Crafting: craftingSvc,
		Season:   seasonSvc,
		Quest:    questSvc,
		Admin:    adminSvc,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	if err := publisher.Shutdown(ctx); err != nil {
		slog.Error("Event publisher shutdown failed", "error", err)
	}
}
