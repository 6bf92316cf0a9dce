package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/lazharichir/blackjack/config"
	"github.com/lazharichir/blackjack/domain"
	"github.com/lazharichir/blackjack/server"
	"github.com/lazharichir/blackjack/storage/memory"
	"github.com/lazharichir/blackjack/storage/sqlite"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "blackjack",
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}

	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	var playerStore domain.PlayerStore
	var gameStore domain.GameStore
	if cfg.DatabasePath == "" {
		logger.Warn("No database path set, state will not survive a restart")
		store := memory.NewStore()
		playerStore, gameStore = store, store
	} else {
		store, err := sqlite.Open(cfg.DatabasePath)
		if err != nil {
			logger.Fatal("Failed to open database", "path", cfg.DatabasePath, "error", err)
		}
		defer store.Close()
		playerStore, gameStore = store, store
	}

	casino := domain.NewCasino(playerStore, gameStore)

	srv := server.NewServer(casino, logger,
		server.WithStatusInterval(cfg.StatusInterval),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx, cfg.Addr); err != nil {
		logger.Fatal("Server failed", "error", err)
	}
}
