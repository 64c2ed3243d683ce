package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/myron-alexander/srcalc/internal/config"
	"github.com/myron-alexander/srcalc/internal/gamedata"
	"github.com/myron-alexander/srcalc/internal/layout"
	"github.com/myron-alexander/srcalc/internal/planner"
	"github.com/myron-alexander/srcalc/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	db, err := gamedata.NewLoader().Load(gamedata.DefaultPaths(cfg.DataDir))
	if err != nil {
		slog.Error("Failed to load recipe database", "error", err, "data_dir", cfg.DataDir)
		os.Exit(1)
	}
	slog.Info("Recipe database loaded", "items", len(db.ItemNames()), "data_dir", cfg.DataDir)

	svc := planner.NewService(db, cfg.CacheSize, cfg.CacheTTL)
	srv := server.NewServer(cfg.Port, svc, layout.NewVerifier(db))

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("Shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
