package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	"golang.org/x/sync/errgroup"

	configloader "github.com/habeshalab/tubebot/external/config"
	extractorimpl "github.com/habeshalab/tubebot/external/extractor"
	repositoryimpl "github.com/habeshalab/tubebot/external/repository"
	searchimpl "github.com/habeshalab/tubebot/external/search"
	telegramimpl "github.com/habeshalab/tubebot/external/telegram"
	"github.com/habeshalab/tubebot/internal/config"
	"github.com/habeshalab/tubebot/internal/delivery"
	"github.com/habeshalab/tubebot/internal/download"
	"github.com/habeshalab/tubebot/internal/repository"
	"github.com/habeshalab/tubebot/internal/resolver"
	"github.com/habeshalab/tubebot/internal/session"
	"github.com/habeshalab/tubebot/internal/stats"
	"github.com/habeshalab/tubebot/internal/status"
	telegrampkg "github.com/habeshalab/tubebot/internal/telegram"
)

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	slog.Info("startup: launching telegram bot")
	runBot(cfg, injector)
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	repositoryimpl.RegisterDI(injector)
	telegramimpl.RegisterDI(injector)
	searchimpl.RegisterDI(injector)
	extractorimpl.RegisterDI(injector)
	stats.RegisterDI(injector)
	resolver.RegisterDI(injector)
	download.RegisterDI(injector)
	delivery.RegisterDI(injector)
	status.RegisterDI(injector)
	session.RegisterDI(injector)

	return injector
}

func runBot(cfg *config.Config, injector do.Injector) {
	tg, err := do.Invoke[telegrampkg.Client](injector)
	if err != nil {
		slog.Error("failed to resolve telegram client", "error", err)
		os.Exit(1)
	}
	manager, err := do.Invoke[*session.Manager](injector)
	if err != nil {
		slog.Error("failed to resolve session manager", "error", err)
		os.Exit(1)
	}
	statusSrv, err := do.Invoke[*status.Server](injector)
	if err != nil {
		slog.Error("failed to resolve status server", "error", err)
		os.Exit(1)
	}
	repo := do.MustInvoke[repository.Repository](injector)
	collector := do.MustInvoke[*stats.Collector](injector)

	// Stale temp files from a previous run are dead weight; wipe before
	// accepting downloads.
	if err := download.PrepareDir(cfg.DownloadsDir); err != nil {
		slog.Error("failed to prepare downloads directory", "dir", cfg.DownloadsDir, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if total, err := repo.CountDownloads(ctx); err != nil {
		slog.Warn("failed to read persisted download count", "error", err)
	} else {
		collector.Seed(total)
	}

	tg.RegisterMessageHandler(manager.HandleMessage)
	tg.RegisterCallbackHandler(manager.HandleCallback)
	slog.Info("telegram handlers registered")
	defer func() {
		if err := tg.Close(); err != nil {
			slog.Error("telegram close failed", "error", err)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("startup: entering update loop")
		return tg.Run(gctx)
	})
	g.Go(func() error {
		return statusSrv.Run(gctx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		slog.Error("bot stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("shutting down")
}
