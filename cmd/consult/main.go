package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"expert-consult/internal/adapter/openai"
	"expert-consult/internal/adapter/telegram"
	"expert-consult/internal/adapter/web"
	"expert-consult/internal/config"
	"expert-consult/internal/usecase/consult"
)

func main() {
	cfg, err := config.Load(".env", "settings.yml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Settings.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	openAIClient := openai.NewClient(cfg.OpenAIKey, cfg.Settings.BaseURL)
	consultSvc := consult.NewService(openAIClient, cfg.Settings, logger.Named("consult"))
	server := web.NewServer(consultSvc, cfg.Settings.Model, logger.Named("web"))

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, cfg.Settings.ListenAddr)
	})

	if cfg.TelegramToken != "" {
		startOptional(gctx, g, logger, "telegram", func() (runner, error) {
			return telegram.NewBot(cfg.TelegramToken, consultSvc, logger.Named("telegram"))
		})
	}

	logger.Info("expert consult started",
		zap.String("model", cfg.Settings.Model),
		zap.Float32("temperature", cfg.Settings.Temperature),
		zap.Bool("telegram", cfg.TelegramToken != ""))

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("stopped with error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

type runner interface {
	Run(ctx context.Context) error
}

// startOptional runs a surface the service can live without. A surface that
// fails to initialize is logged and skipped; the rest keep serving.
func startOptional(ctx context.Context, g *errgroup.Group, logger *zap.Logger, name string, build func() (runner, error)) bool {
	r, err := build()
	if err != nil {
		logger.Error("optional surface disabled", zap.String("surface", name), zap.Error(err))
		return false
	}
	g.Go(func() error {
		return r.Run(ctx)
	})
	return true
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
