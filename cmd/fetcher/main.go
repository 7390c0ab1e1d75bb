package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/finsight-hq/vantage-fetcher/internal/app"
	"github.com/finsight-hq/vantage-fetcher/internal/config"
	"github.com/finsight-hq/vantage-fetcher/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fetcher failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 || strings.TrimSpace(os.Args[1]) == "" {
		return fmt.Errorf("usage: %s <SYMBOL>", os.Args[0])
	}
	symbol := strings.TrimSpace(os.Args[1])

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	// The API key is a secret; log everything but.
	logger.InfoObj("fetcher starting", "config", map[string]any{
		"app_name":        cfg.AppName,
		"app_env":         cfg.Env,
		"base_url":        cfg.BaseURL,
		"publishers_file": cfg.PublishersFile,
		"validate_inputs": cfg.ValidateInputs,
		"symbol":          symbol,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetcher, err := app.NewFetcher(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize fetcher", "error", err)
		return err
	}

	if err := fetcher.Run(ctx, symbol); err != nil {
		return fmt.Errorf("fetcher run: %w", err)
	}

	return nil
}
