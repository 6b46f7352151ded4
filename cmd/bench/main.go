package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"shortlink/internal/bench/attack"
	"shortlink/internal/bench/config"
	"shortlink/internal/bench/seed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(".env.bench")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var codes []string
	if cfg.NeedsSeed() {
		codes, err = seed.Run(ctx, seed.Options{
			BaseURL:            cfg.BaseURL,
			Count:              cfg.Seed.Count,
			BatchSize:          cfg.Seed.BatchSize,
			Rate:               cfg.Seed.Rate,
			Timeout:            cfg.Seed.Timeout,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
			Out:                os.Stdout,
		})
		if err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
	}

	return attack.Run(&attack.Config{
		BaseURL:            cfg.BaseURL,
		Codes:              codes,
		Rate:               cfg.Attack.Rate,
		Duration:           cfg.Attack.Duration,
		CreateRatio:        cfg.Attack.CreateRatio,
		Type:               cfg.Attack.Type,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		Connections:        cfg.Attack.Connections,
		MaxWorkers:         cfg.Attack.MaxWorkers,
	}, os.Stdout)
}
