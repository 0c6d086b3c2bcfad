package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"remote-jobs-pipeline/internal/aggregate"
	"remote-jobs-pipeline/internal/config"
	"remote-jobs-pipeline/internal/logger"
	"remote-jobs-pipeline/internal/notify"
	"remote-jobs-pipeline/internal/storage/postgres"
	"remote-jobs-pipeline/internal/storage/redis"

	"go.uber.org/zap"
)

type runReport struct {
	Benchmarks aggregate.BenchmarkResult `json:"benchmarks"`
	Snapshots  aggregate.SnapshotResult  `json:"snapshots"`
	FinishedAt time.Time                 `json:"finished_at"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	engine := aggregate.New(store, log)
	var report runReport

	fmt.Println("Computing salary benchmarks...")
	report.Benchmarks, err = engine.Benchmarks(ctx)
	if err != nil {
		log.Error("salary benchmarks failed", zap.Error(err))
	} else {
		fmt.Printf("  Inserted %d salary benchmarks\n", report.Benchmarks.Inserted)
	}

	fmt.Println("Computing market snapshots...")
	report.Snapshots, err = engine.Snapshots(ctx)
	switch {
	case err != nil:
		log.Error("market snapshots failed", zap.Error(err))
	case report.Snapshots.Skipped:
		fmt.Printf("  Snapshot for %s already exists, skipping\n", report.Snapshots.Date)
	default:
		fmt.Printf("  Inserted %d snapshots for %s\n", report.Snapshots.Rows, report.Snapshots.Date)
	}

	report.FinishedAt = time.Now().UTC()

	if cfg.RedisEnabled() {
		if cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log); err != nil {
			log.Warn("redis unavailable, run report not stored", zap.Error(err))
		} else {
			if err := cache.SetRunReport(context.Background(), "aggregate", 0, report); err != nil {
				log.Warn("failed to store run report", zap.Error(err))
			}
			cache.Close()
		}
	}

	if cfg.TelegramEnabled() {
		notifier, err := notify.New(cfg.TelegramToken, cfg.TelegramChatID, log)
		if err != nil {
			log.Warn("telegram unavailable, report not sent", zap.Error(err))
		} else if err := notifier.Send(notify.FormatAggregateReport(report.Benchmarks, report.Snapshots)); err != nil {
			log.Warn("failed to send aggregation report", zap.Error(err))
		}
	}

	fmt.Println("Aggregation complete!")
}
