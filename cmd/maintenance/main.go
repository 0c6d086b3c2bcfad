package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"remote-jobs-pipeline/internal/config"
	"remote-jobs-pipeline/internal/logger"
	"remote-jobs-pipeline/internal/notify"
	"remote-jobs-pipeline/internal/registry"
	"remote-jobs-pipeline/internal/storage/postgres"
	"remote-jobs-pipeline/internal/storage/redis"
	"remote-jobs-pipeline/internal/sweeper"

	"go.uber.org/zap"
)

const reportJob = "maintenance"

type runReport struct {
	Sweep      sweeper.Result        `json:"sweep"`
	Logos      registry.LogoBackfill `json:"logos"`
	FinishedAt time.Time             `json:"finished_at"`
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

	var cache *redis.Cache
	if cfg.RedisEnabled() {
		cache, err = redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			log.Warn("redis unavailable, run report not stored", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	if cache != nil {
		var previous runReport
		err := cache.GetRunReport(ctx, reportJob, 0, &previous)
		switch {
		case err == nil:
			log.Info("previous maintenance run",
				zap.Time("finished_at", previous.FinishedAt),
				zap.Int64("deactivated", previous.Sweep.Deactivated),
				zap.Int("logos_set", previous.Logos.Set),
			)
		case errors.Is(err, redis.ErrCacheMiss):
			log.Info("no maintenance run recorded recently")
		default:
			log.Warn("failed to read previous run report", zap.Error(err))
		}
	}

	var report runReport

	fmt.Println("Expiring stale postings and recounting categories...")
	report.Sweep, err = sweeper.New(store, log).Sweep(ctx)
	if err != nil {
		log.Error("sweep finished with errors", zap.Error(err))
	}
	fmt.Printf("  Deactivated %d postings, recounted %d categories\n",
		report.Sweep.Deactivated, report.Sweep.CategoriesUpdated)

	fmt.Println("Backfilling company logos...")
	report.Logos, err = registry.New(store, log).BackfillLogos(ctx)
	if err != nil {
		log.Error("logo backfill failed", zap.Error(err))
	}
	fmt.Printf("  Set %d logos, cleared %d bad logos\n", report.Logos.Set, report.Logos.Cleared)

	report.FinishedAt = time.Now().UTC()

	if cache != nil {
		if err := cache.SetRunReport(context.Background(), reportJob, 0, report); err != nil {
			log.Warn("failed to store run report", zap.Error(err))
		}
	}

	if cfg.TelegramEnabled() {
		notifier, err := notify.New(cfg.TelegramToken, cfg.TelegramChatID, log)
		if err != nil {
			log.Warn("telegram unavailable, report not sent", zap.Error(err))
		} else if err := notifier.Send(notify.FormatMaintenanceReport(report.Sweep, report.Logos)); err != nil {
			log.Warn("failed to send maintenance report", zap.Error(err))
		}
	}

	fmt.Println("Maintenance complete!")
}
