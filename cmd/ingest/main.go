package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"remote-jobs-pipeline/internal/api/jobspy"
	"remote-jobs-pipeline/internal/config"
	"remote-jobs-pipeline/internal/ingest"
	"remote-jobs-pipeline/internal/logger"
	"remote-jobs-pipeline/internal/notify"
	"remote-jobs-pipeline/internal/registry"
	"remote-jobs-pipeline/internal/storage/postgres"
	"remote-jobs-pipeline/internal/storage/redis"
	"remote-jobs-pipeline/internal/sweeper"

	"go.uber.org/zap"
)

type runReport struct {
	Summary    ingest.Summary  `json:"summary"`
	Sweep      *sweeper.Result `json:"sweep,omitempty"`
	FinishedAt time.Time       `json:"finished_at"`
}

func main() {
	batch := flag.Int("batch", 0, "index of the query batch to run")
	totalBatches := flag.Int("total-batches", 1, "number of batches the query list is split into")
	flag.Parse()

	queries, err := ingest.Partition(ingest.SearchQueries, *batch, *totalBatches)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid batch flags: %v\n", err)
		os.Exit(2)
	}

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

	log.Info("starting ingestion",
		zap.Int("batch", *batch),
		zap.Int("total_batches", *totalBatches),
		zap.Int("queries", len(queries)),
	)

	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	var cache *redis.Cache
	if cfg.RedisEnabled() {
		cache, err = redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			log.Warn("redis unavailable, continuing without cache", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	var notifier *notify.Notifier
	if cfg.TelegramEnabled() {
		notifier, err = notify.New(cfg.TelegramToken, cfg.TelegramChatID, log)
		if err != nil {
			log.Warn("telegram unavailable, reports disabled", zap.Error(err))
			notifier = nil
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	client := jobspy.New(cfg.JobSpyBaseURL, cfg.JobSpyAPIKey, cfg.JobSpyTimeout, log)
	companies := registry.New(store, log)

	pipeline := ingest.New(client, store, companies, ingest.SearchOptions{
		Sites:         jobspy.DefaultSites,
		ResultsWanted: cfg.JobSpyResultsWanted,
		HoursOld:      cfg.JobSpyHoursOld,
		Country:       cfg.JobSpyCountry,
	}, log)
	if cache != nil {
		pipeline.WithCategoryCache(cache)
	}

	summary := pipeline.Run(ctx, queries)
	report := runReport{Summary: summary}

	if sweeper.IsFinalBatch(*batch, *totalBatches) {
		// the sweep uses its own context so a late interrupt does not leave
		// category counts half refreshed
		sweepCtx, sweepCancel := context.WithTimeout(context.Background(), 5*time.Minute)
		result, err := sweeper.New(store, log).Sweep(sweepCtx)
		sweepCancel()
		if err != nil {
			log.Error("sweep finished with errors", zap.Error(err))
		}
		report.Sweep = &result
	}

	report.FinishedAt = time.Now().UTC()

	if cache != nil {
		if err := cache.SetRunReport(context.Background(), "ingest", *batch, report); err != nil {
			log.Warn("failed to store run report", zap.Error(err))
		}
		if n, err := cache.CountFinishedBatch(context.Background(), "ingest", report.FinishedAt); err == nil {
			log.Info("batches finished today", zap.Int64("count", n))
		}
	}

	if err := notifier.Send(notify.FormatIngestReport(*batch, *totalBatches, summary, report.Sweep)); err != nil {
		log.Warn("failed to send ingestion report", zap.Error(err))
	}

	fmt.Println(summary.String())
}
