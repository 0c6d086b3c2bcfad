// Package aggregate computes salary benchmarks and daily market snapshots
// from active postings.
package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"remote-jobs-pipeline/internal/models"
	"remote-jobs-pipeline/internal/normalize"
)

type Store interface {
	ListSalariedPostings(ctx context.Context) ([]models.SalariedPosting, error)
	CompanyNames(ctx context.Context, ids []string) (map[string]string, error)
	ReplaceBenchmarks(ctx context.Context, benchmarks []models.SalaryBenchmark) error

	SnapshotExists(ctx context.Context, date time.Time) (bool, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListPostingSalaries(ctx context.Context, filter models.PostingFilter) ([]models.PostingSalary, error)
	InsertSnapshots(ctx context.Context, snapshots []models.MarketSnapshot) error
}

type BenchmarkResult struct {
	Postings int `json:"postings"`
	Inserted int `json:"inserted"`
}

type SnapshotResult struct {
	Date    string `json:"date"`
	Rows    int    `json:"rows"`
	Skipped bool   `json:"skipped"`
}

type Engine struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func New(store Store, logger *zap.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the clock that decides the snapshot date.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Benchmarks rebuilds the whole benchmark table from active salaried
// postings. With no salaried postings at all the previous set is kept.
func (e *Engine) Benchmarks(ctx context.Context) (BenchmarkResult, error) {
	e.logger.Info("computing salary benchmarks")

	postings, err := e.store.ListSalariedPostings(ctx)
	if err != nil {
		return BenchmarkResult{}, fmt.Errorf("benchmarks: %w", err)
	}

	result := BenchmarkResult{Postings: len(postings)}
	if len(postings) == 0 {
		e.logger.Info("no postings with salary data")
		return result, nil
	}

	benchmarks := BuildBenchmarks(postings)
	if err := e.resolveCompanyNames(ctx, benchmarks); err != nil {
		return result, fmt.Errorf("benchmarks: %w", err)
	}
	for i := range benchmarks {
		benchmarks[i].ID = uuid.NewString()
	}

	if len(benchmarks) == 0 {
		e.logger.Info("no benchmarks to insert, not enough data",
			zap.Int("postings", len(postings)),
		)
	}

	if err := e.store.ReplaceBenchmarks(ctx, benchmarks); err != nil {
		return result, fmt.Errorf("benchmarks: %w", err)
	}
	result.Inserted = len(benchmarks)

	e.logger.Info("salary benchmarks computed",
		zap.Int("postings", result.Postings),
		zap.Int("benchmarks", result.Inserted),
	)

	return result, nil
}

// resolveCompanyNames swaps the company ids in TopCompanies for names,
// dropping ids that no longer resolve.
func (e *Engine) resolveCompanyNames(ctx context.Context, benchmarks []models.SalaryBenchmark) error {
	seen := make(map[string]bool)
	var ids []string
	for _, b := range benchmarks {
		for _, id := range b.TopCompanies {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	names, err := e.store.CompanyNames(ctx, ids)
	if err != nil {
		return err
	}

	for i := range benchmarks {
		resolved := make([]string, 0, len(benchmarks[i].TopCompanies))
		for _, id := range benchmarks[i].TopCompanies {
			if name, ok := names[id]; ok {
				resolved = append(resolved, name)
			}
		}
		benchmarks[i].TopCompanies = resolved
	}

	return nil
}

// Snapshots writes today's market snapshot. It is a no-op when any row for
// today already exists, so retries are safe.
func (e *Engine) Snapshots(ctx context.Context) (SnapshotResult, error) {
	y, m, d := e.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	result := SnapshotResult{Date: today.Format(time.DateOnly)}

	e.logger.Info("computing market snapshots", zap.String("date", result.Date))

	exists, err := e.store.SnapshotExists(ctx, today)
	if err != nil {
		return result, fmt.Errorf("snapshots: %w", err)
	}
	if exists {
		e.logger.Info("snapshot already exists, skipping", zap.String("date", result.Date))
		result.Skipped = true
		return result, nil
	}

	var rows []models.MarketSnapshot

	categories, err := e.store.ListCategories(ctx)
	if err != nil {
		return result, fmt.Errorf("snapshots: %w", err)
	}
	for _, category := range categories {
		row, err := e.snapshotRow(ctx, today, models.PostingFilter{CategoryID: category.ID})
		if err != nil {
			return result, fmt.Errorf("snapshots: category %s: %w", category.Slug, err)
		}
		slug := category.Slug
		row.CategorySlug = &slug
		rows = append(rows, row)
	}

	for _, skill := range normalize.TopTechSkills {
		row, err := e.snapshotRow(ctx, today, models.PostingFilter{TechSkill: skill})
		if err != nil {
			return result, fmt.Errorf("snapshots: tech %s: %w", skill, err)
		}
		if row.JobCount < MinTechSampleSize {
			continue
		}
		tech := skill
		row.TechSkill = &tech
		rows = append(rows, row)
	}

	for _, level := range models.ExperienceLevels() {
		row, err := e.snapshotRow(ctx, today, models.PostingFilter{ExperienceLevel: level})
		if err != nil {
			return result, fmt.Errorf("snapshots: experience %s: %w", level, err)
		}
		exp := level
		row.ExperienceLevel = &exp
		rows = append(rows, row)
	}

	err = e.store.InsertSnapshots(ctx, rows)
	if models.ConflictOn(err, models.ConstraintSnapshotDimension) {
		// a concurrent run stored today's snapshot after our existence check
		e.logger.Info("snapshot written concurrently, skipping", zap.String("date", result.Date))
		result.Skipped = true
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("snapshots: %w", err)
	}
	result.Rows = len(rows)

	e.logger.Info("market snapshots inserted",
		zap.String("date", result.Date),
		zap.Int("rows", result.Rows),
	)

	return result, nil
}

func (e *Engine) snapshotRow(ctx context.Context, date time.Time, filter models.PostingFilter) (models.MarketSnapshot, error) {
	salaries, err := e.store.ListPostingSalaries(ctx, filter)
	if err != nil {
		return models.MarketSnapshot{}, err
	}

	avgMin, avgMax, median := SummarizeSalaries(salaries)

	return models.MarketSnapshot{
		ID:           uuid.NewString(),
		SnapshotDate: date,
		JobCount:     len(salaries),
		AvgSalaryMin: avgMin,
		AvgSalaryMax: avgMax,
		MedianSalary: median,
	}, nil
}
