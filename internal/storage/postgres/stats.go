package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"remote-jobs-pipeline/internal/models"
)

var benchmarkColumns = []string{
	"id", "role_category", "normalized_title", "experience_level", "sample_size",
	"p25_salary", "p50_salary", "p75_salary", "avg_salary", "min_salary",
	"max_salary", "top_companies", "top_tech",
}

var snapshotColumns = []string{
	"id", "snapshot_date", "category_slug", "tech_skill", "experience_level",
	"job_count", "avg_salary_min", "avg_salary_max", "median_salary",
}

// ReplaceBenchmarks swaps the whole benchmark set in one transaction, so
// readers see either the previous set or the new one, never an empty table.
func (s *Store) ReplaceBenchmarks(ctx context.Context, benchmarks []models.SalaryBenchmark) error {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	result, err := tx.DeleteFrom("salary_benchmarks").ExecContext(ctx)
	if err != nil {
		s.logger.Error("failed to clear salary benchmarks", zap.Error(err))
		return fmt.Errorf("clear salary benchmarks: %w", err)
	}
	removed, _ := result.RowsAffected()

	if len(benchmarks) > 0 {
		stmt := tx.InsertInto("salary_benchmarks").Columns(benchmarkColumns...)
		for i := range benchmarks {
			stmt.Record(&benchmarks[i])
		}
		if _, err := stmt.ExecContext(ctx); err != nil {
			s.logger.Error("failed to insert salary benchmarks",
				zap.Int("count", len(benchmarks)),
				zap.Error(err),
			)
			return fmt.Errorf("insert salary benchmarks: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit salary benchmarks: %w", err)
	}

	s.logger.Info("salary benchmarks replaced",
		zap.Int64("removed", removed),
		zap.Int("inserted", len(benchmarks)),
	)

	return nil
}

func (s *Store) SnapshotExists(ctx context.Context, date time.Time) (bool, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("market_snapshots").
		Where("snapshot_date = ?", date.Format(time.DateOnly)).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to check snapshot existence",
			zap.String("date", date.Format(time.DateOnly)),
			zap.Error(err),
		)
		return false, fmt.Errorf("snapshot exists: %w", err)
	}

	return count > 0, nil
}

// InsertSnapshots writes all rows for a day in a single statement. A row
// already stored for the same day and dimension fails the whole statement
// with a models.ConflictError.
func (s *Store) InsertSnapshots(ctx context.Context, snapshots []models.MarketSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	stmt := s.sess.InsertInto("market_snapshots").Columns(snapshotColumns...)
	for i := range snapshots {
		stmt.Record(&snapshots[i])
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		err = mapConflict(err)
		if errors.Is(err, models.ErrConflict) {
			return err
		}
		s.logger.Error("failed to insert market snapshots",
			zap.Int("count", len(snapshots)),
			zap.Error(err),
		)
		return fmt.Errorf("insert market snapshots: %w", err)
	}

	return nil
}
