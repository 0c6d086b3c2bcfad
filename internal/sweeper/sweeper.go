// Package sweeper retires stale postings and refreshes category counts.
package sweeper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"remote-jobs-pipeline/internal/models"
)

// RetentionWindow is how long a posting stays active after it was posted.
const RetentionWindow = 30 * 24 * time.Hour

type Store interface {
	DeactivateStale(ctx context.Context, cutoff time.Time) (int64, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CountActiveInCategory(ctx context.Context, categoryID string) (int, error)
	SetCategoryJobCount(ctx context.Context, categoryID string, count int) error
}

type Result struct {
	Deactivated       int64 `json:"deactivated"`
	CategoriesUpdated int   `json:"categories_updated"`
}

type Sweeper struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func New(store Store, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the clock the retention cutoff is computed from.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	s.now = now
	return s
}

// IsFinalBatch reports whether batch is the last of total; only that run sweeps.
func IsFinalBatch(batch, total int) bool {
	return total <= 1 || batch == total-1
}

// Sweep deactivates postings older than the retention window, then
// recomputes every category's active job count. The steps run
// independently; a failure in one does not skip the other.
func (s *Sweeper) Sweep(ctx context.Context) (Result, error) {
	var result Result
	var errs []error

	cutoff := s.now().Add(-RetentionWindow)
	deactivated, err := s.store.DeactivateStale(ctx, cutoff)
	if err != nil {
		errs = append(errs, fmt.Errorf("deactivate stale: %w", err))
	}
	result.Deactivated = deactivated

	updated, err := s.refreshCategoryCounts(ctx)
	if err != nil {
		errs = append(errs, err)
	}
	result.CategoriesUpdated = updated

	s.logger.Info("sweep finished",
		zap.Time("cutoff", cutoff),
		zap.Int64("deactivated", result.Deactivated),
		zap.Int("categories_updated", result.CategoriesUpdated),
	)

	return result, errors.Join(errs...)
}

func (s *Sweeper) refreshCategoryCounts(ctx context.Context) (int, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("list categories: %w", err)
	}

	updated := 0
	var errs []error
	for _, category := range categories {
		count, err := s.store.CountActiveInCategory(ctx, category.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("count %s: %w", category.Slug, err))
			continue
		}

		if err := s.store.SetCategoryJobCount(ctx, category.ID, count); err != nil {
			errs = append(errs, fmt.Errorf("update %s: %w", category.Slug, err))
			continue
		}

		s.logger.Debug("category count refreshed",
			zap.String("slug", category.Slug),
			zap.Int("job_count", count),
		)
		updated++
	}

	return updated, errors.Join(errs...)
}
