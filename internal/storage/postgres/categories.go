package postgres

import (
	"context"
	"fmt"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"

	"remote-jobs-pipeline/internal/models"
)

// CategoryID returns "" when no category has the slug.
func (s *Store) CategoryID(ctx context.Context, slug string) (string, error) {
	var id string

	err := s.sess.
		Select("id").
		From("categories").
		Where("slug = ?", slug).
		LoadOneContext(ctx, &id)

	if err == dbr.ErrNotFound {
		return "", nil
	}

	if err != nil {
		s.logger.Error("failed to get category",
			zap.String("slug", slug),
			zap.Error(err),
		)
		return "", fmt.Errorf("get category: %w", err)
	}

	return id, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category

	_, err := s.sess.
		Select("id", "slug", "job_count").
		From("categories").
		OrderBy("slug").
		LoadContext(ctx, &categories)

	if err != nil {
		s.logger.Error("failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

func (s *Store) SetCategoryJobCount(ctx context.Context, categoryID string, count int) error {
	_, err := s.sess.
		Update("categories").
		Set("job_count", count).
		Where("id = ?", categoryID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to set category job count",
			zap.String("category_id", categoryID),
			zap.Int("count", count),
			zap.Error(err),
		)
		return fmt.Errorf("set category job count: %w", err)
	}

	return nil
}
