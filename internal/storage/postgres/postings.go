package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocraft/dbr/v2"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"remote-jobs-pipeline/internal/models"
)

var postingColumns = []string{
	"id", "title", "slug", "company_id", "description", "description_plain",
	"category_id", "job_type", "experience_level", "salary_min", "salary_max",
	"salary_currency", "location_requirements", "is_async_friendly",
	"visa_sponsorship", "tech_stack", "source", "source_id", "source_url",
	"apply_url", "is_featured", "is_active", "date_posted",
}

func (s *Store) PostingExists(ctx context.Context, source models.Source, sourceID string) (bool, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("jobs").
		Where("source = ? AND source_id = ?", string(source), sourceID).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to check posting existence",
			zap.String("source", string(source)),
			zap.String("source_id", sourceID),
			zap.Error(err),
		)
		return false, fmt.Errorf("posting exists: %w", err)
	}

	return count > 0, nil
}

func (s *Store) SlugTaken(ctx context.Context, slug string) (bool, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("jobs").
		Where("slug = ?", slug).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to check slug",
			zap.String("slug", slug),
			zap.Error(err),
		)
		return false, fmt.Errorf("slug taken: %w", err)
	}

	return count > 0, nil
}

func (s *Store) InsertPosting(ctx context.Context, posting *models.Posting) error {
	_, err := s.sess.
		InsertInto("jobs").
		Columns(postingColumns...).
		Record(posting).
		ExecContext(ctx)

	if err != nil {
		err = mapConflict(err)
		if errors.Is(err, models.ErrConflict) {
			return err
		}
		s.logger.Error("failed to insert posting",
			zap.String("slug", posting.Slug),
			zap.String("source", string(posting.Source)),
			zap.String("source_id", posting.SourceID),
			zap.Error(err),
		)
		return fmt.Errorf("insert posting: %w", err)
	}

	return nil
}

// DeactivateStale flips active postings dated before cutoff to inactive.
func (s *Store) DeactivateStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.sess.
		Update("jobs").
		Set("is_active", false).
		Set("updated_at", dbr.Expr("NOW()")).
		Where("is_active = ? AND date_posted < ?", true, cutoff).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to deactivate stale postings",
			zap.Time("cutoff", cutoff),
			zap.Error(err),
		)
		return 0, fmt.Errorf("deactivate stale postings: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()

	s.logger.Info("stale postings deactivated",
		zap.Time("cutoff", cutoff),
		zap.Int64("count", rowsAffected),
	)

	return rowsAffected, nil
}

func (s *Store) CountActiveInCategory(ctx context.Context, categoryID string) (int, error) {
	var count int

	err := s.sess.
		Select("COUNT(*)").
		From("jobs").
		Where("category_id = ? AND is_active = ?", categoryID, true).
		LoadOneContext(ctx, &count)

	if err != nil {
		s.logger.Error("failed to count active postings",
			zap.String("category_id", categoryID),
			zap.Error(err),
		)
		return 0, fmt.Errorf("count active postings: %w", err)
	}

	return count, nil
}

// ListSalariedPostings returns active postings carrying both salary bounds.
func (s *Store) ListSalariedPostings(ctx context.Context) ([]models.SalariedPosting, error) {
	var postings []models.SalariedPosting

	_, err := s.sess.
		Select("title", "experience_level", "salary_min", "salary_max", "company_id", "tech_stack").
		From("jobs").
		Where("is_active = ? AND salary_min IS NOT NULL AND salary_max IS NOT NULL", true).
		LoadContext(ctx, &postings)

	if err != nil {
		s.logger.Error("failed to list salaried postings", zap.Error(err))
		return nil, fmt.Errorf("list salaried postings: %w", err)
	}

	return postings, nil
}

// ListPostingSalaries returns salary bounds of active postings matching filter.
func (s *Store) ListPostingSalaries(ctx context.Context, filter models.PostingFilter) ([]models.PostingSalary, error) {
	var salaries []models.PostingSalary

	stmt := filterPostingSalaries(s.sess.Select("salary_min", "salary_max").From("jobs"), filter)

	if _, err := stmt.LoadContext(ctx, &salaries); err != nil {
		s.logger.Error("failed to list posting salaries",
			zap.Any("filter", filter),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list posting salaries: %w", err)
	}

	return salaries, nil
}

// filterPostingSalaries narrows stmt to active postings along the one
// dimension the filter sets.
func filterPostingSalaries(stmt *dbr.SelectStmt, filter models.PostingFilter) *dbr.SelectStmt {
	stmt = stmt.Where("is_active = ?", true)

	switch {
	case filter.CategoryID != "":
		stmt = stmt.Where("category_id = ?", filter.CategoryID)
	case filter.TechSkill != "":
		stmt = stmt.Where("tech_stack @> ?", pq.Array([]string{filter.TechSkill}))
	case filter.ExperienceLevel != "":
		stmt = stmt.Where("experience_level = ?", string(filter.ExperienceLevel))
	}

	return stmt
}
