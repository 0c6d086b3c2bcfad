package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"

	"remote-jobs-pipeline/internal/models"
)

var companyColumns = []string{
	"id", "name", "slug", "logo_url", "website", "description", "size", "remote_policy",
}

func (s *Store) GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error) {
	var company models.Company

	err := s.sess.
		Select(companyColumns...).
		From("companies").
		Where("slug = ?", slug).
		LoadOneContext(ctx, &company)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get company",
			zap.String("slug", slug),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get company: %w", err)
	}

	return &company, nil
}

func (s *Store) InsertCompany(ctx context.Context, company *models.Company) error {
	_, err := s.sess.
		InsertInto("companies").
		Columns(companyColumns...).
		Record(company).
		ExecContext(ctx)

	if err != nil {
		err = mapConflict(err)
		if errors.Is(err, models.ErrConflict) {
			return err
		}
		s.logger.Error("failed to create company",
			zap.String("slug", company.Slug),
			zap.Error(err),
		)
		return fmt.Errorf("create company: %w", err)
	}

	s.logger.Debug("company created",
		zap.String("company_id", company.ID),
		zap.String("slug", company.Slug),
	)

	return nil
}

// ListCompanies loads every company, oldest first.
func (s *Store) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company

	_, err := s.sess.
		Select(companyColumns...).
		From("companies").
		OrderBy("created_at").
		LoadContext(ctx, &companies)

	if err != nil {
		s.logger.Error("failed to list companies", zap.Error(err))
		return nil, fmt.Errorf("list companies: %w", err)
	}

	return companies, nil
}

// UpdateCompany writes only the given columns. A nil value clears a column.
func (s *Store) UpdateCompany(ctx context.Context, id string, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return nil
	}

	_, err := s.sess.
		Update("companies").
		SetMap(changes).
		Set("updated_at", dbr.Expr("NOW()")).
		Where("id = ?", id).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update company",
			zap.String("company_id", id),
			zap.Error(err),
		)
		return fmt.Errorf("update company: %w", err)
	}

	return nil
}

// CompanyNames maps company ids to names.
func (s *Store) CompanyNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID   string `db:"id"`
		Name string `db:"name"`
	}

	_, err := s.sess.
		Select("id", "name").
		From("companies").
		Where("id IN ?", ids).
		LoadContext(ctx, &rows)

	if err != nil {
		s.logger.Error("failed to load company names",
			zap.Int("count", len(ids)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("company names: %w", err)
	}

	for _, r := range rows {
		names[r.ID] = r.Name
	}

	return names, nil
}
