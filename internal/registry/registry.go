// Package registry maps company names onto persistent company records.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"remote-jobs-pipeline/internal/models"
	"remote-jobs-pipeline/internal/normalize"
)

// ErrUnnamedCompany is returned when a company name slugifies to nothing.
var ErrUnnamedCompany = errors.New("company name has no slug")

type Store interface {
	GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error)
	InsertCompany(ctx context.Context, company *models.Company) error
	UpdateCompany(ctx context.Context, id string, changes map[string]interface{}) error
	ListCompanies(ctx context.Context) ([]models.Company, error)
}

// LogoBackfill counts what a BackfillLogos pass changed.
type LogoBackfill struct {
	Scanned int `json:"scanned"`
	Set     int `json:"set"`
	Cleared int `json:"cleared"`
	Failed  int `json:"failed"`
}

// Registry is the only writer of company rows. It keeps no state of its
// own, so any number of pipeline processes may share one store.
type Registry struct {
	store  Store
	logger *zap.Logger
}

func New(store Store, logger *zap.Logger) *Registry {
	return &Registry{
		store:  store,
		logger: logger,
	}
}

// Resolve returns the id of the company named in info, creating the
// company on first sighting and enriching it on every later one.
func (r *Registry) Resolve(ctx context.Context, info models.CompanyInfo) (string, error) {
	slug := normalize.Slugify(info.Name)
	if slug == "" {
		return "", fmt.Errorf("resolve company %q: %w", info.Name, ErrUnnamedCompany)
	}

	existing, err := r.store.GetCompanyBySlug(ctx, slug)
	if err != nil {
		return "", fmt.Errorf("resolve company: %w", err)
	}
	if existing != nil {
		return existing.ID, r.enrich(ctx, existing, info)
	}

	company := newCompany(slug, info)
	err = r.store.InsertCompany(ctx, company)
	if err == nil {
		r.logger.Debug("company registered",
			zap.String("company_id", company.ID),
			zap.String("slug", slug),
		)
		return company.ID, nil
	}
	if !errors.Is(err, models.ErrConflict) {
		return "", fmt.Errorf("resolve company: %w", err)
	}

	// another process registered the slug between our lookup and insert
	existing, err = r.store.GetCompanyBySlug(ctx, slug)
	if err != nil {
		return "", fmt.Errorf("resolve company after conflict: %w", err)
	}
	if existing == nil {
		return "", fmt.Errorf("resolve company %q: conflict without row", slug)
	}

	r.logger.Info("company insert lost race, using existing record",
		zap.String("company_id", existing.ID),
		zap.String("slug", slug),
	)

	return existing.ID, r.enrich(ctx, existing, info)
}

func newCompany(slug string, info models.CompanyInfo) *models.Company {
	logo := info.LogoURL
	if logo == "" {
		logo = normalize.DeriveLogoURL(info.Website, info.Name)
	}

	return &models.Company{
		ID:           uuid.NewString(),
		Name:         info.Name,
		Slug:         slug,
		LogoURL:      optional(logo),
		Website:      optional(info.Website),
		Description:  optional(normalize.Truncate(info.Description, models.MaxCompanyDescLen)),
		Size:         optional(info.Size),
		RemotePolicy: models.LocationRemote,
	}
}

// enrich backfills a missing logo and overwrites website, description and
// size with any non-empty new value. Nothing is written when nothing changed.
func (r *Registry) enrich(ctx context.Context, company *models.Company, info models.CompanyInfo) error {
	changes := make(map[string]interface{})

	if value(company.LogoURL) == "" {
		logo := info.LogoURL
		if logo == "" {
			logo = normalize.DeriveLogoURL(info.Website, info.Name)
		}
		if logo != "" {
			changes["logo_url"] = logo
		}
	}

	overwrite := func(column string, current *string, next string) {
		if next != "" && next != value(current) {
			changes[column] = next
		}
	}
	overwrite("website", company.Website, info.Website)
	overwrite("description", company.Description, normalize.Truncate(info.Description, models.MaxCompanyDescLen))
	overwrite("size", company.Size, info.Size)

	if len(changes) == 0 {
		return nil
	}

	if err := r.store.UpdateCompany(ctx, company.ID, changes); err != nil {
		return fmt.Errorf("enrich company: %w", err)
	}

	r.logger.Debug("company enriched",
		zap.String("company_id", company.ID),
		zap.Int("fields", len(changes)),
	)

	return nil
}

// BackfillLogos gives every logo-less company a derived logo and repairs
// logos that point at a job board. A bad logo nothing can replace is cleared.
// A failed update is logged and counted; the pass goes on.
func (r *Registry) BackfillLogos(ctx context.Context) (LogoBackfill, error) {
	var result LogoBackfill

	companies, err := r.store.ListCompanies(ctx)
	if err != nil {
		return result, fmt.Errorf("backfill logos: %w", err)
	}
	result.Scanned = len(companies)

	for i := range companies {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("backfill logos: %w", err)
		}

		company := &companies[i]
		current := value(company.LogoURL)
		bad := normalize.IsBadLogoURL(current)
		if current != "" && !bad {
			continue
		}

		logo := normalize.DeriveLogoURL(value(company.Website), company.Name)
		if normalize.IsBadLogoURL(logo) {
			logo = ""
		}

		var changes map[string]interface{}
		switch {
		case logo != "":
			changes = map[string]interface{}{"logo_url": logo}
		case bad:
			changes = map[string]interface{}{"logo_url": nil}
		default:
			continue
		}

		if err := r.store.UpdateCompany(ctx, company.ID, changes); err != nil {
			result.Failed++
			r.logger.Warn("failed to backfill company logo",
				zap.String("company_id", company.ID),
				zap.Error(err),
			)
			continue
		}

		if logo != "" {
			result.Set++
		} else {
			result.Cleared++
		}
		r.logger.Debug("company logo backfilled",
			zap.String("company_id", company.ID),
			zap.String("logo_url", logo),
		)
	}

	r.logger.Info("logo backfill finished",
		zap.Int("scanned", result.Scanned),
		zap.Int("set", result.Set),
		zap.Int("cleared", result.Cleared),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
