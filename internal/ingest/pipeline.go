// Package ingest turns scraped job rows into stored postings.
package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"remote-jobs-pipeline/internal/api/jobspy"
	"remote-jobs-pipeline/internal/identity"
	"remote-jobs-pipeline/internal/models"
	"remote-jobs-pipeline/internal/normalize"
)

const (
	// maxLoggedErrors caps verbose row error logging per run.
	maxLoggedErrors = 10
	progressEvery   = 25
)

type Source interface {
	SearchJobs(ctx context.Context, params jobspy.SearchParams) ([]jobspy.Job, error)
}

type Store interface {
	PostingExists(ctx context.Context, source models.Source, sourceID string) (bool, error)
	SlugTaken(ctx context.Context, slug string) (bool, error)
	InsertPosting(ctx context.Context, posting *models.Posting) error
	CategoryID(ctx context.Context, slug string) (string, error)
}

type CompanyResolver interface {
	Resolve(ctx context.Context, info models.CompanyInfo) (string, error)
}

// CategoryCache is an optional shared cache of category slug to id.
type CategoryCache interface {
	GetCategoryID(ctx context.Context, slug string) (string, error)
	SetCategoryID(ctx context.Context, slug, id string) error
}

type SearchOptions struct {
	Sites         []string
	ResultsWanted int
	HoursOld      int
	Country       string
}

// Summary counts row outcomes of a run.
type Summary struct {
	New           int `json:"new"`
	Skipped       int `json:"skipped"`
	Errors        int `json:"errors"`
	Rejected      int `json:"rejected"`
	FailedQueries int `json:"failed_queries"`
}

func (s Summary) String() string {
	return fmt.Sprintf("New: %d, Skipped: %d, Errors: %d", s.New, s.Skipped, s.Errors)
}

type outcome int

const (
	outcomeInserted outcome = iota
	outcomeDuplicate
	outcomeRejected
	outcomeErrored
)

type Pipeline struct {
	source    Source
	store     Store
	companies CompanyResolver
	cache     CategoryCache
	search    SearchOptions
	logger    *zap.Logger
	now       func() time.Time

	categoryIDs map[string]string
}

func New(source Source, store Store, companies CompanyResolver, search SearchOptions, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		source:      source,
		store:       store,
		companies:   companies,
		search:      search,
		logger:      logger,
		now:         time.Now,
		categoryIDs: make(map[string]string),
	}
}

// WithCategoryCache shares category lookups across processes.
func (p *Pipeline) WithCategoryCache(cache CategoryCache) *Pipeline {
	p.cache = cache
	return p
}

// WithClock replaces the ingestion clock used for missing posting dates.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Run processes queries one after another. Failures of a query or a row
// are logged and counted; they never stop the run.
func (p *Pipeline) Run(ctx context.Context, queries []string) Summary {
	var summary Summary

	p.logger.Info("ingestion started", zap.Int("queries", len(queries)))

	for _, query := range queries {
		if ctx.Err() != nil {
			p.logger.Warn("ingestion interrupted", zap.Error(ctx.Err()))
			break
		}
		p.runQuery(ctx, query, &summary)
	}

	if summary.Errors > maxLoggedErrors {
		p.logger.Warn("further row errors were not logged",
			zap.Int("suppressed", summary.Errors-maxLoggedErrors),
		)
	}

	p.logger.Info("ingestion finished",
		zap.Int("new", summary.New),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errors", summary.Errors),
		zap.Int("rejected", summary.Rejected),
		zap.Int("failed_queries", summary.FailedQueries),
	)

	return summary
}

func (p *Pipeline) runQuery(ctx context.Context, query string, summary *Summary) {
	jobs, err := p.source.SearchJobs(ctx, jobspy.SearchParams{
		Sites:         p.search.Sites,
		SearchTerm:    query,
		Location:      "remote",
		ResultsWanted: p.search.ResultsWanted,
		HoursOld:      p.search.HoursOld,
		IsRemote:      true,
		CountryIndeed: p.search.Country,
	})
	if err != nil {
		summary.FailedQueries++
		p.logger.Error("query failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return
	}

	if len(jobs) == 0 {
		p.logger.Info("no results", zap.String("query", query))
		return
	}

	p.logger.Info("results fetched",
		zap.String("query", query),
		zap.Int("count", len(jobs)),
	)

	for _, job := range jobs {
		record := RecordFromJob(job)

		result, err := p.processRow(ctx, record)
		switch result {
		case outcomeInserted:
			summary.New++
			if summary.New%progressEvery == 0 {
				p.logger.Info("ingestion progress", zap.Int("new", summary.New))
			}
		case outcomeDuplicate:
			summary.Skipped++
		case outcomeRejected:
			summary.Rejected++
		case outcomeErrored:
			summary.Errors++
			if summary.Errors <= maxLoggedErrors {
				p.logger.Error("failed to process row",
					zap.String("query", query),
					zap.String("title", record.Title),
					zap.String("company", record.Company),
					zap.String("site", record.Site),
					zap.Error(err),
				)
			}
		}
	}
}

// processRow carries one record to a terminal outcome. A panic anywhere in
// the row is turned into an error so the remaining rows still run.
func (p *Pipeline) processRow(ctx context.Context, record Record) (result outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = outcomeErrored
			err = fmt.Errorf("panic recovered: %v", r)
		}
	}()

	if record.Rejected() {
		return outcomeRejected, nil
	}

	tag := identity.CanonicalSourceTag(record.Site)
	source := models.ParseSource(tag)
	sourceID := identity.SourceID(tag, record.ExternalID, record.Title, record.Company)

	exists, err := p.store.PostingExists(ctx, source, sourceID)
	if err != nil {
		return outcomeErrored, err
	}
	if exists {
		return outcomeDuplicate, nil
	}

	slug, err := p.postingSlug(ctx, record, sourceID)
	if err != nil {
		return outcomeErrored, err
	}

	companyID, err := p.companies.Resolve(ctx, models.CompanyInfo{
		Name:        record.Company,
		LogoURL:     record.CompanyLogo,
		Website:     record.CompanyWebsite,
		Description: record.CompanyDescription,
		Size:        record.CompanySize,
	})
	if err != nil {
		return outcomeErrored, err
	}

	categoryID, err := p.categoryID(ctx, normalize.ClassifyCategory(record.Title))
	if err != nil {
		return outcomeErrored, err
	}

	posting := p.buildPosting(record, source, sourceID, slug, companyID, categoryID)

	err = p.store.InsertPosting(ctx, posting)
	if models.ConflictOn(err, models.ConstraintPostingSlug) {
		// another batch claimed the slug between the check and the insert
		if posting.Slug, err = p.postingSlug(ctx, record, sourceID); err != nil {
			return outcomeErrored, err
		}
		err = p.store.InsertPosting(ctx, posting)
	}

	switch {
	case models.ConflictOn(err, models.ConstraintPostingSource):
		// a concurrent batch stored the same posting first
		return outcomeDuplicate, nil
	case err != nil:
		return outcomeErrored, err
	}

	return outcomeInserted, nil
}

// postingSlug returns the first free slug among the title-company slug and
// its source id suffixed forms. When all of them are held a random tail is
// appended.
func (p *Pipeline) postingSlug(ctx context.Context, record Record, sourceID string) (string, error) {
	base := identity.PostingSlug(record.Title, record.Company)
	if base == "" {
		base = normalize.Slugify(sourceID)
	}
	if base == "" {
		return randomSlugTail(), nil
	}

	candidates := append([]string{base}, identity.SlugCandidates(base, sourceID)...)
	for _, slug := range candidates {
		taken, err := p.store.SlugTaken(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
	}

	return base + "-" + randomSlugTail(), nil
}

func randomSlugTail() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

func (p *Pipeline) buildPosting(record Record, source models.Source, sourceID, slug, companyID, categoryID string) *models.Posting {
	description := record.Description
	if description == "" {
		description = record.Title
	}

	plain := normalize.Truncate(normalize.PlainText(record.Description), models.MaxPlainTextLen)
	salaryMin, salaryMax := normalize.NormalizeSalary(record.MinAmount, record.MaxAmount, record.Interval)

	return &models.Posting{
		ID:               uuid.NewString(),
		Title:            record.Title,
		Slug:             slug,
		CompanyID:        companyID,
		Description:      normalize.Truncate(description, models.MaxDescriptionLen),
		DescriptionPlain: optional(plain),
		CategoryID:       optional(categoryID),
		JobType:          models.JobTypeFullTime,
		ExperienceLevel:  normalize.ClassifyExperience(record.Title, plain),
		SalaryMin:        salaryMin,
		SalaryMax:        salaryMax,
		SalaryCurrency:   models.CurrencyUSD,
		Location:         models.LocationRemote,
		AsyncFriendly:    normalize.DetectAsyncFriendly(record.Description),
		VisaSponsorship:  normalize.DetectVisaSponsorship(record.Description),
		TechStack:        normalize.ExtractTechStack(record.Description),
		Source:           source,
		SourceID:         sourceID,
		SourceURL:        optional(record.JobURL),
		ApplyURL:         optional(record.ApplyURL()),
		Featured:         false,
		Active:           true,
		DatePosted:       ParseDatePosted(record.DatePosted, p.now()),
	}
}

// categoryID resolves a category slug, consulting the in-process map, then
// the shared cache, then the store. Unknown slugs resolve to "".
func (p *Pipeline) categoryID(ctx context.Context, slug string) (string, error) {
	if id, ok := p.categoryIDs[slug]; ok {
		return id, nil
	}

	if p.cache != nil {
		if id, err := p.cache.GetCategoryID(ctx, slug); err == nil && id != "" {
			p.categoryIDs[slug] = id
			return id, nil
		}
	}

	id, err := p.store.CategoryID(ctx, slug)
	if err != nil {
		return "", err
	}
	if id == "" {
		p.logger.Warn("category not seeded", zap.String("slug", slug))
		p.categoryIDs[slug] = ""
		return "", nil
	}

	p.categoryIDs[slug] = id
	if p.cache != nil {
		if err := p.cache.SetCategoryID(ctx, slug, id); err != nil {
			p.logger.Warn("failed to cache category id",
				zap.String("slug", slug),
				zap.Error(err),
			)
		}
	}

	return id, nil
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
