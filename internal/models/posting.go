package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	JobTypeFullTime      = "full_time"
	CurrencyUSD          = "USD"
	LocationRemote       = "Remote"
	MaxDescriptionLen    = 50000
	MaxPlainTextLen      = 5000
	MaxCompanyDescLen    = 1000
	MaxTechStackTags     = 10
	MaxPostingSlugLength = 80
)

// Posting is a normalized job listing as stored in the jobs table.
type Posting struct {
	ID               string         `db:"id"`
	Title            string         `db:"title"`
	Slug             string         `db:"slug"`
	CompanyID        string         `db:"company_id"`
	Description      string         `db:"description"`
	DescriptionPlain *string        `db:"description_plain"`
	CategoryID       *string        `db:"category_id"`
	JobType          string         `db:"job_type"`
	ExperienceLevel  Experience     `db:"experience_level"`
	SalaryMin        *int           `db:"salary_min"`
	SalaryMax        *int           `db:"salary_max"`
	SalaryCurrency   string         `db:"salary_currency"`
	Location         string         `db:"location_requirements"`
	AsyncFriendly    bool           `db:"is_async_friendly"`
	VisaSponsorship  bool           `db:"visa_sponsorship"`
	TechStack        pq.StringArray `db:"tech_stack"`
	Source           Source         `db:"source"`
	SourceID         string         `db:"source_id"`
	SourceURL        *string        `db:"source_url"`
	ApplyURL         *string        `db:"apply_url"`
	Featured         bool           `db:"is_featured"`
	Active           bool           `db:"is_active"`
	DatePosted       time.Time      `db:"date_posted"`
}

// SalariedPosting is the projection the aggregation jobs read.
type SalariedPosting struct {
	Title           string         `db:"title"`
	ExperienceLevel Experience     `db:"experience_level"`
	SalaryMin       *int           `db:"salary_min"`
	SalaryMax       *int           `db:"salary_max"`
	CompanyID       string         `db:"company_id"`
	TechStack       pq.StringArray `db:"tech_stack"`
}

// Midpoint returns the representative salary of a posting with both bounds.
func (p SalariedPosting) Midpoint() (int, bool) {
	if p.SalaryMin == nil || p.SalaryMax == nil {
		return 0, false
	}
	return (*p.SalaryMin + *p.SalaryMax) / 2, true
}

// PostingFilter selects active postings along one snapshot dimension.
// At most one field is expected to be set.
type PostingFilter struct {
	CategoryID      string
	TechSkill       string
	ExperienceLevel Experience
}
