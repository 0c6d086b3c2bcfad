package models

import (
	"time"

	"github.com/lib/pq"
)

type SalaryBenchmark struct {
	ID              string         `db:"id"`
	RoleCategory    string         `db:"role_category"`
	NormalizedTitle string         `db:"normalized_title"`
	ExperienceLevel Experience     `db:"experience_level"`
	SampleSize      int            `db:"sample_size"`
	P25Salary       int            `db:"p25_salary"`
	P50Salary       int            `db:"p50_salary"`
	P75Salary       int            `db:"p75_salary"`
	AvgSalary       int            `db:"avg_salary"`
	MinSalary       int            `db:"min_salary"`
	MaxSalary       int            `db:"max_salary"`
	TopCompanies    pq.StringArray `db:"top_companies"`
	TopTech         pq.StringArray `db:"top_tech"`
}

// MarketSnapshot is one dimension row of a daily snapshot. Exactly one of
// CategorySlug, TechSkill and ExperienceLevel is set.
type MarketSnapshot struct {
	ID              string      `db:"id"`
	SnapshotDate    time.Time   `db:"snapshot_date"`
	CategorySlug    *string     `db:"category_slug"`
	TechSkill       *string     `db:"tech_skill"`
	ExperienceLevel *Experience `db:"experience_level"`
	JobCount        int         `db:"job_count"`
	AvgSalaryMin    *int        `db:"avg_salary_min"`
	AvgSalaryMax    *int        `db:"avg_salary_max"`
	MedianSalary    *int        `db:"median_salary"`
}

// PostingSalary is the salary projection used for snapshot rows.
type PostingSalary struct {
	SalaryMin *int `db:"salary_min"`
	SalaryMax *int `db:"salary_max"`
}
