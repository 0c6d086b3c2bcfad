package models

import "errors"

// ErrConflict is returned by storage when a unique constraint rejects a write.
var ErrConflict = errors.New("unique constraint violation")

// Unique constraints callers tell apart.
const (
	ConstraintCompanySlug       = "companies_slug_key"
	ConstraintPostingSlug       = "jobs_slug_key"
	ConstraintPostingSource     = "jobs_source_source_id_key"
	ConstraintSnapshotDimension = "market_snapshots_dimension_key"
)

// ConflictError names the constraint behind an ErrConflict.
type ConflictError struct {
	Constraint string
}

func (e *ConflictError) Error() string {
	return ErrConflict.Error() + ": " + e.Constraint
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ConflictOn reports whether err is a unique violation of constraint.
func ConflictOn(err error, constraint string) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict) && conflict.Constraint == constraint
}

type Company struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Slug         string  `db:"slug"`
	LogoURL      *string `db:"logo_url"`
	Website      *string `db:"website"`
	Description  *string `db:"description"`
	Size         *string `db:"size"`
	RemotePolicy string  `db:"remote_policy"`
}

// CompanyInfo is what a posting tells us about its employer.
type CompanyInfo struct {
	Name        string
	LogoURL     string
	Website     string
	Description string
	Size        string
}

type Category struct {
	ID       string `db:"id"`
	Slug     string `db:"slug"`
	JobCount int    `db:"job_count"`
}
