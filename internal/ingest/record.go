package ingest

import (
	"strconv"
	"strings"
	"time"

	"remote-jobs-pipeline/internal/api/jobspy"
)

// unknownCompany is what a row without an employer is labelled; such rows
// are rejected.
const unknownCompany = "Unknown"

// Record is a scraped row after coercion. Missing values are empty strings.
type Record struct {
	Title              string
	Company            string
	Site               string
	ExternalID         string
	Description        string
	MinAmount          string
	MaxAmount          string
	Interval           string
	DatePosted         string
	JobURL             string
	JobURLDirect       string
	CompanyLogo        string
	CompanyWebsite     string
	CompanyDescription string
	CompanySize        string
}

// RecordFromJob coerces a scraped row. This is the only place upstream
// placeholders are interpreted.
func RecordFromJob(job jobspy.Job) Record {
	return Record{
		Title:              job.Title.Or(""),
		Company:            job.Company.Or(unknownCompany),
		Site:               job.Site.Or(""),
		ExternalID:         job.ID.Or(""),
		Description:        job.Description.Or(""),
		MinAmount:          job.MinAmount.Or(""),
		MaxAmount:          job.MaxAmount.Or(""),
		Interval:           job.Interval.Or(""),
		DatePosted:         job.DatePosted.Or(""),
		JobURL:             job.JobURL.Or(""),
		JobURLDirect:       job.JobURLDirect.Or(""),
		CompanyLogo:        job.CompanyLogo.Or(""),
		CompanyWebsite:     job.CompanyURL.Or(""),
		CompanyDescription: job.CompanyDescription.Or(""),
		CompanySize:        job.CompanyNumEmployees.Or(""),
	}
}

// Rejected reports rows that cannot become a posting at all.
func (r Record) Rejected() bool {
	return r.Title == "" || r.Company == "" || r.Company == unknownCompany
}

// ApplyURL prefers the employer's direct link over the board's.
func (r Record) ApplyURL() string {
	if r.JobURLDirect != "" {
		return r.JobURLDirect
	}
	return r.JobURL
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Integer dates must land after 2001-09-09 to count as epoch values.
const (
	minEpochSeconds = 1e9
	minEpochMillis  = 1e11
)

// ParseDatePosted reads the upstream posting date, which arrives as an ISO
// date, a datetime or epoch milliseconds. Integers below minEpochSeconds are
// not timestamps (a compact "20260220" for one). Anything else falls back to now.
func ParseDatePosted(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n >= minEpochSeconds {
		if n >= minEpochMillis {
			return time.UnixMilli(n).UTC()
		}
		return time.Unix(n, 0).UTC()
	}

	return now
}
