package models

import "strings"

type Source string

const (
	SourceIndeed       Source = "indeed"
	SourceLinkedIn     Source = "linkedin"
	SourceGlassdoor    Source = "glassdoor"
	SourceZipRecruiter Source = "ziprecruiter"
	SourceManual       Source = "manual"
)

// ParseSource maps a raw site tag to a known source, falling back to manual.
func ParseSource(tag string) Source {
	switch s := Source(strings.ToLower(strings.TrimSpace(tag))); s {
	case SourceIndeed, SourceLinkedIn, SourceGlassdoor, SourceZipRecruiter:
		return s
	}
	return SourceManual
}

type Experience string

const (
	ExperienceJunior    Experience = "junior"
	ExperienceMid       Experience = "mid"
	ExperienceSenior    Experience = "senior"
	ExperienceLead      Experience = "lead"
	ExperienceExecutive Experience = "executive"
)

// ExperienceLevels lists every level in seniority order.
func ExperienceLevels() []Experience {
	return []Experience{
		ExperienceJunior,
		ExperienceMid,
		ExperienceSenior,
		ExperienceLead,
		ExperienceExecutive,
	}
}

const (
	CategoryEngineering = "engineering"
	CategoryDesign      = "design"
	CategoryMarketing   = "marketing"
	CategoryProduct     = "product"
	CategorySupport     = "support"
	CategoryWriting     = "writing"
	CategoryData        = "data"
	CategoryEducation   = "education"
)
