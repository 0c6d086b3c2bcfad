package normalize

import "remote-jobs-pipeline/internal/models"

// experiencePrefixLen bounds how much description feeds experience detection.
const experiencePrefixLen = 500

// Checked in priority order: more specific categories first, so that e.g.
// "data product manager" lands in data rather than product.
var categoryRules = []Rule[string]{
	{models.CategoryData, ContainsAny(
		"data engineer", "data scientist", "data analyst", "data product", "data platform",
		"machine learning", "ml engineer", "ai engineer", "analytics engineer",
		"bi analyst", "business intelligence",
	)},
	{models.CategoryProduct, ContainsAny(
		"product manager", "product owner", "product lead", "product director", "program manager",
	)},
	{models.CategoryEducation, ContainsAny(
		"teacher", "tutor", "instructor", "professor", "curriculum", "teaching", "academic",
	)},
	{models.CategoryWriting, ContainsAny(
		"writer", "copywriter", "technical writer", "content strategist", "content manager", "editor",
	)},
	{models.CategorySupport, ContainsAny(
		"customer support", "customer success", "account manager", "customer service", "helpdesk", "help desk",
	)},
	{models.CategoryDesign, ContainsAny(
		"designer", "ux ", "ui ", "creative director", "illustrator", "design lead", "art director",
	)},
	{models.CategoryMarketing, ContainsAny(
		"marketing", " seo", "growth", "social media", "brand manager", "demand gen", "paid media",
	)},
	{models.CategoryEngineering, ContainsAny(
		"engineer", "developer", "devops", "sre", "architect", "programmer", "cto", "sysadmin", "qa ",
	)},
}

var experienceRules = []Rule[models.Experience]{
	{models.ExperienceJunior, ContainsAny("junior", "entry level", "associate", "intern", "jr", "early career")},
	{models.ExperienceMid, ContainsAny("mid", "intermediate")},
	{models.ExperienceSenior, ContainsAny("senior", "sr", "staff", "principal")},
	{models.ExperienceLead, ContainsAny("lead", "manager", "head of", "director", "vp")},
	{models.ExperienceExecutive, ContainsAny("cto", "ceo", "cfo", "coo", "c-level", "executive", "chief")},
}

var roleRules = []Rule[string]{
	{"software engineer", MatchesAny(`software engineer`, `software developer`, `swe\b`)},
	{"frontend engineer", MatchesAny(`frontend`, `front-end`, `front end`, `react developer`, `react engineer`)},
	{"backend engineer", MatchesAny(`backend`, `back-end`, `back end`)},
	{"full stack engineer", MatchesAny(`full.?stack`, `fullstack`)},
	{"devops engineer", MatchesAny(`devops`, `dev ops`, `site reliability`, `sre\b`, `platform engineer`)},
	{"data scientist", MatchesAny(`data scientist`)},
	{"data engineer", MatchesAny(`data engineer`)},
	{"data analyst", MatchesAny(`data analyst`, `business analyst`, `bi analyst`)},
	{"machine learning engineer", MatchesAny(`machine learning`, `ml engineer`, `ai engineer`)},
	{"product manager", MatchesAny(`product manager`, `product owner`)},
	{"product designer", MatchesAny(`product designer`)},
	{"ux designer", MatchesAny(`ux designer`, `ux researcher`, `user experience`)},
	{"ui designer", MatchesAny(`ui designer`, `visual designer`)},
	{"marketing manager", MatchesAny(`marketing manager`, `growth manager`, `head of marketing`)},
	{"content writer", MatchesAny(`content writer`, `copywriter`, `technical writer`)},
	{"customer success", MatchesAny(`customer success`, `customer support`, `account manager`)},
	{"engineering manager", MatchesAny(`engineering manager`, `eng manager`, `tech lead`)},
	{"cloud engineer", MatchesAny(`cloud engineer`, `aws engineer`, `gcp engineer`, `azure engineer`)},
	{"qa engineer", MatchesAny(`qa engineer`, `quality assurance`, `test engineer`, `sdet`)},
	{"security engineer", MatchesAny(`security engineer`, `infosec`, `cybersecurity`)},
}

// roleCategoryRules assign a benchmark's category from its normalized title.
var roleCategoryRules = []Rule[string]{
	{models.CategoryData, ContainsAny("data", "machine learning", "ml", "ai")},
	{models.CategoryDesign, ContainsAny("designer", "ux", "ui")},
	{models.CategoryProduct, ContainsAny("product manager", "product owner")},
	{models.CategoryMarketing, ContainsAny("marketing")},
	{models.CategoryWriting, ContainsAny("writer", "content")},
	{models.CategorySupport, ContainsAny("customer")},
}

// NormalizeTitle maps a posting title to a canonical role name.
func NormalizeTitle(title string) (string, bool) {
	return FirstMatch(roleRules, title)
}

// ClassifyCategory maps a posting title to a category slug, defaulting to engineering.
func ClassifyCategory(title string) string {
	if cat, ok := FirstMatch(categoryRules, title); ok {
		return cat
	}
	return models.CategoryEngineering
}

// ClassifyExperience looks at the title plus the start of the description.
func ClassifyExperience(title, description string) models.Experience {
	level, ok := FirstMatch(experienceRules, title+" "+Truncate(description, experiencePrefixLen))
	if !ok {
		return models.ExperienceMid
	}
	return level
}

// RoleCategory maps a normalized role name to its category slug.
func RoleCategory(normalizedTitle string) string {
	if cat, ok := FirstMatch(roleCategoryRules, normalizedTitle); ok {
		return cat
	}
	return models.CategoryEngineering
}
