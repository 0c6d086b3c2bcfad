package aggregate

import (
	"remote-jobs-pipeline/internal/models"
	"remote-jobs-pipeline/internal/normalize"
)

const (
	// MinSampleSize is the smallest group a benchmark is published for.
	MinSampleSize = 3
	topN          = 5
)

type groupKey struct {
	title      string
	experience models.Experience
}

// BuildBenchmarks groups salaried postings by normalized title and
// experience level and summarizes every group of at least MinSampleSize.
// TopCompanies holds company ids; the caller maps them to names.
func BuildBenchmarks(postings []models.SalariedPosting) []models.SalaryBenchmark {
	groups := make(map[groupKey][]models.SalariedPosting)
	var order []groupKey

	for _, p := range postings {
		title, ok := normalize.NormalizeTitle(p.Title)
		if !ok {
			continue
		}
		if _, ok := p.Midpoint(); !ok {
			continue
		}
		exp := p.ExperienceLevel
		if exp == "" {
			exp = models.ExperienceMid
		}

		key := groupKey{title: title, experience: exp}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], p)
	}

	benchmarks := make([]models.SalaryBenchmark, 0, len(order))
	for _, key := range order {
		members := groups[key]
		if len(members) < MinSampleSize {
			continue
		}
		benchmarks = append(benchmarks, summarize(key, members))
	}

	return benchmarks
}

func summarize(key groupKey, members []models.SalariedPosting) models.SalaryBenchmark {
	midpoints := make([]int, 0, len(members))
	companies := make([]string, 0, len(members))
	var tech []string

	for _, m := range members {
		mid, _ := m.Midpoint()
		midpoints = append(midpoints, mid)
		companies = append(companies, m.CompanyID)
		tech = append(tech, m.TechStack...)
	}

	lo, hi := minMax(midpoints)

	return models.SalaryBenchmark{
		RoleCategory:    normalize.RoleCategory(key.title),
		NormalizedTitle: key.title,
		ExperienceLevel: key.experience,
		SampleSize:      len(members),
		P25Salary:       Percentile(midpoints, 25),
		P50Salary:       Percentile(midpoints, 50),
		P75Salary:       Percentile(midpoints, 75),
		AvgSalary:       Mean(midpoints),
		MinSalary:       lo,
		MaxSalary:       hi,
		TopCompanies:    topByFrequency(companies, topN),
		TopTech:         topByFrequency(tech, topN),
	}
}
