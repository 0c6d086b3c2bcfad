package aggregate

import (
	"remote-jobs-pipeline/internal/models"
)

// MinTechSampleSize is the number of postings a tech skill needs to get a
// snapshot row.
const MinTechSampleSize = 3

// SummarizeSalaries computes the salary columns of a snapshot row.
func SummarizeSalaries(salaries []models.PostingSalary) (avgMin, avgMax, median *int) {
	var mins, maxs, midpoints []int

	for _, s := range salaries {
		if s.SalaryMin != nil && *s.SalaryMin != 0 {
			mins = append(mins, *s.SalaryMin)
		}
		if s.SalaryMax != nil && *s.SalaryMax != 0 {
			maxs = append(maxs, *s.SalaryMax)
		}
		if s.SalaryMin != nil && s.SalaryMax != nil && *s.SalaryMin != 0 && *s.SalaryMax != 0 {
			midpoints = append(midpoints, (*s.SalaryMin+*s.SalaryMax)/2)
		}
	}

	if len(mins) > 0 {
		v := Mean(mins)
		avgMin = &v
	}
	if len(maxs) > 0 {
		v := Mean(maxs)
		avgMax = &v
	}
	if len(midpoints) > 0 {
		v := Median(midpoints)
		median = &v
	}

	return avgMin, avgMax, median
}
