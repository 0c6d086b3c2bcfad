package normalize

import (
	"math"
	"strconv"
	"strings"
)

const (
	hoursPerYear  = 2080
	monthsPerYear = 12
	MinSaneSalary = 10000
	MaxSaneSalary = 1000000
)

// NormalizeSalary annualizes a raw salary range. Empty amounts are absent;
// a non-numeric amount discards the whole range. Each bound is then range
// checked on its own, so an implausible min does not drop a plausible max.
func NormalizeSalary(minRaw, maxRaw, interval string) (min, max *int) {
	minVal, minOK, err := parseAmount(minRaw)
	if err != nil {
		return nil, nil
	}
	maxVal, maxOK, err := parseAmount(maxRaw)
	if err != nil {
		return nil, nil
	}

	multiplier := salaryMultiplier(interval)

	if minOK {
		min = annualize(minVal, multiplier)
	}
	if maxOK {
		max = annualize(maxVal, multiplier)
	}
	return min, max
}

func salaryMultiplier(interval string) float64 {
	lower := strings.ToLower(interval)
	switch {
	case strings.Contains(lower, "hour"):
		return hoursPerYear
	case strings.Contains(lower, "month"):
		return monthsPerYear
	default:
		return 1
	}
}

func parseAmount(raw string) (float64, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, strconv.ErrSyntax
	}
	return v, v != 0, nil
}

func annualize(v, multiplier float64) *int {
	annual := int(v * multiplier)
	if annual < MinSaneSalary || annual > MaxSaneSalary {
		return nil
	}
	return &annual
}
