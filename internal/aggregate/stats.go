package aggregate

import "sort"

// Percentile returns the p-th percentile (0-100) of values using linear
// interpolation between closest ranks, truncated to an int. Empty input
// yields 0.
func Percentile(values []int, p float64) int {
	if len(values) == 0 {
		return 0
	}

	sorted := sortedCopy(values)
	k := float64(len(sorted)-1) * p / 100
	f := int(k)
	c := f + 1
	if c >= len(sorted) {
		return sorted[f]
	}

	return int(float64(sorted[f]) + (k-float64(f))*float64(sorted[c]-sorted[f]))
}

// Mean is the truncated arithmetic mean. Callers guarantee non-empty input.
func Mean(values []int) int {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(float64(sum) / float64(len(values)))
}

// Median of values; an even count averages the middle pair and truncates.
func Median(values []int) int {
	sorted := sortedCopy(values)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return int(float64(sorted[mid-1]+sorted[mid]) / 2)
}

func minMax(values []int) (int, int) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func sortedCopy(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	sort.Ints(out)
	return out
}

// topByFrequency ranks items by count, keeping first-seen order among ties.
func topByFrequency(items []string, n int) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, it := range items {
		if it == "" {
			continue
		}
		if counts[it] == 0 {
			order = append(order, it)
		}
		counts[it]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}
