// Package normalize turns noisy job-board text into canonical values.
// Everything here is pure; nothing touches the network or the store.
package normalize

import (
	"regexp"
	"strings"
)

// Rule pairs a label with a predicate over lowercased text.
type Rule[L any] struct {
	Label L
	Match func(lower string) bool
}

// FirstMatch evaluates rules in order and returns the label of the first
// rule whose predicate accepts text. Text is lowercased once up front.
func FirstMatch[L any](rules []Rule[L], text string) (L, bool) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.Match(lower) {
			return r.Label, true
		}
	}
	var zero L
	return zero, false
}

// ContainsAny matches when any keyword is a substring of the input.
func ContainsAny(keywords ...string) func(string) bool {
	return func(lower string) bool {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}
}

// MatchesAny matches when any pattern finds a match in the input.
func MatchesAny(patterns ...string) func(string) bool {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return func(lower string) bool {
		for _, re := range compiled {
			if re.MatchString(lower) {
				return true
			}
		}
		return false
	}
}
