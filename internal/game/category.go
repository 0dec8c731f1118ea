package game

import (
	"sort"
	"strings"

	"github.com/schollz/closestmatch"
)

// knownCategories is the sorted, de-duplicated set of pool categories.
var knownCategories = func() []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range mysteryPool {
		if !seen[m.Category] {
			seen[m.Category] = true
			out = append(out, m.Category)
		}
	}
	sort.Strings(out)
	return out
}()

var categoryByLower = func() map[string]string {
	out := make(map[string]string, len(knownCategories))
	for _, c := range knownCategories {
		out[strings.ToLower(c)] = c
	}
	return out
}()

var categoryMatcher = func() *closestmatch.ClosestMatch {
	keys := make([]string, 0, len(categoryByLower))
	for k := range categoryByLower {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return closestmatch.New(keys, []int{2, 3})
}()

// Categories returns the categories used by the daily pool.
func Categories() []string {
	return append([]string(nil), knownCategories...)
}

// MatchCategory maps a free-text category from a submission onto the closest
// pool category. It returns "" when nothing shares enough substrings. The
// result is display metadata only and never replaces what the user typed.
func MatchCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return ""
	}
	lower := strings.ToLower(category)
	if known, ok := categoryByLower[lower]; ok {
		return known
	}
	return categoryByLower[categoryMatcher.Closest(lower)]
}
