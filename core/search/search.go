// Package search holds the predicate helpers shared by every catalog listing.
// All listings AND together a free-text predicate and a set of facet predicates;
// a facet set to "all" (or left empty) is no predicate at all.
package search

import (
	"sort"
	"strings"
)

// All is the facet value meaning "do not filter on this facet".
const All = "all"

// IsAll reports whether a facet selection is equivalent to omitting the facet.
func IsAll(selected string) bool {
	s := strings.TrimSpace(selected)
	return s == "" || strings.EqualFold(s, All)
}

// ContainsFold is a case-insensitive substring test. An empty needle matches everything.
func ContainsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// AnyContainsFold reports whether one of values contains needle (case-insensitive).
func AnyContainsFold(values []string, needle string) bool {
	if needle == "" {
		return true
	}
	for _, v := range values {
		if ContainsFold(v, needle) {
			return true
		}
	}
	return false
}

// EqualFacet is the equality predicate of a single-valued facet.
func EqualFacet(selected, value string) bool {
	return IsAll(selected) || strings.TrimSpace(selected) == value
}

// IncludesFacet is the inclusion predicate of a multi-valued facet.
func IncludesFacet(selected string, values []string) bool {
	if IsAll(selected) {
		return true
	}
	selected = strings.TrimSpace(selected)
	for _, v := range values {
		if v == selected {
			return true
		}
	}
	return false
}

// Unique returns the distinct non-empty values in first-seen order, or sorted.
func Unique(values []string, sorted bool) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if sorted {
		sort.Strings(out)
	}
	return out
}
