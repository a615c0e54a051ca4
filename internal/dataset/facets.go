package dataset

import (
	"sort"
)

// CitiesOf returns the sorted set of distinct non-empty city values across
// the features, sorted lexicographically on the raw string.
func CitiesOf(features []Feature) []string {
	return facet(features, func(f Feature) string { return f.City() })
}

// NeighborhoodsOf returns the sorted set of distinct non-empty neighborhood
// values among features whose case-folded, trimmed city equals cityFilter.
// An empty cityFilter considers all features.
func NeighborhoodsOf(features []Feature, cityFilter string) []string {
	city := Fold(cityFilter)
	return facet(features, func(f Feature) string {
		if city != "" && Fold(f.City()) != city {
			return ""
		}
		return f.Neighborhood()
	})
}

// ContainsFold reports whether values contains want under case-insensitive,
// trimmed comparison. Used by the session's neighborhood consistency rule.
func ContainsFold(values []string, want string) bool {
	folded := Fold(want)
	for _, v := range values {
		if Fold(v) == folded {
			return true
		}
	}
	return false
}

func facet(features []Feature, value func(Feature) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, f := range features {
		v := value(f)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
