package dataset

// FilterSelection is the user's current filter state. Empty string / TypeAny
// fields are inactive.
//
// Invariant: when Neighborhood is set it belongs to the neighborhood facet
// derived from City; the session clears it otherwise.
type FilterSelection struct {
	City         string    `json:"city"`
	Neighborhood string    `json:"neighborhood"`
	Type         SpaceType `json:"type"`
}

// IsZero reports whether no filter is active.
func (sel FilterSelection) IsZero() bool {
	return sel.City == "" && sel.Neighborhood == "" && sel.Type == TypeAny
}

// ApplyFilters returns the features passing the selection's predicates, in
// their original relative order (stable filter, not a sort).
//
// City and neighborhood compare trimmed and case-folded. A feature missing
// a property reads as "", which satisfies no non-empty filter value, so the
// feature is excluded whenever that filter is active. The type filter
// matches the feature's derived class exactly.
func ApplyFilters(features []Feature, sel FilterSelection) []Feature {
	if sel.IsZero() {
		return features
	}

	city := Fold(sel.City)
	neighborhood := Fold(sel.Neighborhood)

	out := make([]Feature, 0, len(features))
	for _, f := range features {
		if city != "" && Fold(f.City()) != city {
			continue
		}
		if neighborhood != "" && Fold(f.Neighborhood()) != neighborhood {
			continue
		}
		if sel.Type != TypeAny && f.Class() != sel.Type {
			continue
		}
		out = append(out, f)
	}
	return out
}
