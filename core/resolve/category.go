package resolve

import "sort"

// SynonymSets maps canonical category values ("sports", "music") onto the
// free-text terms accepted for them ("nrl", "afl", "football", ...). They are
// meant for category-style fields only; free-form names go through [Resolve].
// The zero value holds no categories.
type SynonymSets struct {
	sets  map[string]map[string]struct{}
	names map[string]string // normalised category -> raw category
	order []string          // normalised categories, sorted
}

// NewSynonymSets builds synonym sets from category -> synonyms. Categories and
// synonyms are stored normalised.
func NewSynonymSets(categories map[string][]string) SynonymSets {
	s := SynonymSets{
		sets:  make(map[string]map[string]struct{}, len(categories)),
		names: make(map[string]string, len(categories)),
	}
	for category, synonyms := range categories {
		key := Normalize(category)
		if key == "" {
			continue
		}
		set, ok := s.sets[key]
		if !ok {
			set = make(map[string]struct{}, len(synonyms))
			s.sets[key] = set
			s.names[key] = category
			s.order = append(s.order, key)
		}
		for _, syn := range synonyms {
			if n := Normalize(syn); n != "" {
				set[n] = struct{}{}
			}
		}
	}
	sort.Strings(s.order)
	return s
}

// Categories returns the raw category names in sorted order.
func (s SynonymSets) Categories() []string {
	out := make([]string, len(s.order))
	for i, key := range s.order {
		out[i] = s.names[key]
	}
	return out
}

// Contains reports whether term is the category itself or one of its
// synonyms.
func (s SynonymSets) Contains(category, term string) bool {
	return s.containsNormalized(Normalize(category), Normalize(term))
}

func (s SynonymSets) containsNormalized(category, term string) bool {
	if category == "" || term == "" {
		return false
	}
	if term == category {
		return true
	}
	_, ok := s.sets[category][term]
	return ok
}

// CategoryOf returns the first category, in sorted order, that accepts term.
func (s SynonymSets) CategoryOf(term string) (string, bool) {
	n := Normalize(term)
	for _, key := range s.order {
		if s.containsNormalized(key, n) {
			return s.names[key], true
		}
	}
	return "", false
}

// ResolveCategory reports whether any of terms selects target: a term matches
// when it is one of target's synonyms or is the category name itself. This is
// a membership test, not a ranking.
//
//	sets := NewSynonymSets(map[string][]string{"sports": {"nrl", "afl", "football"}})
//	ResolveCategory([]string{"nrl"}, "sports", sets)   // true
//	ResolveCategory([]string{"chess"}, "sports", sets) // false
func ResolveCategory(terms []string, target string, sets SynonymSets) bool {
	_, ok := MatchCategory(terms, target, sets)
	return ok
}

// MatchCategory is [ResolveCategory] returning the first term that matched.
func MatchCategory(terms []string, target string, sets SynonymSets) (string, bool) {
	category := Normalize(target)
	for _, term := range terms {
		if sets.containsNormalized(category, Normalize(term)) {
			return term, true
		}
	}
	return "", false
}
