package resolve

import (
	"cmp"
	"slices"
)

// DefaultMinWordOverlapRatio is the word-overlap cutoff used when a request
// leaves MinWordOverlapRatio unset. A candidate must score strictly above it.
const DefaultMinWordOverlapRatio = 0.5

// AnyWordOverlap is a MinWordOverlapRatio that accepts any candidate sharing
// at least one word with the query, i.e. a threshold of 0.
const AnyWordOverlap = -1.0

// Request describes one resolution call.
type Request[P any] struct {
	// Query is the free-text value to resolve, as supplied by the user.
	Query string

	// Catalog is searched in order. Required and non-empty.
	Catalog *Catalog[P]

	// Aliases is consulted after the exact strategy. Optional.
	Aliases AliasTable

	// Strategies restricts the strategies tried after exact matching.
	// Zero means StrategyAll.
	Strategies Strategy

	// MinWordOverlapRatio is the exclusive lower bound for word-overlap
	// candidates. Zero means DefaultMinWordOverlapRatio; to accept any
	// shared word, set AnyWordOverlap (or any negative value).
	MinWordOverlapRatio float64
}

// Match is the outcome of a successful resolution.
type Match[P any] struct {
	Entry[P]

	// Strategy is the single strategy that produced the match.
	Strategy Strategy

	// Tier is the confidence of Strategy.
	Tier Tier

	// Score orders matches within a tier: 1 for exact and alias,
	// 1/(1+length difference) for containment, the overlap ratio for word
	// overlap.
	Score float64

	// Index is the position of the entry in its catalog.
	Index int
}

func (r Request[P]) strategies() Strategy {
	if r.Strategies == 0 {
		return StrategyAll
	}
	return r.Strategies | StrategyExact
}

func (r Request[P]) minRatio() float64 {
	switch {
	case r.MinWordOverlapRatio < 0:
		return 0
	case r.MinWordOverlapRatio == 0:
		return DefaultMinWordOverlapRatio
	}
	return r.MinWordOverlapRatio
}

// validate returns the normalised query.
func (r Request[P]) validate() (string, error) {
	query := Normalize(r.Query)
	if query == "" {
		return "", &InvalidInputError{Field: "query", Reason: "query is blank"}
	}
	if r.Catalog.Len() == 0 {
		return "", &InvalidInputError{Field: "catalog", Reason: "catalog " + quoteName(r.Catalog.Name()) + " is empty"}
	}
	return query, nil
}

func quoteName(name string) string {
	if name == "" {
		return `""`
	}
	return name
}

// Resolve returns the best catalog entry for req.Query, trying strategies in
// decreasing order of confidence:
//
//  1. exact: the normalised query equals an entry's normalised key;
//  2. alias: the query is in req.Aliases and its target is in the catalog;
//  3. contains: the query contains an entry or an entry contains the query;
//     with several candidates the one whose length is closest to the query's
//     wins;
//  4. word overlap: shared words over the larger word count, strictly above
//     req.MinWordOverlapRatio; the highest ratio wins.
//
// Within a strategy ties go to the entry that comes first in the catalog. The
// first strategy that matches returns. When nothing matches Resolve returns a
// *NotFoundError carrying the raw query and the catalog name; it never falls
// back to a default entry. A blank query or an empty catalog yields an
// *InvalidInputError.
func Resolve[P any](req Request[P]) (Match[P], error) {
	query, err := req.validate()
	if err != nil {
		return Match[P]{}, err
	}

	cat := req.Catalog
	strategies := req.strategies()

	if idx := cat.indexOf(query); idx >= 0 {
		return newMatch(cat, idx, StrategyExact, 1), nil
	}

	if strategies.Has(StrategyAlias) {
		if idx := aliasIndex(cat, req.Aliases, query); idx >= 0 {
			return newMatch(cat, idx, StrategyAlias, 1), nil
		}
	}

	if strategies.Has(StrategyContains) {
		if idx, score := bestContainment(cat, query); idx >= 0 {
			return newMatch(cat, idx, StrategyContains, score), nil
		}
	}

	if strategies.Has(StrategyWordOverlap) {
		if idx, ratio := bestWordOverlap(cat, query, req.minRatio()); idx >= 0 {
			return newMatch(cat, idx, StrategyWordOverlap, ratio), nil
		}
	}

	return Match[P]{}, &NotFoundError{Query: req.Query, Catalog: cat.Name()}
}

// Candidates returns every entry that an enabled strategy accepts for
// req.Query, each scored with the most trusted strategy that accepts it.
// Results are ordered by tier, then score (descending), then catalog order.
// The first element, if any, is what [Resolve] returns. No match yields an
// empty slice and a nil error.
func Candidates[P any](req Request[P]) ([]Match[P], error) {
	query, err := req.validate()
	if err != nil {
		return nil, err
	}

	cat := req.Catalog
	strategies := req.strategies()
	queryWords := words(query)
	queryLen := runeLen(query)
	minRatio := req.minRatio()

	aliasIdx := -1
	if strategies.Has(StrategyAlias) {
		aliasIdx = aliasIndex(cat, req.Aliases, query)
	}

	var out []Match[P]
	for i, n := range cat.normalized {
		switch {
		case n == query:
			out = append(out, newMatch(cat, i, StrategyExact, 1))
		case i == aliasIdx:
			out = append(out, newMatch(cat, i, StrategyAlias, 1))
		case strategies.Has(StrategyContains) && n != "" && contains(n, query):
			out = append(out, newMatch(cat, i, StrategyContains, containmentScore(queryLen, runeLen(n))))
		case strategies.Has(StrategyWordOverlap):
			if ratio := overlapRatio(queryWords, cat.words[i]); ratio > minRatio {
				out = append(out, newMatch(cat, i, StrategyWordOverlap, ratio))
			}
		}
	}

	slices.SortStableFunc(out, func(a, b Match[P]) int {
		if c := cmp.Compare(a.Tier, b.Tier); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	return out, nil
}

func newMatch[P any](cat *Catalog[P], idx int, strategy Strategy, score float64) Match[P] {
	return Match[P]{
		Entry:    cat.entries[idx],
		Strategy: strategy,
		Tier:     strategy.Tier(),
		Score:    score,
		Index:    idx,
	}
}

// aliasIndex returns the catalog index of the alias target for query, or -1.
// Targets missing from the catalog count as a miss.
func aliasIndex[P any](cat *Catalog[P], aliases AliasTable, query string) int {
	canonical, ok := aliases.lookupNormalized(query)
	if !ok {
		return -1
	}
	return cat.indexOf(Normalize(canonical))
}
