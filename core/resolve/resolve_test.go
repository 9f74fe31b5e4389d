package resolve

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"
)

func keyCatalog(keys ...string) *Catalog[struct{}] {
	return NewKeyCatalog("test", keys...)
}

func mustResolve[P any](t *testing.T, req Request[P]) Match[P] {
	t.Helper()
	m, err := Resolve(req)
	if err != nil {
		t.Fatalf("Resolve(%q) unexpected error: %v", req.Query, err)
	}
	return m
}

func TestResolve_ExactMatch(t *testing.T) {
	m := mustResolve(t, Request[struct{}]{
		Query:   "  new YORK ",
		Catalog: keyCatalog("London", "New York", "Paris"),
	})

	if m.Key != "New York" {
		t.Errorf("expected New York, got %q", m.Key)
	}
	if m.Tier != TierExact || m.Strategy != StrategyExact {
		t.Errorf("expected exact tier, got %s via %s", m.Tier, m.Strategy)
	}
	if m.Index != 1 {
		t.Errorf("expected index 1, got %d", m.Index)
	}
}

// TestResolve_ExactBeatsContainment verifies that an exact hit wins even when
// an earlier entry would also match by containment.
func TestResolve_ExactBeatsContainment(t *testing.T) {
	m := mustResolve(t, Request[struct{}]{
		Query:   "New York",
		Catalog: keyCatalog("New York City", "New York"),
	})
	if m.Key != "New York" || m.Tier != TierExact {
		t.Errorf("expected exact New York, got %q (%s)", m.Key, m.Tier)
	}
}

func TestResolve_PayloadReturned(t *testing.T) {
	type city struct{ Country string }
	cat := NewCatalog("cities", []Entry[city]{
		{Key: "Sydney", Payload: city{Country: "Australia"}},
		{Key: "Paris", Payload: city{Country: "France"}},
	})

	m := mustResolve(t, Request[city]{Query: "paris", Catalog: cat})
	if m.Payload.Country != "France" {
		t.Errorf("expected France payload, got %+v", m.Payload)
	}
}

// TestResolve_AliasShortCircuit verifies that an alias hit wins over a
// containment match on an unrelated entry.
func TestResolve_AliasShortCircuit(t *testing.T) {
	cat := keyCatalog("Big Apple Bakery", "New York")
	aliases := NewAliasTable(map[string]string{"big apple": "New York"})

	m := mustResolve(t, Request[struct{}]{Query: "Big Apple", Catalog: cat, Aliases: aliases})
	if m.Key != "New York" || m.Tier != TierAlias {
		t.Errorf("expected alias New York, got %q (%s)", m.Key, m.Tier)
	}

	// Without the alias table the same query falls through to containment.
	m = mustResolve(t, Request[struct{}]{Query: "Big Apple", Catalog: cat})
	if m.Key != "Big Apple Bakery" || m.Tier != TierContains {
		t.Errorf("expected contains Big Apple Bakery, got %q (%s)", m.Key, m.Tier)
	}
}

func TestResolve_AliasIsNormalized(t *testing.T) {
	cat := keyCatalog("New York", "Los Angeles")
	aliases := NewAliasTable(map[string]string{"NYC": "new york", "L.A.": "Los Angeles"})

	for query, want := range map[string]string{"nyc": "New York", "N.Y.C.": "New York", "la": "Los Angeles"} {
		m := mustResolve(t, Request[struct{}]{Query: query, Catalog: cat, Aliases: aliases})
		if m.Key != want || m.Tier != TierAlias {
			t.Errorf("query %q: expected alias %q, got %q (%s)", query, want, m.Key, m.Tier)
		}
	}
}

// TestResolve_AliasTargetMissing verifies that an alias pointing outside the
// catalog is treated as a miss rather than an error.
func TestResolve_AliasTargetMissing(t *testing.T) {
	_, err := Resolve(Request[struct{}]{
		Query:   "gotham",
		Catalog: keyCatalog("New York"),
		Aliases: NewAliasTable(map[string]string{"gotham": "Gotham City"}),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// TestResolve_BidirectionalContainment covers both containment directions.
func TestResolve_BidirectionalContainment(t *testing.T) {
	cat := keyCatalog("Paradise", "Paradise Hotel")

	tests := []struct {
		name     string
		query    string
		expected string
		tier     Tier
	}{
		{"exact path fires first", "Paradise Hotel", "Paradise Hotel", TierExact},
		{"query inside entry", "hotel", "Paradise Hotel", TierContains},
		{"entry inside query", "Paradise Falls", "Paradise", TierContains},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := mustResolve(t, Request[struct{}]{Query: tc.query, Catalog: cat})
			if m.Key != tc.expected || m.Tier != tc.tier {
				t.Errorf("expected %q (%s), got %q (%s)", tc.expected, tc.tier, m.Key, m.Tier)
			}
		})
	}
}

func TestResolve_ContainmentPrefersClosestLength(t *testing.T) {
	m := mustResolve(t, Request[struct{}]{
		Query:   "spring",
		Catalog: keyCatalog("Springfield Park", "Springfield", "Springfield Hall"),
	})
	if m.Key != "Springfield" {
		t.Errorf("expected Springfield, got %q", m.Key)
	}
	if want := 1.0 / 6.0; math.Abs(m.Score-want) > 1e-9 {
		t.Errorf("expected score %v, got %v", want, m.Score)
	}
}

func TestResolve_ContainmentTieUsesCatalogOrder(t *testing.T) {
	m := mustResolve(t, Request[struct{}]{
		Query:   "park",
		Catalog: keyCatalog("Park Lane", "Lane Park"),
	})
	if m.Key != "Park Lane" {
		t.Errorf("expected first entry Park Lane, got %q", m.Key)
	}
}

// TestResolve_WordOverlapThreshold checks the boundary around a 2/3 ratio with
// containment disabled so the word-overlap strategy is isolated.
func TestResolve_WordOverlapThreshold(t *testing.T) {
	cat := keyCatalog("big apple")
	mode := StrategyExact | StrategyWordOverlap

	m := mustResolve(t, Request[struct{}]{
		Query:               "big apple city",
		Catalog:             cat,
		Strategies:          mode,
		MinWordOverlapRatio: 0.5,
	})
	if m.Tier != TierWordOverlap {
		t.Errorf("expected word_overlap tier, got %s", m.Tier)
	}
	if math.Abs(m.Score-2.0/3.0) > 1e-9 {
		t.Errorf("expected ratio 2/3, got %v", m.Score)
	}

	_, err := Resolve(Request[struct{}]{
		Query:               "big apple city",
		Catalog:             cat,
		Strategies:          mode,
		MinWordOverlapRatio: 0.7,
	})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if nf.Query != "big apple city" {
		t.Errorf("expected query to be preserved, got %q", nf.Query)
	}
}

func TestResolve_AnyWordOverlap(t *testing.T) {
	cat := keyCatalog("big apple city")
	mode := StrategyExact | StrategyWordOverlap

	_, err := Resolve(Request[struct{}]{Query: "apple pie", Catalog: cat, Strategies: mode})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound with the default ratio, got %v", err)
	}

	m := mustResolve(t, Request[struct{}]{
		Query:               "apple pie",
		Catalog:             cat,
		Strategies:          mode,
		MinWordOverlapRatio: AnyWordOverlap,
	})
	if m.Key != "big apple city" || math.Abs(m.Score-1.0/3.0) > 1e-9 {
		t.Errorf("expected big apple city at 1/3, got %q at %v", m.Key, m.Score)
	}

	_, err = Resolve(Request[struct{}]{
		Query:               "banana split",
		Catalog:             cat,
		Strategies:          mode,
		MinWordOverlapRatio: AnyWordOverlap,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("no shared word should still be ErrNotFound, got %v", err)
	}
}

// TestResolve_WordOrderVariation exercises word overlap through the full
// pipeline, where containment cannot match reordered words.
func TestResolve_WordOrderVariation(t *testing.T) {
	m := mustResolve(t, Request[struct{}]{
		Query:   "apple big city",
		Catalog: keyCatalog("Big Sur", "Big Apple"),
	})
	if m.Key != "Big Apple" || m.Tier != TierWordOverlap {
		t.Errorf("expected word_overlap Big Apple, got %q (%s)", m.Key, m.Tier)
	}
}

func TestResolve_WordOverlapTieUsesCatalogOrder(t *testing.T) {
	m := mustResolve(t, Request[struct{}]{
		Query:   "red valley",
		Catalog: keyCatalog("Red River Valley", "Red Rock Valley"),
	})
	if m.Key != "Red River Valley" {
		t.Errorf("expected Red River Valley, got %q", m.Key)
	}
}

func TestResolve_DefaultRatioIsExclusive(t *testing.T) {
	// 1 shared word out of 2 is exactly 0.5, which does not clear the cutoff.
	_, err := Resolve(Request[struct{}]{
		Query:   "grand hotel",
		Catalog: keyCatalog("Hotel California"),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound at ratio 0.5, got %v", err)
	}
}

func TestResolve_NotFound(t *testing.T) {
	_, err := Resolve(Request[struct{}]{
		Query:   "Antarctica",
		Catalog: NewKeyCatalog("cities", "New York", "London", "Paris"),
	})

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if nf.Query != "Antarctica" {
		t.Errorf("expected query Antarctica, got %q", nf.Query)
	}
	if nf.Catalog != "cities" {
		t.Errorf("expected catalog cities, got %q", nf.Catalog)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected errors.Is(err, ErrNotFound)")
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Error("NotFoundError must not match ErrInvalidInput")
	}
	if err.Error() != `no match for "Antarctica" in cities` {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestResolve_InvalidInput(t *testing.T) {
	cat := keyCatalog("New York")

	tests := []struct {
		name    string
		query   string
		catalog *Catalog[struct{}]
		field   string
	}{
		{"empty query", "", cat, "query"},
		{"blank query", "   ", cat, "query"},
		{"punctuation query", "--", cat, "query"},
		{"nil catalog", "paris", nil, "catalog"},
		{"empty catalog", "paris", keyCatalog(), "catalog"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(Request[struct{}]{Query: tc.query, Catalog: tc.catalog})
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *InvalidInputError, got %v", err)
			}
			if invalid.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, invalid.Field)
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Error("expected errors.Is(err, ErrInvalidInput)")
			}
		})
	}
}

func TestResolve_StrategiesDisableContainment(t *testing.T) {
	_, err := Resolve(Request[struct{}]{
		Query:      "hotel",
		Catalog:    keyCatalog("Paradise Hotel"),
		Strategies: StrategyAlias,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound with containment disabled, got %v", err)
	}
}

func TestResolve_ExactCannotBeDisabled(t *testing.T) {
	m := mustResolve(t, Request[struct{}]{
		Query:      "paris",
		Catalog:    keyCatalog("Paris"),
		Strategies: StrategyWordOverlap,
	})
	if m.Tier != TierExact {
		t.Errorf("expected exact tier, got %s", m.Tier)
	}
}

// TestResolve_Deterministic verifies that identical calls give identical
// results.
func TestResolve_Deterministic(t *testing.T) {
	req := Request[struct{}]{
		Query:   "hotel",
		Catalog: keyCatalog("Grand Hotel", "Paradise Hotel", "Hotel"),
		Aliases: NewAliasTable(map[string]string{"gh": "Grand Hotel"}),
	}
	first := mustResolve(t, req)
	for i := 0; i < 10; i++ {
		if again := mustResolve(t, req); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, first, again)
		}
	}
}

// TestNewCatalog_CopiesEntries verifies that later changes to the caller's
// slice do not leak into the catalog.
func TestNewCatalog_CopiesEntries(t *testing.T) {
	entries := []Entry[int]{{Key: "Paris", Payload: 1}, {Key: "London", Payload: 2}}
	cat := NewCatalog("cities", entries)
	entries[0] = Entry[int]{Key: "Berlin", Payload: 9}

	m := mustResolve(t, Request[int]{Query: "paris", Catalog: cat})
	if m.Key != "Paris" || m.Payload != 1 {
		t.Errorf("catalog observed caller mutation: %+v", m.Entry)
	}
	if _, ok := cat.Lookup("berlin"); ok {
		t.Error("Lookup found an entry that was never in the catalog")
	}

	got := cat.Entries()
	got[1].Key = "Rome"
	if cat.At(1).Key != "London" {
		t.Error("Entries() returned the internal slice")
	}
}

func TestCandidates_Ordering(t *testing.T) {
	cat := keyCatalog("Paradise", "Paradise Hotel", "Hotel California", "Grand Budapest")

	got, err := Candidates(Request[struct{}]{Query: "paradise hotel", Catalog: cat})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(got), got)
	}
	if got[0].Key != "Paradise Hotel" || got[0].Tier != TierExact {
		t.Errorf("expected exact Paradise Hotel first, got %q (%s)", got[0].Key, got[0].Tier)
	}
	if got[1].Key != "Paradise" || got[1].Tier != TierContains {
		t.Errorf("expected contains Paradise second, got %q (%s)", got[1].Key, got[1].Tier)
	}
}

func TestCandidates_FirstEqualsResolve(t *testing.T) {
	req := Request[struct{}]{
		Query:   "spring",
		Catalog: keyCatalog("Springfield Park", "Springfield", "Spring Lake Town"),
	}
	cands, err := Candidates(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := mustResolve(t, req)
	if len(cands) == 0 || cands[0].Key != m.Key {
		t.Errorf("expected first candidate %q, got %+v", m.Key, cands)
	}
}

func TestCandidates_Empty(t *testing.T) {
	got, err := Candidates(Request[struct{}]{Query: "zzz", Catalog: keyCatalog("Paris")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %+v", got)
	}
}

func TestResolve_ConcurrentCallsShareCatalog(t *testing.T) {
	cat := keyCatalog("New York", "Los Angeles", "Paradise Hotel", "Big Apple Circus")
	aliases := NewAliasTable(map[string]string{"nyc": "New York", "la": "Los Angeles"})

	cases := []struct {
		query string
		key   string
		tier  Tier
	}{
		{"new york", "New York", TierExact},
		{"NYC", "New York", TierAlias},
		{"paradise", "Paradise Hotel", TierContains},
		{"circus apple big", "Big Apple Circus", TierWordOverlap},
	}

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range 100 {
				tc := cases[(i+j)%len(cases)]
				m, err := Resolve(Request[struct{}]{Query: tc.query, Catalog: cat, Aliases: aliases})
				if err != nil {
					t.Errorf("Resolve(%q): %v", tc.query, err)
					return
				}
				if m.Key != tc.key || m.Tier != tc.tier {
					t.Errorf("Resolve(%q) = %q (%s), want %q (%s)", tc.query, m.Key, m.Tier, tc.key, tc.tier)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	if got := cat.Keys(); !reflect.DeepEqual(got, []string{"New York", "Los Angeles", "Paradise Hotel", "Big Apple Circus"}) {
		t.Errorf("catalog changed under concurrent use: %v", got)
	}
}
