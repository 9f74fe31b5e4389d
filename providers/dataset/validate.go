package dataset

import (
	"fmt"
	"sort"

	"github.com/leofalp/mocktools/core/resolve"
)

// ValidationError lists every problem found in a set of data files.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "dataset: " + e.Problems[0]
	}
	return fmt.Sprintf("dataset: %d problems, first: %s", len(e.Problems), e.Problems[0])
}

type problems []string

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

func validate(r raw) error {
	var p problems

	cities := checkKeys(&p, FileCities, r.cities, func(c City) string { return c.Name })
	checkKeys(&p, FileFestivals, r.festivals, func(f Festival) string { return f.Name })
	checkKeys(&p, FileEvents, r.events, func(e Event) string { return e.Name })
	shows := checkKeys(&p, FileShows, r.shows, func(s Show) string { return s.Title })
	countries := checkKeys(&p, FileCountries, r.countries, func(c Country) string { return c.Name })
	if len(r.movies) == 0 {
		p.addf("%s: no entries", FileMovies)
	}

	eventTypes := resolve.NewSynonymSets(r.categories.EventTypes)
	festivalGenres := resolve.NewSynonymSets(r.categories.FestivalGenres)

	for _, f := range r.festivals {
		if _, ok := cities[resolve.Normalize(f.City)]; !ok {
			p.addf("%s: festival %q: unknown city %q", FileFestivals, f.Name, f.City)
		}
		for _, g := range f.Genres {
			if !isCategory(festivalGenres, g) {
				p.addf("%s: festival %q: genre %q is not a festival_genres category", FileFestivals, f.Name, g)
			}
		}
	}
	for _, e := range r.events {
		if _, ok := cities[resolve.Normalize(e.City)]; !ok {
			p.addf("%s: event %q: unknown city %q", FileEvents, e.Name, e.City)
		}
		if !isCategory(eventTypes, e.Type) {
			p.addf("%s: event %q: type %q is not an event_types category", FileEvents, e.Name, e.Type)
		}
	}

	genres := map[string]struct{}{}
	for _, m := range r.movies {
		if m.Title == "" {
			p.addf("%s: movie with empty title", FileMovies)
		}
		if m.Rating < 0 || m.Rating > 10 {
			p.addf("%s: movie %q: rating %.1f outside 0-10", FileMovies, m.Title, m.Rating)
		}
		for _, g := range m.Genres {
			genres[resolve.Normalize(g)] = struct{}{}
		}
	}

	countryAliases := map[string]string{}
	for _, c := range r.countries {
		for _, code := range []string{c.Alpha2, c.Alpha3} {
			if code != "" {
				countryAliases[code] = c.Name
			}
		}
	}
	for alias, target := range r.aliases.Countries {
		countryAliases[alias] = target
	}

	checkAliases(&p, "cities", r.aliases.Cities, cities)
	checkAliases(&p, "countries", countryAliases, countries)
	checkAliases(&p, "genres", r.aliases.Genres, genres)
	checkAliases(&p, "shows", r.aliases.Shows, shows)

	if len(p) == 0 {
		return nil
	}
	return &ValidationError{Problems: p}
}

// checkKeys reports empty and duplicate keys and returns the set of
// normalised keys.
func checkKeys[T any](p *problems, file string, records []T, key func(T) string) map[string]struct{} {
	seen := make(map[string]struct{}, len(records))
	if len(records) == 0 {
		p.addf("%s: no entries", file)
	}
	for i, rec := range records {
		k := resolve.Normalize(key(rec))
		if k == "" {
			p.addf("%s: entry %d has an empty name", file, i+1)
			continue
		}
		if _, dup := seen[k]; dup {
			p.addf("%s: duplicate entry %q", file, key(rec))
		}
		seen[k] = struct{}{}
	}
	return seen
}

// checkAliases reports aliases whose target is not a catalog key and aliases
// that normalise to the same key but point at different targets.
func checkAliases(p *problems, section string, aliases map[string]string, keys map[string]struct{}) {
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Strings(names)

	claimed := map[string]string{}
	for _, alias := range names {
		target := aliases[alias]
		if _, ok := keys[resolve.Normalize(target)]; !ok {
			p.addf("%s: %s alias %q points at unknown entry %q", FileAliases, section, alias, target)
		}
		n := resolve.Normalize(alias)
		if prev, ok := claimed[n]; ok && resolve.Normalize(prev) != resolve.Normalize(target) {
			p.addf("%s: %s alias %q is ambiguous (%q or %q)", FileAliases, section, alias, prev, target)
		}
		claimed[n] = target
	}
}

func isCategory(sets resolve.SynonymSets, name string) bool {
	want := resolve.Normalize(name)
	for _, c := range sets.Categories() {
		if resolve.Normalize(c) == want {
			return true
		}
	}
	return false
}
