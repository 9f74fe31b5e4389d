package dataset

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/mocktools/core/resolve"
)

// Catalog names, as reported in resolve.NotFoundError and accepted by
// Dataset.Resolve.
const (
	CatalogCities    = "cities"
	CatalogFestivals = "festivals"
	CatalogEvents    = "events"
	CatalogShows     = "shows"
	CatalogCountries = "countries"
	CatalogGenres    = "genres"
	CatalogArtists   = "artists"
)

// Dataset is one immutable snapshot of every catalog. Nothing in it is
// modified after Load returns.
type Dataset struct {
	// Version identifies the snapshot; every load gets a new one.
	Version  string
	Source   string
	LoadedAt time.Time

	Cities    *resolve.Catalog[City]
	Festivals *resolve.Catalog[Festival]
	Events    *resolve.Catalog[Event]
	Shows     *resolve.Catalog[Show]
	Countries *resolve.Catalog[Country]

	// Genres holds every movie genre in order of first appearance.
	Genres *resolve.Catalog[struct{}]

	// Artists holds every festival performer in order of first appearance.
	Artists *resolve.Catalog[struct{}]

	Movies []Movie

	CityAliases    resolve.AliasTable
	CountryAliases resolve.AliasTable
	GenreAliases   resolve.AliasTable
	ShowAliases    resolve.AliasTable

	EventTypes     resolve.SynonymSets
	FestivalGenres resolve.SynonymSets
}

func build(r raw) (*Dataset, error) {
	if err := validate(r); err != nil {
		return nil, err
	}

	var genres, artists []string
	for _, m := range r.movies {
		genres = appendUnique(genres, m.Genres...)
	}
	for _, f := range r.festivals {
		artists = appendUnique(artists, f.Lineup...)
	}
	r = canonicalize(r, genres, artists)

	d := &Dataset{
		Version:  uuid.NewString(),
		LoadedAt: time.Now(),
		Cities:   resolve.NewCatalog(CatalogCities, entries(r.cities, func(c City) string { return c.Name })),
		Festivals: resolve.NewCatalog(CatalogFestivals, entries(r.festivals, func(f Festival) string {
			return f.Name
		})),
		Events:    resolve.NewCatalog(CatalogEvents, entries(r.events, func(e Event) string { return e.Name })),
		Shows:     resolve.NewCatalog(CatalogShows, entries(r.shows, func(s Show) string { return s.Title })),
		Countries: resolve.NewCatalog(CatalogCountries, entries(r.countries, func(c Country) string { return c.Name })),
		Movies:    slices.Clone(r.movies),

		CityAliases:    resolve.NewAliasTable(r.aliases.Cities),
		CountryAliases: resolve.NewAliasTable(r.aliases.Countries).With(isoAliases(r.countries)),
		GenreAliases:   resolve.NewAliasTable(r.aliases.Genres),
		ShowAliases:    resolve.NewAliasTable(r.aliases.Shows),

		EventTypes:     resolve.NewSynonymSets(r.categories.EventTypes),
		FestivalGenres: resolve.NewSynonymSets(r.categories.FestivalGenres),
	}

	d.Genres = resolve.NewKeyCatalog(CatalogGenres, genres...)
	d.Artists = resolve.NewKeyCatalog(CatalogArtists, artists...)

	return d, nil
}

func entries[P any](records []P, key func(P) string) []resolve.Entry[P] {
	out := make([]resolve.Entry[P], len(records))
	for i, rec := range records {
		out[i] = resolve.Entry[P]{Key: key(rec), Payload: rec}
	}
	return out
}

func isoAliases(countries []Country) map[string]string {
	out := make(map[string]string, 2*len(countries))
	for _, c := range countries {
		if c.Alpha2 != "" {
			out[c.Alpha2] = c.Name
		}
		if c.Alpha3 != "" {
			out[c.Alpha3] = c.Name
		}
	}
	return out
}

func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		if !slices.ContainsFunc(list, func(have string) bool { return sameKey(have, v) }) {
			list = append(list, v)
		}
	}
	return list
}

func sameKey(a, b string) bool {
	return resolve.Normalize(a) == resolve.Normalize(b)
}

// canonicalize rewrites the references between records to the spelling of
// the key they point at, so "new york" in festivals.yaml becomes "New York"
// and a lineup's "Sza" becomes the first-seen "SZA". The input slices are
// left untouched.
func canonicalize(r raw, genres, artists []string) raw {
	cities := make([]string, len(r.cities))
	for i, c := range r.cities {
		cities[i] = c.Name
	}

	r.festivals = slices.Clone(r.festivals)
	for i := range r.festivals {
		f := &r.festivals[i]
		f.City = canonical(cities, f.City)
		f.Lineup = canonicalAll(artists, f.Lineup)
	}
	r.events = slices.Clone(r.events)
	for i := range r.events {
		r.events[i].City = canonical(cities, r.events[i].City)
	}
	r.movies = slices.Clone(r.movies)
	for i := range r.movies {
		r.movies[i].Genres = canonicalAll(genres, r.movies[i].Genres)
	}
	return r
}

func canonical(keys []string, value string) string {
	if i := slices.IndexFunc(keys, func(k string) bool { return sameKey(k, value) }); i >= 0 {
		return keys[i]
	}
	return value
}

func canonicalAll(keys, values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = appendUnique(out, canonical(keys, v))
	}
	return out
}

// FestivalsIn returns the festivals held in city, which must be a canonical
// city name.
func (d *Dataset) FestivalsIn(city string) []Festival {
	var out []Festival
	for _, e := range d.Festivals.Entries() {
		if sameKey(e.Payload.City, city) {
			out = append(out, e.Payload)
		}
	}
	return out
}

// EventsIn returns the events held in city, which must be a canonical city
// name.
func (d *Dataset) EventsIn(city string) []Event {
	var out []Event
	for _, e := range d.Events.Entries() {
		if sameKey(e.Payload.City, city) {
			out = append(out, e.Payload)
		}
	}
	return out
}

// MoviesByGenre returns the movies tagged with genre, which must be a key of
// the Genres catalog, in catalog order.
func (d *Dataset) MoviesByGenre(genre string) []Movie {
	var out []Movie
	for _, m := range d.Movies {
		if slices.ContainsFunc(m.Genres, func(g string) bool { return sameKey(g, genre) }) {
			out = append(out, m)
		}
	}
	return out
}

// CatalogNames lists the names accepted by Resolve.
func CatalogNames() []string {
	return []string{
		CatalogArtists, CatalogCities, CatalogCountries, CatalogEvents,
		CatalogFestivals, CatalogGenres, CatalogShows,
	}
}

// ErrUnknownCatalog is returned by Resolve for names not in CatalogNames.
var ErrUnknownCatalog = errors.New("unknown catalog")

// Resolution is the payload-free outcome of Dataset.Resolve.
type Resolution struct {
	Catalog string       `json:"catalog"`
	Query   string       `json:"query"`
	Key     string       `json:"key"`
	Tier    resolve.Tier `json:"confidence"`
	Score   float64      `json:"score"`
}

// Resolve matches query against the named catalog with that catalog's alias
// table. It backs the generic resolve command and endpoint.
func (d *Dataset) Resolve(catalog, query string, strategies resolve.Strategy, minRatio float64) (Resolution, error) {
	switch catalog {
	case CatalogCities:
		return resolveIn(d.Cities, d.CityAliases, query, strategies, minRatio)
	case CatalogFestivals:
		return resolveIn(d.Festivals, resolve.AliasTable{}, query, strategies, minRatio)
	case CatalogEvents:
		return resolveIn(d.Events, resolve.AliasTable{}, query, strategies, minRatio)
	case CatalogShows:
		return resolveIn(d.Shows, d.ShowAliases, query, strategies, minRatio)
	case CatalogCountries:
		return resolveIn(d.Countries, d.CountryAliases, query, strategies, minRatio)
	case CatalogGenres:
		return resolveIn(d.Genres, d.GenreAliases, query, strategies, minRatio)
	case CatalogArtists:
		return resolveIn(d.Artists, resolve.AliasTable{}, query, strategies, minRatio)
	default:
		return Resolution{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownCatalog, catalog, strings.Join(CatalogNames(), ", "))
	}
}

func resolveIn[P any](catalog *resolve.Catalog[P], aliases resolve.AliasTable, query string, strategies resolve.Strategy, minRatio float64) (Resolution, error) {
	m, err := resolve.Resolve(resolve.Request[P]{
		Query:               query,
		Catalog:             catalog,
		Aliases:             aliases,
		Strategies:          strategies,
		MinWordOverlapRatio: minRatio,
	})
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Catalog: catalog.Name(), Query: query, Key: m.Key, Tier: m.Tier, Score: m.Score}, nil
}
