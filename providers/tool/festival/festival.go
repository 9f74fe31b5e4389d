package festival

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/leofalp/mocktools/core/cost"
	"github.com/leofalp/mocktools/core/resolve"
	"github.com/leofalp/mocktools/providers/dataset"
	"github.com/leofalp/mocktools/providers/tool"
)

// Name is the registered tool name.
const Name = "find_festival"

// Finder answers find_festival calls from the current dataset snapshot.
type Finder struct {
	Source   dataset.Source
	Matching tool.Matching
}

// NewFestivalTool returns the find_festival tool backed by src.
func NewFestivalTool(src dataset.Source, m tool.Matching) *tool.Tool[Input, Output] {
	f := &Finder{Source: src, Matching: m}
	return tool.NewTool[Input, Output](
		Name,
		f.Find,
		tool.WithDescription("Find music festivals in a city. Accepts city nicknames and abbreviations; optionally filter by genre (e.g. 'techno', 'indie') or by a performing artist."),
		tool.WithMetrics(cost.ToolMetrics{
			Amount:                  0.0,
			Currency:                "USD",
			CostDescription:         "sample data lookup",
			Accuracy:                0.9,
			AverageDurationInMillis: 1,
		}),
	)
}

// Find resolves the location, then applies the genre and artist filters.
// A city with no festivals left after filtering is a *resolve.NotFoundError
// on the festivals catalog.
func (f *Finder) Find(ctx context.Context, in Input) (Output, error) {
	d := f.Source.Snapshot()

	city, err := tool.ResolveWith(ctx, f.Matching, in.Location, d.Cities, d.CityAliases)
	if err != nil {
		return Output{}, fmt.Errorf("%s: location: %w", Name, err)
	}

	out := Output{
		Location:   city.Key,
		Matched:    city.Key,
		Confidence: city.Tier,
	}
	festivals := d.FestivalsIn(city.Key)

	if strings.TrimSpace(in.Genre) != "" {
		festivals = slices.DeleteFunc(festivals, func(fest dataset.Festival) bool {
			return !playsGenre(fest, in.Genre, d.FestivalGenres)
		})
		if category, ok := d.FestivalGenres.CategoryOf(in.Genre); ok {
			out.Genre = category
		}
	}

	if strings.TrimSpace(in.Artist) != "" {
		artist, err := tool.ResolveWith(ctx, f.Matching, in.Artist, d.Artists, resolve.AliasTable{})
		if err != nil {
			return Output{}, fmt.Errorf("%s: artist: %w", Name, err)
		}
		out.Artist = artist.Key
		festivals = slices.DeleteFunc(festivals, func(fest dataset.Festival) bool {
			return !slices.ContainsFunc(fest.Lineup, func(name string) bool {
				return resolve.Normalize(name) == resolve.Normalize(artist.Key)
			})
		})
	}

	if len(festivals) == 0 {
		return Output{}, fmt.Errorf("%s: %w", Name, &resolve.NotFoundError{
			Query:   in.Location,
			Catalog: describe(city.Key, in, out),
		})
	}

	out.Festivals = festivals
	out.Count = len(festivals)
	return out, nil
}

func playsGenre(f dataset.Festival, genre string, sets resolve.SynonymSets) bool {
	for _, g := range f.Genres {
		if resolve.ResolveCategory([]string{genre}, g, sets) {
			return true
		}
	}
	return false
}

// describe names the filtered festival set a not-found error refers to, e.g.
// "festivals in Berlin with genre jazz".
func describe(city string, in Input, out Output) string {
	desc := dataset.CatalogFestivals + " in " + city
	var filters []string
	if genre := cmp.Or(out.Genre, strings.TrimSpace(in.Genre)); genre != "" {
		filters = append(filters, "genre "+genre)
	}
	if out.Artist != "" {
		filters = append(filters, "artist "+out.Artist)
	}
	if len(filters) > 0 {
		desc += " with " + strings.Join(filters, " and ")
	}
	return desc
}

// Input is the find_festival request.
type Input struct {
	Location string `json:"location" jsonschema:"description=City to search; nicknames such as NYC or Big Apple are accepted,required" validate:"required"`
	Artist   string `json:"artist,omitempty" jsonschema:"description=Only festivals where this artist performs"`
	Genre    string `json:"genre,omitempty" jsonschema:"description=Only festivals playing this genre; sub-genres such as techno or indie are accepted"`
}

// Output lists the matching festivals. Matched and Confidence describe how
// the location was resolved.
type Output struct {
	Location   string             `json:"location" jsonschema:"description=Canonical city name"`
	Matched    string             `json:"matched" jsonschema:"description=Catalog entry the location resolved to"`
	Confidence resolve.Tier       `json:"confidence" jsonschema:"description=How the location was matched,enum=exact,enum=alias,enum=contains,enum=word_overlap"`
	Genre      string             `json:"genre,omitempty" jsonschema:"description=Genre category the filter resolved to"`
	Artist     string             `json:"artist,omitempty" jsonschema:"description=Canonical artist name"`
	Festivals  []dataset.Festival `json:"festivals"`
	Count      int                `json:"count"`
}
