package movies

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/leofalp/mocktools/core/cost"
	"github.com/leofalp/mocktools/core/resolve"
	"github.com/leofalp/mocktools/providers/dataset"
	"github.com/leofalp/mocktools/providers/tool"
)

const (
	Name = "recommend_movie"

	DefaultLimit = 3
	MaxLimit     = 10
)

type Recommender struct {
	Source   dataset.Source
	Matching tool.Matching
}

// NewMoviesTool returns the recommend_movie tool backed by src.
func NewMoviesTool(src dataset.Source, m tool.Matching) *tool.Tool[Input, Output] {
	r := &Recommender{Source: src, Matching: m}
	return tool.NewTool[Input, Output](
		Name,
		r.Recommend,
		tool.WithDescription("Recommend the highest rated movies of a genre. Informal genre names such as sci-fi or rom-com are accepted."),
		tool.WithMetrics(cost.ToolMetrics{
			Amount:                  0.0,
			Currency:                "USD",
			CostDescription:         "sample data lookup",
			Accuracy:                0.8,
			AverageDurationInMillis: 1,
		}),
	)
}

// Recommend resolves the genre and returns up to in.Limit of its movies,
// best rated first. Equal ratings are ordered by title.
func (r *Recommender) Recommend(ctx context.Context, in Input) (Output, error) {
	d := r.Source.Snapshot()

	genre, err := tool.ResolveWith(ctx, r.Matching, in.Genre, d.Genres, d.GenreAliases)
	if err != nil {
		return Output{}, fmt.Errorf("%s: genre: %w", Name, err)
	}

	movies := d.MoviesByGenre(genre.Key)
	slices.SortStableFunc(movies, func(a, b dataset.Movie) int {
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		return cmp.Compare(a.Title, b.Title)
	})

	limit := in.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit, len(movies))

	return Output{
		Genre:      genre.Key,
		Matched:    genre.Key,
		Confidence: genre.Tier,
		Movies:     movies[:limit],
		Count:      limit,
	}, nil
}

// Input is the recommend_movie request.
type Input struct {
	Genre string `json:"genre" jsonschema:"description=Movie genre such as comedy or sci-fi,required" validate:"required"`
	Limit int    `json:"limit,omitempty" jsonschema:"description=Number of movies to return,default=3" validate:"omitempty,min=1,max=10"`
}

type Output struct {
	Genre      string          `json:"genre" jsonschema:"description=Canonical genre"`
	Matched    string          `json:"matched"`
	Confidence resolve.Tier    `json:"confidence" jsonschema:"description=How the genre was matched,enum=exact,enum=alias,enum=contains,enum=word_overlap"`
	Movies     []dataset.Movie `json:"movies"`
	Count      int             `json:"count"`
}
