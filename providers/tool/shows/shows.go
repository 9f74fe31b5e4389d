package shows

import (
	"context"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/leofalp/mocktools/core/cost"
	"github.com/leofalp/mocktools/core/resolve"
	"github.com/leofalp/mocktools/providers/dataset"
	"github.com/leofalp/mocktools/providers/tool"
)

const Name = "search_shows_by_title"

// maxSuggestions caps DidYouMean.
const maxSuggestions = 3

// Searcher answers search_shows_by_title calls.
type Searcher struct {
	Source   dataset.Source
	Matching tool.Matching
}

// NewShowsTool returns the search_shows_by_title tool backed by src.
func NewShowsTool(src dataset.Source, m tool.Matching) *tool.Tool[Input, Output] {
	s := &Searcher{Source: src, Matching: m}
	return tool.NewTool[Input, Output](
		Name,
		s.Search,
		tool.WithDescription("Find a TV show by title and list where it can be streamed. Partial titles and common abbreviations (GoT, B99) are accepted."),
		tool.WithMetrics(cost.ToolMetrics{
			Amount:                  0.0,
			Currency:                "USD",
			CostDescription:         "sample data lookup",
			Accuracy:                0.9,
			AverageDurationInMillis: 2,
		}),
	)
}

func (s *Searcher) Search(ctx context.Context, in Input) (Output, error) {
	d := s.Source.Snapshot()

	match, err := tool.ResolveWith(ctx, s.Matching, in.Title, d.Shows, d.ShowAliases)
	if err != nil {
		return Output{}, fmt.Errorf("%s: %w", Name, err)
	}

	show := match.Payload
	out := Output{
		Title:      show.Title,
		Matched:    match.Key,
		Confidence: match.Tier,
		Year:       show.Year,
		Services:   show.Services,
		Genres:     show.Genres,
		Synopsis:   toMarkdown(show.Synopsis),
	}

	if !match.Tier.AtLeast(resolve.TierAlias) {
		out.DidYouMean = s.suggestions(d, in.Title, match.Key)
	}
	return out, nil
}

// suggestions lists other titles the query also matched, best first.
func (s *Searcher) suggestions(d *dataset.Dataset, query, matched string) []string {
	candidates, err := resolve.Candidates(resolve.Request[dataset.Show]{
		Query:               query,
		Catalog:             d.Shows,
		Aliases:             d.ShowAliases,
		Strategies:          s.Matching.Strategies,
		MinWordOverlapRatio: s.Matching.MinWordOverlapRatio,
	})
	if err != nil {
		return nil
	}

	var out []string
	for _, c := range candidates {
		if c.Key == matched {
			continue
		}
		out = append(out, c.Key)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// toMarkdown converts an HTML synopsis, falling back to the raw text.
func toMarkdown(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return html
	}
	return strings.TrimSpace(markdown)
}

// Input is the search_shows_by_title request.
type Input struct {
	Title string `json:"title" jsonschema:"description=Full or partial show title,required" validate:"required"`
}

// Output describes the resolved show.
type Output struct {
	Title      string       `json:"title"`
	Matched    string       `json:"matched" jsonschema:"description=Catalog entry the title resolved to"`
	Confidence resolve.Tier `json:"confidence" jsonschema:"description=How the title was matched,enum=exact,enum=alias,enum=contains,enum=word_overlap"`
	Year       int          `json:"year"`
	Services   []string     `json:"services" jsonschema:"description=Streaming services carrying the show"`
	Genres     []string     `json:"genres"`
	Synopsis   string       `json:"synopsis" jsonschema:"description=Synopsis in Markdown"`
	DidYouMean []string     `json:"did_you_mean,omitempty" jsonschema:"description=Other titles the query also matched"`
}
