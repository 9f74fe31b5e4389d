package events

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/leofalp/mocktools/core/cost"
	"github.com/leofalp/mocktools/core/resolve"
	"github.com/leofalp/mocktools/providers/dataset"
	"github.com/leofalp/mocktools/providers/observability"
	"github.com/leofalp/mocktools/providers/tool"
)

// Name is the registered tool name.
const Name = "search_events"

// Searcher answers search_events calls from the current dataset snapshot.
type Searcher struct {
	Source   dataset.Source
	Matching tool.Matching
}

// NewEventsTool returns the search_events tool backed by src.
func NewEventsTool(src dataset.Source, m tool.Matching) *tool.Tool[Input, Output] {
	s := &Searcher{Source: src, Matching: m}
	return tool.NewTool[Input, Output](
		Name,
		s.Search,
		tool.WithDescription("Search upcoming events in a city by type (sports, music, comedy, theatre, food, art or a synonym such as 'nrl' or 'gig') and keyword. Set fallback_to_all to list every event in the city when nothing matches."),
		tool.WithMetrics(cost.ToolMetrics{
			Amount:                  0.0,
			Currency:                "USD",
			CostDescription:         "sample data lookup",
			Accuracy:                0.85,
			AverageDurationInMillis: 1,
		}),
	)
}

// Search resolves the city and narrows its events by type, then by keyword.
// The city itself must resolve; the fallback only covers the filters.
func (s *Searcher) Search(ctx context.Context, in Input) (Output, error) {
	d := s.Source.Snapshot()

	city, err := tool.ResolveWith(ctx, s.Matching, in.City, d.Cities, d.CityAliases)
	if err != nil {
		return Output{}, fmt.Errorf("%s: city: %w", Name, err)
	}

	out := Output{City: city.Key, Matched: city.Key, Confidence: city.Tier}
	all := d.EventsIn(city.Key)
	if len(all) == 0 {
		return Output{}, fmt.Errorf("%s: %w", Name, &resolve.NotFoundError{Query: in.City, Catalog: dataset.CatalogEvents})
	}

	events, err := s.filter(ctx, d, all, in, &out)
	if err != nil {
		if !in.FallbackToAll || !errors.Is(err, resolve.ErrNotFound) {
			return Output{}, fmt.Errorf("%s: %w", Name, err)
		}
		if span := observability.SpanFromContext(ctx); span != nil {
			span.SetAttributes(observability.Bool(observability.AttrResolveFallback, true))
		}
		out.Fallback = true
		out.FallbackReason = err.Error()
		events = all
	}

	out.Events = events
	out.Count = len(events)
	return out, nil
}

func (s *Searcher) filter(ctx context.Context, d *dataset.Dataset, events []dataset.Event, in Input, out *Output) ([]dataset.Event, error) {
	events = slices.Clone(events)

	if strings.TrimSpace(in.EventType) != "" {
		if category, ok := d.EventTypes.CategoryOf(in.EventType); ok {
			out.EventType = category
		}
		events = slices.DeleteFunc(events, func(e dataset.Event) bool {
			return !resolve.ResolveCategory([]string{in.EventType}, e.Type, d.EventTypes)
		})
		if len(events) == 0 {
			return nil, &resolve.NotFoundError{Query: in.EventType, Catalog: "event types in " + out.City}
		}
	}

	if strings.TrimSpace(in.Keyword) != "" {
		entries := make([]resolve.Entry[dataset.Event], len(events))
		for i, e := range events {
			entries[i] = resolve.Entry[dataset.Event]{Key: e.Name, Payload: e}
		}
		catalog := resolve.NewCatalog("events in "+out.City, entries)

		match, err := tool.ResolveWith(ctx, s.Matching, in.Keyword, catalog, resolve.AliasTable{})
		if err != nil {
			return nil, err
		}
		out.Keyword = match.Key
		out.KeywordConfidence = match.Tier
		events = []dataset.Event{match.Payload}
	}

	return events, nil
}

// Input is the search_events request.
type Input struct {
	City          string `json:"city" jsonschema:"description=City to search; abbreviations such as SYD or NYC are accepted,required" validate:"required"`
	EventType     string `json:"event_type,omitempty" jsonschema:"description=Event category or a synonym such as nrl or gig"`
	Keyword       string `json:"keyword,omitempty" jsonschema:"description=Words from the event name"`
	FallbackToAll bool   `json:"fallback_to_all,omitempty" jsonschema:"description=Return every event in the city instead of an error when the filters match nothing"`
}

// Output lists the matching events. Fallback is set when the filters matched
// nothing and FallbackToAll was requested; Events then holds the whole city.
type Output struct {
	City              string          `json:"city" jsonschema:"description=Canonical city name"`
	Matched           string          `json:"matched" jsonschema:"description=Catalog entry the city resolved to"`
	Confidence        resolve.Tier    `json:"confidence" jsonschema:"description=How the city was matched,enum=exact,enum=alias,enum=contains,enum=word_overlap"`
	EventType         string          `json:"event_type,omitempty" jsonschema:"description=Category the event type resolved to"`
	Keyword           string          `json:"keyword_match,omitempty" jsonschema:"description=Event name the keyword resolved to"`
	KeywordConfidence resolve.Tier    `json:"keyword_confidence,omitzero" jsonschema:"description=How the keyword was matched"`
	Events            []dataset.Event `json:"events"`
	Count             int             `json:"count"`
	Fallback          bool            `json:"fallback,omitempty" jsonschema:"description=True when the filters matched nothing and every event in the city is returned"`
	FallbackReason    string          `json:"fallback_reason,omitempty"`
}
