package shows

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leofalp/mocktools/core/resolve"
	"github.com/leofalp/mocktools/providers/dataset"
	"github.com/leofalp/mocktools/providers/tool"
)

func newSearcher() *Searcher {
	return &Searcher{Source: dataset.Static{D: dataset.Default()}}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		query      string
		title      string
		confidence resolve.Tier
	}{
		{"Paradise Hotel", "Paradise Hotel", resolve.TierExact},
		{"paradise", "Paradise", resolve.TierExact},
		{"hotel", "Paradise Hotel", resolve.TierContains},
		{"GoT", "Game of Thrones", resolve.TierAlias},
		{"Nine-Nine Brooklyn", "Brooklyn Nine-Nine", resolve.TierWordOverlap},
		{"brooklyn nine", "Brooklyn Nine-Nine", resolve.TierContains},
		{"shogun", "Shōgun", resolve.TierExact},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			out, err := newSearcher().Search(context.Background(), Input{Title: tc.query})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Title != tc.title || out.Matched != tc.title || out.Confidence != tc.confidence {
				t.Errorf("expected %s (%s), got %s (%s)", tc.title, tc.confidence, out.Title, out.Confidence)
			}
			if len(out.Services) == 0 {
				t.Error("expected streaming services")
			}
		})
	}
}

func TestSearch_SynopsisIsMarkdown(t *testing.T) {
	out, err := newSearcher().Search(context.Background(), Input{Title: "Stranger Things"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.Synopsis, "**secret experiments**") {
		t.Errorf("expected bold markdown, got %q", out.Synopsis)
	}
	if strings.Contains(out.Synopsis, "<p>") {
		t.Errorf("expected HTML to be converted, got %q", out.Synopsis)
	}
}

func TestSearch_DidYouMean(t *testing.T) {
	out, err := newSearcher().Search(context.Background(), Input{Title: "the"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Confidence != resolve.TierContains {
		t.Fatalf("expected a containment match, got %s", out.Confidence)
	}
	if len(out.DidYouMean) == 0 || len(out.DidYouMean) > maxSuggestions {
		t.Fatalf("expected 1-%d suggestions, got %v", maxSuggestions, out.DidYouMean)
	}
	for _, s := range out.DidYouMean {
		if s == out.Matched {
			t.Errorf("suggestions must not repeat the match %q", s)
		}
	}

	exact, _ := newSearcher().Search(context.Background(), Input{Title: "The Crown"})
	if len(exact.DidYouMean) != 0 {
		t.Errorf("exact matches should not carry suggestions, got %v", exact.DidYouMean)
	}
}

func TestSearch_NotFound(t *testing.T) {
	_, err := newSearcher().Search(context.Background(), Input{Title: "Seinfeld"})

	var nf *resolve.NotFoundError
	if !errors.As(err, &nf) || nf.Query != "Seinfeld" || nf.Catalog != dataset.CatalogShows {
		t.Fatalf("expected not found for Seinfeld in shows, got %v", err)
	}
	if !strings.Contains(err.Error(), `no match for "Seinfeld" in shows`) {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestNewShowsTool_Call(t *testing.T) {
	showsTool := NewShowsTool(dataset.Static{D: dataset.Default()}, tool.Matching{})

	raw, err := showsTool.Call(context.Background(), `{"title": "b99"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(raw, `"matched":"Brooklyn Nine-Nine"`) || !strings.Contains(raw, `"confidence":"alias"`) {
		t.Errorf("unexpected output %s", raw)
	}
}

func TestToMarkdown(t *testing.T) {
	if got := toMarkdown(""); got != "" {
		t.Errorf("expected empty synopsis, got %q", got)
	}
	if got := toMarkdown("<p>Plain <em>text</em></p>"); got != "Plain *text*" {
		t.Errorf("unexpected markdown %q", got)
	}
}
