package country

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leofalp/mocktools/core/resolve"
	"github.com/leofalp/mocktools/providers/dataset"
	"github.com/leofalp/mocktools/providers/tool"
)

func TestFind(t *testing.T) {
	f := &Finder{Source: dataset.Static{D: dataset.Default()}}

	tests := []struct {
		query      string
		name       string
		alpha2     string
		confidence resolve.Tier
	}{
		{"Japan", "Japan", "JP", resolve.TierExact},
		{"  FRANCE ", "France", "FR", resolve.TierExact},
		{"Cote d'Ivoire", "Côte d'Ivoire", "CI", resolve.TierExact},
		{"usa", "United States", "US", resolve.TierAlias},
		{"GB", "United Kingdom", "GB", resolve.TierAlias},
		{"JPN", "Japan", "JP", resolve.TierAlias},
		{"holland", "Netherlands", "NL", resolve.TierAlias},
		{"ivory coast", "Côte d'Ivoire", "CI", resolve.TierAlias},
		{"united", "United States", "US", resolve.TierContains},
		{"the Netherlands", "Netherlands", "NL", resolve.TierContains},
		{"kingdom united", "United Kingdom", "GB", resolve.TierWordOverlap},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			out, err := f.Find(context.Background(), Input{Name: tc.query})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Name != tc.name || out.Alpha2 != tc.alpha2 {
				t.Errorf("expected %s (%s), got %s (%s)", tc.name, tc.alpha2, out.Name, out.Alpha2)
			}
			if out.Confidence != tc.confidence {
				t.Errorf("expected confidence %s, got %s", tc.confidence, out.Confidence)
			}
			if out.Capital == "" || out.Currency == "" || len(out.Languages) == 0 {
				t.Errorf("expected country facts, got %+v", out)
			}
		})
	}
}

func TestFind_Errors(t *testing.T) {
	f := &Finder{Source: dataset.Static{D: dataset.Default()}}

	_, err := f.Find(context.Background(), Input{Name: "Antarctica"})
	if !errors.Is(err, resolve.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if !strings.Contains(err.Error(), `no match for "Antarctica" in countries`) {
		t.Errorf("unexpected message %q", err.Error())
	}

	_, err = f.Find(context.Background(), Input{Name: " ,. "})
	if !errors.Is(err, resolve.ErrInvalidInput) {
		t.Fatalf("expected invalid input for a punctuation-only name, got %v", err)
	}
}

func TestNewCountryTool(t *testing.T) {
	countryTool := NewCountryTool(dataset.Static{D: dataset.Default()}, tool.Matching{})

	info := countryTool.ToolInfo()
	if info.Name != Name || info.Parameters == nil {
		t.Fatalf("unexpected description %+v", info)
	}

	raw, err := countryTool.Call(context.Background(), `{"name": "deutschland"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(raw, `"alpha3":"DEU"`) || !strings.Contains(raw, `"confidence":"alias"`) {
		t.Errorf("unexpected output %s", raw)
	}

	_, err = countryTool.Call(context.Background(), `{"name": ""}`)
	if !errors.Is(err, resolve.ErrInvalidInput) {
		t.Errorf("expected invalid input for an empty name, got %v", err)
	}
}
