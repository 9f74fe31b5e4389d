package country

import (
	"context"
	"fmt"

	"github.com/leofalp/mocktools/core/cost"
	"github.com/leofalp/mocktools/core/resolve"
	"github.com/leofalp/mocktools/providers/dataset"
	"github.com/leofalp/mocktools/providers/tool"
)

const Name = "get_country"

type Finder struct {
	Source   dataset.Source
	Matching tool.Matching
}

// NewCountryTool returns the get_country tool backed by src.
func NewCountryTool(src dataset.Source, m tool.Matching) *tool.Tool[Input, Output] {
	f := &Finder{Source: src, Matching: m}
	return tool.NewTool[Input, Output](
		Name,
		f.Find,
		tool.WithDescription("Get the capital, currency, languages and ISO codes of a country. Accepts names, nicknames and two or three letter ISO codes."),
		tool.WithMetrics(cost.ToolMetrics{
			Amount:                  0.0,
			Currency:                "USD",
			CostDescription:         "sample data lookup",
			Accuracy:                0.95,
			AverageDurationInMillis: 1,
		}),
	)
}

func (f *Finder) Find(ctx context.Context, in Input) (Output, error) {
	d := f.Source.Snapshot()

	match, err := tool.ResolveWith(ctx, f.Matching, in.Name, d.Countries, d.CountryAliases)
	if err != nil {
		return Output{}, fmt.Errorf("%s: %w", Name, err)
	}

	c := match.Payload
	return Output{
		Name:       c.Name,
		Matched:    match.Key,
		Confidence: match.Tier,
		Alpha2:     c.Alpha2,
		Alpha3:     c.Alpha3,
		Capital:    c.Capital,
		Currency:   c.Currency,
		Languages:  c.Languages,
		Region:     c.Region,
	}, nil
}

// Input is the get_country request.
type Input struct {
	Name string `json:"name" jsonschema:"description=Country name or nickname or ISO code,required" validate:"required"`
}

type Output struct {
	Name       string       `json:"name"`
	Matched    string       `json:"matched" jsonschema:"description=Catalog entry the name resolved to"`
	Confidence resolve.Tier `json:"confidence" jsonschema:"description=How the name was matched,enum=exact,enum=alias,enum=contains,enum=word_overlap"`
	Alpha2     string       `json:"alpha2" jsonschema:"description=ISO 3166-1 alpha-2 code"`
	Alpha3     string       `json:"alpha3" jsonschema:"description=ISO 3166-1 alpha-3 code"`
	Capital    string       `json:"capital"`
	Currency   string       `json:"currency" jsonschema:"description=ISO 4217 currency code"`
	Languages  []string     `json:"languages"`
	Region     string       `json:"region"`
}
