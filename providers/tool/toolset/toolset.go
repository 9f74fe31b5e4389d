// Package toolset assembles the catalog-backed mock tools into a registry.
package toolset

import (
	"github.com/leofalp/mocktools/providers/dataset"
	"github.com/leofalp/mocktools/providers/tool"
	"github.com/leofalp/mocktools/providers/tool/country"
	"github.com/leofalp/mocktools/providers/tool/events"
	"github.com/leofalp/mocktools/providers/tool/festival"
	"github.com/leofalp/mocktools/providers/tool/movies"
	"github.com/leofalp/mocktools/providers/tool/shows"
)

// Names lists the registered tools sorted by name, the order of
// Registry.List.
var Names = []string{festival.Name, country.Name, movies.Name, events.Name, shows.Name}

// New returns a registry holding every mock tool, all reading from src and
// resolving with m.
func New(src dataset.Source, m tool.Matching) *tool.Registry {
	return tool.NewRegistry(
		festival.NewFestivalTool(src, m),
		events.NewEventsTool(src, m),
		shows.NewShowsTool(src, m),
		country.NewCountryTool(src, m),
		movies.NewMoviesTool(src, m),
	)
}
