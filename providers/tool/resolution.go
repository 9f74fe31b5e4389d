package tool

import (
	"context"

	"github.com/leofalp/mocktools/core/resolve"
	"github.com/leofalp/mocktools/providers/observability"
)

// Resolve runs resolve.Resolve and records the outcome as a resolve.match or
// resolve.miss event on the span carried by ctx. A tier counter is bumped
// when ctx also carries a provider.
func Resolve[P any](ctx context.Context, req resolve.Request[P]) (resolve.Match[P], error) {
	match, err := resolve.Resolve(req)

	catalog := req.Catalog.Name()
	span := observability.SpanFromContext(ctx)
	if err != nil {
		if span != nil {
			span.AddEvent(observability.EventResolveMiss,
				observability.String(observability.AttrResolveCatalog, catalog),
				observability.String(observability.AttrResolveQuery, req.Query),
				observability.Error(err),
			)
		}
		return match, err
	}

	tierAttr := observability.String(observability.AttrResolveTier, match.Tier.String())
	if span != nil {
		span.AddEvent(observability.EventResolveMatch,
			observability.String(observability.AttrResolveCatalog, catalog),
			observability.String(observability.AttrResolveQuery, req.Query),
			observability.String(observability.AttrResolveMatch, match.Key),
			tierAttr,
		)
	}
	if observer := observability.ObserverFromContext(ctx); observer != nil {
		observer.Counter(observability.MetricResolveTierCount).Add(ctx, 1,
			observability.String(observability.AttrResolveCatalog, catalog), tierAttr)
	}
	return match, nil
}

// Matching holds the resolver settings shared by the catalog-backed tools.
// The zero value uses every strategy and the default word-overlap ratio;
// resolve.AnyWordOverlap lowers the ratio to any shared word.
type Matching struct {
	Strategies          resolve.Strategy
	MinWordOverlapRatio float64
}

// ResolveWith resolves query in catalog using m, recording the outcome like
// Resolve.
func ResolveWith[P any](ctx context.Context, m Matching, query string, catalog *resolve.Catalog[P], aliases resolve.AliasTable) (resolve.Match[P], error) {
	return Resolve(ctx, resolve.Request[P]{
		Query:               query,
		Catalog:             catalog,
		Aliases:             aliases,
		Strategies:          m.Strategies,
		MinWordOverlapRatio: m.MinWordOverlapRatio,
	})
}
