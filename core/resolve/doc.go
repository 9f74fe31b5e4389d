// Package resolve maps free-text queries (a city, a country, a genre, a show
// title) onto entries of a small canonical catalog.
//
// Resolution is rule-based and deterministic. A query is normalised with
// [Normalize] and then tried against the catalog with an ordered list of
// strategies: exact, alias, containment and word overlap. The first strategy
// that produces a match wins, and the returned [Match] records which one did
// through its [Tier]. Category fields (event types, festival genres) use the
// separate set-membership test [ResolveCategory].
//
// Every function in this package is pure. Catalogs, alias tables and synonym
// sets are immutable after construction, so they can be shared by any number
// of goroutines without locking.
//
// The main entry point is [Resolve]:
//
//	cities := resolve.NewCatalog("cities", []resolve.Entry[City]{...})
//	aliases := resolve.NewAliasTable(map[string]string{"nyc": "New York"})
//
//	m, err := resolve.Resolve(resolve.Request[City]{
//	    Query:   "NYC",
//	    Catalog: cities,
//	    Aliases: aliases,
//	})
//	if errors.Is(err, resolve.ErrNotFound) {
//	    // no city matched; the caller decides what to do
//	}
package resolve
