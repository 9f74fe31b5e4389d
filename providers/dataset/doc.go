// Package dataset holds the sample catalogs behind the mock tools.
//
// The catalogs ship as YAML files embedded in the binary (see data/). [Load]
// reads them from one or more file systems, later ones overriding earlier ones
// file by file, validates cross references and builds an immutable [Dataset]
// with one resolve.Catalog per concern. [Store] publishes datasets atomically
// and [Watcher] reloads a directory of overrides whenever its YAML files
// change.
//
//	store := dataset.NewStore(dataset.Default())
//	d := store.Snapshot() // consistent for the whole call
package dataset
