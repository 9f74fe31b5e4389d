// Package shows provides the search_shows_by_title tool.
//
// Titles are resolved against the shows catalog and its aliases ("GoT",
// "B99"). Partial titles match through containment ("hotel" finds "Paradise
// Hotel"); for those weaker matches the output also suggests the other
// titles the query could have meant. Synopses are stored as HTML and returned
// as Markdown.
package shows
