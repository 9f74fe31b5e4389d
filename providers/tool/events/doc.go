// Package events provides the search_events tool: events in a city, filtered
// by event type and keyword.
//
// Event types are matched through category synonym sets, so "nrl" and "afl"
// both select sports events. When nothing matches the tool reports a
// not-found error; callers that prefer the full city listing set
// fallback_to_all and get it back flagged with fallback=true.
package events
