// Package festival provides the find_festival tool: festivals in a city,
// optionally narrowed by genre and performer.
//
// The location is resolved against the city catalog and its aliases ("NYC",
// "Big Apple"), genres through the festival genre synonym sets ("techno" is
// electronic) and artists against every festival lineup.
package festival
