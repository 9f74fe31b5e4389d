// Package cost describes what a tool call would cost if the external API it
// simulates were real. The figures let callers rank tools and surface
// expected latency; mock tools report zero cost.
package cost
