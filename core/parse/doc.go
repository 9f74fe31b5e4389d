// Package parse decodes the JSON arguments a language model sends to a tool.
// Models frequently produce almost-JSON (single quotes, unquoted keys,
// trailing commas) or wrap each value in a schema-style {"type","value"}
// envelope, so decoding falls back to automatic repair and envelope
// unwrapping before giving up.
//
// The entry point is the generic [ParseStringAs].
package parse
