// Package slogobs provides an observability.Provider backed by log/slog.
//
// Spans, metric updates and log calls all become structured log records.
// The handler writes either a compact single-line format or JSON. Format and
// level default to MOCKTOOLS_LOG_FORMAT / MOCKTOOLS_LOG_LEVEL, falling back to
// LOG_FORMAT / LOG_LEVEL.
package slogobs
