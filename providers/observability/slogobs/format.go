package slogobs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Format represents the output format for logs.
type Format string

const (
	// FormatCompact is a single-line format with JSON attributes.
	// Example: 2026-10-18 10:40:35  INFO tool call -> {"tool.name":"get_country"}
	FormatCompact Format = "compact"

	// FormatJSON is one JSON object per record, for log aggregation.
	FormatJSON Format = "json"
)

// LevelTrace sits below slog.LevelDebug.
const LevelTrace = slog.LevelDebug - 4

// ParseFormat parses a format name. Unknown values yield FormatCompact.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatCompact
	}
}

func (f Format) String() string {
	return string(f)
}

// ParseLevel parses TRACE, DEBUG, INFO, WARN/WARNING or ERROR
// (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// FormatFromEnv reads MOCKTOOLS_LOG_FORMAT, then LOG_FORMAT.
func FormatFromEnv() Format {
	return ParseFormat(firstEnv("MOCKTOOLS_LOG_FORMAT", "LOG_FORMAT"))
}

// LevelFromEnv reads MOCKTOOLS_LOG_LEVEL, then LOG_LEVEL. Unknown values fall
// back to INFO with a warning on stderr.
func LevelFromEnv() slog.Level {
	raw := firstEnv("MOCKTOOLS_LOG_LEVEL", "LOG_LEVEL")
	level, err := ParseLevel(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using INFO\n", err)
	}
	return level
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func levelString(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return "TRACE"
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}
