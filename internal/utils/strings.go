package utils

import (
	"encoding/json"
	"unicode/utf8"
)

// JSONToString encodes object as JSON, indented with two spaces when indent
// is true. Encoding failures are reported as a JSON error object so the result
// is always printable.
func JSONToString(object any, indent ...bool) string {
	var (
		encoded []byte
		err     error
	)
	if len(indent) > 0 && indent[0] {
		encoded, err = json.MarshalIndent(object, "", "  ")
	} else {
		encoded, err = json.Marshal(object)
	}
	if err != nil {
		failure, _ := json.Marshal(map[string]string{"error": "failed to marshal to JSON: " + err.Error()})
		return string(failure)
	}
	return string(encoded)
}

// FirstLine returns s up to its first newline, cut to maxRunes runes with a
// trailing "..." when longer. maxRunes <= 0 disables the cut.
func FirstLine(s string, maxRunes int) string {
	for i, r := range s {
		if r == '\n' {
			s = s[:i]
			break
		}
	}
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}
