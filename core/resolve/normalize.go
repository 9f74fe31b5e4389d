package resolve

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns the comparison form of s. Accents are folded (NFKD with
// combining marks dropped), letters are lower-cased, apostrophes and periods
// are removed, any other rune that is not a letter or digit becomes a space,
// and runs of whitespace collapse to a single space with no leading or
// trailing space.
//
//	"  São Paulo "   -> "sao paulo"
//	"Grey's Anatomy" -> "greys anatomy"
//	"St. Louis"      -> "st louis"
//	"Sci-Fi"         -> "sci fi"
//
// The raw value is never modified; callers keep displaying it.
func Normalize(s string) string {
	decomposed := norm.NFKD.String(s)

	var b strings.Builder
	b.Grow(len(decomposed))

	pendingSpace := false
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case r == '\'' || r == '’' || r == '.':
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingSpace = true
		}
	}

	return b.String()
}

// words splits an already normalised string into its distinct words,
// preserving first-occurrence order.
func words(normalized string) []string {
	fields := strings.Fields(normalized)
	seen := make(map[string]struct{}, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
