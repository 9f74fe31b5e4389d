package resolve

import (
	"strings"
	"unicode/utf8"
)

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// contains is bidirectional: "paradise" matches "paradise hotel" and the
// other way round.
func contains(entry, query string) bool {
	return strings.Contains(entry, query) || strings.Contains(query, entry)
}

// containmentScore maps a length difference onto (0,1]; equal lengths score 1.
func containmentScore(queryLen, entryLen int) float64 {
	diff := queryLen - entryLen
	if diff < 0 {
		diff = -diff
	}
	return 1 / float64(1+diff)
}

// bestContainment returns the index of the containing entry whose length is
// closest to the query, first in catalog order on ties, or -1.
func bestContainment[P any](cat *Catalog[P], query string) (int, float64) {
	best, bestScore := -1, 0.0
	queryLen := runeLen(query)
	for i, n := range cat.normalized {
		if n == "" || !contains(n, query) {
			continue
		}
		if score := containmentScore(queryLen, runeLen(n)); score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, bestScore
}

// overlapRatio is |q ∩ e| / max(|q|, |e|) over distinct words.
func overlapRatio(queryWords, entryWords []string) float64 {
	larger := max(len(queryWords), len(entryWords))
	if larger == 0 {
		return 0
	}
	shared := 0
	for _, qw := range queryWords {
		for _, ew := range entryWords {
			if qw == ew {
				shared++
				break
			}
		}
	}
	return float64(shared) / float64(larger)
}

// bestWordOverlap returns the index of the entry with the highest overlap
// ratio strictly above minRatio, first in catalog order on ties, or -1.
func bestWordOverlap[P any](cat *Catalog[P], query string, minRatio float64) (int, float64) {
	queryWords := words(query)
	best, bestRatio := -1, minRatio
	for i, ew := range cat.words {
		if ratio := overlapRatio(queryWords, ew); ratio > bestRatio {
			best, bestRatio = i, ratio
		}
	}
	if best < 0 {
		return -1, 0
	}
	return best, bestRatio
}
