package resolve

import "sort"

// AliasTable maps known alternate spellings and abbreviations onto canonical
// catalog keys ("nyc" -> "New York", "usa" -> "United States"). Alias keys
// are stored normalised, so lookups are insensitive to case, punctuation and
// accents. The zero value is an empty table.
type AliasTable struct {
	targets map[string]string
}

// NewAliasTable builds a table from alias -> canonical pairs. Aliases that
// normalise to the empty string are dropped. When two aliases normalise to the
// same key, the one that sorts first as raw text wins, so construction does not
// depend on map iteration order.
func NewAliasTable(pairs map[string]string) AliasTable {
	raw := make([]string, 0, len(pairs))
	for alias := range pairs {
		raw = append(raw, alias)
	}
	sort.Strings(raw)

	targets := make(map[string]string, len(pairs))
	for _, alias := range raw {
		key := Normalize(alias)
		if key == "" {
			continue
		}
		if _, taken := targets[key]; taken {
			continue
		}
		targets[key] = pairs[alias]
	}
	return AliasTable{targets: targets}
}

// Lookup returns the canonical key for alias.
func (t AliasTable) Lookup(alias string) (string, bool) {
	return t.lookupNormalized(Normalize(alias))
}

func (t AliasTable) lookupNormalized(normalized string) (string, bool) {
	canonical, ok := t.targets[normalized]
	return canonical, ok
}

// Len returns the number of aliases in the table.
func (t AliasTable) Len() int {
	return len(t.targets)
}

// With returns a new table holding the aliases of t plus extra. Entries of t
// take precedence over extra ones with the same normalised key. t is not
// modified.
func (t AliasTable) With(extra map[string]string) AliasTable {
	added := NewAliasTable(extra)
	merged := make(map[string]string, len(t.targets)+len(added.targets))
	for k, v := range added.targets {
		merged[k] = v
	}
	for k, v := range t.targets {
		merged[k] = v
	}
	return AliasTable{targets: merged}
}
