package resolve

// Entry is one canonical value of a catalog together with the data a tool
// returns once the value has been matched.
type Entry[P any] struct {
	Key     string
	Payload P
}

// Catalog is a named, ordered, immutable list of entries. Order matters:
// whenever two entries tie, the one that appears first wins.
//
// A Catalog copies the entries it is built from and caches their normalised
// keys, so it never observes later changes to the caller's slice.
type Catalog[P any] struct {
	name       string
	entries    []Entry[P]
	normalized []string
	words      [][]string
}

// NewCatalog builds a catalog named name from entries. The name is reported in
// [NotFoundError] to tell callers which catalog was searched.
func NewCatalog[P any](name string, entries []Entry[P]) *Catalog[P] {
	c := &Catalog[P]{
		name:       name,
		entries:    make([]Entry[P], len(entries)),
		normalized: make([]string, len(entries)),
		words:      make([][]string, len(entries)),
	}
	copy(c.entries, entries)
	for i, e := range c.entries {
		c.normalized[i] = Normalize(e.Key)
		c.words[i] = words(c.normalized[i])
	}
	return c
}

// NewKeyCatalog builds a payload-less catalog from plain keys, for callers
// that only need the canonical string back.
func NewKeyCatalog(name string, keys ...string) *Catalog[struct{}] {
	entries := make([]Entry[struct{}], len(keys))
	for i, k := range keys {
		entries[i] = Entry[struct{}]{Key: k}
	}
	return NewCatalog(name, entries)
}

// Name returns the catalog identifier.
func (c *Catalog[P]) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// Len returns the number of entries. A nil catalog has length zero.
func (c *Catalog[P]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// At returns the i-th entry in catalog order.
func (c *Catalog[P]) At(i int) Entry[P] {
	return c.entries[i]
}

// Entries returns a copy of the entries in catalog order.
func (c *Catalog[P]) Entries() []Entry[P] {
	if c == nil {
		return nil
	}
	out := make([]Entry[P], len(c.entries))
	copy(out, c.entries)
	return out
}

// Keys returns the raw canonical keys in catalog order.
func (c *Catalog[P]) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Key
	}
	return keys
}

// Lookup returns the first entry whose normalised key equals the normalised
// form of key.
func (c *Catalog[P]) Lookup(key string) (Entry[P], bool) {
	idx := c.indexOf(Normalize(key))
	if idx < 0 {
		var zero Entry[P]
		return zero, false
	}
	return c.entries[idx], true
}

func (c *Catalog[P]) indexOf(normalized string) int {
	if c == nil || normalized == "" {
		return -1
	}
	for i, n := range c.normalized {
		if n == normalized {
			return i
		}
	}
	return -1
}
