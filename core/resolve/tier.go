package resolve

import "fmt"

// Tier ranks how trustworthy a match is. Lower values are more trusted:
// TierExact > TierAlias > TierContains > TierWordOverlap.
type Tier int

const (
	TierNone Tier = iota
	TierExact
	TierAlias
	TierContains
	TierWordOverlap
)

var tierNames = map[Tier]string{
	TierNone:        "none",
	TierExact:       "exact",
	TierAlias:       "alias",
	TierContains:    "contains",
	TierWordOverlap: "word_overlap",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// MarshalText encodes the tier as its name so JSON tool output reads
// "confidence":"alias".
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a tier name produced by MarshalText.
func (t *Tier) UnmarshalText(text []byte) error {
	for tier, name := range tierNames {
		if name == string(text) {
			*t = tier
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", string(text))
}

// AtLeast reports whether t is as trusted as other or more.
func (t Tier) AtLeast(other Tier) bool {
	return t != TierNone && t <= other
}

// Strategy selects which matching strategies a request may use. Exact
// matching always runs, whatever the mask says.
type Strategy uint8

const (
	StrategyExact Strategy = 1 << iota
	StrategyAlias
	StrategyContains
	StrategyWordOverlap

	StrategyAll = StrategyExact | StrategyAlias | StrategyContains | StrategyWordOverlap
)

// Has reports whether every strategy in other is enabled in s.
func (s Strategy) Has(other Strategy) bool {
	return s&other == other
}

// Tier returns the confidence tier produced by a single strategy.
func (s Strategy) Tier() Tier {
	switch s {
	case StrategyExact:
		return TierExact
	case StrategyAlias:
		return TierAlias
	case StrategyContains:
		return TierContains
	case StrategyWordOverlap:
		return TierWordOverlap
	default:
		return TierNone
	}
}

func (s Strategy) String() string {
	switch s {
	case StrategyExact:
		return "exact"
	case StrategyAlias:
		return "alias"
	case StrategyContains:
		return "contains"
	case StrategyWordOverlap:
		return "word_overlap"
	case StrategyAll:
		return "all"
	default:
		return fmt.Sprintf("Strategy(%#x)", uint8(s))
	}
}

// ParseStrategies turns names such as "alias", "contains" or "all" into a
// mask. An empty list yields StrategyAll.
func ParseStrategies(names ...string) (Strategy, error) {
	if len(names) == 0 {
		return StrategyAll, nil
	}
	mask := StrategyExact
	for _, name := range names {
		switch Normalize(name) {
		case "exact":
		case "alias":
			mask |= StrategyAlias
		case "contains":
			mask |= StrategyContains
		case "word overlap":
			mask |= StrategyWordOverlap
		case "all":
			mask |= StrategyAll
		default:
			return 0, &InvalidInputError{Field: "strategies", Reason: fmt.Sprintf("unknown strategy %q", name)}
		}
	}
	return mask, nil
}
