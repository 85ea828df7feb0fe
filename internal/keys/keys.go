package keys

import (
	"sort"
	"strings"
	"unicode"
)

// CardKey produces the canonical key for a card name. Behavior: trims,
// lower-cases and replaces spaces with underscores ("Lightning Strike" ->
// "lightning_strike"). Deck references and caster animation names use it.
func CardKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}

// TeamKey produces a canonical key for a list of combatant names: each name
// goes through CardKey, empty names are dropped, the parts are sorted and
// joined with "+". Used to group stored battles by line-up.
func TeamKey(names []string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		s := CardKey(n)
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	sort.Strings(parts)
	return strings.Join(parts, "+")
}

// ParseTeamKey canonicalizes a user supplied line-up such as
// "troglodyte+cam", "Cam, Mage" or "troglodyte cam" (a query string "+"
// decodes to a space). Names containing spaces must be written with
// underscores, as CardKey produces them.
func ParseTeamKey(s string) string {
	return TeamKey(strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || r == ',' || unicode.IsSpace(r)
	}))
}
