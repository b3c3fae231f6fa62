package parser

import (
	"strings"
	"unicode"

	"github.com/MarshallMM/GrimDarkRoster/internal/bsdata"
)

// Rule buckets. Profiles with a non-generic type name open buckets of their
// own, named after the type.
const (
	BucketInvuln      = "Invuln"
	BucketDamaged     = "Damaged"
	BucketLeader      = "Leader"
	BucketCore        = "Core"
	BucketFaction     = "Faction"
	BucketWeaponRules = "WeaponRules"
	BucketWargear     = "Wargear"
	BucketAbilities   = "Abilities"
)

const (
	descriptionNotFound = "Description not found"
	lineBreak           = "<br/>"
)

// CollectedRule is one rule gathered from a unit subtree, before bucketing.
// TypeName is the source profile's type, or "Abilities" for inline rules.
type CollectedRule struct {
	Name        string
	Description string
	TypeName    string
}

// structuralProfiles never describe rules.
var structuralProfiles = []string{profileUnit, profileModel, profileRanged, profileMelee}

// CollectRules gathers every inline rule and ability-like profile under root
// (root included), pre-order. A name seen twice keeps the later description
// and the earlier position. Unit roots nested below root belong to their own
// unit and are skipped.
func CollectRules(root *bsdata.SelectionNode, opts ...WalkOption) ([]CollectedRule, error) {
	var out []CollectedRule
	index := make(map[string]int)

	put := func(r CollectedRule) {
		if i, ok := index[r.Name]; ok {
			out[i] = r
			return
		}
		index[r.Name] = len(out)
		out = append(out, r)
	}

	err := Walk([]*bsdata.SelectionNode{root}, func(node, parent *bsdata.SelectionNode, _ int) error {
		if node != root && IsUnitRoot(node, parent) {
			return SkipChildren
		}
		for _, r := range node.Rules {
			if name := strings.TrimSpace(r.Name); name != "" {
				put(CollectedRule{Name: name, Description: r.Description, TypeName: BucketAbilities})
			}
		}
		for _, p := range node.Profiles {
			if equalsAnyFold(p.TypeName, structuralProfiles) {
				continue
			}
			name := strings.TrimSpace(p.Name)
			desc := profileDescription(p)
			if name == "" || desc == "" {
				continue
			}
			put(CollectedRule{Name: name, Description: desc, TypeName: p.TypeName})
		}
		return nil
	}, opts...)
	return out, err
}

// Matcher is one row of the categorization table. Buckets returns the
// buckets for a rule, or nil when the row does not apply. lower is the
// lower-cased rule name.
type Matcher struct {
	Label   string
	Buckets func(lower string, r CollectedRule) []string
}

// Categorizer assigns rules to buckets; the first matching row wins.
type Categorizer struct {
	matchers []Matcher
}

func NewCategorizer(v Vocabulary) *Categorizer {
	return &Categorizer{matchers: DefaultMatchers(v)}
}

// NewCategorizerWith builds a categorizer from an explicit table.
func NewCategorizerWith(matchers []Matcher) *Categorizer {
	return &Categorizer{matchers: append([]Matcher(nil), matchers...)}
}

// DefaultMatchers is the built-in priority table.
func DefaultMatchers(v Vocabulary) []Matcher {
	one := func(b string) []string { return []string{b} }
	return []Matcher{
		{Label: "invulnerable save", Buckets: func(lower string, _ CollectedRule) []string {
			if strings.Contains(lower, "invulnerable save") {
				return one(BucketInvuln)
			}
			return nil
		}},
		{Label: "damaged profile", Buckets: func(lower string, _ CollectedRule) []string {
			if strings.HasPrefix(lower, "damaged:") {
				return one(BucketDamaged)
			}
			return nil
		}},
		{Label: "leader", Buckets: func(lower string, _ CollectedRule) []string {
			if lower == "leader" {
				return []string{BucketLeader, BucketCore}
			}
			if strings.Contains(lower, "attached unit") {
				return one(BucketLeader)
			}
			return nil
		}},
		{Label: "core rule", Buckets: func(lower string, _ CollectedRule) []string {
			if hasAnyPrefixFold(lower, v.CoreRules) {
				return one(BucketCore)
			}
			return nil
		}},
		{Label: "faction rule", Buckets: func(lower string, _ CollectedRule) []string {
			if equalsAnyFold(lower, v.FactionRules) {
				return one(BucketFaction)
			}
			return nil
		}},
		{Label: "weapon rule", Buckets: func(lower string, _ CollectedRule) []string {
			if hasAnyPrefixFold(lower, v.WeaponRules) {
				return one(BucketWeaponRules)
			}
			return nil
		}},
		{Label: "custom profile type", Buckets: func(_ string, r CollectedRule) []string {
			t := strings.TrimSpace(r.TypeName)
			if t != "" && !equalsAnyFold(t, v.GenericProfileTypes) {
				return one(t)
			}
			return nil
		}},
		// Wargear-typed profiles get a bucket of their own instead of Abilities.
		{Label: "wargear profile", Buckets: func(_ string, r CollectedRule) []string {
			if strings.EqualFold(strings.TrimSpace(r.TypeName), BucketWargear) {
				return one(BucketWargear)
			}
			return nil
		}},
	}
}

// Categorize returns the buckets for r. Every rule lands in exactly one
// bucket, except a rule named "Leader", which also lands in Core.
func (c *Categorizer) Categorize(r CollectedRule) []string {
	lower := strings.ToLower(strings.TrimSpace(r.Name))
	for _, m := range c.matchers {
		if b := m.Buckets(lower, r); len(b) > 0 {
			return b
		}
	}
	return []string{BucketAbilities}
}

// CleanLeaderText strips faction banner lines ("- SPACE MARINES") from a
// Leader ability, glues stray bullet markers back onto the line before them
// and joins what is left with <br/>.
func CleanLeaderText(desc string) string {
	var kept []string
	for _, line := range strings.Split(strings.ReplaceAll(desc, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "-") && isShouted(line[1:]) {
			continue
		}
		if (line == "■" || line == "•") && len(kept) > 0 {
			kept[len(kept)-1] += " " + line
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, lineBreak)
}

// isShouted reports whether no letter of s is lower case. A string without
// letters counts as shouted.
func isShouted(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// isPlaceholder reports inline text too short to be a real description.
func isPlaceholder(desc string) bool {
	d := strings.TrimSpace(desc)
	return d == "" || d == NoValue || len([]rune(d)) < 5
}
