package parser

import (
	"regexp"
	"strings"

	"github.com/MarshallMM/GrimDarkRoster/internal/bsdata"
)

// armyRuleMarker opens the description of a faction's army rule in every
// export we have seen.
const armyRuleMarker = "If your Army Faction is"

const detachmentNode = "Detachment"

var (
	weaponStatNames = []string{"Range", "A", "Attacks", "WS", "BS", "S", "Strength", "AP", "D", "Damage", "Keywords"}

	// bearerPhrases tie a profile to a single model or item.
	bearerPhrases = []string{"the bearer", "equipped by the bearer", "model only", "this fortification"}

	// scopedPhrases only exclude a profile when it also alters weapon stats.
	scopedPhrases = []string{"this model", "this unit"}

	weaponModifier = regexp.MustCompile(`(?i)\b(strength|ap|armour penetration|damage)\s+characteristic` +
		`|\b(add|subtract|improve|worsen)\b[^.]*?\b(strength|ap|armour penetration|damage)\b`)
)

// findDetachment returns the first child of the node named "Detachment".
func (n *Normalizer) findDetachment(force *bsdata.Force) (*Detachment, error) {
	var found *bsdata.SelectionNode
	err := Walk(force.Selections, func(node, _ *bsdata.SelectionNode, _ int) error {
		if found != nil {
			return SkipChildren
		}
		if strings.TrimSpace(node.Name) != detachmentNode {
			return nil
		}
		for _, child := range node.Selections {
			if child != nil {
				found = child
				break
			}
		}
		return SkipChildren
	}, WithMaxDepth(n.maxDepth))
	if err != nil || found == nil {
		return nil, err
	}

	d := &Detachment{ID: found.ID, Name: strings.TrimSpace(found.Name), Rules: []Rule{}}
	for _, r := range found.Rules {
		if name := strings.TrimSpace(r.Name); name != "" {
			d.Rules = append(d.Rules, Rule{Name: name, Description: n.resolve(name, r.Description)})
		}
	}
	return d, nil
}

// findArmyRule looks for the faction rule on the force first, then anywhere
// in the tree outside detachment containers.
func (n *Normalizer) findArmyRule(force *bsdata.Force) ([]ArmyRule, error) {
	rule, ok := firstArmyRule(force.Rules)
	if !ok {
		err := Walk(force.Selections, func(node, _ *bsdata.SelectionNode, _ int) error {
			if ok {
				return SkipChildren
			}
			if strings.Contains(strings.ToLower(node.Name), "detachment") {
				return SkipChildren
			}
			rule, ok = firstArmyRule(node.Rules)
			return nil
		}, WithMaxDepth(n.maxDepth))
		if err != nil {
			return nil, err
		}
	}
	if !ok {
		return []ArmyRule{}, nil
	}

	refs, err := n.referenceGroups(force)
	if err != nil {
		return nil, err
	}
	ar := ArmyRule{Name: strings.TrimSpace(rule.Name), Description: rule.Description, References: refs}
	if d, found := n.ref.Description(ar.Name); found {
		ar.Description = d
	}
	return []ArmyRule{ar}, nil
}

func firstArmyRule(rules []bsdata.Rule) (bsdata.Rule, bool) {
	for _, r := range rules {
		if strings.Contains(r.Description, armyRuleMarker) {
			return r, true
		}
	}
	return bsdata.Rule{}, false
}

// referenceGroups collects named clusters of sub-rules from upgrades that
// carry several profiles, keeping only profiles that read as army-wide rules.
func (n *Normalizer) referenceGroups(force *bsdata.Force) ([]ReferenceGroup, error) {
	var groups []ReferenceGroup
	seen := make(map[string]bool)

	err := Walk(force.Selections, func(node, _ *bsdata.SelectionNode, _ int) error {
		if !strings.EqualFold(node.Type, "upgrade") || len(node.Profiles) < 2 {
			return nil
		}
		name := strings.TrimSpace(node.Name)
		if name == "" || seen[name] || strings.Contains(strings.ToLower(name), "detachment") {
			return nil
		}

		var rules []Rule
		for _, p := range node.Profiles {
			if !isArmyWideProfile(p) {
				continue
			}
			rules = append(rules, Rule{Name: p.Name, Description: n.profileRuleText(p)})
		}
		if len(rules) > 0 {
			seen[name] = true
			groups = append(groups, ReferenceGroup{Name: name, Rules: rules})
		}
		return nil
	}, WithMaxDepth(n.maxDepth))
	return groups, err
}

func isArmyWideProfile(p bsdata.Profile) bool {
	if strings.TrimSpace(p.Name) == "" || strings.Contains(strings.ToLower(p.Name), "detachment") {
		return false
	}
	for _, c := range p.Characteristics {
		if equalsAnyFold(strings.TrimSpace(c.Name), weaponStatNames) {
			return false
		}
	}
	text := profileText(p)
	if hit, _ := containsAnyFold(text, bearerPhrases); hit {
		return false
	}
	if hit, _ := containsAnyFold(text, scopedPhrases); hit && weaponModifier.MatchString(text) {
		return false
	}
	return true
}

func profileText(p bsdata.Profile) string {
	var parts []string
	for _, c := range p.Characteristics {
		if v := characteristicValue(c); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

func characteristicValue(c bsdata.Characteristic) string {
	if c.Text != "" {
		return value(c.Text)
	}
	return value(c.Value)
}

// profileRuleText prefers the reference text and otherwise rebuilds one from
// the profile's characteristics, "Name: value" per line.
func (n *Normalizer) profileRuleText(p bsdata.Profile) string {
	if d, ok := n.ref.Description(p.Name); ok {
		return d
	}
	var lines []string
	for _, c := range p.Characteristics {
		v := characteristicValue(c)
		if v == "" {
			continue
		}
		if c.Name == "Effect" {
			lines = append(lines, v)
		} else {
			lines = append(lines, c.Name+": "+v)
		}
	}
	if len(lines) == 0 {
		return descriptionNotFound
	}
	return strings.Join(lines, "\n")
}
