package parser

import "github.com/MarshallMM/GrimDarkRoster/internal/bsdata"

// Fixture builders for selection trees.

func sel(name, typ string, children ...*bsdata.SelectionNode) *bsdata.SelectionNode {
	return &bsdata.SelectionNode{Name: name, Type: typ, Selections: children}
}

func withNumber(n *bsdata.SelectionNode, number int) *bsdata.SelectionNode {
	n.Number = number
	return n
}

func withPoints(n *bsdata.SelectionNode, pts float64) *bsdata.SelectionNode {
	n.Costs = append(n.Costs, bsdata.Cost{Name: "pts", Value: pts})
	return n
}

func withCategories(n *bsdata.SelectionNode, cats ...bsdata.Category) *bsdata.SelectionNode {
	n.Categories = append(n.Categories, cats...)
	return n
}

func withProfiles(n *bsdata.SelectionNode, profiles ...bsdata.Profile) *bsdata.SelectionNode {
	n.Profiles = append(n.Profiles, profiles...)
	return n
}

func withRules(n *bsdata.SelectionNode, rules ...bsdata.Rule) *bsdata.SelectionNode {
	n.Rules = append(n.Rules, rules...)
	return n
}

func chars(kv ...string) []bsdata.Characteristic {
	var out []bsdata.Characteristic
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, bsdata.Characteristic{Name: kv[i], Text: kv[i+1]})
	}
	return out
}

func rangedProfile(name string) bsdata.Profile {
	return bsdata.Profile{
		Name:     name,
		TypeName: "Ranged Weapons",
		Characteristics: chars(
			"Range", `24"`, "A", "2", "BS", "3+", "S", "4", "AP", "-1", "D", "1",
			"Keywords", "Assault, Heavy",
		),
	}
}

func meleeProfile(name string) bsdata.Profile {
	return bsdata.Profile{
		Name:            name,
		TypeName:        "Melee Weapons",
		Characteristics: chars("Range", "Melee", "A", "3", "WS", "3+", "S", "4", "AP", "0", "D", "1", "Keywords", "-"),
	}
}

func unitProfile(name string) bsdata.Profile {
	return bsdata.Profile{
		Name:            name,
		TypeName:        "Unit",
		Characteristics: chars("M", `6"`, "T", "4", "SV", "3+", "W", "2", "LD", "6+", "OC", "2"),
	}
}

func abilityProfile(name, desc string) bsdata.Profile {
	return bsdata.Profile{Name: name, TypeName: "Abilities", Characteristics: chars("Description", desc)}
}

func primary(name string) bsdata.Category { return bsdata.Category{Name: name, Primary: true} }

func category(name string) bsdata.Category { return bsdata.Category{Name: name} }

// intercessorSquad is scenario A: two "Intercessor" model entries of 3 and
// 2 copies, each carrying a bolt rifle.
func intercessorSquad() *bsdata.SelectionNode {
	return withCategories(withPoints(withProfiles(
		sel("Intercessor Squad", "unit",
			withNumber(sel("Intercessor", "model",
				withNumber(withProfiles(sel("Bolt rifle", "upgrade"), rangedProfile("Bolt rifle")), 3),
				withNumber(sel("Bolt pistol", "upgrade"), 0),
			), 3),
			withNumber(sel("Intercessor", "model",
				withNumber(withProfiles(sel("Bolt rifle", "upgrade"), rangedProfile("Bolt rifle")), 2),
			), 2),
		),
		unitProfile("Intercessor"),
	), 80),
		primary("Battleline"), category("Infantry"), category("Faction: Adeptus Astartes"), category("Imperium"),
	)
}
