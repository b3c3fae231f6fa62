package parser

import (
	"strings"

	"github.com/MarshallMM/GrimDarkRoster/internal/bsdata"
)

// BuildWeapon turns a weapon-group node into a Weapon carrying count copies.
// Profiles are read from the node itself, or failing that from its direct
// children (a wargear bundle holding the actual weapon). ok is false when
// neither level has a weapon profile.
func BuildWeapon(node *bsdata.SelectionNode, count int) (w Weapon, ok bool) {
	if node == nil {
		return Weapon{}, false
	}
	profiles := weaponProfiles(node.Profiles)
	if len(profiles) == 0 {
		for _, child := range node.Selections {
			if child != nil {
				profiles = append(profiles, weaponProfiles(child.Profiles)...)
			}
		}
	}
	if len(profiles) == 0 {
		return Weapon{}, false
	}

	name := strings.TrimSpace(node.Name)
	if name == "" {
		name = profiles[0].Name
	}
	return Weapon{Name: name, Count: count, Profiles: profiles}, true
}

func weaponProfiles(profiles []bsdata.Profile) []WeaponProfile {
	var out []WeaponProfile
	for _, p := range profiles {
		if !isWeaponProfile(p) {
			continue
		}
		skill := value(Characteristic(p, "BS"))
		if skill == "" {
			skill = value(Characteristic(p, "WS"))
		}
		out = append(out, WeaponProfile{
			Name:     p.Name,
			Type:     p.TypeName,
			Keywords: splitKeywords(Characteristic(p, "Keywords")),
			Range:    value(Characteristic(p, "Range")),
			Attacks:  value(Characteristic(p, "A")),
			Skill:    skill,
			Strength: value(Characteristic(p, "S")),
			AP:       value(Characteristic(p, "AP")),
			Damage:   value(Characteristic(p, "D")),
		})
	}
	return out
}

func splitKeywords(raw string) []string {
	out := []string{}
	if value(raw) == "" {
		return out
	}
	for _, kw := range strings.Split(raw, ",") {
		if kw = value(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// mergeWeapon adds w to list, summing counts when the name is already there.
func mergeWeapon(list []Weapon, w Weapon) []Weapon {
	for i := range list {
		if list[i].Name == w.Name {
			list[i].Count += w.Count
			return list
		}
	}
	return append(list, w)
}
