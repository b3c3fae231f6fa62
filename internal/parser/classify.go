package parser

import (
	"strings"

	"github.com/MarshallMM/GrimDarkRoster/internal/bsdata"
)

// Role is the inferred part a selection node plays in a roster.
type Role int

const (
	RoleUnknown Role = iota
	RoleUnit
	RoleModel
	RoleUpgrade
	RoleWeaponGroup
)

func (r Role) String() string {
	switch r {
	case RoleUnit:
		return "unit"
	case RoleModel:
		return "model"
	case RoleUpgrade:
		return "upgrade"
	case RoleWeaponGroup:
		return "weapon-group"
	default:
		return "unknown"
	}
}

const (
	profileUnit   = "Unit"
	profileModel  = "Model"
	profileRanged = "Ranged Weapons"
	profileMelee  = "Melee Weapons"
)

// Classify infers a node's role. The declared type is only a hint: a node
// holding model children is a unit whatever it claims to be, an untyped node
// with a statline is a model, and weapon profiles on the node or one level
// below make it a weapon group.
func Classify(node *bsdata.SelectionNode) Role {
	if node == nil {
		return RoleUnknown
	}
	declared := strings.ToLower(strings.TrimSpace(node.Type))

	switch declared {
	case "unit":
		return RoleUnit
	case "model", "":
		if hasModelChild(node) {
			return RoleUnit
		}
	}
	if declared == "model" {
		return RoleModel
	}
	if declared == "" && hasProfileType(node.Profiles, profileUnit) {
		return RoleModel
	}
	if hasWeaponProfiles(node) {
		return RoleWeaponGroup
	}
	if declared == "upgrade" {
		return RoleUpgrade
	}
	return RoleUnknown
}

// IsUnitRoot reports whether node starts a unit of its own: a unit or
// model that does not sit directly inside a unit.
func IsUnitRoot(node, parent *bsdata.SelectionNode) bool {
	switch Classify(node) {
	case RoleUnit, RoleModel:
		return parent == nil || Classify(parent) != RoleUnit
	}
	return false
}

func hasModelChild(node *bsdata.SelectionNode) bool {
	for _, child := range node.Selections {
		if child != nil && strings.EqualFold(child.Type, "model") {
			return true
		}
	}
	return false
}

func hasProfileType(profiles []bsdata.Profile, typeName string) bool {
	for _, p := range profiles {
		if strings.EqualFold(p.TypeName, typeName) {
			return true
		}
	}
	return false
}

func isWeaponProfile(p bsdata.Profile) bool {
	return strings.EqualFold(p.TypeName, profileRanged) || strings.EqualFold(p.TypeName, profileMelee)
}

func hasWeaponProfiles(node *bsdata.SelectionNode) bool {
	for _, p := range node.Profiles {
		if isWeaponProfile(p) {
			return true
		}
	}
	for _, child := range node.Selections {
		if child == nil {
			continue
		}
		for _, p := range child.Profiles {
			if isWeaponProfile(p) {
				return true
			}
		}
	}
	return false
}
