package parser

import (
	"math"
	"strings"

	"github.com/MarshallMM/GrimDarkRoster/internal/bsdata"
)

// NoValue is returned by Characteristic when the profile lacks the field.
// It means "absent" and must never reach the output as data.
const NoValue = "-"

// FallbackCategory is used for nodes with no primary category.
const FallbackCategory = "OTHER DATASHEETS"

// Characteristic returns the named characteristic of p, matched
// case-insensitively, preferring the "$text" rendering over the raw value.
func Characteristic(p bsdata.Profile, name string) string {
	for _, c := range p.Characteristics {
		if !strings.EqualFold(c.Name, name) {
			continue
		}
		if c.Text != "" {
			return c.Text
		}
		if c.Value != "" {
			return c.Value
		}
		return NoValue
	}
	return NoValue
}

// value drops the NoValue sentinel so it never leaks into output.
func value(s string) string {
	s = strings.TrimSpace(s)
	if s == NoValue {
		return ""
	}
	return s
}

// Points returns the node's own "pts"/"Points" cost, or 0.
func Points(node *bsdata.SelectionNode) int {
	if node == nil {
		return 0
	}
	return pointsOf(node.Costs)
}

func pointsOf(costs []bsdata.Cost) int {
	for _, c := range costs {
		if strings.EqualFold(c.Name, "pts") || strings.EqualFold(c.Name, "points") {
			return int(math.Round(c.Value))
		}
	}
	return 0
}

// PrimaryCategory returns the upper-cased name of the category flagged
// primary, or FallbackCategory.
func PrimaryCategory(node *bsdata.SelectionNode) string {
	if node != nil {
		for _, c := range node.Categories {
			if c.Primary && strings.TrimSpace(c.Name) != "" {
				return strings.ToUpper(strings.TrimSpace(c.Name))
			}
		}
	}
	return FallbackCategory
}

// profileDescription resolves an ability-like profile's text from the first
// present field of Description, Effect, Ability.
func profileDescription(p bsdata.Profile) string {
	for _, field := range []string{"Description", "Effect", "Ability"} {
		if v := value(Characteristic(p, field)); v != "" {
			return v
		}
	}
	return ""
}
