package parser

import (
	"strings"

	"github.com/MarshallMM/GrimDarkRoster/internal/bsdata"
)

const (
	factionPrefix        = "Faction:"
	configurationKeyword = "Configuration"
)

// SplitKeywords partitions category names into plain keywords and faction
// keywords. "Faction: X" entries yield X; entries mentioning a known faction
// name are kept whole.
func SplitKeywords(categories []bsdata.Category, factions []string) (keywords, factionKeywords []string) {
	keywords, factionKeywords = []string{}, []string{}
	var rest []string

	for _, c := range categories {
		name := strings.TrimSpace(c.Name)
		switch {
		case name == "":
		case strings.HasPrefix(name, factionPrefix):
			if f := strings.TrimSpace(strings.TrimPrefix(name, factionPrefix)); f != "" {
				factionKeywords = appendUnique(factionKeywords, f)
			}
		case mentionsFaction(name, factions):
			factionKeywords = appendUnique(factionKeywords, name)
		default:
			rest = append(rest, name)
		}
	}

	for _, name := range rest {
		if name == configurationKeyword || equalsAnyFold(name, factionKeywords) {
			continue
		}
		keywords = appendUnique(keywords, name)
	}
	return keywords, factionKeywords
}

func mentionsFaction(name string, factions []string) bool {
	ok, _ := containsAnyFold(name, factions)
	return ok
}
