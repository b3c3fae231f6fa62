package reference

import (
	"encoding/xml"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BattleScribe catalogue structures, reduced to what the reference tables need.
type Catalogue struct {
	XMLName                xml.Name         `xml:"catalogue"`
	ID                     string           `xml:"id,attr"`
	Name                   string           `xml:"name,attr"`
	SharedSelectionEntries []SelectionEntry `xml:"sharedSelectionEntries>selectionEntry"`
	SelectionEntries       []SelectionEntry `xml:"selectionEntries>selectionEntry"`
	CategoryEntries        []CategoryEntry  `xml:"categoryEntries>categoryEntry"`
	SharedProfiles         []Profile        `xml:"sharedProfiles>profile"`
	SharedRules            []Rule           `xml:"sharedRules>rule"`
}

type SelectionEntry struct {
	ID                   string                `xml:"id,attr"`
	Name                 string                `xml:"name,attr"`
	Type                 string                `xml:"type,attr"`
	Hidden               string                `xml:"hidden,attr"`
	Profiles             []Profile             `xml:"profiles>profile"`
	Rules                []Rule                `xml:"rules>rule"`
	SelectionEntries     []SelectionEntry      `xml:"selectionEntries>selectionEntry"`
	SelectionEntryGroups []SelectionEntryGroup `xml:"selectionEntryGroups>selectionEntryGroup"`
}

type SelectionEntryGroup struct {
	ID               string           `xml:"id,attr"`
	Name             string           `xml:"name,attr"`
	Hidden           string           `xml:"hidden,attr"`
	SelectionEntries []SelectionEntry `xml:"selectionEntries>selectionEntry"`
}

type Profile struct {
	ID              string           `xml:"id,attr"`
	Name            string           `xml:"name,attr"`
	TypeName        string           `xml:"typeName,attr"`
	Hidden          string           `xml:"hidden,attr"`
	Characteristics []Characteristic `xml:"characteristics>characteristic"`
}

type Characteristic struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type Rule struct {
	ID          string `xml:"id,attr"`
	Name        string `xml:"name,attr"`
	Hidden      string `xml:"hidden,attr"`
	Description string `xml:"description"`
}

type CategoryEntry struct {
	ID     string `xml:"id,attr"`
	Name   string `xml:"name,attr"`
	Hidden string `xml:"hidden,attr"`
}

// FindCatalogueFiles lists every .cat file below dir.
func FindCatalogueFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".cat") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// FromCatalogues extracts reference tables from BattleScribe catalogue files.
func FromCatalogues(paths []string) (*Lookup, error) {
	b := newTableBuilder()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reference: read %s: %w", path, err)
		}
		var cat Catalogue
		if err := xml.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("reference: parse %s: %w", path, err)
		}
		b.addCatalogue(&cat)
	}
	return New(b.tables), nil
}

type tableBuilder struct {
	tables map[Table][]Record
	seen   map[Table]map[string]bool
}

func newTableBuilder() *tableBuilder {
	return &tableBuilder{
		tables: make(map[Table][]Record),
		seen:   make(map[Table]map[string]bool),
	}
}

func (b *tableBuilder) add(t Table, r Record) {
	if r.Name == "" {
		return
	}
	if b.seen[t] == nil {
		b.seen[t] = make(map[string]bool)
	}
	if b.seen[t][r.Name] {
		return
	}
	b.seen[t][r.Name] = true
	b.tables[t] = append(b.tables[t], r)
}

func (b *tableBuilder) addCatalogue(cat *Catalogue) {
	b.add(Factions, Record{ID: cat.ID, Name: factionName(cat.Name)})

	for _, rule := range cat.SharedRules {
		if rule.Hidden != "true" {
			b.add(Abilities, Record{ID: rule.ID, Name: rule.Name, Description: clean(rule.Description), FactionID: cat.ID})
		}
	}
	for _, p := range cat.SharedProfiles {
		if p.Hidden != "true" && p.TypeName == "Abilities" {
			b.add(Abilities, Record{ID: p.ID, Name: p.Name, Description: profileDescription(p), FactionID: cat.ID})
		}
	}
	for _, c := range cat.CategoryEntries {
		if c.Hidden != "true" {
			b.add(Keywords, Record{ID: c.ID, Name: c.Name, FactionID: cat.ID})
		}
	}

	for _, entries := range [][]SelectionEntry{cat.SharedSelectionEntries, cat.SelectionEntries} {
		for i := range entries {
			b.addEntry(cat, &entries[i], "")
		}
	}
}

func (b *tableBuilder) addEntry(cat *Catalogue, e *SelectionEntry, parent string) {
	if e.Hidden == "true" {
		return
	}

	if strings.EqualFold(parent, "Detachment") {
		for _, rule := range e.Rules {
			b.add(DetachmentAbilities, Record{ID: rule.ID, Name: rule.Name, Description: clean(rule.Description), FactionID: cat.ID})
		}
	}

	if e.Type == "unit" || e.Type == "model" {
		if hasProfileType(e.Profiles, "Unit") {
			b.add(Datasheets, Record{ID: e.ID, Name: e.Name, FactionID: cat.ID})
		}
		for _, p := range e.Profiles {
			if p.Hidden == "true" || p.TypeName != "Abilities" {
				continue
			}
			desc := profileDescription(p)
			b.add(DatasheetAbilities, Record{ID: p.ID, Name: p.Name, Description: desc, FactionID: cat.ID})
			if strings.EqualFold(p.Name, "Leader") {
				if targets := leaderTargets(desc); len(targets) > 0 {
					b.add(Leaders, Record{ID: e.ID, Name: e.Name, Attached: targets, FactionID: cat.ID})
				}
			}
		}
	}

	for i := range e.SelectionEntries {
		b.addEntry(cat, &e.SelectionEntries[i], e.Name)
	}
	for _, g := range e.SelectionEntryGroups {
		if g.Hidden == "true" {
			continue
		}
		for i := range g.SelectionEntries {
			b.addEntry(cat, &g.SelectionEntries[i], g.Name)
		}
	}
}

func hasProfileType(profiles []Profile, typeName string) bool {
	for _, p := range profiles {
		if p.TypeName == typeName && p.Hidden != "true" {
			return true
		}
	}
	return false
}

func profileDescription(p Profile) string {
	for _, c := range p.Characteristics {
		if strings.Contains(strings.ToLower(c.Name), "description") {
			return clean(c.Value)
		}
	}
	return ""
}

// leaderTargets pulls the bulleted unit names out of a Leader ability text.
func leaderTargets(desc string) []string {
	var out []string
	for _, line := range strings.Split(desc, "\n") {
		line = strings.TrimSpace(line)
		for _, bullet := range []string{"■", "•"} {
			if strings.HasPrefix(line, bullet) {
				if name := strings.TrimSpace(strings.TrimPrefix(line, bullet)); name != "" {
					out = append(out, name)
				}
				break
			}
		}
	}
	return out
}

// factionName drops the grand-alliance prefix: "Imperium - Space Marines" -> "Space Marines".
func factionName(catalogue string) string {
	if i := strings.LastIndex(catalogue, " - "); i >= 0 {
		return strings.TrimSpace(catalogue[i+3:])
	}
	return strings.TrimSpace(catalogue)
}

func clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}
