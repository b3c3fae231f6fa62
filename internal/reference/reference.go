// Package reference is the static rules dataset used to replace terse inline
// rule text with canonical descriptions. A Lookup is built once at startup and
// never mutated afterwards, so it may be shared freely between goroutines.
package reference

import (
	"strings"
)

type Table string

const (
	Abilities           Table = "abilities"
	Stratagems          Table = "stratagems"
	DetachmentAbilities Table = "detachment_abilities"
	DatasheetAbilities  Table = "datasheet_abilities"
	Factions            Table = "factions"
	Datasheets          Table = "datasheets"
	Keywords            Table = "keywords"
	Leaders             Table = "leaders"
)

// AllTables lists every table in load order.
var AllTables = []Table{
	Abilities, Stratagems, DetachmentAbilities, DatasheetAbilities,
	Factions, Datasheets, Keywords, Leaders,
}

// descriptionTables is the search order for description lookups.
var descriptionTables = []Table{Abilities, DetachmentAbilities, Stratagems, DatasheetAbilities}

// Record is one row of a reference table. Attached is only used by the
// leaders table and names the units a leader may join.
type Record struct {
	ID          string   `yaml:"id,omitempty"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	FactionID   string   `yaml:"faction_id,omitempty"`
	Attached    []string `yaml:"attached,omitempty"`
}

type Lookup struct {
	tables map[Table][]Record
	exact  map[Table]map[string]int
}

// New copies tables into an immutable Lookup. Within a table the first record
// of a given name wins exact lookups.
func New(tables map[Table][]Record) *Lookup {
	l := &Lookup{
		tables: make(map[Table][]Record, len(tables)),
		exact:  make(map[Table]map[string]int, len(tables)),
	}
	for t, recs := range tables {
		cp := make([]Record, len(recs))
		copy(cp, recs)
		l.tables[t] = cp

		idx := make(map[string]int, len(cp))
		for i, r := range cp {
			if _, seen := idx[r.Name]; !seen && r.Name != "" {
				idx[r.Name] = i
			}
		}
		l.exact[t] = idx
	}
	return l
}

func Empty() *Lookup { return New(nil) }

// Description returns the canonical text for name, matched exactly and
// case-sensitively. Records without text do not count as a match.
func (l *Lookup) Description(name string) (string, bool) {
	if l == nil || name == "" {
		return "", false
	}
	for _, t := range descriptionTables {
		if i, ok := l.exact[t][name]; ok {
			if d := l.tables[t][i].Description; d != "" {
				return d, true
			}
		}
	}
	return "", false
}

// PrefixDescription is the loose fallback: the first record, in table order,
// whose name is a case-insensitive prefix of name or has name as its prefix.
func (l *Lookup) PrefixDescription(name string) (string, bool) {
	if l == nil {
		return "", false
	}
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return "", false
	}
	for _, t := range descriptionTables {
		for _, r := range l.tables[t] {
			if r.Description == "" || r.Name == "" {
				continue
			}
			key := strings.ToLower(r.Name)
			if strings.HasPrefix(want, key) || strings.HasPrefix(key, want) {
				return r.Description, true
			}
		}
	}
	return "", false
}

// Records returns a copy of one table.
func (l *Lookup) Records(t Table) []Record {
	if l == nil {
		return nil
	}
	out := make([]Record, len(l.tables[t]))
	copy(out, l.tables[t])
	return out
}

// Factions returns the faction names, used as keyword vocabulary.
func (l *Lookup) Factions() []string {
	if l == nil {
		return nil
	}
	var out []string
	for _, r := range l.tables[Factions] {
		if r.Name != "" {
			out = append(out, r.Name)
		}
	}
	return out
}

// LeaderTargets returns the units the named leader can be attached to.
func (l *Lookup) LeaderTargets(leader string) []string {
	if l == nil {
		return nil
	}
	if i, ok := l.exact[Leaders][leader]; ok {
		return append([]string(nil), l.tables[Leaders][i].Attached...)
	}
	return nil
}

func (l *Lookup) Datasheet(name string) (Record, bool) {
	if l == nil {
		return Record{}, false
	}
	if i, ok := l.exact[Datasheets][name]; ok {
		return l.tables[Datasheets][i], true
	}
	return Record{}, false
}

// Len reports the total number of records across all tables.
func (l *Lookup) Len() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, recs := range l.tables {
		n += len(recs)
	}
	return n
}

// Merge concatenates the tables of ls in order. Earlier lookups win exact
// matches on shared names.
func Merge(ls ...*Lookup) *Lookup {
	tables := make(map[Table][]Record)
	for _, l := range ls {
		if l == nil {
			continue
		}
		for t, recs := range l.tables {
			tables[t] = append(tables[t], recs...)
		}
	}
	return New(tables)
}
