package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v2"

	"github.com/MarshallMM/GrimDarkRoster/internal/parser"
)

// LibraryUnit is the on-disk shape of one unit library file.
type LibraryUnit struct {
	Name           string          `yaml:"name"`
	Type           string          `yaml:"type"`
	Cost           int             `yaml:"cost"`
	Warlord        bool            `yaml:"warlord,omitempty"`
	Abilities      []string        `yaml:"abilities,omitempty"`
	Keywords       []string        `yaml:"keywords,omitempty"`
	Models         []LibraryModel  `yaml:"models"`
	LoadoutOptions []LoadoutOption `yaml:"loadout_options,omitempty"`
}

type LibraryModel struct {
	Name        string                   `yaml:"name"`
	Count       int                      `yaml:"count"`
	Stats       map[string]string        `yaml:"stats,omitempty"`
	BaseLoadout []string                 `yaml:"base_loadout,omitempty"`
	Loadouts    map[string]WeaponProfile `yaml:"loadouts,omitempty"`
}

// LoadoutOption records a wargear or enhancement pick.
type LoadoutOption struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Options     []string `yaml:"options,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

type WeaponProfile struct {
	Name            string            `yaml:"name"`
	Type            string            `yaml:"type"`
	Characteristics map[string]string `yaml:",inline"`
}

// WriteLibrary writes one YAML file per unit into dir and returns the file
// names in roster order. Units sharing a name get a numeric suffix.
func WriteLibrary(r *parser.Roster, dir string) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("export: nil roster")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: mkdir: %w", err)
	}

	used := make(map[string]int)
	var files []string
	for _, u := range r.Units {
		base := FileName(u.Name)
		used[base]++
		name := base + ".yaml"
		if n := used[base]; n > 1 {
			name = fmt.Sprintf("%s_%d.yaml", base, n)
		}

		data, err := yaml.Marshal(LibraryUnitFrom(u))
		if err != nil {
			return files, fmt.Errorf("export: encode %s: %w", u.Name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return files, fmt.Errorf("export: write %s: %w", name, err)
		}
		files = append(files, name)
	}
	return files, nil
}

// LoadLibraryUnit reads one unit library file.
func LoadLibraryUnit(path string) (*LibraryUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("export: read %s: %w", path, err)
	}
	var u LibraryUnit
	if err := yaml.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("export: parse %s: %w", path, err)
	}
	return &u, nil
}

// LibraryUnitFrom converts a normalized unit to the library layout.
// Statlines are matched to models by name; a lone statline applies to every
// model.
func LibraryUnitFrom(u parser.Unit) LibraryUnit {
	lu := LibraryUnit{
		Name:     u.Name,
		Type:     strings.ToLower(u.Category),
		Cost:     u.Points,
		Warlord:  u.IsWarlord,
		Keywords: append(append([]string(nil), u.FactionKeywords...), u.Keywords...),
	}
	for _, bucket := range sortedBuckets(u.Abilities) {
		for _, rule := range u.Abilities[bucket] {
			lu.Abilities = appendMissing(lu.Abilities, rule.Name)
		}
	}

	stats := make(map[string]parser.Statline, len(u.Stats))
	for _, s := range u.Stats {
		stats[s.Name] = s
	}
	for _, m := range u.Models {
		lm := LibraryModel{Name: m.Name, Count: m.Count}
		if s, ok := stats[m.Name]; ok {
			lm.Stats = statMap(s)
		} else if len(u.Stats) == 1 {
			lm.Stats = statMap(u.Stats[0])
		}
		for _, w := range m.Weapons {
			lm.BaseLoadout = append(lm.BaseLoadout, fmt.Sprintf("%dx %s", w.Count, w.Name))
			for _, p := range w.Profiles {
				if lm.Loadouts == nil {
					lm.Loadouts = make(map[string]WeaponProfile)
				}
				lm.Loadouts[p.Name] = weaponProfile(p)
			}
		}
		for _, g := range m.Wargear {
			lu.LoadoutOptions = append(lu.LoadoutOptions, LoadoutOption{
				Name: g.Name, Type: "upgrade", Options: []string{m.Name},
			})
		}
		for _, e := range m.Enhancements {
			lu.LoadoutOptions = append(lu.LoadoutOptions, LoadoutOption{
				Name: e.Name, Type: "enhancement", Options: []string{m.Name}, Description: e.Description,
			})
		}
		lu.Models = append(lu.Models, lm)
	}
	return lu
}

func statMap(s parser.Statline) map[string]string {
	out := make(map[string]string)
	for k, v := range map[string]string{"M": s.M, "T": s.T, "SV": s.SV, "W": s.W, "LD": s.LD, "OC": s.OC} {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

func weaponProfile(p parser.WeaponProfile) WeaponProfile {
	chars := make(map[string]string)
	for k, v := range map[string]string{
		"Range": p.Range, "A": p.Attacks, "Skill": p.Skill, "S": p.Strength, "AP": p.AP, "D": p.Damage,
		"Keywords": strings.Join(p.Keywords, ", "),
	} {
		if v != "" {
			chars[k] = v
		}
	}
	return WeaponProfile{Name: p.Name, Type: p.Type, Characteristics: chars}
}

// FileName turns a unit name into a lower snake case file stem, e.g.
// "Bladeguard Veteran Squad" becomes "bladeguard_veteran_squad".
func FileName(name string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	out := strings.TrimSuffix(b.String(), "_")
	if out == "" {
		return "unit"
	}
	return out
}

func appendMissing(list []string, s string) []string {
	for _, item := range list {
		if item == s {
			return list
		}
	}
	return append(list, s)
}
