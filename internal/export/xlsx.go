// Package export writes a normalized roster out as a spreadsheet or as a
// directory of per-unit YAML library files.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/MarshallMM/GrimDarkRoster/internal/parser"
)

const (
	SheetRoster    = "Roster"
	SheetUnits     = "Units"
	SheetWeapons   = "Weapons"
	SheetAbilities = "Abilities"
)

var (
	unitHeaders    = []string{"Category", "Unit", "Points", "Warlord", "Models", "M", "T", "SV", "W", "LD", "OC", "Keywords", "Faction Keywords"}
	weaponHeaders  = []string{"Unit", "Model", "Weapon", "Count", "Profile", "Type", "Range", "A", "Skill", "S", "AP", "D", "Keywords"}
	abilityHeaders = []string{"Unit", "Bucket", "Rule", "Description"}
)

// WriteXLSX writes r to path, one sheet each for the roster summary, units,
// weapons and abilities. Units are listed in category display order.
func WriteXLSX(r *parser.Roster, path string) (err error) {
	if r == nil {
		return errors.New("export: nil roster")
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetRoster); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	for _, s := range []string{SheetUnits, SheetWeapons, SheetAbilities} {
		if _, err := f.NewSheet(s); err != nil {
			return fmt.Errorf("export: new sheet %s: %w", s, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}

	w := sheetWriter{f: f}
	w.summary(r)

	var units []parser.Unit
	for _, g := range parser.GroupByCategory(r.Units) {
		units = append(units, g.Units...)
	}

	w.header(SheetUnits, unitHeaders, headerStyle)
	for i, u := range units {
		w.unitRow(i+2, u)
	}

	w.header(SheetWeapons, weaponHeaders, headerStyle)
	row := 2
	for _, u := range units {
		for _, m := range u.Models {
			for _, wpn := range m.Weapons {
				for _, p := range wpn.Profiles {
					w.row(SheetWeapons, row, u.Name, m.Name, wpn.Name, wpn.Count, p.Name, p.Type,
						p.Range, p.Attacks, p.Skill, p.Strength, p.AP, p.Damage, strings.Join(p.Keywords, ", "))
					row++
				}
			}
		}
	}

	w.header(SheetAbilities, abilityHeaders, headerStyle)
	row = 2
	for _, u := range units {
		for _, bucket := range sortedBuckets(u.Abilities) {
			for _, rule := range u.Abilities[bucket] {
				w.row(SheetAbilities, row, u.Name, bucket, rule.Name, plainText(rule.Description))
				row++
			}
		}
	}
	if row > 2 {
		w.style(SheetAbilities, "D2", fmt.Sprintf("D%d", row-1), wrapStyle)
	}

	w.widths(SheetRoster, "A", "A", 18)
	w.widths(SheetRoster, "B", "B", 60)
	w.widths(SheetUnits, "A", "B", 24)
	w.widths(SheetUnits, "L", "M", 40)
	w.widths(SheetWeapons, "A", "C", 24)
	w.widths(SheetWeapons, "M", "M", 30)
	w.widths(SheetAbilities, "A", "C", 24)
	w.widths(SheetAbilities, "D", "D", 80)
	if w.err != nil {
		return fmt.Errorf("export: %w", w.err)
	}

	if idx, err := f.GetSheetIndex(SheetUnits); err == nil {
		f.SetActiveSheet(idx)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: mkdir: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

// sheetWriter keeps the first error so the sheet layout reads top to bottom.
type sheetWriter struct {
	f   *excelize.File
	err error
}

func (w *sheetWriter) set(sheet, cell string, v any) {
	if w.err == nil {
		w.err = w.f.SetCellValue(sheet, cell, v)
	}
}

func (w *sheetWriter) row(sheet string, row int, values ...any) {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			w.err = err
			return
		}
		w.set(sheet, cell, v)
	}
}

func (w *sheetWriter) header(sheet string, headers []string, style int) {
	values := make([]any, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	w.row(sheet, 1, values...)
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	w.style(sheet, "A1", last, style)
}

func (w *sheetWriter) style(sheet, from, to string, style int) {
	if w.err == nil {
		w.err = w.f.SetCellStyle(sheet, from, to, style)
	}
}

func (w *sheetWriter) widths(sheet, from, to string, width float64) {
	if w.err == nil {
		w.err = w.f.SetColWidth(sheet, from, to, width)
	}
}

func (w *sheetWriter) summary(r *parser.Roster) {
	w.row(SheetRoster, 1, "Roster", r.Meta.Name)
	w.row(SheetRoster, 2, "Faction", r.Meta.Faction)
	w.row(SheetRoster, 3, "Points", fmt.Sprintf("%d / %d", r.Meta.PointsUsed, r.Meta.PointsLimit))
	row := 4
	if r.Detachment != nil {
		w.row(SheetRoster, row, "Detachment", r.Detachment.Name)
		row++
	}
	for _, ar := range r.ArmyRules {
		w.row(SheetRoster, row, "Army Rule", ar.Name)
		row++
	}
}

func (w *sheetWriter) unitRow(row int, u parser.Unit) {
	var stats parser.Statline
	if len(u.Stats) > 0 {
		stats = u.Stats[0]
	}
	models := make([]string, 0, len(u.Models))
	for _, m := range u.Models {
		models = append(models, fmt.Sprintf("%dx %s", m.Count, m.Name))
	}
	warlord := ""
	if u.IsWarlord {
		warlord = "yes"
	}
	w.row(SheetUnits, row, u.Category, u.Name, u.Points, warlord, strings.Join(models, ", "),
		stats.M, stats.T, stats.SV, stats.W, stats.LD, stats.OC,
		strings.Join(u.Keywords, ", "), strings.Join(u.FactionKeywords, ", "))
}

func sortedBuckets(m map[string][]parser.Rule) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// plainText turns the <br/> line breaks used for display into newlines.
func plainText(s string) string {
	return strings.ReplaceAll(s, "<br/>", "\n")
}
