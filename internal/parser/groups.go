package parser

// CategoryOrder is the display order of unit categories.
var CategoryOrder = []string{
	"EPIC HERO",
	"CHARACTER",
	"BATTLELINE",
	"DEDICATED TRANSPORT",
	"INFANTRY",
	"MOUNTED",
	"BEAST",
	"SWARM",
	"VEHICLE",
	"MONSTER",
	"FORTIFICATION",
	"ALLIED UNITS",
	FallbackCategory,
}

// OtherCategory collects units whose category is not in CategoryOrder.
const OtherCategory = "OTHER"

type CategoryGroup struct {
	Category string `json:"category" yaml:"category"`
	Units    []Unit `json:"units" yaml:"units"`
}

// GroupByCategory groups units in CategoryOrder, keeping roster order within
// a group. Empty groups are left out.
func GroupByCategory(units []Unit) []CategoryGroup {
	known := make(map[string]bool, len(CategoryOrder))
	for _, c := range CategoryOrder {
		known[c] = true
	}
	byCat := make(map[string][]Unit)
	for _, u := range units {
		cat := u.Category
		if !known[cat] {
			cat = OtherCategory
		}
		byCat[cat] = append(byCat[cat], u)
	}

	var out []CategoryGroup
	for _, c := range append(append([]string(nil), CategoryOrder...), OtherCategory) {
		if len(byCat[c]) > 0 {
			out = append(out, CategoryGroup{Category: c, Units: byCat[c]})
		}
	}
	return out
}
