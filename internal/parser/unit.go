package parser

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MarshallMM/GrimDarkRoster/internal/bsdata"
)

// unitNamespace seeds IDs for exports that leave selection ids out, so the
// same input always yields the same ID.
var unitNamespace = uuid.MustParse("6f1c1c9e-3b0a-4f43-9a8e-7c2b1d5e4a10")

// BuildUnit normalizes one unit or model root. Nodes that are neither yield
// nil with no error. Points are not checked here; callers drop point-less
// placeholders themselves.
func (n *Normalizer) BuildUnit(node *bsdata.SelectionNode) (*Unit, error) {
	if node == nil {
		return nil, nil
	}
	return n.buildUnit(node, node.Name)
}

func (n *Normalizer) buildUnit(root *bsdata.SelectionNode, key string) (*Unit, error) {
	role := Classify(root)
	if role != RoleUnit && role != RoleModel {
		return nil, nil
	}

	u := &Unit{
		ID:       root.ID,
		Name:     strings.TrimSpace(root.Name),
		Category: PrimaryCategory(root),
		Points:   Points(root),
		Stats:    []Statline{},
	}
	if u.ID == "" {
		u.ID = uuid.NewSHA1(unitNamespace, []byte(key)).String()
	}

	// The full subtree walk also rejects cyclic input before the model
	// traversal below recurses into it.
	seenStats := make(map[string]bool)
	err := Walk([]*bsdata.SelectionNode{root}, func(node, parent *bsdata.SelectionNode, _ int) error {
		if node != root && IsUnitRoot(node, parent) {
			return SkipChildren
		}
		if isWarlordMarker(node) {
			u.IsWarlord = true
		}
		for _, p := range node.Profiles {
			if !strings.EqualFold(p.TypeName, profileUnit) || seenStats[p.Name] {
				continue
			}
			seenStats[p.Name] = true
			u.Stats = append(u.Stats, statline(p))
		}
		return nil
	}, WithMaxDepth(n.maxDepth))
	if err != nil {
		return nil, err
	}

	b := modelBuilder{maxDepth: n.maxDepth, index: make(map[string]int)}
	if err := b.build(root, role); err != nil {
		return nil, err
	}
	u.Models = b.models

	rules, err := CollectRules(root, WithMaxDepth(n.maxDepth))
	if err != nil {
		return nil, err
	}
	u.Abilities = n.abilities(rules, u.Name)
	u.Keywords, u.FactionKeywords = SplitKeywords(root.Categories, n.factions)

	n.log.Debug("unit built",
		zap.String("name", u.Name),
		zap.String("category", u.Category),
		zap.Int("points", u.Points),
		zap.Int("models", len(u.Models)),
		zap.Bool("warlord", u.IsWarlord),
	)
	return u, nil
}

func statline(p bsdata.Profile) Statline {
	return Statline{
		Name: p.Name,
		M:    value(Characteristic(p, "M")),
		T:    value(Characteristic(p, "T")),
		SV:   value(Characteristic(p, "SV")),
		W:    value(Characteristic(p, "W")),
		LD:   value(Characteristic(p, "LD")),
		OC:   value(Characteristic(p, "OC")),
	}
}

// abilities buckets the collected rules and resolves their text.
func (n *Normalizer) abilities(rules []CollectedRule, unitName string) map[string][]Rule {
	out := make(map[string][]Rule)
	for _, r := range rules {
		for _, bucket := range n.categorizer.Categorize(r) {
			out[bucket] = append(out[bucket], Rule{Name: r.Name, Description: n.describe(bucket, r, unitName)})
		}
	}
	return out
}

// describe picks the text shown for a rule. Leader text is cleaned rather
// than replaced; everything else prefers the reference dataset.
func (n *Normalizer) describe(bucket string, r CollectedRule, unitName string) string {
	if bucket == BucketLeader || strings.EqualFold(r.Name, "leader") {
		if text := CleanLeaderText(r.Description); text != "" {
			return text
		}
		if targets := n.ref.LeaderTargets(unitName); len(targets) > 0 {
			return "This model can be attached to the following units:" + lineBreak + "■ " + strings.Join(targets, lineBreak+"■ ")
		}
		return descriptionNotFound
	}
	return n.resolve(r.Name, r.Description)
}

// resolve prefers the canonical text for name, falls back to a loose prefix
// match when the inline text is a placeholder, and finally to the inline text.
func (n *Normalizer) resolve(name, inline string) string {
	if d, ok := n.ref.Description(name); ok {
		return d
	}
	if isPlaceholder(inline) {
		if d, ok := n.ref.PrefixDescription(name); ok {
			return d
		}
		n.log.Debug("reference text missing", zap.String("rule", name))
	}
	if d := strings.TrimSpace(inline); d != "" && d != NoValue {
		return d
	}
	return descriptionNotFound
}

// modelBuilder aggregates the models of one unit by exact name.
type modelBuilder struct {
	maxDepth int
	models   []Model
	index    map[string]int
}

// build collects models for a squad root from its model children. A root
// without model children is its own single model. Loose children of a squad
// (enhancements or wargear picked at unit level) go to the first model.
func (b *modelBuilder) build(root *bsdata.SelectionNode, role Role) error {
	var loose []*bsdata.SelectionNode
	if role == RoleUnit && hasModelChild(root) {
		for _, child := range root.Selections {
			if child == nil {
				continue
			}
			switch Classify(child) {
			case RoleModel:
				if err := b.addModel(child, 1); err != nil {
					return err
				}
			case RoleUnit:
			default:
				loose = append(loose, child)
			}
		}
	}
	if len(b.models) == 0 {
		return b.addModel(root, 0)
	}
	for _, child := range loose {
		b.addChild(0, child, b.models[0].Count)
	}
	return nil
}

func (b *modelBuilder) addModel(node *bsdata.SelectionNode, depth int) error {
	if depth > b.maxDepth {
		return fmt.Errorf("%w: model %q nested deeper than %d", ErrMalformedTree, node.Name, b.maxDepth)
	}
	count := node.Number
	if count <= 0 {
		count = 1
	}

	name := strings.TrimSpace(node.Name)
	i, ok := b.index[name]
	if !ok {
		i = len(b.models)
		b.index[name] = i
		b.models = append(b.models, Model{
			Name:         name,
			Weapons:      []Weapon{},
			Wargear:      []Wargear{},
			Enhancements: []Enhancement{},
		})
	}
	b.models[i].Count += count

	for _, child := range node.Selections {
		if child == nil {
			continue
		}
		switch Classify(child) {
		case RoleModel:
			if err := b.addModel(child, depth+1); err != nil {
				return err
			}
		case RoleUnit:
		default:
			b.addChild(i, child, count)
		}
	}
	return nil
}

// addChild files one direct child of a model as weapon, enhancement or
// wargear. A child without its own number inherits the model's count.
func (b *modelBuilder) addChild(i int, child *bsdata.SelectionNode, modelCount int) {
	count := child.Number
	if count <= 0 {
		count = modelCount
	}
	m := &b.models[i]

	if w, ok := BuildWeapon(child, count); ok {
		m.Weapons = mergeWeapon(m.Weapons, w)
		return
	}
	name := strings.TrimSpace(child.Name)
	if name == "" {
		return
	}
	if isEnhancement(child) {
		m.Enhancements = mergeEnhancement(m.Enhancements, Enhancement{
			Name:        name,
			Count:       count,
			Points:      Points(child),
			Description: enhancementDescription(child),
		})
		return
	}
	if isWarlordMarker(child) {
		return
	}
	m.Wargear = mergeWargear(m.Wargear, Wargear{Name: name, Count: count})
}

// isWarlordMarker matches any name containing "warlord", which also catches
// unrelated items that merely mention the word.
func isWarlordMarker(node *bsdata.SelectionNode) bool {
	if strings.Contains(strings.ToLower(node.Name), "warlord") {
		return true
	}
	for _, c := range node.Categories {
		if c.Name == "Warlord" {
			return true
		}
	}
	return false
}

func isEnhancement(node *bsdata.SelectionNode) bool {
	const marker = "enhancement"
	if strings.Contains(strings.ToLower(node.Group), marker) {
		return true
	}
	for _, p := range node.Profiles {
		if strings.Contains(strings.ToLower(p.TypeName), marker) {
			return true
		}
	}
	for _, c := range node.Categories {
		if strings.Contains(strings.ToLower(c.Name), marker) {
			return true
		}
	}
	return false
}

func enhancementDescription(node *bsdata.SelectionNode) string {
	for _, p := range node.Profiles {
		if d := profileDescription(p); d != "" {
			return d
		}
	}
	for _, r := range node.Rules {
		if d := strings.TrimSpace(r.Description); d != "" {
			return d
		}
	}
	return ""
}

func mergeWargear(list []Wargear, w Wargear) []Wargear {
	for i := range list {
		if list[i].Name == w.Name {
			list[i].Count += w.Count
			return list
		}
	}
	return append(list, w)
}

// mergeEnhancement sums counts; points and text come from the first copy.
func mergeEnhancement(list []Enhancement, e Enhancement) []Enhancement {
	for i := range list {
		if list[i].Name == e.Name {
			list[i].Count += e.Count
			return list
		}
	}
	return append(list, e)
}
