// Package parser turns a raw roster export into the normalized Roster the
// rest of the application displays and stores. Normalization is pure: the
// same input and reference dataset always give the same Roster.
package parser

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/MarshallMM/GrimDarkRoster/internal/bsdata"
	"github.com/MarshallMM/GrimDarkRoster/internal/reference"
)

// Normalizer holds only immutable state and is safe for concurrent use.
type Normalizer struct {
	ref         *reference.Lookup
	categorizer *Categorizer
	factions    []string
	maxDepth    int
	log         *zap.Logger
}

type Option func(*options)

type options struct {
	ref      *reference.Lookup
	vocab    *Vocabulary
	matchers []Matcher
	maxDepth int
	log      *zap.Logger
}

func WithReference(l *reference.Lookup) Option { return func(o *options) { o.ref = l } }

func WithVocabulary(v Vocabulary) Option { return func(o *options) { o.vocab = &v } }

// WithMatchers replaces the categorization table. The faction keyword
// vocabulary still comes from the Vocabulary.
func WithMatchers(m []Matcher) Option { return func(o *options) { o.matchers = m } }

func WithDepthLimit(n int) Option { return func(o *options) { o.maxDepth = n } }

func WithLogger(l *zap.Logger) Option { return func(o *options) { o.log = l } }

func New(opts ...Option) *Normalizer {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ref == nil {
		o.ref = reference.Empty()
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.maxDepth <= 0 {
		o.maxDepth = DefaultMaxDepth
	}
	vocab := DefaultVocabulary()
	if o.vocab != nil {
		vocab = *o.vocab
	}

	n := &Normalizer{
		ref:      o.ref,
		maxDepth: o.maxDepth,
		log:      o.log,
	}
	if o.matchers != nil {
		n.categorizer = NewCategorizerWith(o.matchers)
	} else {
		n.categorizer = NewCategorizer(vocab)
	}
	n.factions = append(append([]string(nil), vocab.FactionKeywords...), o.ref.Factions()...)
	return n
}

// Parse decodes a raw export and normalizes it. A document that does not
// parse, or has no roster or force, fails with ErrMalformedInput.
func (n *Normalizer) Parse(raw []byte) (*Roster, error) {
	doc, err := bsdata.Unmarshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return n.Normalize(doc)
}

// Normalize builds the Roster from the first force of doc.
func (n *Normalizer) Normalize(doc *bsdata.Document) (*Roster, error) {
	force := doc.FirstForce()
	if force == nil {
		return nil, fmt.Errorf("%w: no roster or force", ErrMalformedInput)
	}
	r := doc.Roster

	out := &Roster{
		Meta: Meta{
			Name:        strings.TrimSpace(r.Name),
			Faction:     factionName(force.CatalogueName),
			PointsUsed:  pointsOf(r.Costs),
			PointsLimit: pointsOf(r.CostLimits),
		},
		Units: []Unit{},
	}

	var err error
	if out.Detachment, err = n.findDetachment(force); err != nil {
		return nil, err
	}
	if out.ArmyRules, err = n.findArmyRule(force); err != nil {
		return nil, err
	}
	if out.Units, err = n.collectUnits(force); err != nil {
		return nil, err
	}

	n.log.Debug("roster normalized",
		zap.String("name", out.Meta.Name),
		zap.String("faction", out.Meta.Faction),
		zap.Int("units", len(out.Units)),
		zap.Int("armyRules", len(out.ArmyRules)),
	)
	return out, nil
}

// collectUnits builds every unit root of the force. The whole tree is
// visited; IsUnitRoot keeps the models of a squad from surfacing as units of
// their own, while a unit carried by a model or an upgrade is built separately.
func (n *Normalizer) collectUnits(force *bsdata.Force) ([]Unit, error) {
	units := []Unit{}
	ordinal := 0
	err := Walk(force.Selections, func(node, parent *bsdata.SelectionNode, _ int) error {
		if !IsUnitRoot(node, parent) {
			return nil
		}
		key := fmt.Sprintf("%s/%d/%s", force.Name, ordinal, node.Name)
		ordinal++

		u, err := n.buildUnit(node, key)
		if err != nil {
			return err
		}
		if u == nil || u.Points <= 0 {
			n.log.Debug("unit skipped", zap.String("name", node.Name), zap.Int("points", Points(node)))
			return nil
		}
		units = append(units, *u)
		return nil
	}, WithMaxDepth(n.maxDepth))
	if err != nil {
		return nil, err
	}
	return units, nil
}

// factionName drops the grand-alliance prefix of a catalogue name.
func factionName(catalogue string) string {
	if i := strings.LastIndex(catalogue, " - "); i >= 0 {
		return strings.TrimSpace(catalogue[i+3:])
	}
	return strings.TrimSpace(catalogue)
}
