package parser

import (
	"errors"
	"fmt"

	"github.com/MarshallMM/GrimDarkRoster/internal/bsdata"
)

// DefaultMaxDepth bounds every traversal of a selection tree.
const DefaultMaxDepth = 64

// SkipChildren may be returned by a WalkFunc to leave the current node's
// subtree unvisited. It is never returned by Walk.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node in pre-order. parent is nil for the
// nodes passed to Walk directly.
type WalkFunc func(node, parent *bsdata.SelectionNode, depth int) error

type walkConfig struct {
	maxDepth int
}

type WalkOption func(*walkConfig)

// WithMaxDepth sets the deepest allowed depth. Values <= 0 keep the default.
func WithMaxDepth(n int) WalkOption {
	return func(c *walkConfig) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// Walk visits nodes depth-first, children in slice order. A node reached
// twice, or a node deeper than the depth limit, stops the walk with
// ErrMalformedTree.
func Walk(nodes []*bsdata.SelectionNode, fn WalkFunc, opts ...WalkOption) error {
	cfg := walkConfig{maxDepth: DefaultMaxDepth}
	for _, o := range opts {
		o(&cfg)
	}
	w := walker{
		fn:       fn,
		maxDepth: cfg.maxDepth,
		visited:  make(map[*bsdata.SelectionNode]struct{}),
	}
	return w.walk(nodes, nil, 0)
}

type walker struct {
	fn       WalkFunc
	maxDepth int
	visited  map[*bsdata.SelectionNode]struct{}
}

func (w *walker) walk(nodes []*bsdata.SelectionNode, parent *bsdata.SelectionNode, depth int) error {
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if depth > w.maxDepth {
			return fmt.Errorf("%w: %q nested deeper than %d", ErrMalformedTree, node.Name, w.maxDepth)
		}
		if _, seen := w.visited[node]; seen {
			return fmt.Errorf("%w: %q reached twice", ErrMalformedTree, node.Name)
		}
		w.visited[node] = struct{}{}

		err := w.fn(node, parent, depth)
		if errors.Is(err, SkipChildren) {
			continue
		}
		if err != nil {
			return err
		}
		if err := w.walk(node.Selections, node, depth+1); err != nil {
			return err
		}
	}
	return nil
}
