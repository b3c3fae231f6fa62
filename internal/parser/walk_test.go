package parser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarshallMM/GrimDarkRoster/internal/bsdata"
)

func TestWalk_PreOrderWithParentAndDepth(t *testing.T) {
	tree := []*bsdata.SelectionNode{
		sel("a", "", sel("a1", "", sel("a1x", "")), sel("a2", "")),
		nil,
		sel("b", ""),
	}

	var visits []string
	err := Walk(tree, func(node, parent *bsdata.SelectionNode, depth int) error {
		p := "-"
		if parent != nil {
			p = parent.Name
		}
		visits = append(visits, fmt.Sprintf("%s<%s@%d", node.Name, p, depth))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a<-@0", "a1<a@1", "a1x<a1@2", "a2<a@1", "b<-@0"}, visits)
}

func TestWalk_SkipChildren(t *testing.T) {
	tree := []*bsdata.SelectionNode{sel("a", "", sel("hidden", "")), sel("b", "")}

	var visits []string
	err := Walk(tree, func(node, _ *bsdata.SelectionNode, _ int) error {
		visits = append(visits, node.Name)
		if node.Name == "a" {
			return SkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, visits)
}

func TestWalk_VisitorErrorStops(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Walk([]*bsdata.SelectionNode{sel("a", ""), sel("b", "")}, func(*bsdata.SelectionNode, *bsdata.SelectionNode, int) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestWalk_CycleIsMalformed(t *testing.T) {
	a := sel("a", "")
	b := sel("b", "", a)
	a.Selections = []*bsdata.SelectionNode{b}

	err := Walk([]*bsdata.SelectionNode{a}, func(*bsdata.SelectionNode, *bsdata.SelectionNode, int) error { return nil })
	assert.ErrorIs(t, err, ErrMalformedTree)
}

func TestWalk_SharedNodeIsMalformed(t *testing.T) {
	shared := sel("shared", "")
	tree := []*bsdata.SelectionNode{sel("a", "", shared), sel("b", "", shared)}

	err := Walk(tree, func(*bsdata.SelectionNode, *bsdata.SelectionNode, int) error { return nil })
	assert.ErrorIs(t, err, ErrMalformedTree)
}

func TestWalk_DepthLimit(t *testing.T) {
	root := sel("n0", "")
	cur := root
	for i := 1; i <= 10; i++ {
		next := sel(fmt.Sprintf("n%d", i), "")
		cur.Selections = []*bsdata.SelectionNode{next}
		cur = next
	}
	noop := func(*bsdata.SelectionNode, *bsdata.SelectionNode, int) error { return nil }

	assert.ErrorIs(t, Walk([]*bsdata.SelectionNode{root}, noop, WithMaxDepth(5)), ErrMalformedTree)
	assert.NoError(t, Walk([]*bsdata.SelectionNode{root}, noop, WithMaxDepth(10)))
	assert.NoError(t, Walk([]*bsdata.SelectionNode{root}, noop, WithMaxDepth(0)), "non-positive keeps the default")
}
