package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strseq/seqtheory/pkg/theory/term"
)

func TestSolutionMapFindChainsAndCompresses(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)
	y := tm.Var("y", sort)
	z := tm.Var("z", sort)

	tr := NewTrail()
	sol := NewSolutionMap(tr)

	sol.Update(x, y, MkLeaf(x, y))
	sol.Update(y, z, MkLeaf(y, z))

	rep, dep := sol.Find(x)
	require.Same(t, z, rep)
	require.NotNil(t, dep)

	just := Linearize(dep)
	assert.Len(t, just.Pairs, 2)

	direct, _, ok := sol.Lookup(x)
	require.True(t, ok)
	assert.Same(t, z, direct, "path compression should rewrite x's binding directly to z")
}

func TestSolutionMapUpdateUndoesOnPop(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)
	y := tm.Var("y", sort)

	tr := NewTrail()
	sol := NewSolutionMap(tr)

	tr.PushScope()
	sol.Update(x, y, nil)
	rep, _ := sol.Find(x)
	require.Same(t, y, rep)

	tr.PopScope(1)
	rep, _ = sol.Find(x)
	assert.Same(t, x, rep, "binding must be undone after PopScope")
}

func TestExclusionTableSymmetricAndIrreflexive(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)
	y := tm.Var("y", sort)

	tr := NewTrail()
	excl := NewExclusionTable(tr)

	excl.Update(x, y)
	assert.True(t, excl.Contains(y, x))
	assert.False(t, excl.Contains(x, x))
}

func TestExclusionTableUndoesOnPop(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)
	y := tm.Var("y", sort)

	tr := NewTrail()
	excl := NewExclusionTable(tr)

	tr.PushScope()
	excl.Update(x, y)
	require.True(t, excl.Contains(x, y))

	tr.PopScope(1)
	assert.False(t, excl.Contains(x, y))
}
