package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strseq/seqtheory/pkg/theory/term"
)

func newTestTheory(tm *term.Manager) (*Theory, *fakeContext) {
	fc := &fakeContext{}
	th := NewTheory(tm, fc, nil)
	fc.th = th
	return th, fc
}

// TestReduceEqStripsCommonLiteralPrefix covers E1: "ab"++x = "a"++y
// reduces to "b"++x = y.
func TestReduceEqStripsCommonLiteralPrefix(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)
	y := tm.Var("y", sort)
	th, _ := newTestTheory(tm)

	l := tm.Concat(tm.String("ab", sort), x)
	r := tm.Concat(tm.String("a", sort), y)

	res := th.reduceEq(l, r)
	require.False(t, res.Conflict)
	assert.Same(t, tm.Concat(tm.String("b", sort), x), res.L)
	assert.Same(t, y, res.R)
}

// TestReduceEqConflictsOnMismatchedLiteral covers E2: "ab"++x = "ac"++y
// conflicts at the second character.
func TestReduceEqConflictsOnMismatchedLiteral(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)
	y := tm.Var("y", sort)
	th, _ := newTestTheory(tm)

	l := tm.Concat(tm.String("ab", sort), x)
	r := tm.Concat(tm.String("ac", sort), y)

	res := th.reduceEq(l, r)
	assert.True(t, res.Conflict)
}

func TestReduceEqStripsSuffixToo(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)
	y := tm.Var("y", sort)
	th, _ := newTestTheory(tm)

	l := tm.Concat(x, tm.String("z", sort))
	r := tm.Concat(y, tm.String("z", sort))

	res := th.reduceEq(l, r)
	require.False(t, res.Conflict)
	assert.Same(t, x, res.L)
	assert.Same(t, y, res.R)
}

func TestOccursPeelsSelectors(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)
	sel := tm.Skolem("left", sort, x)

	assert.True(t, occurs(x, sel))
	assert.False(t, occurs(tm.Var("y", sort), sel))
}

func TestSolveUnitEqPrefersLeft(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)
	y := tm.Var("y", sort)
	th, _ := newTestTheory(tm)

	bound, rhs, ok := th.solveUnitEq(x, tm.Concat(y, tm.String("a", sort)))
	require.True(t, ok)
	assert.Same(t, x, bound)
	assert.Same(t, tm.Concat(y, tm.String("a", sort)), rhs)
}

func TestSolveUnitEqRejectsOccursCycle(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)
	th, _ := newTestTheory(tm)

	_, _, ok := th.solveUnitEq(x, tm.Concat(x, tm.String("a", sort)))
	assert.False(t, ok)
}
