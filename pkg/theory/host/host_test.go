package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strseq/seqtheory/pkg/theory/term"
)

func charSort() term.Sort {
	return term.SeqSort(term.Sort{Name: "Char"})
}

func TestFindUnionPathCompression(t *testing.T) {
	tm := term.NewManager()
	sort := charSort()
	a, b, c := tm.Var("a", sort), tm.Var("b", sort), tm.Var("c", sort)
	h := New(tm)

	h.union(a, b)
	h.union(b, c)

	assert.Same(t, h.find(a), h.find(c))
}

func TestPushPopScopeUndoesUnionFind(t *testing.T) {
	tm := term.NewManager()
	sort := charSort()
	a, b := tm.Var("a", sort), tm.Var("b", sort)
	h := New(tm)

	h.PushScope()
	h.union(a, b)
	require.Same(t, h.find(a), h.find(b))

	h.PopScope(1)
	assert.NotSame(t, h.find(a), h.find(b))
}

func TestAssertEqThenCheckSatIsSat(t *testing.T) {
	tm := term.NewManager()
	sort := charSort()
	x := tm.Var("x", sort)
	h := New(tm)

	h.AssertEq(x, tm.String("hello", sort))
	result := h.CheckSat(context.Background())
	assert.Equal(t, Sat, result)
}

func TestAssertEqConflictingLiteralsIsUnsat(t *testing.T) {
	tm := term.NewManager()
	sort := charSort()
	x := tm.Var("x", sort)
	y := tm.Var("y", sort)
	h := New(tm)

	h.AssertEq(tm.Concat(tm.String("ab", sort), x), tm.Concat(tm.String("ac", sort), y))
	result := h.CheckSat(context.Background())
	assert.Equal(t, Unsat, result)
}

func TestModelReturnsConcreteStringForFreeVariable(t *testing.T) {
	tm := term.NewManager()
	sort := charSort()
	x := tm.Var("x", sort)
	h := New(tm)

	v := h.Model(x)
	assert.NotEmpty(t, v)
}

func TestModelReturnsBoundValue(t *testing.T) {
	tm := term.NewManager()
	sort := charSort()
	x := tm.Var("x", sort)
	h := New(tm)

	h.AssertEq(x, tm.String("hi", sort))
	h.CheckSat(context.Background())

	assert.Equal(t, "hi", h.Model(x))
}

func TestCheckResultString(t *testing.T) {
	assert.Equal(t, "sat", Sat.String())
	assert.Equal(t, "unsat", Unsat.String())
	assert.Equal(t, "unknown", Unknown.String())
}
