package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strseq/seqtheory/pkg/theory/term"
)

func TestCanonizeAppliesSubstitutionRecursively(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)
	y := tm.Var("y", sort)

	th, _ := newTestTheory(tm)
	th.sol.Update(x, tm.String("a", sort), nil)
	th.sol.Update(y, tm.String("b", sort), nil)

	canon, _ := th.Canonize(tm.Concat(x, y))
	assert.Same(t, tm.Concat(tm.String("a", sort), tm.String("b", sort)), canon)
}

func TestCanonizeModelCompletionBindsFreshValue(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)

	fc := &fakeContext{}
	vf := &fakeValueFactory{tm: tm}
	th := NewTheory(tm, fc, vf)

	got := th.canonizeModelComplete(x)
	require.Equal(t, term.KindString, got.Kind)

	rep, _ := th.sol.Find(x)
	assert.Same(t, got, rep, "model completion should commit the fresh value to sigma")
}

func TestNewEqEHAndSimplifyAndSolveEqsSolvesUnitEquation(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)
	y := tm.Var("y", sort)
	th, _ := newTestTheory(tm)

	th.NewEqEH(x, tm.Concat(tm.String("a", sort), y))
	ok := th.simplifyAndSolveEqs()
	require.True(t, ok)

	rep, _ := th.sol.Find(x)
	assert.Same(t, tm.Concat(tm.String("a", sort), y), rep)
}

func TestSimplifyAndSolveEqsDetectsConflict(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)
	y := tm.Var("y", sort)
	th, fc := newTestTheory(tm)

	l := tm.Concat(tm.String("ab", sort), x)
	r := tm.Concat(tm.String("ac", sort), y)
	th.NewEqEH(l, r)

	ok := th.simplifyAndSolveEqs()
	assert.False(t, ok)
	assert.True(t, fc.inconsistent)
}

func TestPushPopScopeUndoesSolutionMap(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)
	th, _ := newTestTheory(tm)

	th.PushScopeEH()
	th.NewEqEH(x, tm.String("a", sort))
	require.True(t, th.simplifyAndSolveEqs())
	rep, _ := th.sol.Find(x)
	require.Same(t, tm.String("a", sort), rep)

	th.PopScopeEH(1)
	rep, _ = th.sol.Find(x)
	assert.Same(t, x, rep)
}

func TestAssignEqOnPrefixEnqueuesAxiom(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	a := tm.Var("a", sort)
	b := tm.Var("b", sort)
	th, _ := newTestTheory(tm)

	th.Assign(Literal{Term: tm.Prefix(a, b)})
	assert.True(t, th.axq.CanPropagate())
}

func TestAssignInReSetsIncomplete(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	a := tm.Var("a", sort)
	re := tm.Var("re", term.Sort{Name: "RegEx"})
	th, _ := newTestTheory(tm)

	th.Assign(Literal{Term: tm.InRe(a, re)})
	assert.True(t, th.Incomplete())
}

func TestFinalCheckEHBranchesOnUnresolvedVariablePair(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)
	y := tm.Var("y", sort)
	p := tm.Var("p", sort)
	q := tm.Var("q", sort)
	th, fc := newTestTheory(tm)

	// Neither side is a bare variable (so solveUnitEq cannot orient it
	// directly) and the front elements are two distinct variables with
	// nothing to conflict on, so the only way forward is a case split.
	// find_branch_candidate always proposes the empty binding first.
	th.NewEqEH(tm.Concat(x, p), tm.Concat(y, q))
	status := th.FinalCheckEH()
	assert.Equal(t, StatusContinue, status)
	assert.Len(t, fc.assumedEq, 1)
	assert.Equal(t, [2]*term.Term{x, tm.Empty(sort)}, fc.assumedEq[0])
}

func TestFinalCheckEHDoneOnEmptyStore(t *testing.T) {
	tm := term.NewManager()
	th, _ := newTestTheory(tm)

	status := th.FinalCheckEH()
	assert.Equal(t, StatusDone, status)
}

func TestCollectStatisticsCountsReductions(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x := tm.Var("x", sort)
	th, _ := newTestTheory(tm)

	th.NewEqEH(x, tm.String("a", sort))
	require.True(t, th.simplifyAndSolveEqs())

	st := th.CollectStatistics()
	assert.Equal(t, uint64(1), st.NumReductions)
}

func TestNewEqLenConcatDedupsPerScope(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	a := tm.Var("a", sort)
	b := tm.Var("b", sort)
	concat := tm.Concat(a, b)
	th, _ := newTestTheory(tm)

	th.newEqLenConcat(concat)
	th.newEqLenConcat(concat)
	assert.Len(t, th.axq.Pending(), 1)
}
