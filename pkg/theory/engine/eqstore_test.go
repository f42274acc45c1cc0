package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strseq/seqtheory/pkg/theory/term"
)

func TestEqStoreCopyOnPushAndPop(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	x, y := tm.Var("x", sort), tm.Var("y", sort)

	s := NewEqStore()
	s.Add(x, y, nil)
	require.Equal(t, 1, s.Len())

	s.PushScope()
	s.Add(y, x, nil)
	require.Equal(t, 2, s.Len())

	s.PopScope(1)
	assert.Equal(t, 1, s.Len())
	assert.Same(t, x, s.At(0).L)
}

func TestEqStoreRemoveSwap(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	a, b, c := tm.Var("a", sort), tm.Var("b", sort), tm.Var("c", sort)

	s := NewEqStore()
	s.Add(a, a, nil)
	s.Add(b, b, nil)
	s.Add(c, c, nil)

	s.RemoveSwap(0)
	require.Equal(t, 2, s.Len())
	assert.Same(t, c, s.At(0).L, "swap-with-last must move the final entry into the removed slot")
}

func TestAxiomQueueAdvanceIsTrailed(t *testing.T) {
	tm := term.NewManager()
	sort := term.SeqSort(term.Sort{Name: "Char"})
	f := tm.Prefix(tm.Var("x", sort), tm.Var("y", sort))

	tr := NewTrail()
	q := NewAxiomQueue(tr)
	q.Enqueue(f)
	require.True(t, q.CanPropagate())

	tr.PushScope()
	q.Advance()
	require.False(t, q.CanPropagate())

	tr.PopScope(1)
	assert.True(t, q.CanPropagate())
}
