package host

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strseq/seqtheory/pkg/theory/term"
)

func TestRewriteFoldsAdjacentLiterals(t *testing.T) {
	tm := term.NewManager()
	sort := charSort()
	x := tm.Var("x", sort)

	spine := tm.Concat(tm.String("a", sort), tm.Concat(tm.String("b", sort), x))
	got := rewrite(tm, spine)

	assert.Same(t, tm.Concat(tm.String("ab", sort), x), got)
}

func TestRewriteEmptyConcatYieldsEmpty(t *testing.T) {
	tm := term.NewManager()
	sort := charSort()

	got := rewrite(tm, tm.Empty(sort))
	assert.Same(t, tm.Empty(sort), got)
}

func TestRewriteDescendsThroughNot(t *testing.T) {
	tm := term.NewManager()
	sort := charSort()
	a := tm.Var("a", sort)
	b := tm.Var("b", sort)

	inner := tm.Eq(tm.Concat(tm.String("x", sort), tm.Concat(tm.String("y", sort), a)), b)
	got := rewrite(tm, tm.Not(inner))

	want := tm.Not(tm.Eq(tm.Concat(tm.String("xy", sort), a), b))
	assert.Same(t, want, got)
}
