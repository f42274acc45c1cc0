package engine

import (
	"github.com/strseq/seqtheory/pkg/theory/term"
)

// flatten decomposes a concat spine into its leaves, left to right,
// dropping Empty leaves (spec §4.5's implicit flattening of "a ++ (b ++
// c)" into the ordered list [a, b, c]).
func flatten(t *term.Term) []*term.Term {
	if t.Kind == term.KindEmpty {
		return nil
	}
	if t.Kind != term.KindConcat {
		return []*term.Term{t}
	}
	return append(flatten(t.Args[0]), flatten(t.Args[1])...)
}

// rebuild folds a leaf list back into a right-associated concat spine, or
// returns the sort's Empty term if the list is empty.
func rebuild(tm *term.Manager, sort term.Sort, leaves []*term.Term) *term.Term {
	if len(leaves) == 0 {
		return tm.Empty(sort)
	}
	out := leaves[len(leaves)-1]
	for i := len(leaves) - 2; i >= 0; i-- {
		out = tm.Concat(leaves[i], out)
	}
	return out
}

// reduceEqResult is the outcome of reduceEq: either a simplified residual
// equation, an outright conflict (two distinct literal characters aligned
// against each other), or a no-op when nothing could be stripped.
type reduceEqResult struct {
	L, R     *term.Term
	Conflict bool
}

// reduceEq implements spec §4.5's "reduce_eq": it strips elements common to
// both sides of l = r from the front and the back, by pointer identity for
// opaque leaves and by character comparison for adjacent string literals,
// detecting a literal/literal mismatch as a conflict.
//
// E1: "ab"++x = "a"++y reduces to "b"++x = y.
// E2: "ab"++x = "ac"++y conflicts at the second character.
func (th *Theory) reduceEq(l, r *term.Term) reduceEqResult {
	left := flatten(l)
	right := flatten(r)

	left, right, conflict := stripFront(th.tm, left, right)
	if conflict {
		return reduceEqResult{Conflict: true}
	}
	left, right = reverseSlice(left), reverseSlice(right)
	left, right, conflict = stripFront(th.tm, left, right)
	if conflict {
		return reduceEqResult{Conflict: true}
	}
	left, right = reverseSlice(left), reverseSlice(right)

	sort := l.Sort
	return reduceEqResult{L: rebuild(th.tm, sort, left), R: rebuild(th.tm, sort, right)}
}

func reverseSlice(xs []*term.Term) []*term.Term {
	out := make([]*term.Term, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return out
}

// stripFront removes elements common to the fronts of left and right,
// in place from the start of each list, returning the residual lists.
func stripFront(tm *term.Manager, left, right []*term.Term) (l, r []*term.Term, conflict bool) {
	for len(left) > 0 && len(right) > 0 {
		a, b := left[0], right[0]
		if a == b {
			left, right = left[1:], right[1:]
			continue
		}
		if a.Kind == term.KindString && b.Kind == term.KindString {
			common := commonPrefixLen(a.Str, b.Str)
			if common == 0 {
				if len(a.Str) > 0 && len(b.Str) > 0 {
					return nil, nil, true
				}
				break
			}
			left = spliceStringPrefix(tm, left, common, a)
			right = spliceStringPrefix(tm, right, common, b)
			continue
		}
		break
	}
	return left, right, false
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// spliceStringPrefix drops the first n bytes of leaves[0].Str (a string
// literal), replacing the leaf with its remainder or dropping it entirely
// if fully consumed.
func spliceStringPrefix(tm *term.Manager, leaves []*term.Term, n int, lit *term.Term) []*term.Term {
	rest := lit.Str[n:]
	if rest == "" {
		return leaves[1:]
	}
	remainder := tm.String(rest, lit.Sort)
	out := make([]*term.Term, len(leaves))
	copy(out, leaves)
	out[0] = remainder
	return out
}
