package engine

import "github.com/strseq/seqtheory/pkg/theory/term"

type pair struct{ a, b *term.Term }

func canonPair(a, b *term.Term) pair {
	if a.ID() > b.ID() {
		a, b = b, a
	}
	return pair{a, b}
}

// ExclusionTable is the backtrackable symmetric, irreflexive set of
// disequal pairs described in spec §3/§4.3.
type ExclusionTable struct {
	set   map[pair]bool
	trail *Trail
}

// NewExclusionTable returns an empty ExclusionTable.
func NewExclusionTable(trail *Trail) *ExclusionTable {
	return &ExclusionTable{set: make(map[pair]bool), trail: trail}
}

// Update inserts {a,b}, canonicalized by id order, trailing only the
// first insertion (spec §4.3).
func (x *ExclusionTable) Update(a, b *term.Term) {
	if a == b {
		return
	}
	p := canonPair(a, b)
	if x.set[p] {
		return
	}
	x.set[p] = true
	x.trail.Record(func() { delete(x.set, p) })
}

// Contains reports whether {a,b} is excluded.
func (x *ExclusionTable) Contains(a, b *term.Term) bool {
	if a == b {
		return false
	}
	return x.set[canonPair(a, b)]
}
