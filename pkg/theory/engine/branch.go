package engine

import "github.com/strseq/seqtheory/pkg/theory/term"

// branchVariable drives one round of case-splitting: scan the pending
// equation store, round-robin from a persistent cursor so every equation
// gets a fair turn across successive final checks, and for the first
// equation whose left or right front element is a variable, try
// find_branch_candidate on that side (spec §4.6, branch_variable).
func (th *Theory) branchVariable() bool {
	n := th.eqs.Len()
	for k := 0; k < n; k++ {
		i := (th.branchHead + k) % n
		e := th.eqs.At(i)
		ls := flatten(e.L)
		rs := flatten(e.R)
		if len(ls) == 0 || len(rs) == 0 {
			continue
		}
		if isVar(ls[0]) && th.findBranchCandidate(ls[0], rs) {
			th.branchHead = (i + 1) % n
			return true
		}
		if isVar(rs[0]) && th.findBranchCandidate(rs[0], ls) {
			th.branchHead = (i + 1) % n
			return true
		}
	}
	return false
}

// findBranchCandidate proposes, in order, the trial equalities spec §4.6
// describes for a variable v against the flattened spine rs of the other
// side of its equation: v = empty, then, walking rs left to right, v
// bound to every literal-length prefix of a multi-character literal
// element plus whatever of rs precedes it, and v bound to the full run of
// rs consumed so far. It stops at (and asks the host to assume) the first
// candidate assumeEquality accepts, i.e. the first pair not already
// excluded.
func (th *Theory) findBranchCandidate(v *term.Term, rs []*term.Term) bool {
	if th.assumeEquality(v, th.tm.Empty(v.Sort)) {
		return true
	}

	var acc *term.Term
	for _, elem := range rs {
		if occurs(v, elem) {
			break
		}

		if elem.Kind == term.KindString && len(elem.Str) >= 2 {
			for k := 1; k < len(elem.Str); k++ {
				prefixLit := th.tm.String(elem.Str[:k], elem.Sort)
				candidate := concatAcc(th.tm, acc, prefixLit)
				if th.assumeEquality(v, candidate) {
					return true
				}
			}
		}

		acc = concatAcc(th.tm, acc, elem)
		if th.assumeEquality(v, acc) {
			return true
		}
	}
	return false
}

// concatAcc appends elem to acc, treating a nil accumulator as the
// identity (so the first element of a run is returned bare rather than
// wrapped in a spurious concat with empty).
func concatAcc(tm *term.Manager, acc, elem *term.Term) *term.Term {
	if acc == nil {
		return elem
	}
	return tm.Concat(acc, elem)
}

// assumeEquality asks the host to introduce a fresh case split on a = b,
// unless {a,b} is already known excluded, in which case it declines
// (spec §4.6, assume_equality). It counts every accepted proposal as a
// branch.
func (th *Theory) assumeEquality(a, b *term.Term) bool {
	if th.excl.Contains(a, b) {
		return false
	}
	th.ctx.Internalize(b, false)
	th.ctx.AssumeEq(a, b)
	th.st.split()
	return true
}

// splitVariable is intentionally a no-op: theory_seq.cpp's split_variable
// is reserved for Nielsen-style length-based splits and, as shipped,
// always returns false, deferring all real case-splitting to
// assume_equality (spec §4.6).
func (th *Theory) splitVariable() {}
