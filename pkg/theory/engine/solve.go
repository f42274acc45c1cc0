package engine

import "github.com/strseq/seqtheory/pkg/theory/term"

// occurs reports whether x occurs free in t, peeling left/right selector
// skolems to their argument as it descends (spec §4.5, occurs_check;
// spec §8 property 4 depends on this being exact, not an approximation).
func occurs(x, t *term.Term) bool {
	if x == t {
		return true
	}
	if arg, ok := t.IsSelector(); ok {
		return occurs(x, arg)
	}
	for _, a := range t.Args {
		if occurs(x, a) {
			return true
		}
	}
	return false
}

// isVar reports whether t is eligible to be the left-hand side of a
// solved-form binding. Spec §3 defines a sequence variable as either an
// uninterpreted term of sequence sort or any Skolem term, unrestricted by
// which symbol minted it; term.Term.IsSeqVar implements exactly that
// predicate (spec §4.5, is_var).
func isVar(t *term.Term) bool {
	return t.IsSeqVar()
}

// solveUnitEq attempts to orient l = r into a solved-form binding x ↦ e
// with x not occurring in e (spec §4.5, solve_unit_eq). It tries the
// left-hand side first, then the right, matching theory_seq.cpp's
// preference order.
func (th *Theory) solveUnitEq(l, r *term.Term) (x, e *term.Term, ok bool) {
	if isVar(l) && !occurs(l, r) {
		return l, r, true
	}
	if isVar(r) && !occurs(r, l) {
		return r, l, true
	}
	return nil, nil, false
}

// addSolution installs x ↦ e in σ, records the binding's dependency, and
// bumps the reduction counter (spec §4.5, add_solution).
func (th *Theory) addSolution(x, e *term.Term, d *Dep) {
	th.sol.Update(x, e, d)
	th.st.reduction()
}

// preProcessEqs canonizes every pending equation in the store, discharging
// or rewriting in place, using EqStore's swap-with-last deletion exactly
// as theory_seq.cpp's pre_process_eqs does (spec §4.5). changed reports
// whether canonization rewrote or discharged any equation, so callers can
// tell a no-op sweep from one that needs to be re-run against a checkIneqs
// pass before doing more work.
func (th *Theory) preProcessEqs() (changed bool, ok bool) {
	i := 0
	for i < th.eqs.Len() {
		e := th.eqs.At(i)
		cl, depL := th.Canonize(e.L)
		cr, depR := th.Canonize(e.R)
		d := MkJoin(MkJoin(e.D, depL), depR)

		red := th.reduceEq(cl, cr)
		if red.Conflict {
			th.ctx.SetConflict(Linearize(d))
			return true, false
		}
		if red.L == red.R {
			th.eqs.RemoveSwap(i)
			th.st.reduction()
			changed = true
			continue
		}
		if red.L != e.L || red.R != e.R {
			changed = true
		}
		th.eqs.top()[i] = eqEntry{L: red.L, R: red.R, D: d}
		i++
	}
	return changed, true
}

// simplifyAndSolveEqs repeatedly canonizes and attempts solveUnitEq over
// the pending equation store until no further reduction applies, matching
// theory_seq.cpp's simplify_and_solve_eqs fixpoint loop (spec §4.5).
func (th *Theory) simplifyAndSolveEqs() bool {
	_, ok := th.simplifyAndSolveEqsChanged()
	return ok
}

// simplifyAndSolveEqsChanged is simplifyAndSolveEqs with a second result
// reporting whether anything changed across the whole fixpoint loop, the
// signal FinalCheckEH needs to decide whether to re-run checkIneqs before
// falling through to branching (spec §4.7 step 2).
func (th *Theory) simplifyAndSolveEqsChanged() (changed bool, ok bool) {
	for {
		preChanged, preOk := th.preProcessEqs()
		if preChanged {
			changed = true
		}
		if !preOk {
			return changed, false
		}
		progress := false
		i := 0
		for i < th.eqs.Len() {
			e := th.eqs.At(i)
			cl, depL := th.Canonize(e.L)
			cr, depR := th.Canonize(e.R)
			if x, rhs, ok := th.solveUnitEq(cl, cr); ok {
				th.addSolution(x, rhs, MkJoin(MkJoin(e.D, depL), depR))
				th.eqs.RemoveSwap(i)
				progress = true
				continue
			}
			i++
		}
		if progress {
			changed = true
		}
		if !progress {
			return changed, true
		}
	}
}
