// Package engine implements the sequence theory decision procedure: a
// host-driven theory plugin maintaining a backtrackable solved-form
// substitution, dependency-tracked justifications, and lazy axiom
// instantiation over concat, prefix, suffix, contains, length, indexof,
// replace and extract.
package engine

import "github.com/strseq/seqtheory/pkg/theory/term"

// CheckStatus is final_check_eh's outcome: one of the three states spec
// §2/§4.7 give it (CONTINUE, DONE, GIVEUP). A detected inconsistency is
// never its own return value — it is signaled out of band through
// Context.SetConflict or Context.Assign, and the theory still reports
// CONTINUE so the host re-enters with the conflict already on record.
type CheckStatus int

const (
	// StatusDone reports that the theory found nothing left to do: the
	// current partial assignment is consistent as far as this theory can
	// tell.
	StatusDone CheckStatus = iota
	// StatusContinue reports that the theory made progress (an equation
	// was solved, a branch was introduced, or a disequality was
	// propagated) and the host should run another round before trusting
	// the result.
	StatusContinue
	// StatusGiveUp reports that the theory has run out of moves but
	// cannot certify consistency either: some equation is still
	// unsolved, or the incomplete flag was set by an unhandled
	// construct. The host should report the overall query unknown rather
	// than sat.
	StatusGiveUp
)

// Theory is the sequence theory plugin. It holds no reference to any
// particular host: it reaches the host only through Context, the outbound
// half of the contract, while its own exported methods are the inbound
// half (spec §6).
type Theory struct {
	tm  *term.Manager
	ctx Context

	trail *Trail
	sol   *SolutionMap
	excl  *ExclusionTable
	eqs   *EqStore
	axq   *AxiomQueue
	st    *stats

	modelCompletion bool
	valueFactory    ValueFactory
	incomplete      bool

	lenConcatSeen   map[*term.Term]bool
	lenAxiomSeen    map[*term.Term]bool
	relevantLengths []*term.Term

	// ineqs is the watchlist of boolean literals assigned false, fed by
	// new_diseq_eh and assign_eq's negative branch, that check_ineqs
	// re-tests against the evolving solved form on every final check
	// (spec §4.10). It is a distinct component from excl: excl exists
	// only to keep branch_variable from re-proposing an equality the
	// host already rejected (spec §4.3); ineqs is what actually detects
	// a disequality collapsing to true.
	ineqs []Literal

	// branchHead is branch_variable's round-robin cursor into th.eqs, so
	// repeated final checks give every pending equation a fair turn
	// instead of always starting from index 0 (spec §4.6).
	branchHead int
}

// NewTheory wires up an empty Theory against a term Manager and a host
// Context. The ValueFactory may be nil if the host never calls MkValue.
func NewTheory(tm *term.Manager, ctx Context, vf ValueFactory) *Theory {
	trail := NewTrail()
	return &Theory{
		tm:            tm,
		ctx:           ctx,
		trail:         trail,
		sol:           NewSolutionMap(trail),
		excl:          NewExclusionTable(trail),
		eqs:           NewEqStore(),
		axq:           NewAxiomQueue(trail),
		st:            &stats{},
		valueFactory:  vf,
		lenConcatSeen: make(map[*term.Term]bool),
		lenAxiomSeen:  make(map[*term.Term]bool),
	}
}

// InternalizeTerm is the inbound half of internalize_term (spec §4.10):
// it asks the host to attach a Boolean variable to relational
// applications, enqueues the indexof and replace axiom sets for index and
// replace terms, sets the incomplete flag for extract terms (after
// enqueuing their length bound), and arms the length axioms for length
// terms. Every other symbol is handled structurally through σ and the
// equation store.
func (th *Theory) InternalizeTerm(t *term.Term) {
	switch t.Kind {
	case term.KindPrefix, term.KindSuffix, term.KindContains, term.KindInRe, term.KindEq:
		th.ctx.MkBoolVar(t)
	case term.KindIndex:
		th.addIndexofAxiom(t.Args[0], t.Args[1])
	case term.KindReplace:
		th.addReplaceAxiom(t.Args[0], t.Args[1], t.Args[2])
	case term.KindExtract:
		if err := th.addExtractAxiom(t.Args[0], t.Args[1], t.Args[2]); err != nil {
			th.incomplete = true
		}
	}
	if t.Kind == term.KindLength {
		th.markLengthRelevant(t)
	}
}

// NewEqEH records a host-asserted equality as a pending equation, and
// fires the length-distributivity axiom for any tracked length handle
// whose argument already resolves to a concat term that is one side of
// the new equation (spec §4.10, new_eq_eh; Open Question 1).
func (th *Theory) NewEqEH(n1, n2 *term.Term) {
	th.eqs.Add(n1, n2, MkLeaf(n1, n2))
	for _, lt := range th.relevantLengths {
		if rep, _ := th.sol.Find(lt.Args[0]); rep == n1 || rep == n2 {
			if rep.Kind == term.KindConcat {
				th.newEqLenConcat(rep)
			}
		}
	}
}

// NewDiseqEH remembers the disequality literal and records {n1,n2} in
// the exclusion table (spec §4.10, new_diseq_eh).
func (th *Theory) NewDiseqEH(n1, n2 *term.Term) {
	th.excl.Update(n1, n2)
	th.rememberIneq(Literal{Term: th.tm.Eq(n1, n2), Neg: true})
}

// rememberIneq appends lit to the ineqs watchlist, trailed so it drops
// back out on backtracking past the scope that introduced it.
func (th *Theory) rememberIneq(lit Literal) {
	th.ineqs = append(th.ineqs, lit)
	th.trail.Record(func() {
		th.ineqs = th.ineqs[:len(th.ineqs)-1]
	})
}

// AssignEq is the inbound counterpart of Context.AssignEq: the host
// informs the theory that it has decided n1 = n2 (typically the positive
// branch of an AssumeEq case split), which the theory folds in exactly
// like an asserted equality.
func (th *Theory) AssignEq(n1, n2 *term.Term) {
	th.NewEqEH(n1, n2)
}

// Assign is the inbound counterpart of Context.Assign: the host informs
// the theory that lit now holds, dispatched through assignEq (spec
// §4.10, assign_eq).
func (th *Theory) Assign(lit Literal) {
	th.assignEq(lit)
}

// PushScopeEH opens a new backtracking scope across every backtrackable
// component (spec §4.10, push_scope_eh).
func (th *Theory) PushScopeEH() {
	th.trail.PushScope()
	th.eqs.PushScope()
	incomplete := th.incomplete
	th.trail.Record(func() { th.incomplete = incomplete })
}

// PopScopeEH closes numScopes backtracking scopes (spec §4.10,
// pop_scope_eh).
func (th *Theory) PopScopeEH(numScopes int) {
	th.trail.PopScope(numScopes)
	th.eqs.PopScope(numScopes)
}

// RestartEH is a no-op: theory_seq.cpp's restart_eh preserves every
// deduction made so far across a host-level restart, since restarts do
// not pop scopes (spec §4.10).
func (th *Theory) RestartEH() {}

// RelevantEH marks t as relevant to the current search, which for length
// terms also arms the distributivity axiom (spec §4.10, relevant_eh).
func (th *Theory) RelevantEH(t *term.Term) {
	if t.Kind == term.KindLength {
		th.markLengthRelevant(t)
	}
}

// checkIneqs re-tests every remembered disequality literal against the
// current solved form: if one canonicalizes to true (spec §4.7 step 1,
// "the two sides became equal"), the host is told its negation holds,
// with the canonicalization's dependency as justification. As spec's E3
// scenario describes, this is a propagation, not a direct conflict call
// — the host's own Boolean bookkeeping notices that the literal it
// propagates contradicts what it already has assigned, and raises the
// conflict itself (spec §4.10, check_ineqs).
func (th *Theory) checkIneqs() bool {
	propagated := false
	for _, lit := range th.ineqs {
		c, dep := th.Canonize(lit.Term)
		if c.Kind == term.KindBoolLit && c.Str == "true" {
			th.ctx.Assign(lit.Not(), Linearize(dep))
			propagated = true
		}
	}
	return propagated
}

// FinalCheckEH runs one round of the decision procedure, in the order
// theory_seq.cpp's final_check_eh uses (spec §4.7): check standing
// disequalities first, since a binding solved on a prior round may have
// just collapsed one to true; then simplify and solve the pending
// equations, returning early if that made any change so the next round
// re-checks disequalities against the updated substitution; then, only
// once both are a no-op, either branch on an unresolved variable pair or
// give up or declare done. The second Context.Inconsistent check after
// splitVariable re-tests for a Boolean-level conflict introduced by the
// branch before trusting the result. A conflict detected along the way
// (by checkIneqs's propagation provoking the host, or by
// simplifyAndSolveEqsChanged's own Context.SetConflict call on a
// mismatched literal pair) is never reported as its own status: it is
// already on record with the host, and this still returns CONTINUE so
// the host re-enters and notices it.
func (th *Theory) FinalCheckEH() CheckStatus {
	if th.checkIneqs() {
		return StatusContinue
	}
	changed, _ := th.simplifyAndSolveEqsChanged()
	if changed {
		return StatusContinue
	}
	if th.ctx.Inconsistent() {
		return StatusContinue
	}
	branched := th.branchVariable()
	th.splitVariable()
	if th.ctx.Inconsistent() {
		return StatusContinue
	}
	if branched {
		return StatusContinue
	}
	if th.eqs.Len() > 0 || th.incomplete {
		return StatusGiveUp
	}
	return StatusDone
}

// CanPropagate reports whether Propagate has work to do (spec §4.10).
func (th *Theory) CanPropagate() bool {
	return th.axq.CanPropagate()
}

// Propagate asserts every pending axiom to the host as a theory axiom,
// advancing the cursor past each one (spec §4.10, propagate).
func (th *Theory) Propagate() {
	for th.axq.CanPropagate() {
		pending := th.axq.Pending()
		th.ctx.MkThAxiom(pending[0])
		th.axq.Advance()
	}
}

// InitModel prepares the theory for model construction; this theory
// keeps no separate model-construction state beyond the modelCompletion
// flag that MkValue toggles (spec §4.10, init_model).
func (th *Theory) InitModel() {}

// MkValue returns a concrete witness for t suitable for inclusion in a
// satisfying model, completing any still-unbound sequence variables
// reachable from t to fresh values (spec §4.10, mk_value).
func (th *Theory) MkValue(t *term.Term) *term.Term {
	return th.canonizeModelComplete(t)
}

// CollectStatistics returns a snapshot of the counters this theory has
// accumulated (spec §6, collect_statistics).
func (th *Theory) CollectStatistics() Statistics {
	return th.st.snapshot()
}

// Incomplete reports whether the theory has given up completeness for
// this run, e.g. because an in_re literal was assigned (Open Question 3).
func (th *Theory) Incomplete() bool {
	return th.incomplete
}
