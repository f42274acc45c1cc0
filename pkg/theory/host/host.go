// Package host provides a minimal SAT-backed implementation of
// engine.Context, wiring the sequence theory plugin to a
// github.com/go-air/gini solver the same way the OLM dependency
// resolver's solver package wires its own constraint compiler to gini:
// one SAT literal per logical unit, with assumptions checked by Test and
// then Solve. It runs no Untest-based backtracking search and does not use
// Why: a theory conflict is recorded as a flag.
package host

import (
	"context"
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/sirupsen/logrus"

	"github.com/strseq/seqtheory/pkg/theory/engine"
	"github.com/strseq/seqtheory/pkg/theory/term"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// CheckResult is CheckSat's outcome.
type CheckResult int

const (
	Unknown CheckResult = iota
	Sat
	Unsat
)

func (r CheckResult) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	default:
		return "unknown"
	}
}

// Host is a reference implementation of engine.Context. It owns the
// term.Manager, the theory, a union-find over enode identity, and the
// gini instance that stands in for the host SMT context's Boolean
// search.
type Host struct {
	Log *logrus.Logger

	tm *term.Manager
	th *engine.Theory
	g  *gini.Gini

	parent map[*term.Term]*term.Term

	boolLits   map[*term.Term]z.Lit
	assumeLits []z.Lit

	internalized map[*term.Term]bool
	conflict     bool
	scopes       []scopeFrame

	freshCounter int
}

type scopeFrame struct {
	parentSnapshot map[*term.Term]*term.Term
	numAssumeLits  int
}

// New returns a Host backed by a fresh gini instance and a fresh theory.
func New(tm *term.Manager) *Host {
	h := &Host{
		Log:          logrus.New(),
		tm:           tm,
		g:            gini.New(),
		parent:       make(map[*term.Term]*term.Term),
		boolLits:     make(map[*term.Term]z.Lit),
		internalized: make(map[*term.Term]bool),
	}
	h.th = engine.NewTheory(tm, h, freshValueFactory{tm: tm, h: h})
	return h
}

// Theory exposes the underlying engine.Theory, for callers that need to
// drive the assertion surface directly.
func (h *Host) Theory() *engine.Theory {
	return h.th
}

func (h *Host) find(t *term.Term) *term.Term {
	p, ok := h.parent[t]
	if !ok || p == t {
		return t
	}
	root := h.find(p)
	h.parent[t] = root
	return root
}

func (h *Host) union(a, b *term.Term) {
	ra, rb := h.find(a), h.find(b)
	if ra == rb {
		return
	}
	h.parent[ra] = rb
}

// --- engine.Context ---

func (h *Host) Internalize(t *term.Term, gate bool) {
	if h.internalized[t] {
		return
	}
	h.internalized[t] = true
	h.th.InternalizeTerm(t)
	for _, a := range t.Args {
		h.Internalize(a, gate)
	}
}

func (h *Host) EInternalized(t *term.Term) bool {
	return h.internalized[t]
}

func (h *Host) GetEnode(t *term.Term) *term.Term {
	return h.find(t)
}

func (h *Host) MkBoolVar(t *term.Term) {
	if _, ok := h.boolLits[t]; ok {
		return
	}
	h.boolLits[t] = h.g.Lit()
}

// AssumeEq assumes the equality's literal in gini and commits the theory to
// that positive branch at once, the same way AssignEq reports a decided
// equality. The reference host runs no case-split search of its own, so
// the negative branch is never tried.
func (h *Host) AssumeEq(n1, n2 *term.Term) {
	lit := h.literalFor(h.tm.Eq(n1, n2))
	h.assumeLits = append(h.assumeLits, lit)
	h.g.Assume(lit)
	h.union(n1, n2)
	h.th.AssignEq(n1, n2)
}

func (h *Host) AssignEq(n1, n2 *term.Term, just engine.Justification) {
	h.union(n1, n2)
	h.th.AssignEq(n1, n2)
}

// Assign forwards lit to the theory for axiom dispatch and also asserts it
// into gini, mirroring AssertLiteral's pattern: a literal propagated this
// way (e.g. check_ineqs canonicalizing a standing disequality to true) now
// sits alongside whatever gini already assumed about the same atom, so a
// contradiction between the two surfaces as UNSAT at the next Test/Solve
// rather than needing a theory-level conflict call.
func (h *Host) Assign(lit engine.Literal, just engine.Justification) {
	h.th.Assign(lit)
	l := h.literalFor(lit.Term)
	if lit.Neg {
		l = l.Not()
	}
	h.g.Assume(l)
}

func (h *Host) SetConflict(just engine.Justification) {
	h.conflict = true
}

func (h *Host) MkThAxiom(formula *term.Term) {
	lit := h.literalFor(formula)
	h.g.Assume(lit)
}

func (h *Host) Inconsistent() bool {
	return h.conflict
}

func (h *Host) MarkAsRelevant(lit engine.Literal) {
	h.th.RelevantEH(lit.Term)
}

func (h *Host) Rewrite(t *term.Term) *term.Term {
	return rewrite(h.tm, t)
}

// literalFor returns the SAT literal for formula. A literal already
// registered for formula (by MkBoolVar or an earlier call) is reused, and
// a negation maps to the negated literal of its argument. Every other
// formula, and/or included, gets a fresh opaque literal of its own: no
// clauses tie it to its subformulas. A boolean constant gets a fresh,
// unconstrained literal on every call (negated for false).
func (h *Host) literalFor(formula *term.Term) z.Lit {
	if l, ok := h.boolLits[formula]; ok {
		return l
	}
	switch formula.Kind {
	case term.KindNot:
		return h.literalFor(formula.Args[0]).Not()
	case term.KindBoolLit:
		if formula.Str == "true" {
			return h.g.Lit()
		}
		return h.g.Lit().Not()
	default:
		l := h.g.Lit()
		h.boolLits[formula] = l
		return l
	}
}

// --- push/pop/assert/check surface, driven by the CLI harness ---

// PushScope opens a new backtracking scope (spec §4.10, push_scope_eh),
// snapshotting the union-find so GetEnode's merges unwind on PopScope.
func (h *Host) PushScope() {
	h.th.PushScopeEH()
	snap := make(map[*term.Term]*term.Term, len(h.parent))
	for k, v := range h.parent {
		snap[k] = v
	}
	h.scopes = append(h.scopes, scopeFrame{parentSnapshot: snap, numAssumeLits: len(h.assumeLits)})
}

// PopScope closes numScopes backtracking scopes.
func (h *Host) PopScope(numScopes int) {
	for ; numScopes > 0; numScopes-- {
		if len(h.scopes) == 0 {
			break
		}
		f := h.scopes[len(h.scopes)-1]
		h.scopes = h.scopes[:len(h.scopes)-1]
		h.parent = f.parentSnapshot
		h.assumeLits = h.assumeLits[:f.numAssumeLits]
		h.conflict = false
		h.th.PopScopeEH(1)
	}
}

// AssertEq internalizes and asserts n1 = n2 as a host-level fact (spec
// §4.10, new_eq_eh's entry point from the host side).
func (h *Host) AssertEq(n1, n2 *term.Term) {
	h.Internalize(n1, false)
	h.Internalize(n2, false)
	h.union(n1, n2)
	h.th.NewEqEH(n1, n2)
}

// AssertDiseq internalizes and asserts n1 != n2, assuming ¬(n1 = n2) on
// the same underlying atom new_diseq_eh's ineqs watchlist tracks, so a
// later check_ineqs propagation of Assign(n1=n2) lands on a gini literal
// that already has an opposing assumption in place.
func (h *Host) AssertDiseq(n1, n2 *term.Term) {
	h.Internalize(n1, false)
	h.Internalize(n2, false)
	h.th.NewDiseqEH(n1, n2)
	h.g.Assume(h.literalFor(h.tm.Eq(n1, n2)).Not())
}

// AssertLiteral internalizes and asserts a relational literal such as
// prefix(a,b) or contains(a,b), optionally negated.
func (h *Host) AssertLiteral(t *term.Term, neg bool) {
	h.Internalize(t, false)
	lit := engine.Literal{Term: t, Neg: neg}
	h.th.Assign(lit)
	l := h.literalFor(t)
	if neg {
		l = l.Not()
	}
	h.g.Assume(l)
}

// CheckSat drives final_check_eh to a fixpoint and then asks gini to
// solve the accumulated Boolean structure, matching the host-loop shape
// of OLM's solver.Solve: Test, then search, then Solve (spec §4.10).
func (h *Host) CheckSat(ctx context.Context) CheckResult {
	if h.runFinalCheckLoop() == engine.StatusGiveUp {
		return Unknown
	}
	if h.conflict {
		return Unsat
	}

	outcome, _ := h.g.Test(nil)
	if outcome != satisfiable && outcome != unsatisfiable {
		outcome = h.g.Solve()
	}
	switch outcome {
	case satisfiable:
		return Sat
	case unsatisfiable:
		return Unsat
	default:
		return Unknown
	}
}

// runFinalCheckLoop drives final_check_eh to a fixpoint and returns the
// terminal status: StatusDone once every pending axiom has been drained
// or h.conflict is set, or StatusGiveUp if the theory reported
// incompleteness. A conflict along the way is never its own status — it
// surfaces through h.conflict (set by Context.SetConflict), checked at the
// top of every iteration, and the loop then returns StatusDone without
// draining the axiom queue.
func (h *Host) runFinalCheckLoop() engine.CheckStatus {
	for {
		if h.conflict {
			return engine.StatusDone
		}
		switch status := h.th.FinalCheckEH(); status {
		case engine.StatusGiveUp:
			return engine.StatusGiveUp
		case engine.StatusContinue:
			continue
		case engine.StatusDone:
			h.th.Propagate()
			if !h.th.CanPropagate() {
				return engine.StatusDone
			}
		}
	}
}

// Model returns a concrete string value for t, asking the theory to
// complete any unbound variable reachable from it (spec §4.10, mk_value).
func (h *Host) Model(t *term.Term) string {
	h.th.InitModel()
	v := h.th.MkValue(t)
	if v.Kind == term.KindString {
		return v.Str
	}
	return v.String()
}

func (h *Host) freshSkolemValue(sort term.Sort) *term.Term {
	h.freshCounter++
	return h.tm.String(fmt.Sprintf("v%d", h.freshCounter), sort)
}

type freshValueFactory struct {
	tm *term.Manager
	h  *Host
}

func (f freshValueFactory) FreshValue(sort term.Sort) *term.Term {
	return f.h.freshSkolemValue(sort)
}
