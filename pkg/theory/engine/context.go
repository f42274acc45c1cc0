package engine

import "github.com/strseq/seqtheory/pkg/theory/term"

// Context is the outbound half of the host contract (spec §6): the calls
// the engine makes back into the host SMT context. It is implemented by
// the host, never by the engine; pkg/theory/host provides a SAT-backed
// reference implementation.
type Context interface {
	// Internalize asks the host to internalize t, as a gated (guarded)
	// term if gate is true.
	Internalize(t *term.Term, gate bool)
	// EInternalized reports whether t already has an enode.
	EInternalized(t *term.Term) bool
	// GetEnode returns the canonical enode handle for t. In this
	// implementation enodes and terms share a representation, so this
	// simply returns t's current union-find representative.
	GetEnode(t *term.Term) *term.Term
	// MkBoolVar attaches a boolean decision variable to t.
	MkBoolVar(t *term.Term)
	// AssumeEq asks the host to introduce a case split assuming n1 = n2,
	// creating a fresh decision point.
	AssumeEq(n1, n2 *term.Term)
	// AssignEq propagates a derived equality with its justification.
	AssignEq(n1, n2 *term.Term, just Justification)
	// Assign propagates a derived literal with its justification.
	Assign(lit Literal, just Justification)
	// SetConflict aborts the current model with a conflict clause.
	SetConflict(just Justification)
	// MkThAxiom asserts a theory axiom (a formula known to be valid in
	// the theory) to the host's clause database.
	MkThAxiom(formula *term.Term)
	// Inconsistent reports whether the host has already detected a
	// Boolean-level conflict.
	Inconsistent() bool
	// MarkAsRelevant requests relevance propagation for lit.
	MarkAsRelevant(lit Literal)
	// Rewrite applies the host's generic term rewriter (flattening
	// concat, folding literal arithmetic, …). This is explicitly the
	// external collaborator named in spec §1 Non-goals; the engine
	// never implements it itself.
	Rewrite(t *term.Term) *term.Term
}

// ValueFactory produces fresh, sort-valid concrete values during model
// construction (spec §4.4, "model-completion mode").
type ValueFactory interface {
	FreshValue(sort term.Sort) *term.Term
}
