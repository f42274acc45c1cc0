package engine

import "github.com/strseq/seqtheory/pkg/theory/term"

// AxiomQueue is the growable list of formulas to assert to the host, with
// a monotonically increasing, backtrackable cursor (spec §3/§4.8's
// "Axiom queue": "only head is backtrackable").
type AxiomQueue struct {
	axioms []*term.Term
	head   int
	trail  *Trail
}

// NewAxiomQueue returns an empty AxiomQueue.
func NewAxiomQueue(trail *Trail) *AxiomQueue {
	return &AxiomQueue{trail: trail}
}

// Enqueue appends a formula to be asserted on the next Propagate.
func (q *AxiomQueue) Enqueue(f *term.Term) {
	q.axioms = append(q.axioms, f)
}

// CanPropagate reports whether any enqueued axiom has not yet been
// asserted (spec §4.10, can_propagate).
func (q *AxiomQueue) CanPropagate() bool {
	return q.head < len(q.axioms)
}

// Pending returns the formulas from head to the end of the queue, without
// advancing the cursor.
func (q *AxiomQueue) Pending() []*term.Term {
	return q.axioms[q.head:]
}

// Advance moves the cursor past the next pending formula, recording an
// undo entry so pop_scope can roll it back.
func (q *AxiomQueue) Advance() {
	old := q.head
	q.head++
	q.trail.Record(func() { q.head = old })
}
