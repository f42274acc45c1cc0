package engine

import "github.com/strseq/seqtheory/pkg/theory/term"

// fakeContext is a minimal, recording implementation of Context used by
// white-box engine tests, playing the role search_test.go's counterfeiter
// fake plays for inter.S in the teacher's solver package tests.
type fakeContext struct {
	th *Theory

	internalized []*term.Term
	boolVars     []*term.Term
	assumedEq    [][2]*term.Term
	assignedEq   [][2]*term.Term
	assigned     []Literal
	axioms       []*term.Term
	conflicts    []Justification
	relevant     []Literal
	inconsistent bool
}

func (f *fakeContext) Internalize(t *term.Term, gate bool) {
	f.internalized = append(f.internalized, t)
}

func (f *fakeContext) EInternalized(t *term.Term) bool {
	for _, x := range f.internalized {
		if x == t {
			return true
		}
	}
	return false
}

func (f *fakeContext) GetEnode(t *term.Term) *term.Term { return t }

func (f *fakeContext) MkBoolVar(t *term.Term) {
	f.boolVars = append(f.boolVars, t)
}

func (f *fakeContext) AssumeEq(n1, n2 *term.Term) {
	f.assumedEq = append(f.assumedEq, [2]*term.Term{n1, n2})
}

func (f *fakeContext) AssignEq(n1, n2 *term.Term, just Justification) {
	f.assignedEq = append(f.assignedEq, [2]*term.Term{n1, n2})
}

func (f *fakeContext) Assign(lit Literal, just Justification) {
	f.assigned = append(f.assigned, lit)
}

func (f *fakeContext) SetConflict(just Justification) {
	f.inconsistent = true
	f.conflicts = append(f.conflicts, just)
}

func (f *fakeContext) MkThAxiom(formula *term.Term) {
	f.axioms = append(f.axioms, formula)
}

func (f *fakeContext) Inconsistent() bool { return f.inconsistent }

func (f *fakeContext) MarkAsRelevant(lit Literal) {
	f.relevant = append(f.relevant, lit)
}

func (f *fakeContext) Rewrite(t *term.Term) *term.Term { return t }

// fakeValueFactory hands out a fixed sequence of fresh string literals.
type fakeValueFactory struct {
	tm      *term.Manager
	counter int
}

func (f *fakeValueFactory) FreshValue(sort term.Sort) *term.Term {
	f.counter++
	return f.tm.String(string(rune('A'+f.counter-1)), sort)
}
