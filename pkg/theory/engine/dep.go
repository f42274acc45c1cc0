package engine

import "github.com/strseq/seqtheory/pkg/theory/term"

// EnodePair is a leaf of a Dep: the host asserted n1 = n2.
type EnodePair struct {
	N1, N2 *term.Term
}

// Literal is an abstract boolean literal: a term together with a polarity.
// Justifications can cite literals in addition to enode-pair equalities
// (spec §6: "Justifications carry both the set of linearized enode-pair
// equalities and any Boolean literals that support the inference.").
type Literal struct {
	Term *term.Term
	Neg  bool
}

// Not returns the negation of l.
func (l Literal) Not() Literal {
	return Literal{Term: l.Term, Neg: !l.Neg}
}

func (l Literal) String() string {
	if l.Neg {
		return "¬" + l.Term.String()
	}
	return l.Term.String()
}

// Dep is the persistent dependency DAG described in spec §3/§4.1: leaves
// are enode pairs or supporting literals, internal nodes are joins. Nodes
// are shared freely and, once allocated, outlive scopes (they are
// monotone; backtracking does not free them — spec §9).
type Dep struct {
	pair        *EnodePair
	lit         *Literal
	left, right *Dep
}

// MkLeaf returns a Dep whose sole justification is the host-asserted
// equality n1 = n2.
func MkLeaf(n1, n2 *term.Term) *Dep {
	return &Dep{pair: &EnodePair{N1: n1, N2: n2}}
}

// MkLitLeaf returns a Dep whose sole justification is a supporting literal.
func MkLitLeaf(lit Literal) *Dep {
	return &Dep{lit: &lit}
}

// MkJoin combines two dependencies. mk_join(null, d) = d (spec §4.1).
func MkJoin(a, b *Dep) *Dep {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &Dep{left: a, right: b}
}

// Justification is the linearized, deduplicated form of a Dep: the set of
// enode-pair equalities and literals whose conjunction justifies a
// derived fact.
type Justification struct {
	Pairs []EnodePair
	Lits  []Literal
}

// Linearize walks d with a visited set to dedupe and returns the leaves
// reachable from it (spec §4.1: "linearize(d) returns the set of leaves
// reachable from d, deduplicated").
func Linearize(d *Dep) Justification {
	var just Justification
	seenNodes := make(map[*Dep]bool)
	seenPairs := make(map[EnodePair]bool)
	seenLits := make(map[Literal]bool)

	var walk func(*Dep)
	walk = func(d *Dep) {
		if d == nil || seenNodes[d] {
			return
		}
		seenNodes[d] = true
		if d.pair != nil {
			if !seenPairs[*d.pair] {
				seenPairs[*d.pair] = true
				just.Pairs = append(just.Pairs, *d.pair)
			}
			return
		}
		if d.lit != nil {
			if !seenLits[*d.lit] {
				seenLits[*d.lit] = true
				just.Lits = append(just.Lits, *d.lit)
			}
			return
		}
		walk(d.left)
		walk(d.right)
	}
	walk(d)
	return just
}
