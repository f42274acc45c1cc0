package engine

import (
	"github.com/pkg/errors"
	"github.com/strseq/seqtheory/pkg/theory/term"
)

// tightestPrefix returns the skolem witness for the shortest prefix of s
// up to (but not including) the first occurrence of t, shared by the
// indexof and replace axioms (spec §4.9, tightest_prefix). Sharing the
// witness, rather than minting one per call site, is what lets the two
// axiom families agree on where t starts inside s.
func (th *Theory) tightestPrefix(s, t *term.Term) *term.Term {
	return th.tm.Skolem("tightest_prefix", s.Sort, s, t)
}

// addPrefixAxiom asserts the forward half of prefix(a,b)'s definition:
// if it holds, b decomposes as a followed by a fresh remainder (spec
// §4.9). The converse direction is the host's job via generic congruence
// once the remainder is known.
func (th *Theory) addPrefixAxiom(a, b *term.Term) {
	tail := th.tm.Skolem("prefix_tail", b.Sort, a, b)
	rhs := th.tm.Eq(b, th.tm.Concat(a, tail))
	axiom := th.tm.Or(th.tm.Not(th.tm.Prefix(a, b)), rhs)
	th.axq.Enqueue(axiom)
}

// addSuffixAxiom is addPrefixAxiom's mirror image for suffix(a,b).
func (th *Theory) addSuffixAxiom(a, b *term.Term) {
	head := th.tm.Skolem("suffix_head", b.Sort, a, b)
	rhs := th.tm.Eq(b, th.tm.Concat(head, a))
	axiom := th.tm.Or(th.tm.Not(th.tm.Suffix(a, b)), rhs)
	th.axq.Enqueue(axiom)
}

// addContainsAxiom decomposes b as an arbitrary head, a, then an
// arbitrary tail, whenever contains(a,b) holds (spec §4.9).
func (th *Theory) addContainsAxiom(a, b *term.Term) {
	head := th.tm.Skolem("contains_head", b.Sort, a, b)
	tail := th.tm.Skolem("contains_tail", b.Sort, a, b)
	rhs := th.tm.Eq(b, th.tm.Concat(head, th.tm.Concat(a, tail)))
	axiom := th.tm.Or(th.tm.Not(th.tm.Contains(a, b)), rhs)
	th.axq.Enqueue(axiom)
}

// addIndexofAxiom encodes the four-clause disjunctive axiom set spec
// §4.8/§4.9 gives for index(s,t), where contains(s,t) means "t contains
// s" (Manager.Contains's first argument is always the needle, per
// addContainsAxiom): index is -1 when t does not contain s; otherwise,
// unless s is empty, t decomposes as tightestPrefix(s,t) ++ s ++ tail and
// the index equals the length of that tightest prefix; and when s is
// empty the index is pinned to 0 directly, since tightestPrefix is
// undefined for an empty needle (add_indexof_axiom).
func (th *Theory) addIndexofAxiom(s, t *term.Term) {
	contains := th.tm.Contains(s, t)
	sEmpty := th.tm.Eq(s, th.tm.Empty(s.Sort))
	index := th.tm.Index(s, t)

	pre := th.tightestPrefix(s, t)
	tail := th.tm.Skolem("indexof_tail", t.Sort, s, t)
	decompose := th.tm.Eq(t, th.tm.Concat(pre, th.tm.Concat(s, tail)))

	foundOrAbsent := th.tm.Or(contains, th.tm.Eq(index, th.tm.Int(-1)))
	decomposeWhenFound := th.tm.Or(th.tm.Not(contains), sEmpty, decompose)
	indexIsTightestPrefixLen := th.tm.Or(th.tm.Not(contains), sEmpty, th.tm.Eq(index, th.tm.Length(pre)))
	zeroWhenEmpty := th.tm.Or(th.tm.Not(contains), th.tm.Not(sEmpty), th.tm.Eq(index, th.tm.Int(0)))

	th.axq.Enqueue(foundOrAbsent)
	th.axq.Enqueue(decomposeWhenFound)
	th.axq.Enqueue(indexIsTightestPrefixLen)
	th.axq.Enqueue(zeroWhenEmpty)
}

// lengthHintFor enqueues a sound length bound on result that holds
// regardless of how result's full decomposition eventually resolves,
// following theory_seq.cpp's length hint helpers for replace/extract:
// they strengthen the definitional axioms already enqueued for these
// constructs (spec §4.8) without depending on the decomposition itself,
// so the length theory has something to chew on even before (or instead
// of, for extract) the decomposition axioms fire.
func (th *Theory) lengthHintFor(result, bound *term.Term) {
	th.axq.Enqueue(th.tm.Le(th.tm.Length(result), bound))
}

// addReplaceAxiom mirrors addIndexofAxiom's four-clause structure for
// replace(a,s,t) (spec §4.8, "mirror the index axiom set"): unless s is
// empty, a decomposes as tightestPrefix(s,a) ++ s ++ tail and the result
// swaps s for t in that decomposition; replace is the identity both when
// a does not contain s and, as a direct guard mirroring indexof's
// empty-needle case, when s is empty.
func (th *Theory) addReplaceAxiom(a, s, t *term.Term) {
	contains := th.tm.Contains(s, a)
	sEmpty := th.tm.Eq(s, th.tm.Empty(s.Sort))
	result := th.tm.Replace(a, s, t)

	// replace removes at most all of s and inserts t at most once, so
	// len(result) never exceeds len(a)+len(t), whether or not a match is
	// ever found.
	th.lengthHintFor(result, th.tm.Add(th.tm.Length(a), th.tm.Length(t)))

	pre := th.tightestPrefix(s, a)
	post := th.tm.Skolem("replace_tail", a.Sort, s, a)
	decompose := th.tm.Eq(a, th.tm.Concat(pre, th.tm.Concat(s, post)))
	rewritten := th.tm.Eq(result, th.tm.Concat(pre, th.tm.Concat(t, post)))

	foundOrAbsent := th.tm.Or(contains, th.tm.Eq(result, a))
	decomposeWhenFound := th.tm.Or(th.tm.Not(contains), sEmpty, decompose)
	rewriteWhenFound := th.tm.Or(th.tm.Not(contains), sEmpty, rewritten)
	identityWhenEmpty := th.tm.Or(th.tm.Not(contains), th.tm.Not(sEmpty), th.tm.Eq(result, a))

	th.axq.Enqueue(foundOrAbsent)
	th.axq.Enqueue(decomposeWhenFound)
	th.axq.Enqueue(rewriteWhenFound)
	th.axq.Enqueue(identityWhenEmpty)
}

// addLenAxiom asserts the two structural facts every sequence variable
// gets once its length term becomes relevant: non-negativity, and the
// length-zero/empty correspondence (spec §4.9, add_len_axiom).
func (th *Theory) addLenAxiom(a *term.Term) {
	length := th.tm.Length(a)
	nonNeg := th.tm.Le(th.tm.Int(0), length)
	zeroIffEmpty := th.tm.Eq(th.tm.Eq(length, th.tm.Int(0)), th.tm.Eq(a, th.tm.Empty(a.Sort)))
	th.axq.Enqueue(nonNeg)
	th.axq.Enqueue(zeroIffEmpty)
}

// addExtractAxiom's full decomposition is explicitly unimplemented per
// the Non-goals this engine inherits (spec's extract axiom body, Open
// Question 2): callers should treat the returned error as an
// incompleteness trigger, not expect a definitional axiom. It still
// enqueues the one length fact that holds regardless of that missing
// decomposition — an extracted substring is never longer than the
// sequence it is extracted from — so the length theory keeps that much
// even though the rest of extract's behavior goes unconstrained.
func (th *Theory) addExtractAxiom(s, i, l *term.Term) error {
	th.lengthHintFor(th.tm.Extract(s, i, l), th.tm.Length(s))
	return errors.Wrap(ErrUnsupportedConstruct, "extract axiom")
}

// newEqLenConcat instantiates the length-distributivity axiom for a concat
// term a++b: len(a)+len(b) = len(a++b), plus len(a)+len(b) = len(x) for
// every tracked length handle len(x) whose argument currently resolves to
// that concat in σ. This resolves the gating ambiguity in theory_seq.cpp's
// new_eq_len_concat (Open Question 1): each axiom is enqueued once per
// (concat, length term) pair, deduped on the axiom term itself, and the
// dedup set is trail-backed so it re-arms on backtracking past the scope
// that introduced it.
func (th *Theory) newEqLenConcat(concat *term.Term) {
	if concat.Kind != term.KindConcat {
		return
	}
	a, b := concat.Args[0], concat.Args[1]
	sum := th.tm.Add(th.tm.Length(a), th.tm.Length(b))
	targets := []*term.Term{th.tm.Length(concat)}
	for _, lt := range th.relevantLengths {
		if rep, _ := th.sol.Find(lt.Args[0]); rep == concat {
			targets = append(targets, lt)
		}
	}
	for _, lt := range targets {
		axiom := th.tm.Eq(sum, lt)
		if !th.lenConcatSeen[axiom] {
			th.lenConcatSeen[axiom] = true
			th.trail.Record(func() { delete(th.lenConcatSeen, axiom) })
			th.axq.Enqueue(axiom)
		}
	}
}

// markLengthRelevant registers t = length(x) as an active length handle,
// enqueues its structural axioms once per length term (spec §4.8,
// relevant_eh(length(x))), and instantiates the distributivity axiom when
// x already resolves to a concat term in σ (Open Question 1, continued).
// NewEqEH instantiates it for tracked handles again when a later equation
// has that concat as one side; bindings the solver adds afterwards do not
// trigger it.
func (th *Theory) markLengthRelevant(lenTerm *term.Term) {
	if lenTerm.Kind != term.KindLength {
		return
	}
	th.relevantLengths = append(th.relevantLengths, lenTerm)
	th.trail.Record(func() {
		th.relevantLengths = th.relevantLengths[:len(th.relevantLengths)-1]
	})

	arg := lenTerm.Args[0]
	if !th.lenAxiomSeen[lenTerm] {
		th.lenAxiomSeen[lenTerm] = true
		th.trail.Record(func() { delete(th.lenAxiomSeen, lenTerm) })
		th.addLenAxiom(arg)
	}

	if rep, _ := th.sol.Find(arg); rep.Kind == term.KindConcat {
		th.newEqLenConcat(rep)
	}
}

// assignEq dispatches on a newly-assigned literal the way theory_seq.cpp's
// assign_eq does (spec §4.10): if it's false, it is only remembered on
// the ineqs watchlist for check_ineqs to re-test each final check,
// since a literal assigned false today can still be proven true by a
// later substitution round. If it's true, prefix/suffix/contains each
// get their definitional axiom enqueued; in_re sets the incomplete flag
// rather than attempting to reason about automata (Open Question 3);
// anything else is left to the host's generic Boolean reasoning.
func (th *Theory) assignEq(lit Literal) {
	if lit.Neg {
		th.rememberIneq(lit)
		return
	}
	t := lit.Term
	switch t.Kind {
	case term.KindPrefix:
		th.addPrefixAxiom(t.Args[0], t.Args[1])
	case term.KindSuffix:
		th.addSuffixAxiom(t.Args[0], t.Args[1])
	case term.KindContains:
		th.addContainsAxiom(t.Args[0], t.Args[1])
	case term.KindInRe:
		th.incomplete = true
	}
}
