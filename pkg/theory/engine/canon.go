package engine

import "github.com/strseq/seqtheory/pkg/theory/term"

// expand performs the single bottom-up pass of spec §4.4: apply σ to the
// root, joining the dependency, then recurse into the operators σ and the
// engine care about. In model-completion mode, unbound variables are
// completed to fresh concrete values and committed to σ with a null
// dependency.
func (th *Theory) expand(e *term.Term, dep *Dep) (*term.Term, *Dep) {
	rep, d := th.sol.Find(e)
	dep = MkJoin(dep, d)

	switch rep.Kind {
	case term.KindConcat:
		a, dep2 := th.expand(rep.Args[0], dep)
		b, dep3 := th.expand(rep.Args[1], dep2)
		return th.tm.Concat(a, b), dep3
	case term.KindEmpty, term.KindString, term.KindBoolLit, term.KindIntLit:
		return rep, dep
	case term.KindEq:
		a, dep2 := th.expand(rep.Args[0], dep)
		b, dep3 := th.expand(rep.Args[1], dep2)
		return th.tm.Eq(a, b), dep3
	case term.KindPrefix:
		a, dep2 := th.expand(rep.Args[0], dep)
		b, dep3 := th.expand(rep.Args[1], dep2)
		return th.tm.Prefix(a, b), dep3
	case term.KindSuffix:
		a, dep2 := th.expand(rep.Args[0], dep)
		b, dep3 := th.expand(rep.Args[1], dep2)
		return th.tm.Suffix(a, b), dep3
	case term.KindContains:
		a, dep2 := th.expand(rep.Args[0], dep)
		b, dep3 := th.expand(rep.Args[1], dep2)
		return th.tm.Contains(a, b), dep3
	default:
		if th.modelCompletion && rep.IsSeqVar() && th.valueFactory != nil {
			val := th.valueFactory.FreshValue(rep.Sort)
			if val != nil {
				th.sol.Update(rep, val, nil)
				return val, dep
			}
		}
		return rep, dep
	}
}

// Canonize computes canonize(e) = rewrite(expand(e)) (spec §4.4),
// accumulating the dependency that justifies the result, then asks the
// host's generic rewriter to normalize the expanded term.
func (th *Theory) Canonize(e *term.Term) (*term.Term, *Dep) {
	expanded, dep := th.expand(e, nil)
	return th.ctx.Rewrite(expanded), dep
}

// canonizeModelComplete runs Canonize in model-completion mode, used only
// by MkValue during model construction (spec §4.10, mk_value).
func (th *Theory) canonizeModelComplete(e *term.Term) *term.Term {
	prev := th.modelCompletion
	th.modelCompletion = true
	defer func() { th.modelCompletion = prev }()
	result, _ := th.Canonize(e)
	return result
}
