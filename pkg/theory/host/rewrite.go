package host

import "github.com/strseq/seqtheory/pkg/theory/term"

// rewrite is the host's generic term rewriter (engine.Context.Rewrite):
// it re-associates concat spines and folds adjacent string literals, the
// minimal normal form the engine's canonicalizer relies on to make
// reduceEq's pointer-identity comparisons meaningful.
func rewrite(tm *term.Manager, t *term.Term) *term.Term {
	switch t.Kind {
	case term.KindConcat:
		leaves := flattenForRewrite(t)
		folded := foldAdjacentLiterals(tm, leaves)
		return rebuildForRewrite(tm, t.Sort, folded)
	case term.KindNot:
		inner := rewrite(tm, t.Args[0])
		return tm.Not(inner)
	case term.KindAnd:
		args := make([]*term.Term, len(t.Args))
		for i, a := range t.Args {
			args[i] = rewrite(tm, a)
		}
		return tm.And(args...)
	case term.KindOr:
		args := make([]*term.Term, len(t.Args))
		for i, a := range t.Args {
			args[i] = rewrite(tm, a)
		}
		return tm.Or(args...)
	case term.KindEq:
		a := rewrite(tm, t.Args[0])
		b := rewrite(tm, t.Args[1])
		return tm.Eq(a, b)
	default:
		return t
	}
}

func flattenForRewrite(t *term.Term) []*term.Term {
	if t.Kind == term.KindEmpty {
		return nil
	}
	if t.Kind != term.KindConcat {
		return []*term.Term{t}
	}
	return append(flattenForRewrite(t.Args[0]), flattenForRewrite(t.Args[1])...)
}

func foldAdjacentLiterals(tm *term.Manager, leaves []*term.Term) []*term.Term {
	if len(leaves) == 0 {
		return leaves
	}
	out := make([]*term.Term, 0, len(leaves))
	out = append(out, leaves[0])
	for _, l := range leaves[1:] {
		last := out[len(out)-1]
		if last.Kind == term.KindString && l.Kind == term.KindString {
			out[len(out)-1] = tm.String(last.Str+l.Str, last.Sort)
			continue
		}
		out = append(out, l)
	}
	return out
}

func rebuildForRewrite(tm *term.Manager, sort term.Sort, leaves []*term.Term) *term.Term {
	if len(leaves) == 0 {
		return tm.Empty(sort)
	}
	out := leaves[len(leaves)-1]
	for i := len(leaves) - 2; i >= 0; i-- {
		out = tm.Concat(leaves[i], out)
	}
	return out
}
