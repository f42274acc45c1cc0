package engine

import "github.com/strseq/seqtheory/pkg/theory/term"

type binding struct {
	rep *term.Term
	dep *Dep
}

// SolutionMap is the backtrackable substitution σ : Term ⇀ (Term, Dep)
// described in spec §3/§4.2. Cycles are prevented structurally: callers
// must occurs-check before calling Update (spec §8, property 4), so find
// is guaranteed to terminate.
type SolutionMap struct {
	m     map[*term.Term]binding
	trail *Trail
}

// NewSolutionMap returns an empty SolutionMap whose mutations are undone
// through trail.
func NewSolutionMap(trail *Trail) *SolutionMap {
	return &SolutionMap{m: make(map[*term.Term]binding), trail: trail}
}

// Update installs e ↦ (r, d), recording a DEL trail entry for any prior
// binding before recording the INS (spec §4.2).
func (s *SolutionMap) Update(e, r *term.Term, d *Dep) {
	old, had := s.m[e]
	s.m[e] = binding{rep: r, dep: d}
	if had {
		s.trail.Record(func() { s.m[e] = old })
	} else {
		s.trail.Record(func() { delete(s.m, e) })
	}
}

// Find walks the substitution chain from e, joining dependencies, and
// path-compresses the original key to the terminal representative if the
// chain was longer than one hop (spec §4.2; §8 property 2, confluence).
func (s *SolutionMap) Find(e *term.Term) (*term.Term, *Dep) {
	var d *Dep
	result := e
	hops := 0
	for {
		b, ok := s.m[result]
		if !ok {
			break
		}
		d = MkJoin(d, b.dep)
		result = b.rep
		hops++
	}
	if hops > 1 {
		s.Update(e, result, d)
	}
	return result, d
}

// Lookup reports whether e has a direct binding, without following the
// chain or compressing paths. Used by display/debugging.
func (s *SolutionMap) Lookup(e *term.Term) (*term.Term, *Dep, bool) {
	b, ok := s.m[e]
	return b.rep, b.dep, ok
}

// Entries returns the direct (uncompressed) bindings, for Display.
func (s *SolutionMap) Entries() map[*term.Term]*term.Term {
	out := make(map[*term.Term]*term.Term, len(s.m))
	for k, v := range s.m {
		out[k] = v.rep
	}
	return out
}
