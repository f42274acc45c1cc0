package engine

import "github.com/strseq/seqtheory/pkg/theory/term"

// eqEntry is one pending equality l = r with justification d.
type eqEntry struct {
	L, R *term.Term
	D    *Dep
}

// EqStore is the equation store of spec §3/§4.5: three parallel
// backtrackable sequences, represented here as one slice of entries per
// decision scope. The store duplicates its top frame on push and drops it
// on pop (copy-on-push), which is a deliberate memory-for-time trade-off
// that avoids per-mutation trail entries (spec §9).
type EqStore struct {
	frames [][]eqEntry
}

// NewEqStore returns an EqStore with a single, empty base frame.
func NewEqStore() *EqStore {
	return &EqStore{frames: [][]eqEntry{nil}}
}

func (s *EqStore) top() []eqEntry {
	return s.frames[len(s.frames)-1]
}

// PushScope duplicates the current frame onto a new top.
func (s *EqStore) PushScope() {
	top := s.top()
	dup := make([]eqEntry, len(top))
	copy(dup, top)
	s.frames = append(s.frames, dup)
}

// PopScope discards the top numScopes frames.
func (s *EqStore) PopScope(numScopes int) {
	n := len(s.frames) - numScopes
	if n < 1 {
		n = 1
	}
	s.frames = s.frames[:n]
}

// Add appends a pending equality to the current scope's frame.
func (s *EqStore) Add(l, r *term.Term, d *Dep) {
	top := len(s.frames) - 1
	s.frames[top] = append(s.frames[top], eqEntry{L: l, R: r, D: d})
}

// Len returns the number of pending equalities in the current scope.
func (s *EqStore) Len() int {
	return len(s.top())
}

// At returns the i'th pending equality in the current scope.
func (s *EqStore) At(i int) eqEntry {
	return s.top()[i]
}

// RemoveSwap deletes the i'th equality by swapping in the last entry,
// matching the swap-with-last deletion pre_process_eqs uses (spec §4.5).
func (s *EqStore) RemoveSwap(i int) {
	top := len(s.frames) - 1
	f := s.frames[top]
	last := len(f) - 1
	f[i] = f[last]
	s.frames[top] = f[:last]
}
