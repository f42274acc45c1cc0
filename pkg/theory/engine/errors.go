package engine

import "github.com/pkg/errors"

// ErrUnsupportedConstruct is returned by axiom generators that are
// explicitly unimplemented per spec §1 Non-goals; addExtractAxiom is the
// one that returns it (in_re membership sets the incomplete flag in
// assignEq instead). Callers should route it through the incomplete path
// rather than treat it as a user-facing error (spec §7).
var ErrUnsupportedConstruct = errors.New("seqtheory: unsupported construct")

// invariant panics with a wrapped error identifying a programmer error —
// an internal invariant violation (spec §7: "Assertion failures … are
// programmer errors and should abort in debug builds; they must be
// unreachable in release"). It is never expected to fire against
// well-formed input.
func invariant(format string, args ...interface{}) {
	panic(errors.Errorf("seqtheory: invariant violated: "+format, args...))
}
