package engine

import (
	"fmt"
	"io"
	"sort"

	"github.com/strseq/seqtheory/pkg/theory/term"
)

// Display writes a deterministic, sorted debug dump of the solution map,
// the pending equation store and the exclusion table to out. This mirrors
// theory_seq.cpp's display() diagnostic, which original_source/ keeps for
// interactive debugging even though nothing in the distilled spec calls
// for it directly.
func (th *Theory) Display(out io.Writer) {
	fmt.Fprintln(out, "solution map:")
	for _, line := range sortedBindings(th.sol.Entries()) {
		fmt.Fprintln(out, "  "+line)
	}

	fmt.Fprintln(out, "pending equations:")
	eqs := make([]string, 0, th.eqs.Len())
	for i := 0; i < th.eqs.Len(); i++ {
		e := th.eqs.At(i)
		eqs = append(eqs, e.L.String()+" = "+e.R.String())
	}
	sort.Strings(eqs)
	for _, line := range eqs {
		fmt.Fprintln(out, "  "+line)
	}

	fmt.Fprintln(out, "exclusions:")
	excl := make([]string, 0, len(th.excl.set))
	for p := range th.excl.set {
		excl = append(excl, p.a.String()+" != "+p.b.String())
	}
	sort.Strings(excl)
	for _, line := range excl {
		fmt.Fprintln(out, "  "+line)
	}
}

func sortedBindings(m map[*term.Term]*term.Term) []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k.String()+" -> "+v.String())
	}
	sort.Strings(out)
	return out
}
