package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/strseq/seqtheory/pkg/theory/host"
	"github.com/strseq/seqtheory/pkg/theory/term"
)

// The script format is a flat sequence of lines, each either a
// declaration, an assertion, or a control command:
//
//	decl-var x
//	assert (eq (concat x "ab") (concat "a" y))
//	assert-not (prefix x y)
//	push
//	pop 1
//	check
//
// Expressions are s-expressions over concat/eq/prefix/suffix/contains/
// length/indexof/replace and string/variable atoms. This is intentionally
// tiny: the engine under test does not need a general-purpose input
// format, so runScript hand-rolls the handful of forms above rather than
// pulling in a parser library for a half-dozen keywords.
type scriptState struct {
	tm   *term.Manager
	host *host.Host
	seq  term.Sort
	vars map[string]*term.Term
}

// runScript executes src against a fresh Host and returns the final
// check result, the declared variables (for model printing), and the
// Host itself so the caller can query Model.
func runScript(src string) (string, map[string]*term.Term, *host.Host, error) {
	tm := term.NewManager()
	h := host.New(tm)
	st := &scriptState{tm: tm, host: h, seq: term.SeqSort(term.Sort{Name: "Char"}), vars: map[string]*term.Term{}}

	result := "unknown"

	scanner := bufio.NewScanner(strings.NewReader(src))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "decl-var":
			name := fields[1]
			st.vars[name] = tm.Var(name, st.seq)
		case "push":
			h.PushScope()
		case "pop":
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return "", nil, nil, err
			}
			h.PopScope(n)
		case "check":
			switch h.CheckSat(context.Background()) {
			case host.Sat:
				result = "sat"
			case host.Unsat:
				result = "unsat"
			default:
				result = "unknown"
			}
		case "assert", "assert-not":
			rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
			expr, err := parseSExpr(rest)
			if err != nil {
				return "", nil, nil, err
			}
			t, err := st.build(expr)
			if err != nil {
				return "", nil, nil, err
			}
			neg := fields[0] == "assert-not"
			switch t.Kind {
			case term.KindEq:
				if neg {
					h.AssertDiseq(t.Args[0], t.Args[1])
				} else {
					h.AssertEq(t.Args[0], t.Args[1])
				}
			default:
				h.AssertLiteral(t, neg)
			}
		default:
			return "", nil, nil, fmt.Errorf("seqcli: unknown command %q", fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return "", nil, nil, err
	}
	return result, st.vars, h, nil
}
