package main

import (
	"fmt"
	"strings"

	"github.com/strseq/seqtheory/pkg/theory/term"
)

// sexpr is a parsed but not yet sort-checked expression: either an atom
// (a bare word or a quoted string literal) or a compound form.
type sexpr struct {
	atom     string
	isString bool
	form     string
	args     []sexpr
}

// parseSExpr parses a single s-expression from src, ignoring anything
// after the closing paren (or the bare atom, if src has no parens).
func parseSExpr(src string) (sexpr, error) {
	p := &sexprParser{s: src}
	p.skipSpace()
	e, err := p.parseOne()
	if err != nil {
		return sexpr{}, err
	}
	return e, nil
}

type sexprParser struct {
	s   string
	pos int
}

func (p *sexprParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func (p *sexprParser) parseOne() (sexpr, error) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return sexpr{}, fmt.Errorf("seqcli: unexpected end of expression")
	}
	if p.s[p.pos] == '"' {
		return p.parseString()
	}
	if p.s[p.pos] == '(' {
		return p.parseForm()
	}
	return p.parseAtom()
}

func (p *sexprParser) parseString() (sexpr, error) {
	p.pos++ // opening quote
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] != '"' {
		p.pos++
	}
	if p.pos >= len(p.s) {
		return sexpr{}, fmt.Errorf("seqcli: unterminated string literal")
	}
	lit := p.s[start:p.pos]
	p.pos++ // closing quote
	return sexpr{atom: lit, isString: true}, nil
}

func (p *sexprParser) parseAtom() (sexpr, error) {
	start := p.pos
	for p.pos < len(p.s) && !strings.ContainsRune(" \t()", rune(p.s[p.pos])) {
		p.pos++
	}
	if start == p.pos {
		return sexpr{}, fmt.Errorf("seqcli: empty atom at offset %d", start)
	}
	return sexpr{atom: p.s[start:p.pos]}, nil
}

func (p *sexprParser) parseForm() (sexpr, error) {
	p.pos++ // '('
	p.skipSpace()
	head, err := p.parseAtom()
	if err != nil {
		return sexpr{}, err
	}
	e := sexpr{form: head.atom}
	for {
		p.skipSpace()
		if p.pos >= len(p.s) {
			return sexpr{}, fmt.Errorf("seqcli: unterminated form %q", head.atom)
		}
		if p.s[p.pos] == ')' {
			p.pos++
			return e, nil
		}
		arg, err := p.parseOne()
		if err != nil {
			return sexpr{}, err
		}
		e.args = append(e.args, arg)
	}
}

// build resolves a parsed sexpr into a term, using st.vars for bare-word
// atoms that are not a recognized keyword, and the sequence sort st.seq
// for string and empty literals.
func (st *scriptState) build(e sexpr) (*term.Term, error) {
	if e.isString {
		return st.tm.String(e.atom, st.seq), nil
	}
	if e.form == "" {
		switch e.atom {
		case "empty":
			return st.tm.Empty(st.seq), nil
		default:
			v, ok := st.vars[e.atom]
			if !ok {
				return nil, fmt.Errorf("seqcli: undeclared variable %q", e.atom)
			}
			return v, nil
		}
	}

	args := make([]*term.Term, len(e.args))
	for i, a := range e.args {
		t, err := st.build(a)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}

	switch e.form {
	case "concat":
		if len(args) != 2 {
			return nil, fmt.Errorf("seqcli: concat takes 2 arguments, got %d", len(args))
		}
		return st.tm.Concat(args[0], args[1]), nil
	case "eq":
		return st.tm.Eq(args[0], args[1]), nil
	case "prefix":
		return st.tm.Prefix(args[0], args[1]), nil
	case "suffix":
		return st.tm.Suffix(args[0], args[1]), nil
	case "contains":
		return st.tm.Contains(args[0], args[1]), nil
	case "length":
		return st.tm.Length(args[0]), nil
	case "indexof":
		return st.tm.Index(args[0], args[1]), nil
	case "replace":
		return st.tm.Replace(args[0], args[1], args[2]), nil
	default:
		return nil, fmt.Errorf("seqcli: unknown form %q", e.form)
	}
}
