// Package term implements the opaque, interned term model shared by the
// sequence theory engine and its host. Terms are identity-comparable: two
// structurally equal terms built through the same Manager are the same
// pointer, which is what lets occurs-checks and exclusion tables key off
// pointer equality instead of deep comparison.
package term

import (
	"fmt"
	"strings"
)

// Kind distinguishes the sequence and support symbols the engine reasons
// about, plus the minimal arithmetic/boolean connectives needed to state
// axioms over them.
type Kind int

const (
	KindVar Kind = iota
	KindSkolem
	KindConcat
	KindEmpty
	KindString
	KindUnit
	KindPrefix
	KindSuffix
	KindContains
	KindLength
	KindIndex
	KindReplace
	KindExtract
	KindInRe
	KindEq
	KindNot
	KindOr
	KindAnd
	KindBoolLit
	KindIntLit
	KindAdd
	KindLe
)

func (k Kind) String() string {
	switch k {
	case KindVar:
		return "var"
	case KindSkolem:
		return "skolem"
	case KindConcat:
		return "concat"
	case KindEmpty:
		return "empty"
	case KindString:
		return "string"
	case KindUnit:
		return "unit"
	case KindPrefix:
		return "prefix"
	case KindSuffix:
		return "suffix"
	case KindContains:
		return "contains"
	case KindLength:
		return "length"
	case KindIndex:
		return "index"
	case KindReplace:
		return "replace"
	case KindExtract:
		return "extract"
	case KindInRe:
		return "in_re"
	case KindEq:
		return "="
	case KindNot:
		return "not"
	case KindOr:
		return "or"
	case KindAnd:
		return "and"
	case KindBoolLit:
		return "bool"
	case KindIntLit:
		return "int"
	case KindAdd:
		return "+"
	case KindLe:
		return "<="
	default:
		return "?"
	}
}

// Sort is a nominal type tag. The engine only ever distinguishes sequence,
// element, boolean and integer sorts; the element sort of a sequence sort
// is carried alongside it so unit(elem) can be sort-checked by callers.
type Sort struct {
	Name string
}

var (
	SortBool = Sort{Name: "Bool"}
	SortInt  = Sort{Name: "Int"}
)

// SeqSort returns the sort of finite sequences over elem.
func SeqSort(elem Sort) Sort {
	return Sort{Name: "Seq[" + elem.Name + "]"}
}

// ElemSort returns the element sort of a sequence sort, or the zero Sort
// if s is not a sequence sort.
func (s Sort) ElemSort() (Sort, bool) {
	if !strings.HasPrefix(s.Name, "Seq[") || !strings.HasSuffix(s.Name, "]") {
		return Sort{}, false
	}
	return Sort{Name: s.Name[len("Seq[") : len(s.Name)-1]}, true
}

// Term is an interned, identity-comparable node. Callers never construct a
// Term directly; they go through a Manager so that structurally equal
// terms share an address.
type Term struct {
	id   uint64
	Kind Kind
	Sort Sort
	Args []*Term

	// Str carries the payload for leaf kinds: the literal value for
	// KindString, the display name for KindVar, the symbolic name
	// parameter for KindSkolem.
	Str string
	// Int carries the payload for KindIntLit.
	Int int64
}

// ID returns a stable, manager-assigned identity used for canonical
// ordering (e.g. the exclusion table's pair canonicalization).
func (t *Term) ID() uint64 { return t.id }

// IsSeqVar reports whether t is a sequence variable per the data model:
// uninterpreted of sequence sort, or a Skolem term (spec §3).
func (t *Term) IsSeqVar() bool {
	if t.Kind == KindSkolem {
		return true
	}
	return t.Kind == KindVar && strings.HasPrefix(t.Sort.Name, "Seq[")
}

// IsSelector reports whether t is a Skolem tagged as a left/right selector
// (spec §4.9), returning the single argument it peels to.
func (t *Term) IsSelector() (arg *Term, ok bool) {
	if t.Kind != KindSkolem {
		return nil, false
	}
	if t.Str == "left" || t.Str == "right" {
		if len(t.Args) >= 1 {
			return t.Args[0], true
		}
	}
	return nil, false
}

func (t *Term) String() string {
	switch t.Kind {
	case KindVar:
		return t.Str
	case KindString:
		return fmt.Sprintf("%q", t.Str)
	case KindEmpty:
		return "\"\""
	case KindSkolem:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("%s(%s)", t.Str, strings.Join(parts, ","))
	case KindIntLit:
		return fmt.Sprintf("%d", t.Int)
	case KindBoolLit:
		return t.Str
	case KindConcat:
		return fmt.Sprintf("(%s ++ %s)", t.Args[0], t.Args[1])
	case KindEq:
		return fmt.Sprintf("(%s = %s)", t.Args[0], t.Args[1])
	case KindNot:
		return fmt.Sprintf("(not %s)", t.Args[0])
	case KindOr:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("(or %s)", strings.Join(parts, " "))
	case KindAnd:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("(and %s)", strings.Join(parts, " "))
	default:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.String()
		}
		if len(parts) == 0 {
			return t.Kind.String()
		}
		return fmt.Sprintf("%s(%s)", t.Kind, strings.Join(parts, ","))
	}
}
