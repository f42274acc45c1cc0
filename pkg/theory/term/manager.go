package term

import (
	"fmt"
	"strings"
	"sync"
)

// Manager interns terms so that structurally equal terms are the same
// pointer. Skolem interning in particular depends on this: two calls to
// Skolem with the same name and argument identities must return the same
// term, or axiom generators sharing a witness (spec §4.9) would not agree.
type Manager struct {
	mu     sync.Mutex
	nextID uint64
	table  map[string]*Term
}

// NewManager returns an empty, ready to use Manager.
func NewManager() *Manager {
	return &Manager{table: make(map[string]*Term)}
}

func (m *Manager) intern(key string, build func(id uint64) *Term) *Term {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.table[key]; ok {
		return t
	}
	m.nextID++
	t := build(m.nextID)
	m.table[key] = t
	return t
}

func argKey(args []*Term) string {
	var b strings.Builder
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", a.id)
	}
	return b.String()
}

func (m *Manager) leaf(kind Kind, sort Sort, str string, n int64) *Term {
	key := fmt.Sprintf("%d|%s|%s|%d", kind, sort.Name, str, n)
	return m.intern(key, func(id uint64) *Term {
		return &Term{id: id, Kind: kind, Sort: sort, Str: str, Int: n}
	})
}

func (m *Manager) node(kind Kind, sort Sort, str string, args ...*Term) *Term {
	key := fmt.Sprintf("%d|%s|%s|[%s]", kind, sort.Name, str, argKey(args))
	return m.intern(key, func(id uint64) *Term {
		return &Term{id: id, Kind: kind, Sort: sort, Str: str, Args: args}
	})
}

// Var returns (interning) an uninterpreted variable of the given sort.
func (m *Manager) Var(name string, sort Sort) *Term {
	return m.leaf(KindVar, sort, name, 0)
}

// Skolem returns (interning) a fresh-symbol term tagged by name and its
// argument identities. Selector skolems use the reserved names "left" and
// "right" (spec §4.9).
func (m *Manager) Skolem(name string, sort Sort, args ...*Term) *Term {
	return m.node(KindSkolem, sort, name, args...)
}

// Empty returns the empty sequence of the given sort.
func (m *Manager) Empty(sort Sort) *Term {
	return m.leaf(KindEmpty, sort, "", 0)
}

// String returns a sequence literal over the given sort with the given
// display value.
func (m *Manager) String(lit string, sort Sort) *Term {
	return m.leaf(KindString, sort, lit, 0)
}

// Unit returns the length-one sequence containing elem.
func (m *Manager) Unit(elem *Term, seqSort Sort) *Term {
	return m.node(KindUnit, seqSort, "", elem)
}

// Concat returns a ++ b, collapsing the empty-sequence identity.
func (m *Manager) Concat(a, b *Term) *Term {
	if a.Kind == KindEmpty {
		return b
	}
	if b.Kind == KindEmpty {
		return a
	}
	return m.node(KindConcat, a.Sort, "", a, b)
}

func (m *Manager) Prefix(a, b *Term) *Term {
	return m.node(KindPrefix, SortBool, "", a, b)
}

func (m *Manager) Suffix(a, b *Term) *Term {
	return m.node(KindSuffix, SortBool, "", a, b)
}

func (m *Manager) Contains(a, b *Term) *Term {
	return m.node(KindContains, SortBool, "", a, b)
}

func (m *Manager) Length(a *Term) *Term {
	return m.node(KindLength, SortInt, "", a)
}

func (m *Manager) Index(s, t *Term) *Term {
	return m.node(KindIndex, SortInt, "", s, t)
}

func (m *Manager) Replace(a, s, t *Term) *Term {
	return m.node(KindReplace, a.Sort, "", a, s, t)
}

func (m *Manager) Extract(s, i, l *Term) *Term {
	return m.node(KindExtract, s.Sort, "", s, i, l)
}

func (m *Manager) InRe(a, r *Term) *Term {
	return m.node(KindInRe, SortBool, "", a, r)
}

func (m *Manager) Eq(a, b *Term) *Term {
	if a == b {
		return m.True()
	}
	return m.node(KindEq, SortBool, "", a, b)
}

func (m *Manager) Not(f *Term) *Term {
	if f.Kind == KindBoolLit {
		if f.Str == "true" {
			return m.False()
		}
		return m.True()
	}
	return m.node(KindNot, SortBool, "", f)
}

func (m *Manager) Or(fs ...*Term) *Term {
	filtered := fs[:0:0]
	for _, f := range fs {
		if f.Kind == KindBoolLit && f.Str == "true" {
			return m.True()
		}
		if f.Kind == KindBoolLit && f.Str == "false" {
			continue
		}
		filtered = append(filtered, f)
	}
	if len(filtered) == 0 {
		return m.False()
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return m.node(KindOr, SortBool, "", filtered...)
}

func (m *Manager) And(fs ...*Term) *Term {
	filtered := fs[:0:0]
	for _, f := range fs {
		if f.Kind == KindBoolLit && f.Str == "false" {
			return m.False()
		}
		if f.Kind == KindBoolLit && f.Str == "true" {
			continue
		}
		filtered = append(filtered, f)
	}
	if len(filtered) == 0 {
		return m.True()
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return m.node(KindAnd, SortBool, "", filtered...)
}

func (m *Manager) True() *Term  { return m.leaf(KindBoolLit, SortBool, "true", 0) }
func (m *Manager) False() *Term { return m.leaf(KindBoolLit, SortBool, "false", 0) }

func (m *Manager) Int(n int64) *Term {
	return m.leaf(KindIntLit, SortInt, "", n)
}

func (m *Manager) Add(a, b *Term) *Term {
	return m.node(KindAdd, SortInt, "", a, b)
}

func (m *Manager) Le(a, b *Term) *Term {
	return m.node(KindLe, SortBool, "", a, b)
}
