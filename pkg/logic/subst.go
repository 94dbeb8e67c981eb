package logic

import (
	"maps"
	"slices"
	"strings"
)

// Subst maps metavariable symbols to their bindings. Sentential
// metavariables bind formulas; individual metavariables bind terms; variable
// and predicate metavariables bind symbols (as Sym).
//
// Within a single matching or instantiation episode every occurrence of a
// metavariable resolves to the same binding: the first binding wins and a
// later conflicting one is a failure.
type Subst map[string]Binding

// Clone returns a shallow copy of s. Bindings are immutable, so sharing them
// is safe.
func (s Subst) Clone() Subst {
	if s == nil {
		return Subst{}
	}
	return maps.Clone(s)
}

// Equal reports whether s and other bind exactly the same keys to
// structurally equal values.
func (s Subst) Equal(other Subst) bool {
	if len(s) != len(other) {
		return false
	}
	for k, v := range s {
		w, ok := other[k]
		if !ok || !BindingEqual(v, w) {
			return false
		}
	}
	return true
}

// Formula returns the formula bound to key.
func (s Subst) Formula(key string) (Formula, bool) {
	f, ok := s[key].(Formula)
	return f, ok
}

// Term returns the term bound to key.
func (s Subst) Term(key string) (Term, bool) {
	t, ok := s[key].(Term)
	return t, ok
}

// String renders the substitution with keys in sorted order, e.g.
// "{A: P(a), α: a}".
func (s Subst) String() string {
	keys := slices.Sorted(maps.Keys(s))
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		if s[k] == nil {
			b.WriteString("<nil>")
		} else {
			b.WriteString(s[k].String())
		}
	}
	b.WriteByte('}')
	return b.String()
}

// bind records key ↦ value unless key is already bound; it reports whether
// the (possibly pre-existing) binding agrees with value.
func (s Subst) bind(key string, value Binding) bool {
	if prev, ok := s[key]; ok {
		return BindingEqual(prev, value)
	}
	s[key] = value
	return true
}
