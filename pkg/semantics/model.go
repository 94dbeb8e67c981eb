package semantics

import (
	"fmt"
	"maps"
	"slices"

	"github.com/gitrdm/logics/pkg/logic"
)

// Resolver supplies denotations for symbols that are not enumerated, such
// as every numeral of an arithmetic language.
type Resolver func(symbol string) (Element, bool)

// Model is a domain together with the denotations of a language's
// non-logical symbols. Individual constants denote Elements, predicates
// denote Relations and function symbols denote Functions.
//
// A model is immutable once built. Fixed denotations, registered with
// WithFixed or WithResolver, are consulted before instance denotations; they
// let a family of models (such as the arithmetic ones) share a core of
// interpreted symbols.
type Model struct {
	domain      Domain
	fixed       map[string]any
	resolvers   []Resolver
	denotations map[string]any
}

// NewModel builds a model over domain with the given symbol denotations.
// The map is copied.
func NewModel(domain Domain, denotations map[string]any) *Model {
	return &Model{
		domain:      domain,
		fixed:       map[string]any{},
		denotations: maps.Clone(orEmpty(denotations)),
	}
}

// WithFixed returns a copy of m with additional fixed denotations.
func (m *Model) WithFixed(fixed map[string]any) *Model {
	out := m.clone()
	maps.Copy(out.fixed, fixed)
	return out
}

// WithResolver returns a copy of m that also resolves symbols through r,
// before the fixed and instance denotations.
func (m *Model) WithResolver(r Resolver) *Model {
	out := m.clone()
	out.resolvers = append(out.resolvers, r)
	return out
}

// WithDomain returns a copy of m over another domain.
func (m *Model) WithDomain(d Domain) *Model {
	out := m.clone()
	out.domain = d
	return out
}

// With returns a copy of m with additional instance denotations.
func (m *Model) With(denotations map[string]any) *Model {
	out := m.clone()
	maps.Copy(out.denotations, denotations)
	return out
}

func (m *Model) clone() *Model {
	return &Model{
		domain:      m.domain,
		fixed:       maps.Clone(m.fixed),
		resolvers:   append([]Resolver(nil), m.resolvers...),
		denotations: maps.Clone(m.denotations),
	}
}

// Domain returns the model's domain.
func (m *Model) Domain() Domain { return m.domain }

// Lookup returns the denotation the model gives symbol, ignoring any
// assignment: resolvers first, then fixed denotations, then instance data.
func (m *Model) Lookup(symbol string) (any, bool) {
	for _, r := range m.resolvers {
		if v, ok := r(symbol); ok {
			return v, true
		}
	}
	if v, ok := m.fixed[symbol]; ok {
		return v, true
	}
	v, ok := m.denotations[symbol]
	return v, ok
}

// Symbols returns the sorted symbols with an instance or fixed denotation.
func (m *Model) Symbols() []string {
	set := maps.Clone(m.denotations)
	maps.Copy(set, m.fixed)
	return slices.Sorted(maps.Keys(set))
}

// Denotation resolves a term. An atomic term resolves through the model's
// fixed denotations, then its instance denotations, then asg. A compound
// term applies its function symbol's denotation to the denotations of its
// arguments. Failures are *DenotationError values.
func (m *Model) Denotation(t logic.Term, asg Assignment) (Element, error) {
	switch x := t.(type) {
	case logic.Sym:
		if v, ok := m.Lookup(string(x)); ok {
			return v, nil
		}
		if v, ok := asg.Lookup(string(x)); ok {
			return v, nil
		}
		return nil, &DenotationError{Term: t}
	case *logic.App:
		args := make(Tuple, len(x.Args))
		for i, arg := range x.Args {
			v, err := m.Denotation(arg, asg)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		d, ok := m.Lookup(x.Func)
		if !ok {
			return nil, &DenotationError{Term: t, Reason: fmt.Sprintf("function symbol %s has no denotation", x.Func)}
		}
		fn, ok := d.(Function)
		if !ok {
			return nil, &DenotationError{Term: t, Reason: fmt.Sprintf("%s denotes %T, not a function", x.Func, d)}
		}
		v, defined, err := Apply(fn, args)
		if err != nil {
			return nil, &DenotationError{Term: t, Reason: err.Error()}
		}
		if !defined {
			return nil, &DenotationError{Term: t, Reason: fmt.Sprintf("%s is not defined for %s", x.Func, args)}
		}
		return v, nil
	case nil:
		return nil, &DenotationError{Reason: "missing term"}
	}
	return nil, &DenotationError{Term: t, Reason: fmt.Sprintf("unsupported term type %T", t)}
}

// Relation resolves the denotation of a predicate symbol, which may be a
// predicate variable bound in asg.
func (m *Model) Relation(predicate string, asg Assignment) (Relation, error) {
	d, err := m.Denotation(logic.Sym(predicate), asg)
	if err != nil {
		return nil, err
	}
	r, ok := d.(Relation)
	if !ok {
		return nil, &DenotationError{Term: logic.Sym(predicate), Reason: fmt.Sprintf("denotes %T, not a relation", d)}
	}
	return r, nil
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
