package logic

import (
	"slices"
)

// FreeVariables returns the sorted free variables of f: individual and
// predicate variables (predicate positions included) not bound by an
// enclosing quantifier. A bounded quantifier's restriction term is read in
// the outer scope, before its own variable is bound, so "∀x ∈ x (P(a))" has
// x free. Metavariables are never free variables.
func FreeVariables(f Formula, l *Language) []string {
	free := make(map[string]struct{})
	collectFree(f, l, nil, free)
	return sortedKeys(free)
}

// TermFreeVariables returns the sorted free variables of a single term.
func TermFreeVariables(t Term, l *Language) []string {
	free := make(map[string]struct{})
	collectTermFree(t, l, nil, free)
	return sortedKeys(free)
}

// IsClosed reports whether f has no free variables.
func IsClosed(f Formula, l *Language) bool {
	return len(FreeVariables(f, l)) == 0
}

// IsOpen reports whether f has at least one free variable.
func IsOpen(f Formula, l *Language) bool {
	return !IsClosed(f, l)
}

// bound is an immutable linked set of bound variables. Each quantifier
// extends the set for its body only, so siblings never see each other's
// bindings.
type bound struct {
	name string
	next *bound
}

func (b *bound) has(name string) bool {
	for ; b != nil; b = b.next {
		if b.name == name {
			return true
		}
	}
	return false
}

func (b *bound) with(name string) *bound {
	return &bound{name: name, next: b}
}

func collectFree(f Formula, l *Language, b *bound, free map[string]struct{}) {
	switch x := f.(type) {
	case *Atomic:
		collectTermFree(Sym(x.Symbol), l, b, free)
		for _, t := range x.Args {
			collectTermFree(t, l, b, free)
		}
	case *Molecular:
		for _, arg := range x.Args {
			collectFree(arg, l, b, free)
		}
	case *Quantified:
		if x.Bound != nil {
			collectTermFree(x.Bound, l, b, free)
		}
		collectFree(x.Body, l, b.with(x.Variable), free)
	}
}

func collectTermFree(t Term, l *Language, b *bound, free map[string]struct{}) {
	switch x := t.(type) {
	case Sym:
		s := string(x)
		if l.IsBindable(s) && !b.has(s) {
			free[s] = struct{}{}
		}
	case *App:
		for _, arg := range x.Args {
			collectTermFree(arg, l, b, free)
		}
	}
}

// IsSchematic reports whether f mentions a metavariable of l anywhere: as an
// atomic or predicate symbol, in a quantifier's variable slot, inside a term,
// or as part of a packed "[α/χ]A" token.
func IsSchematic(f Formula, l *Language) bool {
	switch x := f.(type) {
	case *Atomic:
		if l.IsMetavariable(x.Symbol) {
			return true
		}
		if _, ok := l.ParseSubstitutionToken(x.Symbol); ok {
			return true
		}
		for _, t := range x.Args {
			if IsSchematicTerm(t, l) {
				return true
			}
		}
	case *Molecular:
		for _, arg := range x.Args {
			if IsSchematic(arg, l) {
				return true
			}
		}
	case *Quantified:
		if l.IsMetavariable(x.Variable) {
			return true
		}
		if x.Bound != nil && IsSchematicTerm(x.Bound, l) {
			return true
		}
		return IsSchematic(x.Body, l)
	}
	return false
}

// IsSchematicTerm reports whether t contains a metavariable of l.
func IsSchematicTerm(t Term, l *Language) bool {
	switch x := t.(type) {
	case Sym:
		return l.IsMetavariable(string(x))
	case *App:
		for _, arg := range x.Args {
			if IsSchematicTerm(arg, l) {
				return true
			}
		}
	}
	return false
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
