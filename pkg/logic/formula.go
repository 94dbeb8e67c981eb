package logic

import (
	"strings"
)

// Formula is a sentence-level tree. The interface is sealed: *Atomic,
// *Molecular and *Quantified are its only implementations, and every
// operation in this package dispatches with an exhaustive type switch over
// them.
//
// Formulas are immutable values. Nothing in this package modifies a formula
// after construction; transformations always build new trees, sharing
// unchanged subtrees with their input.
type Formula interface {
	Binding
	isFormula()
}

// Atomic is a predicate (letter, variable or metavariable) applied to terms,
// or, with no arguments, a sentential constant, a sentential metavariable or
// a packed "[α/χ]A" token.
type Atomic struct {
	Symbol string
	Args   []Term
}

// Molecular is a connective applied to argument formulas.
type Molecular struct {
	Connective string
	Args       []Formula
}

// Quantified is a quantifier binding Variable in Body. Bound, when non-nil,
// restricts the quantifier to the elements of the term's denotation
// ("∀x ∈ t (...)").
type Quantified struct {
	Quantifier string
	Variable   string
	Bound      Term
	Body       Formula
}

func (*Atomic) binding()       {}
func (*Atomic) isFormula()     {}
func (*Molecular) binding()    {}
func (*Molecular) isFormula()  {}
func (*Quantified) binding()   {}
func (*Quantified) isFormula() {}

// Atom builds an atomic formula without arguments, e.g. a sentential
// metavariable "A" or a constant "⊥".
func Atom(symbol string) *Atomic {
	return &Atomic{Symbol: symbol}
}

// Pred builds the atomic formula predicate(args...).
func Pred(predicate string, args ...Term) *Atomic {
	return &Atomic{Symbol: predicate, Args: append([]Term(nil), args...)}
}

// Mol builds the molecular formula connective(args...).
func Mol(connective string, args ...Formula) *Molecular {
	return &Molecular{Connective: connective, Args: append([]Formula(nil), args...)}
}

// Not builds "~a".
func Not(a Formula) *Molecular { return Mol("~", a) }

// And builds "(a ∧ b)".
func And(a, b Formula) *Molecular { return Mol("∧", a, b) }

// Or builds "(a ∨ b)".
func Or(a, b Formula) *Molecular { return Mol("∨", a, b) }

// Implies builds "(a → b)".
func Implies(a, b Formula) *Molecular { return Mol("→", a, b) }

// Iff builds "(a ↔ b)".
func Iff(a, b Formula) *Molecular { return Mol("↔", a, b) }

// Quant builds an unbounded quantified formula.
func Quant(quantifier, variable string, body Formula) *Quantified {
	return &Quantified{Quantifier: quantifier, Variable: variable, Body: body}
}

// BoundedQuant builds "quantifier variable ∈ bound (body)".
func BoundedQuant(quantifier, variable string, bound Term, body Formula) *Quantified {
	return &Quantified{Quantifier: quantifier, Variable: variable, Bound: bound, Body: body}
}

// ForAll builds "∀variable (body)".
func ForAll(variable string, body Formula) *Quantified { return Quant("∀", variable, body) }

// Exists builds "∃variable (body)".
func Exists(variable string, body Formula) *Quantified { return Quant("∃", variable, body) }

func (a *Atomic) String() string {
	if len(a.Args) == 0 {
		return a.Symbol
	}
	var b strings.Builder
	b.WriteString(a.Symbol)
	b.WriteByte('(')
	writeTerms(&b, a.Args)
	b.WriteByte(')')
	return b.String()
}

func (m *Molecular) String() string {
	switch len(m.Args) {
	case 1:
		return m.Connective + m.Args[0].String()
	case 2:
		return "(" + m.Args[0].String() + " " + m.Connective + " " + m.Args[1].String() + ")"
	}
	parts := make([]string, len(m.Args))
	for i, arg := range m.Args {
		parts[i] = arg.String()
	}
	return m.Connective + "(" + strings.Join(parts, ", ") + ")"
}

func (q *Quantified) String() string {
	var b strings.Builder
	b.WriteString(q.Quantifier)
	b.WriteString(q.Variable)
	if q.Bound != nil {
		b.WriteString(" ∈ ")
		b.WriteString(q.Bound.String())
	}
	b.WriteString(" (")
	b.WriteString(q.Body.String())
	b.WriteByte(')')
	return b.String()
}

// IsAtomic reports whether f is an atomic formula.
func IsAtomic(f Formula) bool {
	_, ok := f.(*Atomic)
	return ok
}

// MainSymbol returns the connective or quantifier at the root of f, or the
// empty string when f is atomic.
func MainSymbol(f Formula) string {
	switch x := f.(type) {
	case *Molecular:
		return x.Connective
	case *Quantified:
		return x.Quantifier
	}
	return ""
}

// Depth is 0 for atomic formulas and one more than the deepest immediate
// subformula otherwise.
func Depth(f Formula) int {
	switch x := f.(type) {
	case *Molecular:
		d := 0
		for _, arg := range x.Args {
			d = max(d, Depth(arg))
		}
		return d + 1
	case *Quantified:
		return Depth(x.Body) + 1
	}
	return 0
}

// Arguments returns the immediate subformulas of f. A quantified formula has
// exactly one: its body. The variable and restriction slots are not formulas.
func Arguments(f Formula) []Formula {
	switch x := f.(type) {
	case *Molecular:
		return append([]Formula(nil), x.Args...)
	case *Quantified:
		return []Formula{x.Body}
	}
	return nil
}

// Subformulae lists every subformula of f, f included, in post-order and
// without structural duplicates.
func Subformulae(f Formula) []Formula {
	var out []Formula
	var walk func(Formula)
	walk = func(g Formula) {
		for _, arg := range Arguments(g) {
			walk(arg)
		}
		for _, seen := range out {
			if Equal(seen, g) {
				return
			}
		}
		out = append(out, g)
	}
	walk(f)
	return out
}

// AtomicsInside lists the distinct atomic subformulas of f in order of first
// occurrence.
func AtomicsInside(f Formula) []*Atomic {
	var out []*Atomic
	for _, sf := range Subformulae(f) {
		if a, ok := sf.(*Atomic); ok {
			out = append(out, a)
		}
	}
	return out
}

// ContainsSymbol reports whether symbol occurs anywhere in f: as a predicate,
// connective or quantifier, as a bound variable, or inside a term.
func ContainsSymbol(f Formula, symbol string) bool {
	found := false
	match := func(s string) bool {
		if s == symbol {
			found = true
			return false
		}
		return true
	}
	formulaSymbols(f, match)
	return found
}

func formulaSymbols(f Formula, yield func(string) bool) bool {
	switch x := f.(type) {
	case *Atomic:
		if !yield(x.Symbol) {
			return false
		}
		for _, t := range x.Args {
			if !termSymbols(t, yield) {
				return false
			}
		}
	case *Molecular:
		if !yield(x.Connective) {
			return false
		}
		for _, arg := range x.Args {
			if !formulaSymbols(arg, yield) {
				return false
			}
		}
	case *Quantified:
		if !yield(x.Quantifier) || !yield(x.Variable) {
			return false
		}
		if x.Bound != nil && !termSymbols(x.Bound, yield) {
			return false
		}
		return formulaSymbols(x.Body, yield)
	}
	return true
}

// Equal reports whether two formulas are structurally equal.
func Equal(a, b Formula) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case *Atomic:
		y, ok := b.(*Atomic)
		if !ok || x.Symbol != y.Symbol || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !TermEqual(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Molecular:
		y, ok := b.(*Molecular)
		if !ok || x.Connective != y.Connective || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Quantified:
		y, ok := b.(*Quantified)
		return ok &&
			x.Quantifier == y.Quantifier &&
			x.Variable == y.Variable &&
			TermEqual(x.Bound, y.Bound) &&
			Equal(x.Body, y.Body)
	}
	return false
}

// BindingEqual reports whether two bindings are structurally equal. A term
// never equals a formula.
func BindingEqual(a, b Binding) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case Term:
		y, ok := b.(Term)
		return ok && TermEqual(x, y)
	case Formula:
		y, ok := b.(Formula)
		return ok && Equal(x, y)
	}
	return false
}
