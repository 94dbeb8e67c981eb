package logic

import (
	"strings"
)

// Binding is a value a metavariable can be bound to in a Subst: a Term
// (individual, variable and predicate metavariables) or a Formula
// (sentential metavariables). Sym, *App, *Atomic, *Molecular and
// *Quantified are the only implementations.
type Binding interface {
	String() string
	binding()
}

// Term is an individual-level expression: an atomic symbol (Sym) or a
// function symbol applied to argument terms (*App).
//
// Terms are immutable. The interface is sealed; a type switch over Sym and
// *App is exhaustive.
type Term interface {
	Binding
	isTerm()
}

// Sym is an atomic term: an individual constant, a variable, a metavariable
// or, for languages allowing it, a predicate or function symbol in term
// position.
type Sym string

func (s Sym) String() string { return string(s) }
func (Sym) binding()         {}
func (Sym) isTerm()          {}

// App is a compound term: a function symbol applied to an ordered sequence of
// argument terms.
type App struct {
	Func string
	Args []Term
}

// Apply builds the compound term fn(args...).
func Apply(fn string, args ...Term) *App {
	return &App{Func: fn, Args: append([]Term(nil), args...)}
}

func (a *App) String() string {
	var b strings.Builder
	b.WriteString(a.Func)
	b.WriteByte('(')
	writeTerms(&b, a.Args)
	b.WriteByte(')')
	return b.String()
}

func (*App) binding() {}
func (*App) isTerm()  {}

// Syms converts symbols to atomic terms.
func Syms(symbols ...string) []Term {
	out := make([]Term, len(symbols))
	for i, s := range symbols {
		out[i] = Sym(s)
	}
	return out
}

// TermEqual reports whether two terms are structurally equal.
func TermEqual(a, b Term) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case Sym:
		y, ok := b.(Sym)
		return ok && x == y
	case *App:
		y, ok := b.(*App)
		if !ok || x.Func != y.Func || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !TermEqual(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// termSymbols calls yield for every symbol occurring in t, function symbols included.
func termSymbols(t Term, yield func(string) bool) bool {
	switch x := t.(type) {
	case Sym:
		return yield(string(x))
	case *App:
		if !yield(x.Func) {
			return false
		}
		for _, arg := range x.Args {
			if !termSymbols(arg, yield) {
				return false
			}
		}
	}
	return true
}

func writeTerms(b *strings.Builder, ts []Term) {
	for i, t := range ts {
		if i > 0 {
			b.WriteString(", ")
		}
		if t == nil {
			b.WriteString("<nil>")
			continue
		}
		b.WriteString(t.String())
	}
}
