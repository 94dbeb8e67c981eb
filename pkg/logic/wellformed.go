package logic

import (
	"fmt"
)

// IsWellFormed reports whether f is a well-formed formula of l.
func (l *Language) IsWellFormed(f Formula) bool {
	return l.CheckWellFormed(f) == nil
}

// CheckWellFormed returns nil when f is a well-formed formula of l, and a
// *NotWellFormedError naming the offending subformula and its defect
// otherwise. Metavariables are accepted wherever an object of their kind is.
func (l *Language) CheckWellFormed(f Formula) error {
	switch x := f.(type) {
	case nil:
		return &NotWellFormedError{Reason: "missing formula"}
	case *Atomic:
		return l.checkAtomic(x)
	case *Molecular:
		return l.checkMolecular(x)
	case *Quantified:
		return l.checkQuantified(x)
	}
	return &NotWellFormedError{Formula: f, Reason: fmt.Sprintf("unsupported formula type %T", f)}
}

func (l *Language) checkAtomic(a *Atomic) error {
	if l.cfg.AtomicCheck != nil {
		if handled, reason := l.cfg.AtomicCheck(l, a); handled {
			if reason != "" {
				return &NotWellFormedError{Formula: a, Reason: reason}
			}
			return nil
		}
	}

	if len(a.Args) == 0 {
		if l.IsSententialMetavariable(a.Symbol) || l.IsSententialConstant(a.Symbol) {
			return nil
		}
		if _, ok := l.ParseSubstitutionToken(a.Symbol); ok {
			return nil
		}
	}

	if !l.IsPredicate(a.Symbol) {
		return &NotWellFormedError{Formula: a, Reason: fmt.Sprintf("%s is not a valid predicate", a.Symbol)}
	}
	arity, _ := l.Arity(a.Symbol)
	if len(a.Args) != arity {
		return &NotWellFormedError{
			Formula: a,
			Reason:  fmt.Sprintf("incorrect number of arguments for %d-ary predicate %s", arity, a.Symbol),
		}
	}
	for _, t := range a.Args {
		if !l.IsWellFormedTerm(t) {
			return &NotWellFormedError{Formula: a, Reason: fmt.Sprintf("term %s is not well formed", t)}
		}
	}
	return nil
}

func (l *Language) checkMolecular(m *Molecular) error {
	arity, ok := l.cfg.Connectives[m.Connective]
	if !ok {
		return &NotWellFormedError{Formula: m, Reason: fmt.Sprintf("%s is not a connective", m.Connective)}
	}
	if len(m.Args) != arity {
		return &NotWellFormedError{
			Formula: m,
			Reason:  fmt.Sprintf("incorrect number of arguments for %d-ary connective %s", arity, m.Connective),
		}
	}
	for _, arg := range m.Args {
		if err := l.CheckWellFormed(arg); err != nil {
			return err
		}
	}
	return nil
}

func (l *Language) checkQuantified(q *Quantified) error {
	if !l.IsQuantifier(q.Quantifier) {
		return &NotWellFormedError{Formula: q, Reason: fmt.Sprintf("%s is not a quantifier", q.Quantifier)}
	}
	if !l.IsVariable(q.Variable, true) {
		return &NotWellFormedError{Formula: q, Reason: fmt.Sprintf("%s is not a valid variable", q.Variable)}
	}
	if q.Bound != nil && !l.IsWellFormedTerm(q.Bound) {
		return &NotWellFormedError{Formula: q, Reason: fmt.Sprintf("quantifier bound %s is not a term", q.Bound)}
	}
	return l.CheckWellFormed(q.Body)
}

// IsWellFormedTerm reports whether t is a well-formed term of l: an
// individual constant or variable (metavariables included), a predicate or
// function symbol when the language allows them as terms, or a declared
// function symbol applied to exactly as many well-formed terms as its arity.
func (l *Language) IsWellFormedTerm(t Term) bool {
	switch x := t.(type) {
	case Sym:
		return l.isTermSymbol(string(x))
	case *App:
		arity, ok := l.cfg.FunctionSymbols[x.Func]
		if !ok || len(x.Args) != arity {
			return false
		}
		for _, arg := range x.Args {
			if !l.IsWellFormedTerm(arg) {
				return false
			}
		}
		return true
	}
	return false
}
