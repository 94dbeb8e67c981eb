package logic

import (
	"fmt"
)

// Substitute replaces every subformula of f that is structurally equal to
// pattern with replacement. There is no scoping: equality is by value, so
// bound and free occurrences are treated alike.
func Substitute(f, pattern, replacement Formula) Formula {
	if Equal(f, pattern) {
		return replacement
	}
	switch x := f.(type) {
	case *Molecular:
		args := make([]Formula, len(x.Args))
		for i, arg := range x.Args {
			args[i] = Substitute(arg, pattern, replacement)
		}
		return &Molecular{Connective: x.Connective, Args: args}
	case *Quantified:
		return &Quantified{
			Quantifier: x.Quantifier,
			Variable:   x.Variable,
			Bound:      x.Bound,
			Body:       Substitute(x.Body, pattern, replacement),
		}
	}
	return f
}

// VSubstitute replaces the free occurrences of variable in f with
// replacement. Substitution stops at a quantifier binding variable, but that
// quantifier's restriction term still belongs to the outer scope and is
// substituted:
//
//	∀x ∈ f(x) (P(x))  [x := b]  =  ∀x ∈ f(b) (P(x))
//
// A predicate variable in predicate position is replaced too when
// replacement is a symbol, so X(a) [X := P] = P(a).
//
// The replacement is inserted as is; bound variables are never renamed, so
// callers are responsible for avoiding capture.
func VSubstitute(f Formula, variable string, replacement Term) Formula {
	switch x := f.(type) {
	case *Atomic:
		symbol := x.Symbol
		if s, ok := replacement.(Sym); ok && symbol == variable {
			symbol = string(s)
		}
		args := make([]Term, len(x.Args))
		for i, t := range x.Args {
			args[i] = VSubstituteTerm(t, variable, replacement)
		}
		return &Atomic{Symbol: symbol, Args: args}
	case *Molecular:
		args := make([]Formula, len(x.Args))
		for i, arg := range x.Args {
			args[i] = VSubstitute(arg, variable, replacement)
		}
		return &Molecular{Connective: x.Connective, Args: args}
	case *Quantified:
		q := &Quantified{Quantifier: x.Quantifier, Variable: x.Variable, Body: x.Body}
		if x.Bound != nil {
			q.Bound = VSubstituteTerm(x.Bound, variable, replacement)
		}
		if x.Variable != variable {
			q.Body = VSubstitute(x.Body, variable, replacement)
		}
		return q
	}
	return f
}

// VSubstituteTerm replaces every occurrence of variable in t with replacement.
func VSubstituteTerm(t Term, variable string, replacement Term) Term {
	switch x := t.(type) {
	case Sym:
		if string(x) == variable {
			return replacement
		}
		return x
	case *App:
		args := make([]Term, len(x.Args))
		for i, arg := range x.Args {
			args[i] = VSubstituteTerm(arg, variable, replacement)
		}
		return &App{Func: x.Func, Args: args}
	}
	return t
}

// Instantiate replaces the metavariables of the schema f with their bindings
// in subst:
//
//   - a sentential metavariable is replaced by its bound formula;
//   - an individual, variable or predicate metavariable is replaced by its
//     bound term or symbol wherever it occurs: in terms (nested in function
//     applications too), at the head of an atomic formula, and in a
//     quantifier's variable slot;
//   - a packed "[α/χ]A" token becomes the formula bound to A with the free
//     occurrences of the variable bound to χ replaced by the term bound to α.
//
// A metavariable missing from subst is reported as an
// *UnboundMetavariableError. A binding of the wrong kind (a term where a
// formula is needed, or the reverse) is reported as ErrBindingKind.
func Instantiate(f Formula, l *Language, subst Subst) (Formula, error) {
	switch x := f.(type) {
	case *Atomic:
		return instantiateAtomic(x, l, subst)
	case *Molecular:
		args := make([]Formula, len(x.Args))
		for i, arg := range x.Args {
			a, err := Instantiate(arg, l, subst)
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		return &Molecular{Connective: x.Connective, Args: args}, nil
	case *Quantified:
		variable, err := instantiateSymbol(x.Variable, l, subst)
		if err != nil {
			return nil, err
		}
		var boundTerm Term
		if x.Bound != nil {
			if boundTerm, err = InstantiateTerm(x.Bound, l, subst); err != nil {
				return nil, err
			}
		}
		body, err := Instantiate(x.Body, l, subst)
		if err != nil {
			return nil, err
		}
		return &Quantified{Quantifier: x.Quantifier, Variable: variable, Bound: boundTerm, Body: body}, nil
	}
	return nil, fmt.Errorf("instantiate: unsupported formula type %T", f)
}

// MustInstantiate is like Instantiate but panics on error. It is meant for
// schemas whose bindings are known statically, such as rule tables.
func MustInstantiate(f Formula, l *Language, subst Subst) Formula {
	out, err := Instantiate(f, l, subst)
	if err != nil {
		panic(err)
	}
	return out
}

func instantiateAtomic(a *Atomic, l *Language, subst Subst) (Formula, error) {
	if len(a.Args) == 0 {
		if tok, ok := l.ParseSubstitutionToken(a.Symbol); ok {
			return instantiateToken(tok, subst)
		}
		if l.IsSententialMetavariable(a.Symbol) {
			return lookupFormula(a.Symbol, subst)
		}
	}

	head, err := instantiateSymbol(a.Symbol, l, subst)
	if err != nil {
		return nil, err
	}
	args := make([]Term, len(a.Args))
	for i, t := range a.Args {
		if args[i], err = InstantiateTerm(t, l, subst); err != nil {
			return nil, err
		}
	}
	return &Atomic{Symbol: head, Args: args}, nil
}

func instantiateToken(tok SubstitutionToken, subst Subst) (Formula, error) {
	body, err := lookupFormula(tok.Formula, subst)
	if err != nil {
		return nil, err
	}
	variable, err := lookupTerm(tok.Variable, subst)
	if err != nil {
		return nil, err
	}
	v, ok := variable.(Sym)
	if !ok {
		return nil, fmt.Errorf("%w: %q is bound to %s, want a variable", ErrBindingKind, tok.Variable, variable)
	}
	individual, err := lookupTerm(tok.Individual, subst)
	if err != nil {
		return nil, err
	}
	return VSubstitute(body, string(v), individual), nil
}

// InstantiateTerm replaces the metavariables occurring in t with their
// bindings in subst.
func InstantiateTerm(t Term, l *Language, subst Subst) (Term, error) {
	switch x := t.(type) {
	case Sym:
		if !l.IsMetavariable(string(x)) {
			return x, nil
		}
		return lookupTerm(string(x), subst)
	case *App:
		args := make([]Term, len(x.Args))
		for i, arg := range x.Args {
			a, err := InstantiateTerm(arg, l, subst)
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		return &App{Func: x.Func, Args: args}, nil
	}
	return nil, fmt.Errorf("instantiate: unsupported term type %T", t)
}

// instantiateSymbol resolves a symbol standing in a symbol-only position (an
// atomic head or a quantifier slot).
func instantiateSymbol(symbol string, l *Language, subst Subst) (string, error) {
	if !l.IsMetavariable(symbol) {
		return symbol, nil
	}
	t, err := lookupTerm(symbol, subst)
	if err != nil {
		return "", err
	}
	s, ok := t.(Sym)
	if !ok {
		return "", fmt.Errorf("%w: %q is bound to %s, want a symbol", ErrBindingKind, symbol, t)
	}
	return string(s), nil
}

func lookupFormula(symbol string, subst Subst) (Formula, error) {
	b, ok := subst[symbol]
	if !ok {
		return nil, &UnboundMetavariableError{Symbol: symbol}
	}
	f, ok := b.(Formula)
	if !ok {
		return nil, fmt.Errorf("%w: %q is bound to %s, want a formula", ErrBindingKind, symbol, b)
	}
	return f, nil
}

func lookupTerm(symbol string, subst Subst) (Term, error) {
	b, ok := subst[symbol]
	if !ok {
		return nil, &UnboundMetavariableError{Symbol: symbol}
	}
	t, ok := b.(Term)
	if !ok {
		return nil, fmt.Errorf("%w: %q is bound to %s, want a term", ErrBindingKind, symbol, b)
	}
	return t, nil
}

// SchematicSubstitute rewrites f bottom-up: once a subformula's arguments have
// been rewritten, if the result is an instance of from it is replaced by to
// instantiated with the recovered substitution. For example, with from
// "(A → B)" and to "(~A ∨ B)", "(p → (p → q))" becomes "(~p ∨ (~p ∨ q))".
func SchematicSubstitute(f Formula, l *Language, from, to Formula) (Formula, error) {
	var rewritten Formula
	switch x := f.(type) {
	case *Atomic:
		rewritten = x
	case *Molecular:
		args := make([]Formula, len(x.Args))
		for i, arg := range x.Args {
			a, err := SchematicSubstitute(arg, l, from, to)
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		rewritten = &Molecular{Connective: x.Connective, Args: args}
	case *Quantified:
		body, err := SchematicSubstitute(x.Body, l, from, to)
		if err != nil {
			return nil, err
		}
		rewritten = &Quantified{Quantifier: x.Quantifier, Variable: x.Variable, Bound: x.Bound, Body: body}
	default:
		return nil, fmt.Errorf("schematic substitute: unsupported formula type %T", f)
	}

	subst, ok := Match(rewritten, from, l, nil)
	if !ok {
		return rewritten, nil
	}
	return Instantiate(to, l, subst)
}
