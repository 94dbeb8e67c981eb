package logic

// IsInstanceOf reports whether candidate is a substitution instance of schema.
func IsInstanceOf(candidate, schema Formula, l *Language) bool {
	_, ok := Match(candidate, schema, l, nil)
	return ok
}

// Match decides whether candidate is a substitution instance of schema and
// recovers the witnessing substitution. seed, which may be nil, supplies
// bindings fixed in advance; it is copied and never modified.
//
// Matching is a single structural pass without backtracking. The first
// binding of a metavariable is permanent for the call, so repeated
// metavariables are forced to agree across argument positions and sibling
// subformulas. Callers wanting independent attempts call Match again.
//
// On failure the substitution accumulated so far is returned alongside
// false. It is useful for diagnostics only and is not a complete
// substitution.
func Match(candidate, schema Formula, l *Language, seed Subst) (Subst, bool) {
	s := seed.Clone()
	ok := matchFormula(candidate, schema, l, s)
	return s, ok
}

// MatchTerm is the term-level counterpart of Match.
func MatchTerm(candidate, schema Term, l *Language, seed Subst) (Subst, bool) {
	s := seed.Clone()
	ok := matchTerm(candidate, schema, l, s)
	return s, ok
}

func matchFormula(candidate, schema Formula, l *Language, s Subst) bool {
	if !IsSchematic(schema, l) {
		return Equal(candidate, schema)
	}

	switch sch := schema.(type) {
	case *Atomic:
		return matchAtomic(candidate, sch, l, s)
	case *Molecular:
		c, ok := candidate.(*Molecular)
		if !ok || c.Connective != sch.Connective || len(c.Args) != len(sch.Args) {
			return false
		}
		// Packed tokens go last so that their A and χ are bound by siblings
		// whichever side they occur on.
		var deferred []int
		for i, arg := range sch.Args {
			if isPackedToken(arg, l) {
				deferred = append(deferred, i)
				continue
			}
			if !matchFormula(c.Args[i], arg, l, s) {
				return false
			}
		}
		for _, i := range deferred {
			if !matchFormula(c.Args[i], sch.Args[i], l, s) {
				return false
			}
		}
		return true
	case *Quantified:
		c, ok := candidate.(*Quantified)
		if !ok || c.Quantifier != sch.Quantifier {
			return false
		}
		if !matchSymbol(c.Variable, sch.Variable, l, s) {
			return false
		}
		if (c.Bound == nil) != (sch.Bound == nil) {
			return false
		}
		if sch.Bound != nil && !matchTerm(c.Bound, sch.Bound, l, s) {
			return false
		}
		return matchFormula(c.Body, sch.Body, l, s)
	}
	return false
}

func matchAtomic(candidate Formula, sch *Atomic, l *Language, s Subst) bool {
	if len(sch.Args) == 0 {
		if tok, ok := l.ParseSubstitutionToken(sch.Symbol); ok {
			return matchToken(candidate, tok, l, s)
		}
		if l.IsSententialMetavariable(sch.Symbol) {
			return s.bind(sch.Symbol, candidate)
		}
	}

	c, ok := candidate.(*Atomic)
	if !ok || len(c.Args) != len(sch.Args) {
		return false
	}
	if l.IsPredicateMetavariable(sch.Symbol) {
		if !l.IsPredicate(c.Symbol) {
			return false
		}
		if !s.bind(sch.Symbol, Sym(c.Symbol)) {
			return false
		}
	} else if c.Symbol != sch.Symbol {
		return false
	}
	for i := range sch.Args {
		if !matchTerm(c.Args[i], sch.Args[i], l, s) {
			return false
		}
	}
	return true
}

func isPackedToken(f Formula, l *Language) bool {
	a, ok := f.(*Atomic)
	if !ok || len(a.Args) > 0 {
		return false
	}
	_, ok = l.ParseSubstitutionToken(a.Symbol)
	return ok
}

// matchToken matches a packed "[α/χ]A" schema. It needs A and χ to be bound
// already, which the *Molecular case arranges for sibling tokens. Replacing the free occurrences of χ's variable in A by the
// metavariable α yields an ordinary schema whose match recovers α.
func matchToken(candidate Formula, tok SubstitutionToken, l *Language, s Subst) bool {
	body, ok := s.Formula(tok.Formula)
	if !ok {
		return false
	}
	v, ok := s[tok.Variable].(Sym)
	if !ok {
		return false
	}
	return matchFormula(candidate, VSubstitute(body, string(v), Sym(tok.Individual)), l, s)
}

// matchSymbol unifies a symbol-only slot, such as a quantifier's variable.
func matchSymbol(candidate, schema string, l *Language, s Subst) bool {
	if l.IsMetavariable(schema) {
		return s.bind(schema, Sym(candidate))
	}
	return candidate == schema
}

func matchTerm(candidate, schema Term, l *Language, s Subst) bool {
	switch sch := schema.(type) {
	case Sym:
		symbol := string(sch)
		switch {
		case l.IsIndividualMetavariable(symbol):
			return s.bind(symbol, candidate)
		case l.IsVariableMetavariable(symbol), l.IsPredicateMetavariable(symbol):
			c, ok := candidate.(Sym)
			return ok && s.bind(symbol, c)
		}
		return TermEqual(candidate, sch)
	case *App:
		c, ok := candidate.(*App)
		if !ok || c.Func != sch.Func || len(c.Args) != len(sch.Args) {
			return false
		}
		for i := range sch.Args {
			if !matchTerm(c.Args[i], sch.Args[i], l, s) {
				return false
			}
		}
		return true
	}
	return false
}
