// Package logic provides the syntactic kernel of a toolkit for first and
// second-order logics: a configurable Language, an immutable Term/Formula
// tree representation, well-formedness checking, structural and
// capture-aware substitution, schema instantiation and one-pass schema
// matching.
//
// The package is deliberately free of any concrete syntax. Formula trees are
// built with the constructors in formula.go (or decoded from a structural
// encoding by a caller) and rendered with String for diagnostics only.
//
// Every operation is synchronous and side-effect free: transformations return
// new trees and never modify their receivers, so formulas and languages may
// be shared freely between goroutines.
package logic

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// SymbolKind classifies a symbol relative to a Language.
type SymbolKind int

const (
	KindUnknown SymbolKind = iota
	KindIndividualConstant
	KindVariable
	KindPredicateLetter
	KindPredicateVariable
	KindFunctionSymbol
	KindQuantifier
	KindConnective
	KindSententialConstant
	KindSententialMetavariable
	KindIndividualMetavariable
	KindVariableMetavariable
	KindPredicateMetavariable
)

var kindNames = [...]string{
	KindUnknown:                "unknown",
	KindIndividualConstant:     "individual constant",
	KindVariable:               "variable",
	KindPredicateLetter:        "predicate letter",
	KindPredicateVariable:      "predicate variable",
	KindFunctionSymbol:         "function symbol",
	KindQuantifier:             "quantifier",
	KindConnective:             "connective",
	KindSententialConstant:     "sentential constant",
	KindSententialMetavariable: "sentential metavariable",
	KindIndividualMetavariable: "individual metavariable",
	KindVariableMetavariable:   "variable metavariable",
	KindPredicateMetavariable:  "predicate metavariable",
}

// String returns a human-readable name for the kind.
func (k SymbolKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("SymbolKind(%d)", int(k))
	}
	return kindNames[k]
}

// IsMetavariable reports whether the kind is one of the four metavariable kinds.
func (k SymbolKind) IsMetavariable() bool {
	switch k {
	case KindSententialMetavariable, KindIndividualMetavariable,
		KindVariableMetavariable, KindPredicateMetavariable:
		return true
	}
	return false
}

// ErrInvalidLanguage is returned by NewLanguage when the configuration is inconsistent.
var ErrInvalidLanguage = errors.New("invalid language configuration")

// LanguageConfig declares the vocabulary of a Language.
//
// Symbols must not be repeated across categories. Arity maps must contain
// strictly positive arities. Prefer short symbols: fresh instances of
// variables (and, for Infinite languages, of constants, predicate letters and
// sentential metavariables) are formed by appending decimal digits.
type LanguageConfig struct {
	// IndividualConstants enumerates the individual constants.
	IndividualConstants []string

	// IndividualConstantFunc, when set, recognises individual constants that are
	// not enumerated (e.g. every numeral). It is consulted after the enumeration.
	IndividualConstantFunc func(symbol string) bool

	// Variables are the individual variables. Any variable followed by digits is
	// also a variable.
	Variables []string

	// IndividualMetavariables stand for individual constants or variables in schemas.
	IndividualMetavariables []string

	// VariableMetavariables stand for (bound) variables in schemas, e.g. the χ
	// of "∀χ A".
	VariableMetavariables []string

	// Quantifiers lists the quantifier symbols.
	Quantifiers []string

	// Metavariables are the sentential (formula) metavariables.
	Metavariables []string

	// Connectives maps each connective to its arity.
	Connectives map[string]int

	// PredicateLetters maps each predicate letter to its arity.
	PredicateLetters map[string]int

	// PredicateVariables maps each predicate variable to its arity. Any
	// predicate variable followed by digits is also a predicate variable of the
	// same arity.
	PredicateVariables map[string]int

	// PredicateMetavariables maps each predicate metavariable to its arity.
	PredicateMetavariables map[string]int

	// FunctionSymbols maps each function symbol to its arity.
	FunctionSymbols map[string]int

	// SententialConstants lists the sentential constants (e.g. ⊥, ⊤).
	SententialConstants []string

	// AllowPredicatesAsTerms admits predicate and function symbols in term
	// position, so that bounded quantification "∀x ∈ P (...)" is well-formed.
	AllowPredicatesAsTerms bool

	// Infinite additionally admits digit-suffixed individual constants,
	// predicate letters and sentential metavariables.
	Infinite bool

	// AtomicCheck, when set, runs before the generic atomic well-formedness
	// check. Returning handled=true makes its verdict final. It is how special
	// predicates such as a truth predicate constrain their arguments.
	AtomicCheck func(l *Language, a *Atomic) (handled bool, reason string)
}

// Language is an immutable logical vocabulary. It is built once with
// NewLanguage and then shared by the well-formedness checker, the
// substitution and matching engines, and the valuation engine.
type Language struct {
	cfg LanguageConfig

	individualConstants     map[string]struct{}
	variables               map[string]struct{}
	individualMetavariables map[string]struct{}
	variableMetavariables   map[string]struct{}
	quantifiers             map[string]struct{}
	metavariables           map[string]struct{}
	sententialConstants     map[string]struct{}

	// quantifierOrder preserves declaration order for listings.
	quantifierOrder []string
}

// NewLanguage validates cfg and builds a Language.
func NewLanguage(cfg LanguageConfig) (*Language, error) {
	l := &Language{
		cfg:                     cloneConfig(cfg),
		individualConstants:     toSet(cfg.IndividualConstants),
		variables:               toSet(cfg.Variables),
		individualMetavariables: toSet(cfg.IndividualMetavariables),
		variableMetavariables:   toSet(cfg.VariableMetavariables),
		quantifiers:             toSet(cfg.Quantifiers),
		metavariables:           toSet(cfg.Metavariables),
		sententialConstants:     toSet(cfg.SententialConstants),
		quantifierOrder:         append([]string(nil), cfg.Quantifiers...),
	}

	seen := make(map[string]string)
	declare := func(category string, symbols ...string) error {
		for _, s := range symbols {
			if s == "" {
				return fmt.Errorf("%w: empty symbol among %s", ErrInvalidLanguage, category)
			}
			if prev, ok := seen[s]; ok && prev != category {
				return fmt.Errorf("%w: symbol %q declared as both %s and %s", ErrInvalidLanguage, s, prev, category)
			}
			seen[s] = category
		}
		return nil
	}
	declareArities := func(category string, m map[string]int) error {
		for s, n := range m {
			if n <= 0 {
				return fmt.Errorf("%w: %s %q has non-positive arity %d", ErrInvalidLanguage, category, s, n)
			}
			if err := declare(category, s); err != nil {
				return err
			}
		}
		return nil
	}

	if err := declare("individual constants", cfg.IndividualConstants...); err != nil {
		return nil, err
	}
	if err := declare("variables", cfg.Variables...); err != nil {
		return nil, err
	}
	if err := declare("individual metavariables", cfg.IndividualMetavariables...); err != nil {
		return nil, err
	}
	if err := declare("variable metavariables", cfg.VariableMetavariables...); err != nil {
		return nil, err
	}
	if err := declare("quantifiers", cfg.Quantifiers...); err != nil {
		return nil, err
	}
	if err := declare("metavariables", cfg.Metavariables...); err != nil {
		return nil, err
	}
	if err := declare("sentential constants", cfg.SententialConstants...); err != nil {
		return nil, err
	}
	for _, group := range []struct {
		name string
		m    map[string]int
	}{
		{"connectives", cfg.Connectives},
		{"predicate letters", cfg.PredicateLetters},
		{"predicate variables", cfg.PredicateVariables},
		{"predicate metavariables", cfg.PredicateMetavariables},
		{"function symbols", cfg.FunctionSymbols},
	} {
		if err := declareArities(group.name, group.m); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// MustLanguage is like NewLanguage but panics on error. It is intended for
// package-level language definitions.
func MustLanguage(cfg LanguageConfig) *Language {
	l, err := NewLanguage(cfg)
	if err != nil {
		panic(err)
	}
	return l
}

// Config returns a copy of the configuration the language was built from.
func (l *Language) Config() LanguageConfig {
	return cloneConfig(l.cfg)
}

// Kind classifies symbol. Declared symbols take precedence over
// digit-suffixed fresh instances.
func (l *Language) Kind(symbol string) SymbolKind {
	switch {
	case has(l.quantifiers, symbol):
		return KindQuantifier
	case hasKey(l.cfg.Connectives, symbol):
		return KindConnective
	case has(l.sententialConstants, symbol):
		return KindSententialConstant
	case has(l.individualMetavariables, symbol):
		return KindIndividualMetavariable
	case has(l.variableMetavariables, symbol):
		return KindVariableMetavariable
	case hasKey(l.cfg.PredicateMetavariables, symbol):
		return KindPredicateMetavariable
	case l.IsSententialMetavariable(symbol):
		return KindSententialMetavariable
	case hasKey(l.cfg.FunctionSymbols, symbol):
		return KindFunctionSymbol
	case l.isPredicateLetter(symbol):
		return KindPredicateLetter
	case l.IsPredicateVariable(symbol):
		return KindPredicateVariable
	case l.IsIndividualVariable(symbol):
		return KindVariable
	case l.isIndividualConstant(symbol):
		return KindIndividualConstant
	}
	return KindUnknown
}

// Arity returns the arity of a connective, predicate letter, predicate
// variable, predicate metavariable or function symbol. Digit-suffixed fresh
// instances share their base symbol's arity.
func (l *Language) Arity(symbol string) (int, bool) {
	if n, ok := l.cfg.Connectives[symbol]; ok {
		return n, true
	}
	if n, ok := l.cfg.PredicateLetters[symbol]; ok {
		return n, true
	}
	if n, ok := l.cfg.PredicateMetavariables[symbol]; ok {
		return n, true
	}
	if n, ok := l.cfg.FunctionSymbols[symbol]; ok {
		return n, true
	}
	if n, ok := l.cfg.PredicateVariables[symbol]; ok {
		return n, true
	}
	if base, ok := suffixBase(l.cfg.PredicateVariables, symbol); ok {
		return l.cfg.PredicateVariables[base], true
	}
	if l.cfg.Infinite {
		if base, ok := suffixBase(l.cfg.PredicateLetters, symbol); ok {
			return l.cfg.PredicateLetters[base], true
		}
	}
	return 0, false
}

// Connectives returns the connectives of the given arity in sorted order.
// An arity of 0 returns every connective.
func (l *Language) Connectives(arity int) []string {
	return symbolsOfArity(l.cfg.Connectives, arity)
}

// Predicates returns the predicate letters of the given arity in sorted
// order. An arity of 0 returns every predicate letter.
func (l *Language) Predicates(arity int) []string {
	return symbolsOfArity(l.cfg.PredicateLetters, arity)
}

// Quantifiers returns the quantifiers in declaration order.
func (l *Language) Quantifiers() []string {
	return append([]string(nil), l.quantifierOrder...)
}

// SententialConstants returns the sentential constants in declaration order.
func (l *Language) SententialConstants() []string {
	return append([]string(nil), l.cfg.SententialConstants...)
}

// IndividualConstants returns the enumerated individual constants in
// declaration order. Constants recognised only by IndividualConstantFunc are
// not listed.
func (l *Language) IndividualConstants() []string {
	return append([]string(nil), l.cfg.IndividualConstants...)
}

// IsQuantifier reports whether symbol is a quantifier.
func (l *Language) IsQuantifier(symbol string) bool { return has(l.quantifiers, symbol) }

// IsConnective reports whether symbol is a connective.
func (l *Language) IsConnective(symbol string) bool { return hasKey(l.cfg.Connectives, symbol) }

// IsSententialConstant reports whether symbol is a sentential constant.
func (l *Language) IsSententialConstant(symbol string) bool {
	return has(l.sententialConstants, symbol)
}

// IsFunctionSymbol reports whether symbol is a function symbol.
func (l *Language) IsFunctionSymbol(symbol string) bool {
	return hasKey(l.cfg.FunctionSymbols, symbol)
}

// IsSententialMetavariable reports whether symbol is a sentential
// metavariable. Infinite languages also accept digit-suffixed ones.
func (l *Language) IsSententialMetavariable(symbol string) bool {
	if has(l.metavariables, symbol) {
		return true
	}
	if l.cfg.Infinite {
		_, ok := suffixBase(l.metavariables, symbol)
		return ok
	}
	return false
}

// IsIndividualMetavariable reports whether symbol is an individual metavariable.
func (l *Language) IsIndividualMetavariable(symbol string) bool {
	return has(l.individualMetavariables, symbol)
}

// IsVariableMetavariable reports whether symbol is a variable metavariable.
func (l *Language) IsVariableMetavariable(symbol string) bool {
	return has(l.variableMetavariables, symbol)
}

// IsPredicateMetavariable reports whether symbol is a predicate metavariable.
func (l *Language) IsPredicateMetavariable(symbol string) bool {
	return hasKey(l.cfg.PredicateMetavariables, symbol)
}

// IsMetavariable reports whether symbol is a metavariable of any kind.
func (l *Language) IsMetavariable(symbol string) bool {
	return l.IsSententialMetavariable(symbol) ||
		l.IsIndividualMetavariable(symbol) ||
		l.IsVariableMetavariable(symbol) ||
		l.IsPredicateMetavariable(symbol)
}

// IsIndividualVariable reports whether symbol is an individual variable,
// including digit-suffixed fresh variables.
func (l *Language) IsIndividualVariable(symbol string) bool {
	if has(l.variables, symbol) {
		return true
	}
	_, ok := suffixBase(l.variables, symbol)
	return ok
}

// IsPredicateVariable reports whether symbol is a predicate variable,
// including digit-suffixed fresh predicate variables.
func (l *Language) IsPredicateVariable(symbol string) bool {
	if hasKey(l.cfg.PredicateVariables, symbol) {
		return true
	}
	_, ok := suffixBase(l.cfg.PredicateVariables, symbol)
	return ok
}

// IsVariable reports whether symbol can occupy the variable slot of a
// quantifier: an individual or predicate variable, or, when
// allowMetavariables is set, an individual, variable or predicate
// metavariable.
func (l *Language) IsVariable(symbol string, allowMetavariables bool) bool {
	if l.IsIndividualVariable(symbol) || l.IsPredicateVariable(symbol) {
		return true
	}
	if allowMetavariables {
		return l.IsIndividualMetavariable(symbol) ||
			l.IsVariableMetavariable(symbol) ||
			l.IsPredicateMetavariable(symbol)
	}
	return false
}

// IsIndividualConstant reports whether symbol is an individual constant.
// Individual metavariables count, since they stand for constants in schemas.
func (l *Language) IsIndividualConstant(symbol string) bool {
	return l.IsIndividualMetavariable(symbol) || l.isIndividualConstant(symbol)
}

// IsPredicate reports whether symbol may head an atomic formula with
// arguments: a predicate letter, predicate variable or predicate metavariable.
func (l *Language) IsPredicate(symbol string) bool {
	return l.isPredicateLetter(symbol) || l.IsPredicateVariable(symbol) || l.IsPredicateMetavariable(symbol)
}

// IsBindable reports whether symbol is a variable that may be bound by a
// quantifier in a non-schematic formula, i.e. whether it can be free.
func (l *Language) IsBindable(symbol string) bool {
	return l.IsIndividualVariable(symbol) || l.IsPredicateVariable(symbol)
}

func (l *Language) isPredicateLetter(symbol string) bool {
	if hasKey(l.cfg.PredicateLetters, symbol) {
		return true
	}
	if l.cfg.Infinite {
		_, ok := suffixBase(l.cfg.PredicateLetters, symbol)
		return ok
	}
	return false
}

func (l *Language) isIndividualConstant(symbol string) bool {
	if has(l.individualConstants, symbol) {
		return true
	}
	if l.cfg.IndividualConstantFunc != nil && l.cfg.IndividualConstantFunc(symbol) {
		return true
	}
	if l.cfg.Infinite && l.cfg.IndividualConstantFunc == nil {
		_, ok := suffixBase(l.individualConstants, symbol)
		return ok
	}
	return false
}

// isTermSymbol reports whether symbol may stand alone as an atomic term.
func (l *Language) isTermSymbol(symbol string) bool {
	if l.cfg.AllowPredicatesAsTerms &&
		(l.isPredicateLetter(symbol) || l.IsPredicateVariable(symbol) || l.IsFunctionSymbol(symbol)) {
		return true
	}
	return l.IsIndividualConstant(symbol) ||
		l.IsIndividualVariable(symbol) ||
		l.IsVariableMetavariable(symbol)
}

// FreshVariable returns the first digit-suffixed instance of the language's
// first individual variable that does not occur in avoid.
func (l *Language) FreshVariable(avoid ...string) (string, bool) {
	if len(l.cfg.Variables) == 0 {
		return "", false
	}
	return freshSymbol(l.cfg.Variables[0], avoid), true
}

// FreshConstant returns an individual constant not occurring in avoid. The
// enumerated constants are tried first, in declaration order; Infinite
// languages then fall back to digit-suffixed instances of the first one.
func (l *Language) FreshConstant(avoid ...string) (string, bool) {
	used := toSet(avoid)
	for _, c := range l.cfg.IndividualConstants {
		if !has(used, c) {
			return c, true
		}
	}
	if l.cfg.Infinite && len(l.cfg.IndividualConstants) > 0 {
		return freshSymbol(l.cfg.IndividualConstants[0], avoid), true
	}
	return "", false
}

// SubstitutionToken is the decoded form of a packed "[α/χ]A" atomic:
// the sentential metavariable A with the variable bound to χ replaced by the
// term bound to α.
type SubstitutionToken struct {
	Individual string // α
	Variable   string // χ
	Formula    string // A
}

// String renders the token in its packed form.
func (t SubstitutionToken) String() string {
	return "[" + t.Individual + "/" + t.Variable + "]" + t.Formula
}

// ParseSubstitutionToken decodes symbol as a packed "[α/χ]A" token. It
// succeeds only when α is an individual metavariable, χ a variable
// metavariable and A a sentential metavariable of l.
func (l *Language) ParseSubstitutionToken(symbol string) (SubstitutionToken, bool) {
	if !strings.HasPrefix(symbol, "[") {
		return SubstitutionToken{}, false
	}
	closeIdx := strings.Index(symbol, "]")
	if closeIdx < 0 {
		return SubstitutionToken{}, false
	}
	inner, rest := symbol[1:closeIdx], symbol[closeIdx+1:]
	ind, v, ok := strings.Cut(inner, "/")
	if !ok {
		return SubstitutionToken{}, false
	}
	if !l.IsIndividualMetavariable(ind) || !l.IsVariableMetavariable(v) || !l.IsSententialMetavariable(rest) {
		return SubstitutionToken{}, false
	}
	return SubstitutionToken{Individual: ind, Variable: v, Formula: rest}, true
}

func freshSymbol(base string, avoid []string) string {
	used := toSet(avoid)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if !has(used, candidate) {
			return candidate
		}
	}
}

func symbolsOfArity(m map[string]int, arity int) []string {
	out := make([]string, 0, len(m))
	for s, n := range m {
		if arity == 0 || n == arity {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}

// suffixBase finds the declared key of which symbol is a digit-suffixed
// instance ("x12" for "x"). When several keys qualify the longest wins, so
// with both X and X1 declared X12 is an instance of X1.
func suffixBase[V any](m map[string]V, symbol string) (string, bool) {
	best, found := "", false
	for base := range m {
		if isDigitSuffixed(symbol, base) && (!found || len(base) > len(best)) {
			best, found = base, true
		}
	}
	return best, found
}

func isDigitSuffixed(symbol, base string) bool {
	if len(symbol) <= len(base) || !strings.HasPrefix(symbol, base) {
		return false
	}
	for _, r := range symbol[len(base):] {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func toSet(xs []string) map[string]struct{} {
	s := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		s[x] = struct{}{}
	}
	return s
}

func has(s map[string]struct{}, x string) bool {
	_, ok := s[x]
	return ok
}

func hasKey(m map[string]int, x string) bool {
	_, ok := m[x]
	return ok
}

func cloneConfig(cfg LanguageConfig) LanguageConfig {
	out := cfg
	out.IndividualConstants = append([]string(nil), cfg.IndividualConstants...)
	out.Variables = append([]string(nil), cfg.Variables...)
	out.IndividualMetavariables = append([]string(nil), cfg.IndividualMetavariables...)
	out.VariableMetavariables = append([]string(nil), cfg.VariableMetavariables...)
	out.Quantifiers = append([]string(nil), cfg.Quantifiers...)
	out.Metavariables = append([]string(nil), cfg.Metavariables...)
	out.SententialConstants = append([]string(nil), cfg.SententialConstants...)
	out.Connectives = cloneArities(cfg.Connectives)
	out.PredicateLetters = cloneArities(cfg.PredicateLetters)
	out.PredicateVariables = cloneArities(cfg.PredicateVariables)
	out.PredicateMetavariables = cloneArities(cfg.PredicateMetavariables)
	out.FunctionSymbols = cloneArities(cfg.FunctionSymbols)
	return out
}

func cloneArities(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
