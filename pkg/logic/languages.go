package logic

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Vocabulary shared by the predefined languages.
var (
	classicalConstants               = []string{"a", "b", "c", "d", "e"}
	classicalVariables               = []string{"x", "y", "z"}
	classicalIndividualMetavariables = []string{"α", "β", "γ", "δ", "ε"}
	classicalVariableMetavariables   = []string{"χ", "ξ"}
	classicalQuantifiers             = []string{"∀", "∃"}
	classicalMetavariables           = []string{"A", "B", "C", "D", "E"}
	classicalSententialConstants     = []string{"⊥", "⊤"}
)

func classicalConnectives() map[string]int {
	return map[string]int{"~": 1, "∧": 2, "∨": 2, "→": 2, "↔": 2}
}

func classicalPredicateVariables() map[string]int {
	return map[string]int{"W": 1, "X": 1, "Y": 1, "Z": 2}
}

func classicalPredicateMetavariables() map[string]int {
	return map[string]int{"Π": 1, "Σ": 1, "Φ": 2, "Ψ": 3}
}

func classicalConfig() LanguageConfig {
	return LanguageConfig{
		IndividualConstants:     classicalConstants,
		Variables:               classicalVariables,
		IndividualMetavariables: classicalIndividualMetavariables,
		VariableMetavariables:   classicalVariableMetavariables,
		Quantifiers:             classicalQuantifiers,
		Metavariables:           classicalMetavariables,
		Connectives:             classicalConnectives(),
		PredicateLetters:        map[string]int{"P": 1, "Q": 1, "R": 2, "S": 3},
		PredicateVariables:      classicalPredicateVariables(),
		PredicateMetavariables:  classicalPredicateMetavariables(),
		SententialConstants:     classicalSententialConstants,
	}
}

// ClassicalPredicateLanguage returns the second-order predicate language with
// constants a–e, variables x y z, predicate letters P Q (unary), R (binary),
// S (ternary), predicate variables W X Y (unary) and Z (binary), the usual
// connectives, ∀ ∃, and the sentential constants ⊥ ⊤.
func ClassicalPredicateLanguage() *Language {
	return MustLanguage(classicalConfig())
}

// ClassicalInfinitePredicateLanguage is ClassicalPredicateLanguage with
// digit-suffixed constants, predicate letters and metavariables admitted.
func ClassicalInfinitePredicateLanguage() *Language {
	cfg := classicalConfig()
	cfg.Infinite = true
	return MustLanguage(cfg)
}

// ClassicalFunctionLanguage extends ClassicalInfinitePredicateLanguage with
// the function symbols f (unary) and g (binary).
func ClassicalFunctionLanguage() *Language {
	cfg := classicalConfig()
	cfg.Infinite = true
	cfg.FunctionSymbols = map[string]int{"f": 1, "g": 2}
	return MustLanguage(cfg)
}

func arithmeticConfig() LanguageConfig {
	return LanguageConfig{
		IndividualConstants:     []string{"0"},
		Variables:               classicalVariables,
		IndividualMetavariables: classicalIndividualMetavariables,
		VariableMetavariables:   classicalVariableMetavariables,
		Quantifiers:             classicalQuantifiers,
		Metavariables:           classicalMetavariables,
		Connectives:             classicalConnectives(),
		PredicateLetters:        map[string]int{"=": 2, ">": 2, "<": 2},
		PredicateVariables:      classicalPredicateVariables(),
		PredicateMetavariables:  classicalPredicateMetavariables(),
		FunctionSymbols:         map[string]int{"s": 1, "+": 2, "*": 2, "**": 2},
	}
}

// ArithmeticLanguage returns the language of first-order arithmetic over the
// naturals: the constant 0, successor s, + * ** and the predicates = > <.
func ArithmeticLanguage() *Language {
	return MustLanguage(arithmeticConfig())
}

// RealArithmeticLanguage returns a language of arithmetic in which every
// numeral (integer or decimal) is an individual constant, with the binary
// functions + - * / // ** and the predicates = > <.
func RealArithmeticLanguage() *Language {
	cfg := arithmeticConfig()
	cfg.IndividualConstants = nil
	cfg.IndividualConstantFunc = IsNumeral
	cfg.FunctionSymbols = map[string]int{"+": 2, "-": 2, "*": 2, "/": 2, "//": 2, "**": 2}
	return MustLanguage(cfg)
}

// TruthPredicateLanguage extends ArithmeticLanguage with a truth predicate
// Tr, the unary function symbol quote and the sentential constant λ. A Tr
// atomic must have exactly one argument, and that argument must be a
// numeral: the code of a sentence.
func TruthPredicateLanguage() *Language {
	cfg := arithmeticConfig()
	cfg.PredicateLetters["Tr"] = 1
	cfg.FunctionSymbols["quote"] = 1
	cfg.SententialConstants = []string{"λ"}
	cfg.AtomicCheck = checkTruthAtomic
	return MustLanguage(cfg)
}

func checkTruthAtomic(_ *Language, a *Atomic) (bool, string) {
	if a.Symbol != "Tr" {
		return false, ""
	}
	if len(a.Args) != 1 {
		return true, "incorrect number of arguments for 1-ary predicate Tr"
	}
	s, ok := a.Args[0].(Sym)
	if !ok {
		return true, fmt.Sprintf("argument %s of Tr is not a numeral", a.Args[0])
	}
	if _, err := strconv.Atoi(string(s)); err != nil {
		return true, fmt.Sprintf("argument %s of Tr is not a numeral", s)
	}
	return true, ""
}

// IsNumeral reports whether symbol is an integer or decimal numeral such as
// "42", "-3" or "2.5e3".
func IsNumeral(symbol string) bool {
	if symbol == "" || strings.IndexFunc(symbol, notNumeralRune) >= 0 {
		return false
	}
	_, err := strconv.ParseFloat(symbol, 64)
	return err == nil
}

func notNumeralRune(r rune) bool {
	return !unicode.IsDigit(r) && !strings.ContainsRune(".+-eE", r)
}
