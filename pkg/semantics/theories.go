package semantics

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gitrdm/logics/pkg/logic"
)

// Further truth values used by the predefined theories.
const (
	Both      TruthValue = "b" // FDE: both true and false
	Neither   TruthValue = "n" // FDE: neither true nor false
	Undefined TruthValue = "e" // weak Kleene: infectious
)

var (
	classicalValues = []TruthValue{True, False}
	trivalues       = []TruthValue{True, Indeterminate, False}
	weakValues      = []TruthValue{True, Undefined, False}
	fdeValues       = []TruthValue{True, Both, Neither, False}
)

type tables struct {
	values []TruthValue
	neg    []TruthValue
	binary map[string][][]TruthValue
}

func (t tables) functions() map[string]TruthFunction {
	out := map[string]TruthFunction{"~": UnaryTable(t.values, t.neg)}
	for c, table := range t.binary {
		out[c] = BinaryTable(t.values, table)
	}
	return out
}

// Rows and columns follow the order of the value list.
var (
	classicalTables = tables{
		values: classicalValues,
		neg:    []TruthValue{False, True},
		binary: map[string][][]TruthValue{
			"∧": {{True, False}, {False, False}},
			"∨": {{True, True}, {True, False}},
			"→": {{True, False}, {True, True}},
			"↔": {{True, False}, {False, True}},
		},
	}

	kleeneTables = tables{
		values: trivalues,
		neg:    []TruthValue{False, Indeterminate, True},
		binary: map[string][][]TruthValue{
			"∧": {{True, Indeterminate, False}, {Indeterminate, Indeterminate, False}, {False, False, False}},
			"∨": {{True, True, True}, {True, Indeterminate, Indeterminate}, {True, Indeterminate, False}},
			"→": {{True, Indeterminate, False}, {True, Indeterminate, Indeterminate}, {True, True, True}},
			"↔": {{True, Indeterminate, False}, {Indeterminate, Indeterminate, Indeterminate}, {False, Indeterminate, True}},
		},
	}

	rm3Tables = tables{
		values: trivalues,
		neg:    kleeneTables.neg,
		binary: map[string][][]TruthValue{
			"∧": kleeneTables.binary["∧"],
			"∨": kleeneTables.binary["∨"],
			"→": {{True, False, False}, {True, Indeterminate, False}, {True, True, True}},
			"↔": {{True, False, False}, {False, Indeterminate, False}, {False, False, True}},
		},
	}

	weakKleeneTables = tables{
		values: weakValues,
		neg:    []TruthValue{False, Undefined, True},
		binary: map[string][][]TruthValue{
			"∧": {{True, Undefined, False}, {Undefined, Undefined, Undefined}, {False, Undefined, False}},
			"∨": {{True, Undefined, True}, {Undefined, Undefined, Undefined}, {True, Undefined, False}},
			"→": {{True, Undefined, False}, {Undefined, Undefined, Undefined}, {True, Undefined, True}},
			"↔": {{True, Undefined, False}, {Undefined, Undefined, Undefined}, {False, Undefined, True}},
		},
	}

	fdeTables = tables{
		values: fdeValues,
		neg:    []TruthValue{False, Both, Neither, True},
		binary: map[string][][]TruthValue{
			"∧": {{True, Both, Neither, False}, {Both, Both, False, False}, {Neither, False, Neither, False}, {False, False, False, False}},
			"∨": {{True, True, True, True}, {True, Both, True, Both}, {True, True, Neither, Neither}, {True, Both, Neither, False}},
			"→": {{True, Both, Neither, False}, {True, Both, True, Both}, {True, True, Neither, Neither}, {True, True, True, True}},
			"↔": {{True, Both, Neither, False}, {Both, Both, True, Both}, {Neither, True, Neither, Neither}, {False, Both, Neither, True}},
		},
	}
)

func sententialConstants() map[string]TruthValue {
	return map[string]TruthValue{"⊥": False, "⊤": True}
}

// fdeFold is the lattice meet (∀) or join (∃) of FDE: b and n together
// collapse to the bottom (resp. top) element.
func fdeFold(bottom, top TruthValue) QuantifierFunction {
	return func(values []TruthValue) (TruthValue, error) {
		for _, v := range values {
			if !slices.Contains(fdeValues, v) {
				return "", fmt.Errorf("%w: quantifier got value %q outside FDE", ErrTruthFunction, v)
			}
		}
		switch {
		case slices.Contains(values, bottom):
			return bottom, nil
		case slices.Contains(values, Both) && slices.Contains(values, Neither):
			return bottom, nil
		case slices.Contains(values, Both):
			return Both, nil
		case slices.Contains(values, Neither):
			return Neither, nil
		}
		return top, nil
	}
}

func orLanguage(l *logic.Language, preset func() *logic.Language) *logic.Language {
	if l != nil {
		return l
	}
	return preset()
}

func classicalConfig(name string, l *logic.Language) TheoryConfig {
	return TheoryConfig{
		Name:        name,
		Language:    l,
		Values:      classicalValues,
		Designated:  []TruthValue{True},
		Connectives: classicalTables.functions(),
		Quantifiers: map[string]QuantifierFunction{
			"∀": Fold(True, False, True),
			"∃": Fold(False, True, False),
		},
		Atomic:          ClassicalAtomic,
		Constants:       sententialConstants(),
		FastConnectives: true,
		FastQuantifiers: true,
	}
}

func trivaluedConfig(name string, l *logic.Language, t tables, designated []TruthValue, atomic AtomicClause, fast bool) TheoryConfig {
	return TheoryConfig{
		Name:        name,
		Language:    l,
		Values:      trivalues,
		Designated:  designated,
		Connectives: t.functions(),
		Quantifiers: map[string]QuantifierFunction{
			"∀": Fold(True, False, Indeterminate, True),
			"∃": Fold(False, True, Indeterminate, False),
		},
		Atomic:          atomic,
		Constants:       sententialConstants(),
		FastConnectives: fast,
		FastQuantifiers: true,
	}
}

// Classical is classical second-order logic over the infinite classical
// predicate language, with both fast paths enabled.
func Classical() *ModelTheory {
	return MustModelTheory(classicalConfig("classical", logic.ClassicalInfinitePredicateLanguage()))
}

// ClassicalFunctional is Classical over the language with function symbols.
func ClassicalFunctional() *ModelTheory {
	return MustModelTheory(classicalConfig("classical-functional", logic.ClassicalFunctionLanguage()))
}

// K3 is strong Kleene logic: designated value 1, and a signed extension
// leaving a tuple out of both parts makes the atomic i.
func K3() *ModelTheory {
	return MustModelTheory(k3Config(nil))
}

func k3Config(l *logic.Language) TheoryConfig {
	return trivaluedConfig("K3", orLanguage(l, logic.ClassicalInfinitePredicateLanguage),
		kleeneTables, []TruthValue{True}, SignedAtomic(True, False, "", Indeterminate), true)
}

// LP is the logic of paradox: the strong Kleene tables with 1 and i
// designated, where a tuple in both parts of a signed extension makes the
// atomic i.
func LP() *ModelTheory {
	return MustModelTheory(lpConfig(nil))
}

func lpConfig(l *logic.Language) TheoryConfig {
	return trivaluedConfig("LP", orLanguage(l, logic.ClassicalInfinitePredicateLanguage),
		kleeneTables, []TruthValue{True, Indeterminate}, SignedAtomic(True, False, Indeterminate, ""), true)
}

// RM3 is LP with the RM3 conditional and biconditional. Its connectives
// cannot use the fast path.
func RM3() *ModelTheory {
	return MustModelTheory(rm3Config(nil))
}

func rm3Config(l *logic.Language) TheoryConfig {
	return trivaluedConfig("RM3", orLanguage(l, logic.ClassicalInfinitePredicateLanguage),
		rm3Tables, []TruthValue{True, Indeterminate}, SignedAtomic(True, False, Indeterminate, ""), false)
}

// WeakKleene is weak Kleene logic, where the value e is infectious in every
// connective and quantifier.
func WeakKleene() *ModelTheory {
	return MustModelTheory(weakKleeneConfig(nil))
}

func weakKleeneConfig(l *logic.Language) TheoryConfig {
	return TheoryConfig{
		Name:        "WK",
		Language:    orLanguage(l, logic.ClassicalInfinitePredicateLanguage),
		Values:      weakValues,
		Designated:  []TruthValue{True},
		Connectives: weakKleeneTables.functions(),
		Quantifiers: map[string]QuantifierFunction{
			"∀": Fold(True, Undefined, False, True),
			"∃": Fold(False, Undefined, True, False),
		},
		Atomic:    SignedAtomic(True, False, "", Undefined),
		Constants: sententialConstants(),
	}
}

// FDE is first-degree entailment over the values 1, b, n and 0, with 1 and
// b designated. Signed extensions give gaps the value n and gluts b.
func FDE() *ModelTheory {
	return MustModelTheory(fdeConfig(nil))
}

func fdeConfig(l *logic.Language) TheoryConfig {
	return TheoryConfig{
		Name:        "FDE",
		Language:    orLanguage(l, logic.ClassicalInfinitePredicateLanguage),
		Values:      fdeValues,
		Designated:  []TruthValue{True, Both},
		Connectives: fdeTables.functions(),
		Quantifiers: map[string]QuantifierFunction{
			"∀": fdeFold(False, True),
			"∃": fdeFold(True, False),
		},
		Atomic:    SignedAtomic(True, False, Both, Neither),
		Constants: sententialConstants(),
	}
}

// Arithmetic is classical logic over the language of arithmetic. Evaluate
// it in an ArithmeticModel.
func Arithmetic() *ModelTheory {
	return MustModelTheory(classicalConfig("arithmetic", logic.ArithmeticLanguage()))
}

// RealArithmetic is classical logic over the language of real arithmetic.
// Evaluate it in a RealArithmeticModel.
func RealArithmetic() *ModelTheory {
	return MustModelTheory(classicalConfig("real-arithmetic", logic.RealArithmeticLanguage()))
}

// ArithmeticTruth is classical arithmetic with the truth predicate Tr. A
// numeral argument of Tr is decoded with decode and the resulting sentence
// evaluated on its own. constants gives the sentence each sentential
// constant (such as the liar λ) denotes.
func ArithmeticTruth(decode func(code int) (logic.Formula, error), constants map[string]logic.Formula) (*ModelTheory, error) {
	cfg := classicalConfig("arithmetic-truth", logic.TruthPredicateLanguage())
	cfg.Constants = nil
	cfg.ConstantFormulas = constants
	cfg.TruthPredicate = "Tr"
	cfg.Decode = decode
	return NewModelTheory(cfg)
}

// CodeTable is a finite coding of sentences, usable as the decoder of
// ArithmeticTruth.
type CodeTable map[int]logic.Formula

// Decode returns the sentence with the given code.
func (c CodeTable) Decode(code int) (logic.Formula, error) {
	f, ok := c[code]
	if !ok {
		return nil, fmt.Errorf("no sentence has code %d", code)
	}
	return f, nil
}

var presets = map[string]func(*logic.Language) TheoryConfig{
	"classical": func(l *logic.Language) TheoryConfig {
		return classicalConfig("classical", orLanguage(l, logic.ClassicalInfinitePredicateLanguage))
	},
	"classical-functional": func(l *logic.Language) TheoryConfig {
		return classicalConfig("classical-functional", orLanguage(l, logic.ClassicalFunctionLanguage))
	},
	"arithmetic": func(l *logic.Language) TheoryConfig {
		return classicalConfig("arithmetic", orLanguage(l, logic.ArithmeticLanguage))
	},
	"real-arithmetic": func(l *logic.Language) TheoryConfig {
		return classicalConfig("real-arithmetic", orLanguage(l, logic.RealArithmeticLanguage))
	},
	"k3":  k3Config,
	"lp":  lpConfig,
	"rm3": rm3Config,
	"wk":  weakKleeneConfig,
	"fde": fdeConfig,
}

// PresetNames lists the names Preset accepts.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(presets))
}

// Preset builds a predefined theory by name (case-insensitive) over l, or
// over the preset's own language when l is nil. Sentential constants l
// declares beyond ⊥ and ⊤ have no value, so such a language is rejected.
func Preset(name string, l *logic.Language) (*ModelTheory, error) {
	build, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown theory %q (known: %s)", ErrInvalidTheory, name, strings.Join(PresetNames(), ", "))
	}
	return NewModelTheory(build(l))
}
