package semantics

import (
	"fmt"
	"maps"
	"slices"

	"github.com/gitrdm/logics/pkg/logic"
)

// TheoryConfig declares a model theory. It is validated exhaustively by
// NewModelTheory.
type TheoryConfig struct {
	// Name identifies the theory in diagnostics, e.g. "K3".
	Name string

	Language *logic.Language

	// Values lists the truth values. Table-backed truth functions are
	// indexed in this order.
	Values []TruthValue

	// Designated lists the designated values, a non-empty subset of Values.
	Designated []TruthValue

	// Connectives gives a truth function for every connective of Language.
	Connectives map[string]TruthFunction

	// Quantifiers gives a fold for every quantifier of Language.
	Quantifiers map[string]QuantifierFunction

	// Atomic evaluates predicates denoting extensions.
	Atomic AtomicClause

	// Constants gives the value of each sentential constant of Language,
	// unless ConstantFormulas covers it.
	Constants map[string]TruthValue

	// ConstantFormulas lets a sentential constant denote a formula, whose
	// value is then the constant's value. A constant whose formula refers
	// back to the constant, like a liar sentence, does not terminate.
	ConstantFormulas map[string]logic.Formula

	// TruthPredicate, when set with Decode, names a unary predicate whose
	// argument is the numeral code of a sentence: the atomic takes the value
	// of the decoded sentence, evaluated under an empty assignment.
	TruthPredicate string
	Decode         func(code int) (logic.Formula, error)

	// FastConnectives evaluates ~ ∧ ∨ → ↔ with short-circuiting strong
	// Kleene clauses. It is only accepted when Values ⊆ {1, i, 0} and the
	// configured functions agree with strong Kleene on every input.
	FastConnectives bool

	// FastQuantifiers folds ∀ and ∃ with early exit. It is only accepted
	// under the same conditions, checked on every range of up to three values.
	FastQuantifiers bool
}

// ModelTheory binds a language to truth values and truth functions. It is
// immutable and safe for concurrent use.
type ModelTheory struct {
	cfg TheoryConfig
}

// NewModelTheory validates cfg. Every connective, quantifier and sentential
// constant declared by the language must be covered; a gap is reported here
// rather than at the first valuation that would need it.
func NewModelTheory(cfg TheoryConfig) (*ModelTheory, error) {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidTheory, fmt.Sprintf(format, args...))
	}
	if cfg.Language == nil {
		return nil, invalid("missing language")
	}
	if len(cfg.Values) == 0 {
		return nil, invalid("no truth values")
	}
	if len(cfg.Designated) == 0 {
		return nil, invalid("no designated value")
	}
	for _, v := range cfg.Designated {
		if !slices.Contains(cfg.Values, v) {
			return nil, invalid("designated value %q is not a truth value", v)
		}
	}
	for _, c := range cfg.Language.Connectives(0) {
		if cfg.Connectives[c] == nil {
			return nil, invalid("connective %s did not receive a truth function", c)
		}
	}
	for _, q := range cfg.Language.Quantifiers() {
		if cfg.Quantifiers[q] == nil {
			return nil, invalid("quantifier %s did not receive a truth function", q)
		}
	}
	for _, sc := range cfg.Language.SententialConstants() {
		if _, ok := cfg.ConstantFormulas[sc]; ok {
			continue
		}
		v, ok := cfg.Constants[sc]
		if !ok {
			return nil, invalid("sentential constant %s did not receive a truth value", sc)
		}
		if !slices.Contains(cfg.Values, v) {
			return nil, invalid("sentential constant %s has value %q outside the truth values", sc, v)
		}
	}
	if cfg.Atomic == nil {
		return nil, invalid("missing atomic clause")
	}
	if (cfg.TruthPredicate == "") != (cfg.Decode == nil) {
		return nil, invalid("truth predicate and decoder must be given together")
	}
	if cfg.FastConnectives {
		if err := checkFastConnectives(cfg); err != nil {
			return nil, invalid("fast connectives: %v", err)
		}
	}
	if cfg.FastQuantifiers {
		if err := checkFastQuantifiers(cfg); err != nil {
			return nil, invalid("fast quantifiers: %v", err)
		}
	}

	cfg.Values = slices.Clone(cfg.Values)
	cfg.Designated = slices.Clone(cfg.Designated)
	cfg.Connectives = maps.Clone(cfg.Connectives)
	cfg.Quantifiers = maps.Clone(cfg.Quantifiers)
	cfg.Constants = maps.Clone(cfg.Constants)
	cfg.ConstantFormulas = maps.Clone(cfg.ConstantFormulas)
	return &ModelTheory{cfg: cfg}, nil
}

// MustModelTheory is like NewModelTheory but panics on error.
func MustModelTheory(cfg TheoryConfig) *ModelTheory {
	mt, err := NewModelTheory(cfg)
	if err != nil {
		panic(err)
	}
	return mt
}

// Name returns the theory's name.
func (mt *ModelTheory) Name() string { return mt.cfg.Name }

// Language returns the theory's language.
func (mt *ModelTheory) Language() *logic.Language { return mt.cfg.Language }

// Values returns the truth values.
func (mt *ModelTheory) Values() []TruthValue { return slices.Clone(mt.cfg.Values) }

// Designated returns the designated values.
func (mt *ModelTheory) Designated() []TruthValue { return slices.Clone(mt.cfg.Designated) }

// IsDesignated reports whether v is a designated value.
func (mt *ModelTheory) IsDesignated(v TruthValue) bool {
	return slices.Contains(mt.cfg.Designated, v)
}

// ApplyConnective applies the truth function of connective to args.
func (mt *ModelTheory) ApplyConnective(connective string, args ...TruthValue) (TruthValue, error) {
	fn, ok := mt.cfg.Connectives[connective]
	if !ok {
		return "", fmt.Errorf("%w: no truth function for %s", ErrTruthFunction, connective)
	}
	return fn(args...)
}

// ApplyQuantifier folds values with the truth function of quantifier.
func (mt *ModelTheory) ApplyQuantifier(quantifier string, values []TruthValue) (TruthValue, error) {
	fn, ok := mt.cfg.Quantifiers[quantifier]
	if !ok {
		return "", fmt.Errorf("%w: no truth function for %s", ErrTruthFunction, quantifier)
	}
	return fn(values)
}

var kleeneValues = []TruthValue{True, Indeterminate, False}

func checkKleeneValues(values []TruthValue) error {
	for _, v := range values {
		if !slices.Contains(kleeneValues, v) {
			return fmt.Errorf("value %q is not one of 1, i, 0", v)
		}
	}
	return nil
}

func checkFastConnectives(cfg TheoryConfig) error {
	if err := checkKleeneValues(cfg.Values); err != nil {
		return err
	}
	for connective := range fastConnectives {
		fn := cfg.Connectives[connective]
		if fn == nil {
			continue
		}
		arity, _ := cfg.Language.Arity(connective)
		var err error
		forEachTuple(cfg.Values, arity, func(args []TruthValue) bool {
			want, ferr := fn(args...)
			if ferr != nil {
				err = fmt.Errorf("%s%v: %w", connective, args, ferr)
				return false
			}
			got := kleeneConnective(connective, args)
			if got != want {
				err = fmt.Errorf("%s%v is %q, strong Kleene gives %q", connective, args, want, got)
				return false
			}
			return true
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func checkFastQuantifiers(cfg TheoryConfig) error {
	if err := checkKleeneValues(cfg.Values); err != nil {
		return err
	}
	for quantifier := range fastQuantifiers {
		fn := cfg.Quantifiers[quantifier]
		if fn == nil {
			continue
		}
		for n := 0; n <= 3; n++ {
			var err error
			forEachTuple(cfg.Values, n, func(values []TruthValue) bool {
				want, ferr := fn(slices.Clone(values))
				if ferr != nil {
					err = fmt.Errorf("%s over %v: %w", quantifier, values, ferr)
					return false
				}
				got := kleeneFold(quantifier, slices.Values(values))
				if got != want {
					err = fmt.Errorf("%s over %v is %q, strong Kleene gives %q", quantifier, values, want, got)
					return false
				}
				return true
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// forEachTuple calls fn with every n-tuple over values. The slice is reused.
func forEachTuple(values []TruthValue, n int, fn func([]TruthValue) bool) {
	idx := make([]int, n)
	args := make([]TruthValue, n)
	for {
		for i, j := range idx {
			args[i] = values[j]
		}
		if !fn(args) {
			return
		}
		i := n - 1
		for i >= 0 && idx[i] == len(values)-1 {
			idx[i] = 0
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
	}
}

// WithoutFastPaths returns a copy of mt that always evaluates through the
// configured truth functions.
func (mt *ModelTheory) WithoutFastPaths() *ModelTheory {
	cfg := mt.cfg
	cfg.FastConnectives, cfg.FastQuantifiers = false, false
	return &ModelTheory{cfg: cfg}
}

// FastPaths reports which fast paths are enabled.
func (mt *ModelTheory) FastPaths() (connectives, quantifiers bool) {
	return mt.cfg.FastConnectives, mt.cfg.FastQuantifiers
}
