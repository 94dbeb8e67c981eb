package semantics

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strconv"

	"github.com/gitrdm/logics/pkg/logic"
)

// Valuation returns the truth value of f in m under asg.
//
// An atomic formula headed by a sentential constant takes the constant's
// value. Otherwise the predicate and its argument terms are resolved: a
// ComputedRelation is applied directly, any other relation goes through the
// theory's atomic clause. A molecular formula applies its connective's truth
// function to the values of its arguments. A quantified formula binds each
// element of its range in turn and folds the body values with the
// quantifier's function.
//
// Over an unbounded range the general fold never returns; use
// ValuationContext, LimitDomain, or a theory with FastQuantifiers, which
// stops as soon as the outcome is decided.
func (mt *ModelTheory) Valuation(f logic.Formula, m *Model, asg Assignment) (TruthValue, error) {
	return mt.ValuationContext(context.Background(), f, m, asg)
}

// ValuationContext is like Valuation but gives up when ctx is done, returning
// ctx.Err(). The context is checked once per range element.
func (mt *ModelTheory) ValuationContext(ctx context.Context, f logic.Formula, m *Model, asg Assignment) (TruthValue, error) {
	if m == nil {
		return "", errors.New("valuation without a model")
	}
	return mt.valuation(ctx, f, m, asg)
}

func (mt *ModelTheory) valuation(ctx context.Context, f logic.Formula, m *Model, asg Assignment) (TruthValue, error) {
	var (
		v   TruthValue
		err error
	)
	switch x := f.(type) {
	case *logic.Atomic:
		v, err = mt.atomic(ctx, x, m, asg)
	case *logic.Molecular:
		v, err = mt.molecular(ctx, x, m, asg)
	case *logic.Quantified:
		v, err = mt.quantified(ctx, x, m, asg)
	case nil:
		return "", errors.New("valuation of a missing formula")
	default:
		return "", fmt.Errorf("unsupported formula type %T", f)
	}
	if err != nil {
		return "", err
	}
	if tracing() {
		trace("valuation", "formula", f.String(), "assignment", asg.String(), "value", string(v))
	}
	return v, nil
}

func (mt *ModelTheory) atomic(ctx context.Context, f *logic.Atomic, m *Model, asg Assignment) (TruthValue, error) {
	lang := mt.cfg.Language
	if lang.IsSententialConstant(f.Symbol) {
		if g, ok := mt.cfg.ConstantFormulas[f.Symbol]; ok {
			return mt.valuation(ctx, g, m, asg)
		}
		return mt.cfg.Constants[f.Symbol], nil
	}
	if mt.cfg.TruthPredicate != "" && f.Symbol == mt.cfg.TruthPredicate {
		return mt.truthPredicate(ctx, f, m, asg)
	}

	r, err := m.Relation(f.Symbol, asg)
	if err != nil {
		return "", err
	}
	args := make(Tuple, len(f.Args))
	for i, t := range f.Args {
		if args[i], err = m.Denotation(t, asg); err != nil {
			return "", err
		}
	}

	var v TruthValue
	if cr, ok := r.(ComputedRelation); ok {
		v, err = cr(args...)
	} else {
		v, err = mt.cfg.Atomic(r, args)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", f, err)
	}
	if !slices.Contains(mt.cfg.Values, v) {
		return "", fmt.Errorf("%w: %s evaluated to %q, not a truth value of %s", ErrTruthFunction, f, v, mt.cfg.Name)
	}
	return v, nil
}

func (mt *ModelTheory) truthPredicate(ctx context.Context, f *logic.Atomic, m *Model, asg Assignment) (TruthValue, error) {
	if len(f.Args) != 1 {
		return "", &logic.NotWellFormedError{Formula: f, Reason: "truth predicate takes exactly one argument"}
	}
	var code int
	s, ok := f.Args[0].(logic.Sym)
	if n, err := strconv.Atoi(string(s)); ok && err == nil {
		code = n
	} else {
		d, err := m.Denotation(f.Args[0], asg)
		if err != nil {
			return "", err
		}
		if code, ok = d.(int); !ok {
			return "", &DenotationError{Term: f.Args[0], Reason: fmt.Sprintf("%s is not a code", FormatElement(d))}
		}
	}
	g, err := mt.cfg.Decode(code)
	if err != nil {
		return "", fmt.Errorf("decoding %d: %w", code, err)
	}
	return mt.valuation(ctx, g, m, Assignment{})
}

func (mt *ModelTheory) molecular(ctx context.Context, f *logic.Molecular, m *Model, asg Assignment) (TruthValue, error) {
	if mt.cfg.FastConnectives && fastConnectives[f.Connective] {
		return mt.fastMolecular(ctx, f, m, asg)
	}
	args := make([]TruthValue, len(f.Args))
	for i, g := range f.Args {
		v, err := mt.valuation(ctx, g, m, asg)
		if err != nil {
			return "", err
		}
		args[i] = v
	}
	v, err := mt.ApplyConnective(f.Connective, args...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", f, err)
	}
	return v, nil
}

func (mt *ModelTheory) quantified(ctx context.Context, f *logic.Quantified, m *Model, asg Assignment) (TruthValue, error) {
	seq, err := QuantificationRange(m, mt.cfg.Language, f.Variable, f.Bound, asg)
	if err != nil {
		return "", err
	}
	seq = WithContext(ctx, seq)

	if mt.cfg.FastQuantifiers && fastQuantifiers[f.Quantifier] {
		return mt.fastQuantified(ctx, f, seq, m, asg)
	}

	var values []TruthValue
	for e := range seq {
		v, err := mt.valuation(ctx, f.Body, m, asg.Bind(f.Variable, e))
		if err != nil {
			return "", err
		}
		values = append(values, v)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, err := mt.ApplyQuantifier(f.Quantifier, values)
	if err != nil {
		return "", fmt.Errorf("%s: %w", f, err)
	}
	return v, nil
}

// Fast paths. They hard-code the strong Kleene clauses over the tokens 1, i
// and 0, and are only enabled for theories whose configured functions were
// checked against those clauses at construction.

var (
	fastConnectives = map[string]bool{"~": true, "∧": true, "∨": true, "→": true, "↔": true}
	fastQuantifiers = map[string]bool{"∀": true, "∃": true}
)

func rank(v TruthValue) int {
	switch v {
	case True:
		return 2
	case Indeterminate:
		return 1
	}
	return 0
}

var ranked = [3]TruthValue{False, Indeterminate, True}

// kleeneConnective is the strong Kleene table of connective.
func kleeneConnective(connective string, args []TruthValue) TruthValue {
	switch connective {
	case "~":
		return ranked[2-rank(args[0])]
	case "∧":
		return ranked[min(rank(args[0]), rank(args[1]))]
	case "∨":
		return ranked[max(rank(args[0]), rank(args[1]))]
	case "→":
		return ranked[max(2-rank(args[0]), rank(args[1]))]
	case "↔":
		if args[0] == Indeterminate || args[1] == Indeterminate {
			return Indeterminate
		}
		if args[0] == args[1] {
			return True
		}
		return False
	}
	return ""
}

// kleeneFold is the strong Kleene ∀ (meet) or ∃ (join) of values.
func kleeneFold(quantifier string, values iter.Seq[TruthValue]) TruthValue {
	universal := quantifier == "∀"
	out := False
	if universal {
		out = True
	}
	for v := range values {
		if universal {
			out = ranked[min(rank(out), rank(v))]
		} else {
			out = ranked[max(rank(out), rank(v))]
		}
	}
	return out
}

func (mt *ModelTheory) fastMolecular(ctx context.Context, f *logic.Molecular, m *Model, asg Assignment) (TruthValue, error) {
	eval := func(i int) (TruthValue, error) {
		if i >= len(f.Args) {
			return "", &logic.NotWellFormedError{Formula: f, Reason: fmt.Sprintf("%s is missing an argument", f.Connective)}
		}
		return mt.valuation(ctx, f.Args[i], m, asg)
	}
	v1, err := eval(0)
	if err != nil {
		return "", err
	}
	if f.Connective == "~" {
		return kleeneConnective("~", []TruthValue{v1}), nil
	}

	// The left value alone decides ∧ at 0, ∨ at 1, → at 0 and ↔ at i.
	switch {
	case f.Connective == "∧" && v1 == False:
		return False, nil
	case f.Connective == "∨" && v1 == True:
		return True, nil
	case f.Connective == "→" && v1 == False:
		return True, nil
	case f.Connective == "↔" && v1 == Indeterminate:
		return Indeterminate, nil
	}
	v2, err := eval(1)
	if err != nil {
		return "", err
	}
	return kleeneConnective(f.Connective, []TruthValue{v1, v2}), nil
}

// fastQuantified stops at the first instance that decides the fold: a 0 for
// ∀, a 1 for ∃. Otherwise it reports i if any instance was i.
func (mt *ModelTheory) fastQuantified(ctx context.Context, f *logic.Quantified, seq iter.Seq[Element], m *Model, asg Assignment) (TruthValue, error) {
	decisive, out := False, True
	if f.Quantifier == "∃" {
		decisive, out = True, False
	}
	for e := range seq {
		v, err := mt.valuation(ctx, f.Body, m, asg.Bind(f.Variable, e))
		if err != nil {
			return "", err
		}
		switch v {
		case decisive:
			return v, nil
		case Indeterminate:
			out = Indeterminate
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return out, nil
}

// Satisfies reports whether f takes a designated value in m under the empty
// assignment.
func (mt *ModelTheory) Satisfies(m *Model, f logic.Formula) (bool, error) {
	v, err := mt.Valuation(f, m, Assignment{})
	if err != nil {
		return false, err
	}
	return mt.IsDesignated(v), nil
}

// Counterexample returns the first of models in which f is not designated,
// or nil if f is designated in all of them.
func (mt *ModelTheory) Counterexample(models []*Model, f logic.Formula) (*Model, error) {
	for _, m := range models {
		ok, err := mt.Satisfies(m, f)
		if err != nil {
			return nil, err
		}
		if !ok {
			return m, nil
		}
	}
	return nil, nil
}

// IsValidIn reports whether f is designated in every one of models.
func (mt *ModelTheory) IsValidIn(models []*Model, f logic.Formula) (bool, error) {
	m, err := mt.Counterexample(models, f)
	if err != nil {
		return false, err
	}
	return m == nil, nil
}
