package semantics

import (
	"math"
	"testing"

	"github.com/gitrdm/logics/pkg/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s(t logic.Term) logic.Term { return logic.Apply("s", t) }

var zero = logic.Sym("0")

func TestArithmeticModel(t *testing.T) {
	mt := Arithmetic()
	m := ArithmeticModel(nil)

	tests := []struct {
		name string
		f    logic.Formula
		want TruthValue
	}{
		{"successor greater", logic.Pred(">", s(zero), zero), True},
		{"one plus one", logic.Pred("=", logic.Apply("+", s(zero), s(zero)), s(s(zero))), True},
		{"two times two", logic.Pred("=", logic.Apply("*", s(s(zero)), s(s(zero))), s(s(s(s(zero))))), True},
		{"power", logic.Pred("<", logic.Apply("**", s(s(zero)), s(s(s(zero)))), s(s(zero))), False},
		{"exists successor witness", logic.Exists("x", logic.Pred("=", x, s(zero))), True},
		{"not everything exceeds one", logic.ForAll("x", logic.Pred(">", x, s(zero))), False},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mt.Valuation(tt.f, m, Assignment{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArithmeticModelOverLimitedDomain(t *testing.T) {
	m := ArithmeticModel(nil).WithDomain(LimitDomain(Naturals(), 5))

	// Without a limit the search for a predecessor of 0 never ends.
	got, err := Arithmetic().Valuation(logic.Exists("x", logic.Pred("=", s(x), zero)), m, Assignment{})
	require.NoError(t, err)
	assert.Equal(t, False, got)
}

func TestArithmeticFixedDenotationsWin(t *testing.T) {
	m := ArithmeticModel(map[string]any{"0": 7, "a": 3})

	d, err := m.Denotation(zero, Assignment{})
	require.NoError(t, err)
	assert.Equal(t, 0, d)

	d, err = m.Denotation(s(logic.Sym("a")), Assignment{})
	require.NoError(t, err)
	assert.Equal(t, 4, d)
}

func TestRealArithmeticModel(t *testing.T) {
	mt := RealArithmetic()
	m := RealArithmeticModel(NewFiniteDomain(-1, 0, 0.5, 1), nil)
	n := func(s string) logic.Sym { return logic.Sym(s) }

	tests := []struct {
		name string
		f    logic.Formula
		want TruthValue
	}{
		{"division yields a float", logic.Pred("=", logic.Apply("/", n("1"), n("2")), n("0.5")), True},
		{"floor division", logic.Pred("=", logic.Apply("//", n("7"), n("2")), n("3")), True},
		{"floor division rounds down", logic.Pred("=", logic.Apply("//", n("-7"), n("2")), n("-4")), True},
		{"mixed comparison", logic.Pred("=", n("2"), n("2.0")), True},
		{"subtraction", logic.Pred("<", logic.Apply("-", n("1"), n("3")), n("0")), True},
		{"exists half", logic.Exists("x", logic.Pred("=", logic.Apply("+", x, x), n("1"))), True},
		{"all below two", logic.ForAll("x", logic.Pred("<", x, n("2"))), True},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mt.Valuation(tt.f, m, Assignment{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := mt.Valuation(logic.Pred("=", logic.Apply("/", n("1"), n("0")), n("0")), m, Assignment{})
	assert.ErrorIs(t, err, ErrDenotation)
}

func TestArithmeticTruth(t *testing.T) {
	codes := CodeTable{
		1: logic.Pred("=", zero, logic.Apply("+", zero, zero)),
		2: logic.Pred("Tr", logic.Sym("1")),
		3: logic.Pred(">", zero, zero),
	}
	mt, err := ArithmeticTruth(codes.Decode, map[string]logic.Formula{"λ": logic.Not(logic.Pred("Tr", logic.Sym("3")))})
	require.NoError(t, err)
	m := ArithmeticModel(nil)

	tests := []struct {
		f    logic.Formula
		want TruthValue
	}{
		{logic.Pred("Tr", logic.Sym("1")), True},
		{logic.Pred("Tr", logic.Sym("2")), True},
		{logic.Pred("Tr", logic.Sym("3")), False},
		{logic.Atom("λ"), True},
		{logic.Pred("=", logic.Apply("quote", s(s(zero))), s(s(zero))), True},
	}
	for _, tt := range tests {
		got, err := mt.Valuation(tt.f, m, Assignment{})
		require.NoError(t, err, tt.f.String())
		assert.Equal(t, tt.want, got, tt.f.String())
	}

	_, err = mt.Valuation(logic.Pred("Tr", logic.Sym("9")), m, Assignment{})
	assert.ErrorContains(t, err, "no sentence has code 9")

	require.True(t, logic.TruthPredicateLanguage().IsWellFormed(logic.Pred("=", logic.Apply("quote", zero), zero)))

	_, err = ArithmeticTruth(codes.Decode, nil)
	assert.ErrorIs(t, err, ErrInvalidTheory, "λ needs a denotation")
}

func TestIntegerOverflowIsADenotationError(t *testing.T) {
	m := ArithmeticModel(map[string]any{"big": math.MaxInt, "two": 2, "k": 64, "h": 32})
	big, two := logic.Sym("big"), logic.Sym("two")

	for _, term := range []logic.Term{
		logic.Apply("+", big, big),
		logic.Apply("*", big, two),
		logic.Apply("**", two, logic.Sym("k")),
		s(big),
	} {
		_, err := m.Denotation(term, Assignment{})
		assert.ErrorIs(t, err, ErrDenotation, term.String())
	}

	d, err := m.Denotation(logic.Apply("**", two, logic.Sym("h")), Assignment{})
	require.NoError(t, err)
	assert.Equal(t, 1<<32, d)
}
