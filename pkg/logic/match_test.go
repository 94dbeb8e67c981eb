package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsInstanceOf(t *testing.T) {
	l := ClassicalFunctionLanguage()
	alpha := Sym("α")
	c := Sym("c")

	tests := []struct {
		name      string
		candidate Formula
		schema    Formula
		want      bool
	}{
		{"concrete equal", Pred("P", a), Pred("P", a), true},
		{"concrete different", Pred("P", a), Pred("P", b), false},
		{"individual metavariable", Pred("P", a), Pred("P", alpha), true},
		{"repeated metavariable agrees", And(Pred("P", a), Pred("R", b, a)), And(Pred("P", alpha), Pred("R", b, alpha)), true},
		{"repeated metavariable conflicts", And(Pred("P", a), Pred("R", b, c)), And(Pred("P", alpha), Pred("R", b, alpha)), false},
		{"sentential metavariable consistency", And(Pred("P", a), Pred("Q", b)), And(Atom("A"), Atom("A")), false},
		{"sentential metavariable repeated", And(Pred("P", a), Pred("P", a)), And(Atom("A"), Atom("A")), true},
		{"predicate metavariable", Pred("P", a), Pred("Π", alpha), true},
		{"predicate metavariable arity", Pred("R", a, b), Pred("Π", alpha), false},
		{"predicate metavariable rejects sentential constant", Atom("⊥"), Pred("Π", alpha), false},
		{"metavariable inside functions", Pred("P", Apply("g", a, Apply("f", a))), Pred("P", Apply("g", alpha, Apply("f", alpha))), true},
		{"connective mismatch", Or(Pred("P", a), Pred("P", a)), And(Atom("A"), Atom("B")), false},
		{"shape mismatch", Pred("P", a), Not(Atom("A")), false},
		{"quantifier with variable metavariable", ForAll("x", Pred("P", x)), Quant("∀", "χ", Atom("A")), true},
		{"quantifier mismatch", Exists("x", Pred("P", x)), Quant("∀", "χ", Atom("A")), false},
		{"literal quantified variable", ForAll("y", Pred("P", y)), ForAll("x", Atom("A")), false},
		{"bound against unbounded", BoundedQuant("∀", "x", a, Pred("P", x)), Quant("∀", "χ", Atom("A")), false},
		{"bound term unifies", BoundedQuant("∀", "x", a, Pred("P", a)), BoundedQuant("∀", "χ", alpha, Pred("P", alpha)), true},
		{"bound term conflicts", BoundedQuant("∀", "x", a, Pred("P", b)), BoundedQuant("∀", "χ", alpha, Pred("P", alpha)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInstanceOf(tt.candidate, tt.schema, l))
		})
	}
}

func TestMatchRecoversSubstitution(t *testing.T) {
	l := ClassicalFunctionLanguage()
	alpha := Sym("α")

	s, ok := Match(And(Pred("P", a), Pred("R", b, a)), And(Pred("P", alpha), Pred("R", b, alpha)), l, nil)
	require.True(t, ok)
	assert.True(t, s.Equal(Subst{"α": a}), s.String())

	s, ok = Match(Pred("P", Apply("f", a, Apply("f", a))), Pred("P", Apply("f", alpha, Apply("f", alpha))), l, nil)
	require.True(t, ok)
	assert.True(t, s.Equal(Subst{"α": a}), s.String())

	s, ok = Match(ForAll("x", Pred("Q", x)), Quant("∀", "χ", Pred("Π", Sym("χ"))), l, nil)
	require.True(t, ok)
	assert.True(t, s.Equal(Subst{"χ": x, "Π": Sym("Q")}), s.String())
}

func TestMatchSeed(t *testing.T) {
	l := ClassicalPredicateLanguage()
	seed := Subst{"A": Pred("P", a)}

	_, ok := Match(Pred("P", b), Atom("A"), l, seed)
	assert.False(t, ok)

	s, ok := Match(And(Pred("P", a), Pred("Q", b)), And(Atom("A"), Atom("B")), l, seed)
	require.True(t, ok)
	assert.Len(t, s, 2)
	assert.Len(t, seed, 1, "seed must not be modified")
}

func TestMatchFailureReturnsPartialSubstitution(t *testing.T) {
	l := ClassicalPredicateLanguage()

	s, ok := Match(And(Pred("P", a), Pred("Q", b)), And(Atom("A"), Atom("A")), l, nil)
	assert.False(t, ok)
	f, bound := s.Formula("A")
	require.True(t, bound)
	assert.True(t, Equal(Pred("P", a), f))
}

func TestMatchPackedToken(t *testing.T) {
	l := ClassicalFunctionLanguage()
	seed := Subst{"A": Pred("R", x, Apply("f", x)), "χ": x}

	s, ok := Match(Pred("R", b, Apply("f", b)), Atom("[α/χ]A"), l, seed)
	require.True(t, ok)
	got, _ := s.Term("α")
	assert.True(t, TermEqual(b, got))

	_, ok = Match(Pred("R", b, Apply("f", a)), Atom("[α/χ]A"), l, seed)
	assert.False(t, ok)

	_, ok = Match(Pred("R", b, Apply("f", b)), Atom("[α/χ]A"), l, nil)
	assert.False(t, ok, "A and χ must be bound beforehand")
}

func TestMatchTerm(t *testing.T) {
	l := ClassicalFunctionLanguage()

	s, ok := MatchTerm(Apply("g", a, x), Apply("g", Sym("α"), Sym("χ")), l, nil)
	require.True(t, ok)
	assert.Equal(t, "{α: a, χ: x}", s.String())

	_, ok = MatchTerm(Apply("f", a), Sym("χ"), l, nil)
	assert.False(t, ok, "variable metavariables bind symbols only")
}

// Instantiating a schema and matching the result against the same schema
// recovers the substitution on every metavariable the schema mentions.
func TestInstantiateThenMatchRoundTrip(t *testing.T) {
	l := ClassicalFunctionLanguage()
	alpha, beta := Sym("α"), Sym("β")

	cases := []struct {
		schema Formula
		subst  Subst
	}{
		{
			And(Atom("A"), Implies(Atom("B"), Atom("A"))),
			Subst{"A": Pred("P", a), "B": ForAll("x", Pred("Q", x))},
		},
		{
			Pred("Φ", alpha, Apply("f", beta)),
			Subst{"Φ": Sym("R"), "α": Apply("g", a, b), "β": Sym("c")},
		},
		{
			BoundedQuant("∃", "χ", alpha, Pred("Π", Sym("χ"))),
			Subst{"χ": y, "α": a, "Π": Sym("X")},
		},
		{
			Not(Pred("Ψ", alpha, alpha, beta)),
			Subst{"Ψ": Sym("S"), "α": x, "β": a, "C": Atom("⊤")},
		},
		{
			And(Quant("∃", "χ", Atom("A")), Atom("[α/χ]A")),
			Subst{"A": Pred("P", x), "χ": x, "α": a},
		},
		{
			And(Atom("[α/χ]A"), Quant("∃", "χ", Atom("A"))),
			Subst{"A": Pred("P", x), "χ": x, "α": a},
		},
		{
			Implies(Atom("[α/χ]A"), Quant("∀", "χ", Atom("A"))),
			Subst{"A": Pred("R", x, Sym("y")), "χ": Sym("y"), "α": Apply("f", b)},
		},
	}
	for _, tc := range cases {
		inst, err := Instantiate(tc.schema, l, tc.subst)
		require.NoError(t, err)

		got, ok := Match(inst, tc.schema, l, nil)
		require.True(t, ok, "%s against %s", inst, tc.schema)
		for key, want := range got {
			assert.True(t, BindingEqual(want, tc.subst[key]), "key %s: got %s want %s", key, want, tc.subst[key])
		}
		for key := range tc.subst {
			if ContainsSymbol(tc.schema, key) {
				assert.Contains(t, got, key)
			}
		}
	}
}
