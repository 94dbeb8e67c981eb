package scenario

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/logics/internal/testutil"
	"github.com/gitrdm/logics/pkg/logic"
	"github.com/gitrdm/logics/pkg/semantics"
)

func newLoader(t *testing.T) *Loader {
	t.Helper()
	return NewLoader(testutil.NewTestLogger(t), "classical")
}

// evaluateAll checks every formula of s against its expectation.
func evaluateAll(t *testing.T, s *Scenario) {
	t.Helper()
	require.True(t, s.HasModel())
	for _, nf := range s.Formulas {
		t.Run(nf.Name, func(t *testing.T) {
			require.NoError(t, s.Language.CheckWellFormed(nf.Formula))
			v, err := s.Theory.Valuation(nf.Formula, s.Model, nf.Assignment)
			require.NoError(t, err)
			assert.Equal(t, nf.Expect, v)
		})
	}
}

func TestLoadFileEvaluates(t *testing.T) {
	for _, name := range []string{"people", "arithmetic", "k3", "truth"} {
		t.Run(name, func(t *testing.T) {
			s, err := newLoader(t).LoadFile(filepath.Join("testdata", name+".yaml"))
			require.NoError(t, err)
			assert.Equal(t, name, s.Name)
			evaluateAll(t, s)
		})
	}
}

func TestLoadFileInstances(t *testing.T) {
	s, err := newLoader(t).LoadFile(filepath.Join("testdata", "people.yaml"))
	require.NoError(t, err)
	require.Len(t, s.Instances, 2)

	subst, ok := logic.Match(s.Instances[0].Candidate, s.Instances[0].Schema, s.Language, nil)
	require.True(t, ok)
	a, _ := subst.Formula("A")
	assert.Equal(t, "P(a)", a.String())

	assert.False(t, logic.IsInstanceOf(s.Instances[1].Candidate, s.Instances[1].Schema, s.Language))
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := newLoader(t).LoadFile(filepath.Join("testdata", "bad_key.yaml"))
	assert.ErrorIs(t, err, ErrInvalidScenario)
	assert.ErrorContains(t, err, "theroy")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		errSubstr string
	}{
		{"unknown language", "language: esperanto\n", "unknown language"},
		{"unknown theory", "theory: dialetheic\n", "unknown theory"},
		{"codes on a plain theory", "theory: {preset: k3, codes: {1: P}}\n", "takes no codes"},
		{"plain model without domain", "model: {denotations: {a: 1}}\n", "no domain"},
		{"unknown domain", "model: {domain: integers}\n", "unknown domain"},
		{"unknown model kind", "model: {kind: modal, domain: [1]}\n", "unknown model kind"},
		{"negative limit", "model: {domain: naturals, limit: -1}\n", "negative domain limit"},
		{"bad extension member", "model: {domain: [1], denotations: {R: [1]}}\n", "not a list"},
		{"bad expression", "model: {domain: [1], denotations: {P: {expr: \"x +\"}}}\n", "compiling"},
		{"formula without shape", "formulas: [{formula: {foo: 1}}]\n", "none of the keys"},
		{"term without args", "formulas: [{formula: {atom: P, args: [{fn: f}]}}]\n", "has no arguments"},
		{"unexpected key", "formulas: [{formula: {op: and, args: [A, B], extra: 1}}]\n", "unexpected key"},
		{"bad schema", "instances: [{candidate: A, schema: [1]}]\n", "schema"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLoader(t).Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidScenario)
			assert.ErrorContains(t, err, tt.errSubstr)
		})
	}
}

func TestLanguageExtension(t *testing.T) {
	doc := `
language:
  preset: classical
  constants: [k]
  predicates: {Likes: 2}
model:
  domain: [ann, bob]
  denotations:
    k: ann
    a: bob
    Likes: [[ann, bob]]
formulas:
  - formula: {atom: Likes, args: [k, a]}
    expect: "1"
`
	s, err := newLoader(t).Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.True(t, s.Language.IsIndividualConstant("k"))
	arity, ok := s.Language.Arity("Likes")
	require.True(t, ok)
	assert.Equal(t, 2, arity)
	assert.Equal(t, "Likes(k, a)", s.Formulas[0].Name)
	evaluateAll(t, s)
}

func TestComputedFunctionAndGraph(t *testing.T) {
	doc := `
language: classical-functional
theory: classical-functional
model:
  domain: [0, 1, 2, 3]
  denotations:
    a: 1
    f: {expr: "x + 1"}
    g:
      graph:
        - {args: [1, 1], value: 0}
        - {args: [2, 1], value: 3}
    P: {expr: "x % 2 == 0"}
formulas:
  - name: f(a) is even
    formula: {atom: P, args: [{fn: f, args: [a]}]}
    expect: "1"
  - name: g(f(a), a) is odd
    formula: {atom: P, args: [{fn: g, args: [{fn: f, args: [a]}, a]}]}
    expect: "0"
`
	s, err := newLoader(t).Load(strings.NewReader(doc))
	require.NoError(t, err)
	evaluateAll(t, s)

	_, err = s.Theory.Valuation(
		logic.Pred("P", logic.Apply("g", logic.Sym("a"), logic.Sym("a"))),
		s.Model, semantics.Assignment{})
	assert.NoError(t, err, "g(1, 1) is in the graph")

	_, err = s.Theory.Valuation(
		logic.Pred("P", logic.Apply("g", logic.Sym("a"), logic.Apply("f", logic.Sym("a")))),
		s.Model, semantics.Assignment{})
	assert.ErrorIs(t, err, semantics.ErrDenotation, "g(1, 2) is outside the graph")
}

func TestComputedRelationTruthValues(t *testing.T) {
	doc := `
theory: k3
model:
  domain: [1, 2]
  denotations:
    a: 1
    b: 2
    P: {expr: "x == 1 ? '1' : 'i'"}
formulas:
  - formula: {atom: P, args: [a]}
    expect: "1"
  - formula: {atom: P, args: [b]}
    expect: i
`
	s, err := newLoader(t).Load(strings.NewReader(doc))
	require.NoError(t, err)
	evaluateAll(t, s)
}

func TestLimitedNaturals(t *testing.T) {
	doc := `
language: arithmetic
theory: arithmetic
model: {kind: arithmetic, limit: 3}
formulas:
  - name: no witness below three
    formula:
      quantifier: ∃
      var: x
      body: {atom: "=", args: [x, {fn: s, args: [{fn: s, args: [{fn: s, args: ["0"]}]}]}]}
    expect: "0"
`
	s, err := newLoader(t).Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.True(t, s.Model.Domain().Finite(), "a limited domain is finite")
	evaluateAll(t, s)
}

func TestDefaultTheory(t *testing.T) {
	s, err := NewLoader(nil, "lp").Load(strings.NewReader("name: empty\n"))
	require.NoError(t, err)
	assert.Equal(t, "LP", s.Theory.Name())
	assert.False(t, s.HasModel())
	assert.Empty(t, s.Formulas)
}

func TestSymbolsAreNormalised(t *testing.T) {
	f, err := DecodeFormula(map[string]any{
		"quantifier": "exists",
		"var":        "x",
		"body": map[string]any{
			"op":   "->",
			"args": []any{"A", "B"},
		},
	})
	require.NoError(t, err)
	assert.True(t, logic.Equal(logic.Exists("x", logic.Implies(logic.Atom("A"), logic.Atom("B"))), f))

	// U+0065 U+0301 composes to U+00E9.
	assert.Equal(t, "\u00e9", symbol("e\u0301"))
}

func TestDecodeTermNumerals(t *testing.T) {
	term, err := DecodeTerm(map[string]any{"fn": "+", "args": []any{2, 2.5}})
	require.NoError(t, err)
	assert.Equal(t, "+(2, 2.5)", term.String())
}

func TestLoadAll(t *testing.T) {
	paths := []string{
		filepath.Join("testdata", "people.yaml"),
		filepath.Join("testdata", "k3.yaml"),
		filepath.Join("testdata", "truth.yaml"),
	}
	got, err := newLoader(t).LoadAll(context.Background(), paths, 2)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, s := range got {
		assert.Equal(t, paths[i], s.Path)
	}

	_, err = newLoader(t).LoadAll(context.Background(), append(paths, filepath.Join("testdata", "missing.yaml")), 0)
	assert.ErrorContains(t, err, "missing.yaml")
}
