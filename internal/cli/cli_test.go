package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/logics/pkg/logic"
)

func scenarioFile(name string) string {
	return filepath.Join("..", "scenario", "testdata", name)
}

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// run executes the root command and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out, logs := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(logs)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if logs.Len() > 0 {
		t.Log(logs.String())
	}
	return out.String(), err
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestHelpListsCommands(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	for _, want := range []string{"eval", "wff", "match", "range", "theories", "version"} {
		assert.Contains(t, out, want)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "logics v"+logic.Version)

	out, err = run(t, "version", "-o", "json")
	require.NoError(t, err)
	info := decode[logic.VersionInfo](t, out)
	assert.Equal(t, logic.Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestEvalTable(t *testing.T) {
	out, err := run(t, "eval", "--color=false", scenarioFile("people.yaml"), scenarioFile("k3.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Scenario")
	assert.Contains(t, out, "a relates to b")
	assert.Contains(t, out, "excluded middle fails")
	assert.Contains(t, out, "8 formulas, 0 failed")
}

func TestEvalJSON(t *testing.T) {
	out, err := run(t, "eval", "-o", "json", "--workers", "2", scenarioFile("k3.yaml"))
	require.NoError(t, err)
	results := decode[[]EvalResult](t, out)
	require.Len(t, results, 3)

	assert.Equal(t, "gap", results[0].Formula)
	assert.Equal(t, "K3", results[0].Theory)
	assert.Equal(t, "i", results[0].Value)
	assert.False(t, results[0].Designated)
	assert.Equal(t, "1", results[2].Value)
	assert.True(t, results[2].Designated)
	for _, r := range results {
		assert.False(t, r.Failed(), r.Formula)
	}
}

func TestEvalWithoutFastPaths(t *testing.T) {
	out, err := run(t, "eval", "-o", "yaml", "--fast-path=false", "--range-limit", "50", scenarioFile("arithmetic.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "formula: two exists")
	assert.Contains(t, out, "value: \"1\"")
}

func TestEvalRangeLimitCutsInfiniteDomains(t *testing.T) {
	out, err := run(t, "eval", "-o", "json", "--range-limit", "2", scenarioFile("arithmetic.yaml"))
	assert.ErrorContains(t, err, "1 of 2 formulas failed")
	results := decode[[]EvalResult](t, out)
	assert.Equal(t, "0", results[0].Value, "2 is outside the first two naturals")
	assert.Equal(t, "1", results[1].Value)
}

func TestEvalFailedExpectation(t *testing.T) {
	path := writeScenario(t, `
model:
  domain: [1]
  denotations: {a: 1, P: [1]}
formulas:
  - name: wrong
    formula: {atom: P, args: [a]}
    expect: "0"
`)
	out, err := run(t, "eval", "--color=false", path)
	assert.ErrorContains(t, err, "1 of 1 formulas failed")
	assert.Contains(t, out, "want 0")
}

func TestEvalReportsEvaluationErrors(t *testing.T) {
	path := writeScenario(t, `
model:
  domain: [1]
  denotations: {P: [1]}
formulas:
  - name: undenoting
    formula: {atom: P, args: [a]}
`)
	out, err := run(t, "eval", "-o", "json", path)
	assert.ErrorContains(t, err, "1 of 1 formulas failed")
	results := decode[[]EvalResult](t, out)
	assert.Contains(t, results[0].Error, "no denotation")
}

func TestEvalRequiresModel(t *testing.T) {
	path := writeScenario(t, "name: bare\nformulas: [{formula: A}]\n")
	_, err := run(t, "eval", path)
	assert.ErrorContains(t, err, "scenario has no model")
}

func TestEvalUsesDefaultTheoryFlag(t *testing.T) {
	path := writeScenario(t, `
model:
  domain: [1, 2]
  denotations: {a: 1, b: 2, P: {positive: [1], negative: [1]}}
formulas:
  - formula: {atom: P, args: [a]}
    expect: i
`)
	_, err := run(t, "eval", "--theory", "lp", path)
	assert.NoError(t, err)
}

func TestWFF(t *testing.T) {
	path := writeScenario(t, `
formulas:
  - name: wrong arity
    formula: {atom: R, args: [a]}
  - name: open
    formula: {atom: R, args: [x, a]}
instances:
  - name: schema
    candidate: {atom: P, args: [a]}
    schema: {op: ∧, args: [A, B]}
`)
	out, err := run(t, "wff", "-o", "json", path)
	require.NoError(t, err)
	results := decode[[]WFFResult](t, out)
	require.Len(t, results, 4)

	assert.False(t, results[0].WellFormed)
	assert.Contains(t, results[0].Reason, "R(a)")
	assert.True(t, results[1].WellFormed)
	assert.Equal(t, []string{"x"}, results[1].FreeVariables)
	assert.False(t, results[2].Schematic)
	assert.True(t, results[3].Schematic)
}

func TestMatch(t *testing.T) {
	out, err := run(t, "match", "-o", "json", scenarioFile("people.yaml"))
	require.NoError(t, err)
	results := decode[[]MatchResult](t, out)
	require.Len(t, results, 2)

	assert.True(t, results[0].Matched)
	assert.Equal(t, "{A: P(a), B: R(a, b)}", results[0].Substitution)
	assert.False(t, results[1].Matched)
}

func TestRange(t *testing.T) {
	out, err := run(t, "range", "-o", "json", "--arity", "1", scenarioFile("k3.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"{}", "{1}", "{2}", "{1, 2}"}, decode[[]string](t, out))

	out, err = run(t, "range", "-o", "json", "--arity", "0", "--limit", "3", scenarioFile("arithmetic.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, decode[[]string](t, out))

	_, err = run(t, "range", "--limit", "0", scenarioFile("k3.yaml"))
	assert.ErrorContains(t, err, "limit must be positive")
}

func TestTheories(t *testing.T) {
	out, err := run(t, "theories", "-o", "json")
	require.NoError(t, err)
	got := decode[struct {
		Theories  []TheoryInfo `json:"theories"`
		Languages []string     `json:"languages"`
	}](t, out)

	names := make([]string, len(got.Theories))
	for i, info := range got.Theories {
		names[i] = info.Name
	}
	assert.Contains(t, names, "k3")
	assert.Contains(t, names, "fde")
	assert.Contains(t, got.Languages, "truth")
}

func TestInvalidOutputFlag(t *testing.T) {
	_, err := run(t, "version", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}
