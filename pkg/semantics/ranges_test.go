package semantics

import (
	"iter"
	"slices"
	"testing"

	"github.com/gitrdm/logics/pkg/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectStrings[T any](seq iter.Seq[T], format func(T) string) []string {
	var out []string
	for v := range seq {
		out = append(out, format(v))
	}
	return out
}

func TestPredicateRangeUnary(t *testing.T) {
	d := NewFiniteDomain(1, 2)

	got := collectStrings(PredicateRange(d, 1), FormatElement)
	assert.Equal(t, []string{"{}", "{1}", "{2}", "{1, 2}"}, got)
}

func TestPredicateRangeBinary(t *testing.T) {
	got := collectStrings(PredicateRange(NewFiniteDomain(1), 2), FormatElement)
	assert.Equal(t, []string{"{}", "{(1, 1)}"}, got)

	n := 0
	prev := -1
	for e := range PredicateRange(NewFiniteDomain(1, 2), 2) {
		ext := e.(*Extension)
		assert.Equal(t, 2, ext.Arity())
		assert.GreaterOrEqual(t, ext.Len(), prev, "cardinality must not decrease")
		prev = ext.Len()
		n++
	}
	assert.Equal(t, 16, n)
}

func TestPredicateRangeOverNaturalsStreams(t *testing.T) {
	got := collectStrings(Limit(PredicateRange(Naturals(), 1), 4), FormatElement)
	assert.Equal(t, []string{"{}", "{0}", "{1}", "{2}"}, got)
}

func TestProductDovetails(t *testing.T) {
	got := collectStrings(Limit(Product(Naturals().All(), 2), 4), Tuple.String)
	assert.Equal(t, []string{"(0, 0)", "(0, 1)", "(1, 0)", "(1, 1)"}, got)

	got = collectStrings(Product(NewFiniteDomain("a", "b").All(), 1), Tuple.String)
	assert.Equal(t, []string{"(a)", "(b)"}, got)
}

func TestPowersetCardinalityOrder(t *testing.T) {
	var sizes []int
	var subsets [][]int
	for s := range Powerset(slices.Values([]int{1, 2, 3})) {
		sizes = append(sizes, len(s))
		subsets = append(subsets, s)
	}
	assert.Equal(t, []int{0, 1, 1, 1, 2, 2, 2, 3}, sizes)
	assert.Equal(t, []int{1, 2}, subsets[4])
	assert.Equal(t, []int{1, 2, 3}, subsets[7])
}

func TestPowersetStopsEarly(t *testing.T) {
	n := 0
	for range Powerset(slices.Values([]int{1, 2, 3})) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestQuantificationRange(t *testing.T) {
	l := logic.ClassicalPredicateLanguage()
	m := NewModel(NewFiniteDomain(1, 2), map[string]any{"a": 1, "P": Set(2)})

	seq, err := QuantificationRange(m, l, "x", nil, Assignment{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, collectStrings(seq, FormatElement))

	seq, err = QuantificationRange(m, l, "x", logic.Sym("P"), Assignment{})
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, collectStrings(seq, FormatElement))

	seq, err = QuantificationRange(m, l, "X", nil, Assignment{})
	require.NoError(t, err)
	assert.Len(t, collectStrings(seq, FormatElement), 4)

	seq, err = QuantificationRange(m, l, "Z", nil, Assignment{})
	require.NoError(t, err)
	assert.Len(t, collectStrings(seq, FormatElement), 16, "Z is binary")

	neg, ok := Members(&SignedExtension{Negative: Set(1)})
	require.True(t, ok)
	assert.Empty(t, collectStrings(neg, FormatElement))

	_, err = QuantificationRange(m, l, "x", logic.Sym("a"), Assignment{})
	assert.ErrorIs(t, err, ErrDenotation)

	_, err = QuantificationRange(m, l, "a", nil, Assignment{})
	assert.Error(t, err)
}
