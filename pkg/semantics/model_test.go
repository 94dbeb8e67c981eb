package semantics

import (
	"context"
	"slices"
	"testing"

	"github.com/gitrdm/logics/pkg/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiniteDomainDeduplicates(t *testing.T) {
	d := NewFiniteDomain(1, 2, 1, Tuple{1, 2}, Tuple{1, 2})

	assert.Equal(t, 3, d.Len())
	assert.True(t, d.Finite())
	assert.True(t, d.Contains(Tuple{1, 2}))
	assert.False(t, d.Contains(3))
	assert.Equal(t, []Element{1, 2, Tuple{1, 2}}, slices.Collect(d.All()))
}

func TestLimitAndWithContext(t *testing.T) {
	assert.Equal(t, []Element{0, 1, 2}, slices.Collect(Limit(Naturals().All(), 3)))
	assert.Empty(t, slices.Collect(Limit(Naturals().All(), 0)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var got []Element
	for e := range WithContext(ctx, Naturals().All()) {
		got = append(got, e)
		if len(got) == 2 {
			cancel()
		}
	}
	assert.Equal(t, []Element{0, 1}, got)

	lim := LimitDomain(Naturals(), 2)
	assert.True(t, lim.Finite())
	assert.Equal(t, []Element{0, 1}, slices.Collect(lim.All()))
	assert.Equal(t, []Element{0, 1}, slices.Collect(lim.All()), "restartable")
}

func TestElementsEqual(t *testing.T) {
	assert.True(t, ElementsEqual(Tuple{1, "a"}, Tuple{1, "a"}))
	assert.False(t, ElementsEqual(Tuple{1}, 1))
	assert.True(t, ElementsEqual([]int{1, 2}, []int{1, 2}))
	assert.False(t, ElementsEqual(1, 1.0))
	assert.True(t, ElementsEqual(nil, nil))
}

func TestExtension(t *testing.T) {
	e, err := NewExtension(2, Tuple{1, 2}, Tuple{1, 2}, Tuple{2, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, e.Len())
	assert.True(t, e.Contains(Tuple{2, 1}))
	assert.False(t, e.Contains(Tuple{2, 2}))
	assert.Equal(t, "{(1, 2), (2, 1)}", e.String())

	_, err = NewExtension(2, Tuple{1})
	assert.Error(t, err)

	assert.Equal(t, []Element{1, 2}, slices.Collect(Set(1, 2).Members()))
	assert.False(t, Set("1").Contains(Tuple{1}), "elements keep their type")
}

func TestAssignmentIsPersistent(t *testing.T) {
	base := NewAssignment(map[string]Element{"x": 1})
	inner := base.Bind("x", 2).Bind("y", 3)

	v, _ := base.Lookup("x")
	assert.Equal(t, 1, v)
	v, _ = inner.Lookup("x")
	assert.Equal(t, 2, v)
	_, ok := base.Lookup("y")
	assert.False(t, ok)

	assert.Equal(t, map[string]Element{"x": 2, "y": 3}, inner.Map())
	assert.Equal(t, "{x: 2, y: 3}", inner.String())
	assert.Equal(t, "{}", Assignment{}.String())
}

func TestModelDenotationOrder(t *testing.T) {
	m := NewModel(NewFiniteDomain(1, 2), map[string]any{"a": 1}).
		WithFixed(map[string]any{"b": 2}).
		WithResolver(func(symbol string) (Element, bool) {
			if symbol == "a" {
				return "resolved", true
			}
			return nil, false
		})

	d, err := m.Denotation(logic.Sym("a"), Assignment{})
	require.NoError(t, err)
	assert.Equal(t, "resolved", d)

	d, err = m.Denotation(logic.Sym("x"), NewAssignment(map[string]Element{"x": 2, "b": 1}))
	require.NoError(t, err)
	assert.Equal(t, 2, d)

	d, err = m.Denotation(logic.Sym("b"), NewAssignment(map[string]Element{"b": 1}))
	require.NoError(t, err)
	assert.Equal(t, 2, d, "model denotations shadow the assignment")

	assert.Equal(t, []string{"a", "b"}, m.Symbols())

	_, err = m.Relation("a", Assignment{})
	assert.ErrorIs(t, err, ErrDenotation)
	_, err = m.Denotation(logic.Apply("f", logic.Sym("a")), Assignment{})
	assert.ErrorIs(t, err, ErrDenotation)
}

func TestTruthTables(t *testing.T) {
	and := BinaryTable(trivalues, kleeneTables.binary["∧"])
	v, err := and(True, Indeterminate)
	require.NoError(t, err)
	assert.Equal(t, Indeterminate, v)

	_, err = and(True)
	assert.ErrorIs(t, err, ErrTruthFunction)
	_, err = and(True, "b")
	assert.ErrorIs(t, err, ErrTruthFunction)

	not := UnaryTable(fdeValues, fdeTables.neg)
	v, err = not(Both)
	require.NoError(t, err)
	assert.Equal(t, Both, v)

	all := Fold(True, False, Indeterminate, True)
	v, err = all(nil)
	require.NoError(t, err)
	assert.Equal(t, True, v)
	_, err = all([]TruthValue{"b"})
	assert.ErrorIs(t, err, ErrTruthFunction)
}
