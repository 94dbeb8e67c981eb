package semantics

import (
	"fmt"
	"iter"
	"slices"

	"github.com/gitrdm/logics/pkg/logic"
)

// QuantificationRange returns the elements a quantifier binding variable
// ranges over. A bounded quantifier ranges over the members of its
// restriction term's denotation, resolved under asg. Otherwise an individual
// variable ranges over the domain and a predicate variable of arity n over
// the powerset of Dⁿ (see PredicateRange).
func QuantificationRange(m *Model, l *logic.Language, variable string, bound logic.Term, asg Assignment) (iter.Seq[Element], error) {
	if bound != nil {
		d, err := m.Denotation(bound, asg)
		if err != nil {
			return nil, err
		}
		seq, ok := Members(d)
		if !ok {
			return nil, &DenotationError{Term: bound, Reason: fmt.Sprintf("%s cannot be quantified over", FormatElement(d))}
		}
		return seq, nil
	}
	if l.IsPredicateVariable(variable) {
		n, _ := l.Arity(variable)
		return PredicateRange(m.Domain(), n), nil
	}
	if l.IsIndividualVariable(variable) {
		return m.Domain().All(), nil
	}
	return nil, fmt.Errorf("%s is not a variable and has no quantification range", variable)
}

// Members returns the members of a denotation usable as a quantifier bound:
// an extension, a domain, or a slice or sequence of elements.
func Members(d Element) (iter.Seq[Element], bool) {
	switch v := d.(type) {
	case *Extension:
		return v.Members(), true
	case *SignedExtension:
		if v.Positive == nil {
			return func(func(Element) bool) {}, true
		}
		return v.Positive.Members(), true
	case Domain:
		return v.All(), true
	case Tuple:
		return slices.Values([]Element(v)), true
	case []Element:
		return slices.Values(v), true
	case iter.Seq[Element]:
		return v, true
	}
	return nil, false
}

// PredicateRange returns the range of an n-ary predicate variable over d:
// every subset of Dⁿ, as *Extension values, in non-decreasing order of
// cardinality starting with the empty extension. Nothing is materialised
// up front; over an infinite domain the sequence is infinite and, after ∅,
// yields singletons only.
func PredicateRange(d Domain, arity int) iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for subset := range Powerset(Product(d.All(), arity)) {
			e := &Extension{arity: arity, index: make(map[string]struct{}, len(subset))}
			for _, t := range subset {
				e.add(t)
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Product yields the n-tuples over base. Tuples are dovetailed by the
// largest index they use, so every tuple is reached after finitely many
// steps even when base is infinite. For n = 1 the order is base's own.
func Product(base iter.Seq[Element], n int) iter.Seq[Tuple] {
	return func(yield func(Tuple) bool) {
		if n <= 0 {
			yield(Tuple{})
			return
		}
		next, stop := iter.Pull(base)
		defer stop()

		var buf []Element
		for m := 0; ; m++ {
			v, ok := next()
			if !ok {
				return
			}
			buf = append(buf, v)
			if !indexTuples(m, n, func(idx []int) bool {
				t := make(Tuple, n)
				for i, j := range idx {
					t[i] = buf[j]
				}
				return yield(t)
			}) {
				return
			}
		}
	}
}

// indexTuples calls yield for every n-tuple of indices in [0, m] in which m
// occurs, in lexicographic order.
func indexTuples(m, n int, yield func([]int) bool) bool {
	idx := make([]int, n)
	for {
		if slices.Contains(idx, m) && !yield(idx) {
			return false
		}
		i := n - 1
		for i >= 0 && idx[i] == m {
			idx[i] = 0
			i--
		}
		if i < 0 {
			return true
		}
		idx[i]++
	}
}

// Powerset yields the finite subsets of base in non-decreasing cardinality,
// starting with the empty set. Subsets of one cardinality are ordered by
// the largest position they use, so each cardinality is streamed without
// knowing the size of base. Base is consumed once.
func Powerset[T any](base iter.Seq[T]) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if !yield(nil) {
			return
		}
		next, stop := iter.Pull(base)
		defer stop()

		var buf []T
		exhausted := false
		fetch := func(i int) bool {
			for len(buf) <= i && !exhausted {
				v, ok := next()
				if !ok {
					exhausted = true
					break
				}
				buf = append(buf, v)
			}
			return i < len(buf)
		}

		for k := 1; fetch(k - 1); k++ {
			for m := k - 1; fetch(m); m++ {
				last := buf[m]
				ok := combinations(buf[:m], k-1, func(c []T) bool {
					subset := make([]T, 0, k)
					subset = append(subset, c...)
					return yield(append(subset, last))
				})
				if !ok {
					return
				}
			}
		}
	}
}

// combinations calls yield with every r-element combination of elems in
// lexicographic order of positions. The slice passed to yield is reused.
func combinations[T any](elems []T, r int, yield func([]T) bool) bool {
	if r > len(elems) {
		return true
	}
	idx := make([]int, r)
	for i := range idx {
		idx[i] = i
	}
	c := make([]T, r)
	for {
		for i, j := range idx {
			c[i] = elems[j]
		}
		if !yield(c) {
			return false
		}
		i := r - 1
		for i >= 0 && idx[i] == len(elems)-r+i {
			i--
		}
		if i < 0 {
			return true
		}
		idx[i]++
		for j := i + 1; j < r; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
