package semantics

import (
	"context"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
)

// Element is a member of a model's domain. Elements are compared with ==
// when their dynamic type is comparable; Tuples compare elementwise.
type Element = any

// Tuple is an ordered sequence of elements, the argument list of a relation
// or function.
type Tuple []Element

func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, e := range t {
		parts[i] = FormatElement(e)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Domain is the universe of discourse of a model. All returns a fresh
// sequence on every call. An infinite domain's sequence never ends; callers
// needing a bound wrap it with Limit or WithContext.
type Domain interface {
	All() iter.Seq[Element]
	Finite() bool
}

// FiniteDomain is an ordered, duplicate-free set of elements.
type FiniteDomain struct {
	elems []Element
}

// NewFiniteDomain builds a finite domain. Duplicates are dropped; the order
// of first occurrence is kept.
func NewFiniteDomain(elems ...Element) *FiniteDomain {
	d := &FiniteDomain{}
	for _, e := range elems {
		if !d.Contains(e) {
			d.elems = append(d.elems, e)
		}
	}
	return d
}

func (d *FiniteDomain) All() iter.Seq[Element] { return slices.Values(d.elems) }
func (d *FiniteDomain) Finite() bool           { return true }

// Len returns the number of elements.
func (d *FiniteDomain) Len() int { return len(d.elems) }

// Contains reports whether e is an element of d.
func (d *FiniteDomain) Contains(e Element) bool {
	return slices.ContainsFunc(d.elems, func(x Element) bool { return ElementsEqual(x, e) })
}

type naturals struct{}

// Naturals returns the unbounded domain 0, 1, 2, … of ints.
func Naturals() Domain { return naturals{} }

func (naturals) All() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for n := 0; ; n++ {
			if !yield(n) {
				return
			}
		}
	}
}

func (naturals) Finite() bool { return false }

type lazyDomain struct {
	seq    func() iter.Seq[Element]
	finite bool
}

func (d lazyDomain) All() iter.Seq[Element] { return d.seq() }
func (d lazyDomain) Finite() bool           { return d.finite }

// NewLazyDomain wraps a sequence as a conceptually unbounded domain. seq must
// be restartable: All ranges over it anew each time.
func NewLazyDomain(seq iter.Seq[Element]) Domain {
	return lazyDomain{seq: func() iter.Seq[Element] { return seq }}
}

// LimitDomain returns the finite domain made of the first n elements of d.
func LimitDomain(d Domain, n int) Domain {
	return lazyDomain{seq: func() iter.Seq[Element] { return Limit(d.All(), n) }, finite: true}
}

// Limit yields at most n values of seq.
func Limit[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		i := 0
		for v := range seq {
			if !yield(v) {
				return
			}
			i++
			if i >= n {
				return
			}
		}
	}
}

// WithContext yields the values of seq until ctx is done. Callers should
// check ctx.Err afterwards to tell exhaustion from cancellation.
func WithContext[T any](ctx context.Context, seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if ctx.Err() != nil || !yield(v) {
				return
			}
		}
	}
}

// ElementsEqual compares two elements: tuples elementwise, comparable values
// with ==, anything else with reflect.DeepEqual.
func ElementsEqual(a, b Element) bool {
	ta, aok := a.(Tuple)
	tb, bok := b.(Tuple)
	if aok || bok {
		return aok && bok && slices.EqualFunc(ta, tb, ElementsEqual)
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a).Comparable() && reflect.TypeOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// FormatElement renders an element for diagnostics.
func FormatElement(e Element) string {
	switch v := e.(type) {
	case nil:
		return "<nil>"
	case fmt.Stringer:
		return v.String()
	case string:
		return v
	}
	return fmt.Sprint(e)
}
