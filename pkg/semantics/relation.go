package semantics

import (
	"fmt"
	"iter"
	"strings"
)

// Relation is the denotation of a predicate. It is either an extension
// (*Extension, *SignedExtension), handed to the theory's atomic clause, or a
// ComputedRelation, applied directly. A type switch over these three is
// exhaustive.
type Relation interface {
	relation()
}

// Extension is a finite set of n-tuples. Unary extensions hold bare
// elements: their members are the elements themselves, not 1-tuples.
type Extension struct {
	arity  int
	tuples []Tuple
	index  map[string]struct{}
}

// NewExtension builds an n-ary extension. Duplicate tuples are dropped and
// tuples of the wrong length rejected.
func NewExtension(arity int, tuples ...Tuple) (*Extension, error) {
	e := &Extension{arity: arity, index: make(map[string]struct{}, len(tuples))}
	for _, t := range tuples {
		if len(t) != arity {
			return nil, fmt.Errorf("tuple %s does not have arity %d", t, arity)
		}
		e.add(t)
	}
	return e, nil
}

// MustExtension is like NewExtension but panics on error.
func MustExtension(arity int, tuples ...Tuple) *Extension {
	e, err := NewExtension(arity, tuples...)
	if err != nil {
		panic(err)
	}
	return e
}

// Set builds a unary extension from bare elements, e.g. P = {1}.
func Set(elems ...Element) *Extension {
	e := &Extension{arity: 1, index: make(map[string]struct{}, len(elems))}
	for _, x := range elems {
		e.add(Tuple{x})
	}
	return e
}

// Pairs builds a binary extension, e.g. R = {(1,1), (1,2)}.
func Pairs(pairs ...[2]Element) *Extension {
	e := &Extension{arity: 2, index: make(map[string]struct{}, len(pairs))}
	for _, p := range pairs {
		e.add(Tuple{p[0], p[1]})
	}
	return e
}

func (e *Extension) add(t Tuple) {
	k := tupleKey(t)
	if _, ok := e.index[k]; ok {
		return
	}
	e.index[k] = struct{}{}
	e.tuples = append(e.tuples, t)
}

func (*Extension) relation() {}

// Arity returns the length of the extension's tuples.
func (e *Extension) Arity() int { return e.arity }

// Len returns the number of tuples.
func (e *Extension) Len() int { return len(e.tuples) }

// Contains reports whether args is in the extension.
func (e *Extension) Contains(args Tuple) bool {
	_, ok := e.index[tupleKey(args)]
	return ok
}

// Members yields the members of the extension: bare elements for unary
// extensions and Tuples otherwise.
func (e *Extension) Members() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for _, t := range e.tuples {
			var m Element = t
			if e.arity == 1 {
				m = t[0]
			}
			if !yield(m) {
				return
			}
		}
	}
}

func (e *Extension) String() string {
	parts := make([]string, 0, len(e.tuples))
	for m := range e.Members() {
		parts = append(parts, FormatElement(m))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// SignedExtension pairs an extension with an anti-extension, for
// many-valued theories in which a predicate may be neither true nor false of
// some tuples (a gap), or both (a glut).
type SignedExtension struct {
	Positive *Extension
	Negative *Extension
}

func (*SignedExtension) relation() {}

func (s *SignedExtension) String() string {
	return fmt.Sprintf("+%s −%s", s.Positive, s.Negative)
}

// ComputedRelation is a predicate given by a function. It returns the truth
// value directly and bypasses the atomic clause.
type ComputedRelation func(args ...Element) (TruthValue, error)

func (ComputedRelation) relation() {}

// Function is the denotation of a function symbol: a *Graph of
// (arguments, value) pairs, possibly partial, or a ComputedFunction.
type Function interface {
	function()
}

// GraphEntry is one (arguments, value) pair of a Graph.
type GraphEntry struct {
	Args  Tuple
	Value Element
}

// Graph is a finite, possibly partial function given by its pairs. Lookup
// is linear.
type Graph struct {
	Entries []GraphEntry
}

// NewGraph builds a graph from its entries.
func NewGraph(entries ...GraphEntry) *Graph {
	return &Graph{Entries: append([]GraphEntry(nil), entries...)}
}

func (*Graph) function() {}

// Lookup returns the value at args, if defined.
func (g *Graph) Lookup(args Tuple) (Element, bool) {
	for _, entry := range g.Entries {
		if ElementsEqual(entry.Args, args) {
			return entry.Value, true
		}
	}
	return nil, false
}

// ComputedFunction is a function symbol given by a Go function.
type ComputedFunction func(args ...Element) (Element, error)

func (ComputedFunction) function() {}

// Apply applies a function denotation to arguments. An undefined point of a
// partial Graph is reported with ok=false.
func Apply(fn Function, args Tuple) (value Element, ok bool, err error) {
	switch f := fn.(type) {
	case *Graph:
		v, ok := f.Lookup(args)
		return v, ok, nil
	case ComputedFunction:
		v, err := f(args...)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}
	return nil, false, fmt.Errorf("unsupported function denotation %T", fn)
}

func tupleKey(t Tuple) string {
	var b strings.Builder
	for i, e := range t {
		if i > 0 {
			b.WriteByte(0)
		}
		fmt.Fprintf(&b, "%T=%v", e, e)
	}
	return b.String()
}
