package semantics

import (
	"maps"
	"slices"
	"strings"
)

// Assignment maps variables to elements. It is an immutable persistent map:
// Bind returns a new assignment sharing structure with the old one, so a
// quantifier fold binds each range element without ever restoring state,
// and sibling evaluations cannot observe each other's bindings.
//
// The zero value is the empty assignment.
type Assignment struct {
	head *assignmentNode
}

type assignmentNode struct {
	variable string
	value    Element
	next     *assignmentNode
}

// NewAssignment builds an assignment from a map.
func NewAssignment(values map[string]Element) Assignment {
	var a Assignment
	for _, v := range slices.Sorted(maps.Keys(values)) {
		a = a.Bind(v, values[v])
	}
	return a
}

// Bind returns an assignment that maps variable to value and agrees with a
// elsewhere.
func (a Assignment) Bind(variable string, value Element) Assignment {
	return Assignment{head: &assignmentNode{variable: variable, value: value, next: a.head}}
}

// Lookup returns the element bound to variable.
func (a Assignment) Lookup(variable string) (Element, bool) {
	for n := a.head; n != nil; n = n.next {
		if n.variable == variable {
			return n.value, true
		}
	}
	return nil, false
}

// Map returns the visible bindings as a map.
func (a Assignment) Map() map[string]Element {
	out := make(map[string]Element)
	for n := a.head; n != nil; n = n.next {
		if _, shadowed := out[n.variable]; !shadowed {
			out[n.variable] = n.value
		}
	}
	return out
}

func (a Assignment) String() string {
	m := a.Map()
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range slices.Sorted(maps.Keys(m)) {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(FormatElement(m[k]))
	}
	b.WriteByte('}')
	return b.String()
}
