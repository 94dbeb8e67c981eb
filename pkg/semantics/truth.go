package semantics

import (
	"fmt"
	"slices"
)

// TruthValue is a token such as "1", "i", "0", "b", "n" or "e".
type TruthValue string

// The truth values the fast paths understand.
const (
	True          TruthValue = "1"
	False         TruthValue = "0"
	Indeterminate TruthValue = "i"
)

// TruthFunction computes the value of a connective from the values of its
// arguments.
type TruthFunction func(args ...TruthValue) (TruthValue, error)

// QuantifierFunction folds the values a quantified formula's body takes over
// the quantifier's range into the value of the whole formula.
type QuantifierFunction func(values []TruthValue) (TruthValue, error)

// AtomicClause evaluates a predicate whose denotation is an extension at the
// given argument denotations.
type AtomicClause func(r Relation, args Tuple) (TruthValue, error)

// UnaryTable builds a truth function from a table indexed like values:
// table[i] is the value at values[i].
func UnaryTable(values []TruthValue, table []TruthValue) TruthFunction {
	return func(args ...TruthValue) (TruthValue, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("%w: want 1 argument, got %d", ErrTruthFunction, len(args))
		}
		i := slices.Index(values, args[0])
		if i < 0 || i >= len(table) {
			return "", fmt.Errorf("%w: value %q not in table", ErrTruthFunction, args[0])
		}
		return table[i], nil
	}
}

// BinaryTable builds a truth function from a matrix indexed like values:
// table[i][j] is the value at (values[i], values[j]).
func BinaryTable(values []TruthValue, table [][]TruthValue) TruthFunction {
	return func(args ...TruthValue) (TruthValue, error) {
		if len(args) != 2 {
			return "", fmt.Errorf("%w: want 2 arguments, got %d", ErrTruthFunction, len(args))
		}
		i, j := slices.Index(values, args[0]), slices.Index(values, args[1])
		if i < 0 || i >= len(table) {
			return "", fmt.Errorf("%w: value %q not in table", ErrTruthFunction, args[0])
		}
		if j < 0 || j >= len(table[i]) {
			return "", fmt.Errorf("%w: value %q not in table", ErrTruthFunction, args[1])
		}
		return table[i][j], nil
	}
}

// Fold builds a quantifier function from a precedence list: the result is
// the first listed value occurring among the body values, or empty when the
// range is empty. Fold("0", "i", "1") is the strong Kleene universal
// quantifier: 0 if any instance is 0, else i if any is i, else 1.
func Fold(empty TruthValue, precedence ...TruthValue) QuantifierFunction {
	return func(values []TruthValue) (TruthValue, error) {
		for _, p := range precedence {
			if slices.Contains(values, p) {
				return p, nil
			}
		}
		if len(values) == 0 {
			return empty, nil
		}
		return "", fmt.Errorf("%w: quantifier got values %v outside %v", ErrTruthFunction, values, precedence)
	}
}

// ClassicalAtomic is true exactly when the arguments are in the extension.
// For a signed extension only the positive part counts.
func ClassicalAtomic(r Relation, args Tuple) (TruthValue, error) {
	switch x := r.(type) {
	case *Extension:
		if x.Contains(args) {
			return True, nil
		}
		return False, nil
	case *SignedExtension:
		if x.Positive == nil {
			return False, nil
		}
		return ClassicalAtomic(x.Positive, args)
	}
	return "", fmt.Errorf("%w: atomic clause cannot evaluate %T", ErrTruthFunction, r)
}

// SignedAtomic builds an atomic clause for signed extensions. A plain
// extension is read classically. For a signed one the value is truthy if
// args is only in the positive part, falsy if only in the negative part,
// glut if in both and gap if in neither. An empty glut or gap value makes
// that case an error.
func SignedAtomic(truthy, falsy, glut, gap TruthValue) AtomicClause {
	return func(r Relation, args Tuple) (TruthValue, error) {
		switch x := r.(type) {
		case *Extension:
			if x.Contains(args) {
				return truthy, nil
			}
			return falsy, nil
		case *SignedExtension:
			pos := x.Positive != nil && x.Positive.Contains(args)
			neg := x.Negative != nil && x.Negative.Contains(args)
			var v TruthValue
			switch {
			case pos && neg:
				v = glut
			case pos:
				v = truthy
			case neg:
				v = falsy
			default:
				v = gap
			}
			if v == "" {
				return "", fmt.Errorf("%w: %s is not admitted for %s", ErrTruthFunction, args, x)
			}
			return v, nil
		}
		return "", fmt.Errorf("%w: atomic clause cannot evaluate %T", ErrTruthFunction, r)
	}
}
