package semantics

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	errDivisionByZero = errors.New("division by zero")
	errOverflow       = errors.New("integer overflow")
)

// ArithmeticModel returns the standard model of arithmetic over Naturals.
// The symbols 0 s + * ** = > < have fixed denotations; denotations may add
// further symbols but cannot override those. quote, the code-forming symbol
// of the truth predicate language, denotes the identity on codes.
func ArithmeticModel(denotations map[string]any) *Model {
	return NewModel(Naturals(), denotations).WithFixed(map[string]any{
		"0":     0,
		"s":     ComputedFunction(successor),
		"quote": ComputedFunction(quote),
		"+":     binaryArithmetic("+"),
		"*":     binaryArithmetic("*"),
		"**":    binaryArithmetic("**"),
		"=":     comparison("="),
		">":     comparison(">"),
		"<":     comparison("<"),
	})
}

// RealArithmeticModel returns a model of real arithmetic over domain. Every
// numeral denotes its value, an int when it parses as one and a float64
// otherwise, and + - * / // ** = > < have fixed denotations.
func RealArithmeticModel(domain Domain, denotations map[string]any) *Model {
	fixed := map[string]any{
		"=": comparison("="),
		">": comparison(">"),
		"<": comparison("<"),
	}
	for _, op := range []string{"+", "-", "*", "/", "//", "**"} {
		fixed[op] = binaryArithmetic(op)
	}
	return NewModel(domain, denotations).WithFixed(fixed).WithResolver(numeral)
}

func numeral(symbol string) (Element, bool) {
	if n, err := strconv.Atoi(symbol); err == nil {
		return n, true
	}
	if x, err := strconv.ParseFloat(symbol, 64); err == nil && !math.IsInf(x, 0) && !math.IsNaN(x) {
		return x, true
	}
	return nil, false
}

func successor(args ...Element) (Element, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("s takes 1 argument, got %d", len(args))
	}
	n, ok := args[0].(int)
	if !ok {
		return nil, fmt.Errorf("s: %s is not a natural number", FormatElement(args[0]))
	}
	if n == math.MaxInt {
		return nil, fmt.Errorf("%w: s(%d)", errOverflow, n)
	}
	return n + 1, nil
}

func quote(args ...Element) (Element, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("quote takes 1 argument, got %d", len(args))
	}
	n, ok := args[0].(int)
	if !ok || n < 0 {
		return nil, fmt.Errorf("quote: %s is not a code", FormatElement(args[0]))
	}
	return n, nil
}

func binaryArithmetic(op string) ComputedFunction {
	return func(args ...Element) (Element, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%s takes 2 arguments, got %d", op, len(args))
		}
		x, xInt, err := number(args[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		y, yInt, err := number(args[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if xInt && yInt {
			return intArithmetic(op, args[0].(int), args[1].(int))
		}
		return floatArithmetic(op, x, y)
	}
}

// intArithmetic computes on machine ints. A result that does not fit is an
// error rather than a wrapped value.
func intArithmetic(op string, x, y int) (Element, error) {
	switch op {
	case "+":
		z := x + y
		if (z > x) != (y > 0) {
			return nil, fmt.Errorf("%w: %d + %d", errOverflow, x, y)
		}
		return z, nil
	case "-":
		z := x - y
		if (z < x) != (y > 0) {
			return nil, fmt.Errorf("%w: %d - %d", errOverflow, x, y)
		}
		return z, nil
	case "*":
		z, ok := mulInt(x, y)
		if !ok {
			return nil, fmt.Errorf("%w: %d * %d", errOverflow, x, y)
		}
		return z, nil
	case "/":
		if y == 0 {
			return nil, errDivisionByZero
		}
		return float64(x) / float64(y), nil
	case "//":
		if y == 0 {
			return nil, errDivisionByZero
		}
		q := x / y
		if (x%y != 0) && ((x < 0) != (y < 0)) {
			q--
		}
		return q, nil
	case "**":
		if y < 0 {
			return math.Pow(float64(x), float64(y)), nil
		}
		out := 1
		for range y {
			var ok bool
			if out, ok = mulInt(out, x); !ok {
				return nil, fmt.Errorf("%w: %d ** %d", errOverflow, x, y)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown operation %s", op)
}

func mulInt(x, y int) (int, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	z := x * y
	if (x == -1 && y == math.MinInt) || (y == -1 && x == math.MinInt) || z/y != x {
		return 0, false
	}
	return z, true
}

func floatArithmetic(op string, x, y float64) (Element, error) {
	switch op {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/":
		if y == 0 {
			return nil, errDivisionByZero
		}
		return x / y, nil
	case "//":
		if y == 0 {
			return nil, errDivisionByZero
		}
		return math.Floor(x / y), nil
	case "**":
		return math.Pow(x, y), nil
	}
	return nil, fmt.Errorf("unknown operation %s", op)
}

// number converts an int or float64 element, reporting whether it was an int.
func number(e Element) (float64, bool, error) {
	switch v := e.(type) {
	case int:
		return float64(v), true, nil
	case float64:
		return v, false, nil
	}
	return 0, false, fmt.Errorf("%s is not a number", FormatElement(e))
}

// comparison builds the relation =, > or <. Ints compare exactly; mixed
// operands compare as floats. = falls back to ElementsEqual for non-numbers.
func comparison(op string) ComputedRelation {
	return func(args ...Element) (TruthValue, error) {
		if len(args) != 2 {
			return "", fmt.Errorf("%s takes 2 arguments, got %d", op, len(args))
		}
		x, xInt, xerr := number(args[0])
		y, yInt, yerr := number(args[1])
		if xerr != nil || yerr != nil {
			if op == "=" {
				return truth(ElementsEqual(args[0], args[1])), nil
			}
			return "", fmt.Errorf("%s: %w", op, errors.Join(xerr, yerr))
		}
		var c int
		if xInt && yInt {
			c = cmp.Compare(args[0].(int), args[1].(int))
		} else {
			c = cmp.Compare(x, y)
		}
		switch op {
		case "=":
			return truth(c == 0), nil
		case ">":
			return truth(c > 0), nil
		}
		return truth(c < 0), nil
	}
}

func truth(b bool) TruthValue {
	if b {
		return True
	}
	return False
}
