package scenario

import (
	"fmt"
	"slices"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/gitrdm/logics/pkg/logic"
)

// ASCII spellings accepted for logical symbols.
var aliases = map[string]string{
	"not":     "~",
	"and":     "∧",
	"or":      "∨",
	"implies": "→",
	"iff":     "↔",
	"forall":  "∀",
	"exists":  "∃",
	"->":      "→",
	"<->":     "↔",
	"&":       "∧",
	"|":       "∨",
}

// symbol normalises a symbol read from a document: NFC, then aliases.
func symbol(s string) string {
	s = norm.NFC.String(s)
	if a, ok := aliases[s]; ok {
		return a
	}
	return s
}

// scalarString renders YAML scalars used as symbols, so that numerals such
// as 0 or 2.5 may be written unquoted.
func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case int:
		return strconv.Itoa(x), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	}
	return "", false
}

// DecodeTerm converts a decoded YAML value into a term: a scalar is a
// symbol, and {fn: f, args: [...]} is a compound term.
func DecodeTerm(v any) (logic.Term, error) {
	if s, ok := scalarString(v); ok {
		return logic.Sym(symbol(s)), nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("cannot read %v as a term", v)
	}
	if err := onlyKeys(m, "fn", "args"); err != nil {
		return nil, err
	}
	fn, ok := scalarString(m["fn"])
	if !ok {
		return nil, fmt.Errorf("term %v has no function symbol", v)
	}
	args, err := decodeList(m["args"], DecodeTerm)
	if err != nil {
		return nil, fmt.Errorf("arguments of %s: %w", fn, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("function term %s has no arguments", fn)
	}
	return logic.Apply(symbol(fn), args...), nil
}

// DecodeFormula converts a decoded YAML value into a formula. A scalar is an
// argument-free atomic (a sentential constant or metavariable). Maps take
// one of three shapes:
//
//	{atom: R, args: [a, {fn: f, args: [x]}]}
//	{op: ∧, args: [<formula>, <formula>]}
//	{quantifier: ∀, var: x, in: <term>, body: <formula>}
//
// The in key is optional.
func DecodeFormula(v any) (logic.Formula, error) {
	if s, ok := scalarString(v); ok {
		return logic.Atom(symbol(s)), nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("cannot read %v as a formula", v)
	}

	switch {
	case m["atom"] != nil:
		if err := onlyKeys(m, "atom", "args"); err != nil {
			return nil, err
		}
		p, ok := scalarString(m["atom"])
		if !ok {
			return nil, fmt.Errorf("atom %v is not a symbol", m["atom"])
		}
		args, err := decodeList(m["args"], DecodeTerm)
		if err != nil {
			return nil, fmt.Errorf("arguments of %s: %w", p, err)
		}
		return logic.Pred(symbol(p), args...), nil

	case m["op"] != nil:
		if err := onlyKeys(m, "op", "args"); err != nil {
			return nil, err
		}
		op, ok := scalarString(m["op"])
		if !ok {
			return nil, fmt.Errorf("connective %v is not a symbol", m["op"])
		}
		args, err := decodeList(m["args"], DecodeFormula)
		if err != nil {
			return nil, fmt.Errorf("arguments of %s: %w", op, err)
		}
		return logic.Mol(symbol(op), args...), nil

	case m["quantifier"] != nil:
		if err := onlyKeys(m, "quantifier", "var", "in", "body"); err != nil {
			return nil, err
		}
		q, ok := scalarString(m["quantifier"])
		if !ok {
			return nil, fmt.Errorf("quantifier %v is not a symbol", m["quantifier"])
		}
		variable, ok := scalarString(m["var"])
		if !ok {
			return nil, fmt.Errorf("quantifier %s has no variable", q)
		}
		body, err := DecodeFormula(m["body"])
		if err != nil {
			return nil, fmt.Errorf("body of %s%s: %w", q, variable, err)
		}
		if m["in"] == nil {
			return logic.Quant(symbol(q), symbol(variable), body), nil
		}
		bound, err := DecodeTerm(m["in"])
		if err != nil {
			return nil, fmt.Errorf("bound of %s%s: %w", q, variable, err)
		}
		return logic.BoundedQuant(symbol(q), symbol(variable), bound, body), nil
	}
	return nil, fmt.Errorf("formula %v has none of the keys atom, op or quantifier", v)
}

func decodeList[T any](v any, decode func(any) (T, error)) ([]T, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %v", v)
	}
	out := make([]T, len(items))
	for i, item := range items {
		x, err := decode(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[i] = x
	}
	return out, nil
}

func onlyKeys(m map[string]any, allowed ...string) error {
	for k := range m {
		if !slices.Contains(allowed, k) {
			return fmt.Errorf("unexpected key %q (allowed: %v)", k, allowed)
		}
	}
	return nil
}
