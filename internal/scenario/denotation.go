package scenario

import (
	"fmt"
	"maps"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/gitrdm/logics/pkg/logic"
	"github.com/gitrdm/logics/pkg/semantics"
)

// Model kinds.
const (
	KindPlain          = ""
	KindArithmetic     = "arithmetic"
	KindRealArithmetic = "real-arithmetic"
)

// ModelSpec is the model section of a scenario document.
type ModelSpec struct {
	// Kind selects fixed denotations: "", "arithmetic" or "real-arithmetic".
	Kind string `yaml:"kind"`

	// Domain is a list of elements or the string "naturals". Arithmetic
	// kinds default to the naturals.
	Domain any `yaml:"domain"`

	// Limit truncates the domain to its first Limit elements.
	Limit int `yaml:"limit"`

	// Denotations maps symbols to elements, extensions, signed extensions
	// ({positive, negative}), function graphs ({graph: [{args, value}]}) or
	// expressions ({expr: "x % 2 == 0"}).
	Denotations map[string]any `yaml:"denotations"`
}

// BuildModel turns a model section into a model. The language decides
// whether an expression denotes a function or a relation.
func BuildModel(spec ModelSpec, l *logic.Language) (*semantics.Model, error) {
	domain, err := buildDomain(spec)
	if err != nil {
		return nil, err
	}

	denotations := make(map[string]any, len(spec.Denotations))
	for _, name := range slices.Sorted(maps.Keys(spec.Denotations)) {
		d, err := buildDenotation(symbol(name), spec.Denotations[name], l)
		if err != nil {
			return nil, fmt.Errorf("denotation of %s: %w", name, err)
		}
		denotations[symbol(name)] = d
	}

	switch spec.Kind {
	case KindPlain:
		return semantics.NewModel(domain, denotations), nil
	case KindArithmetic:
		return semantics.ArithmeticModel(denotations).WithDomain(domain), nil
	case KindRealArithmetic:
		return semantics.RealArithmeticModel(domain, denotations), nil
	}
	return nil, fmt.Errorf("unknown model kind %q", spec.Kind)
}

func buildDomain(spec ModelSpec) (semantics.Domain, error) {
	var d semantics.Domain
	switch v := spec.Domain.(type) {
	case nil:
		if spec.Kind == KindPlain {
			return nil, fmt.Errorf("model has no domain")
		}
		d = semantics.Naturals()
	case string:
		if v != "naturals" {
			return nil, fmt.Errorf("unknown domain %q", v)
		}
		d = semantics.Naturals()
	case []any:
		elems := make([]semantics.Element, len(v))
		for i, e := range v {
			elems[i] = element(e)
		}
		d = semantics.NewFiniteDomain(elems...)
	default:
		return nil, fmt.Errorf("cannot read %v as a domain", v)
	}
	if spec.Limit < 0 {
		return nil, fmt.Errorf("negative domain limit %d", spec.Limit)
	}
	if spec.Limit > 0 {
		d = semantics.LimitDomain(d, spec.Limit)
	}
	return d, nil
}

// element converts YAML lists into tuples, recursively.
func element(v any) semantics.Element {
	if list, ok := v.([]any); ok {
		t := make(semantics.Tuple, len(list))
		for i, x := range list {
			t[i] = element(x)
		}
		return t
	}
	return v
}

func buildDenotation(name string, v any, l *logic.Language) (any, error) {
	switch x := v.(type) {
	case []any:
		arity, _ := l.Arity(name)
		return buildExtension(x, arity)
	case map[string]any:
		return buildStructured(name, x, l)
	}
	return element(v), nil
}

// buildExtension reads a list of members. Members of a unary extension are
// bare elements; otherwise they are lists. With no members and no declared
// arity the extension is unary.
func buildExtension(items []any, arity int) (*semantics.Extension, error) {
	if arity == 0 {
		arity = 1
		if len(items) > 0 {
			if first, ok := items[0].([]any); ok {
				arity = len(first)
			}
		}
	}
	tuples := make([]semantics.Tuple, len(items))
	for i, item := range items {
		if arity == 1 {
			tuples[i] = semantics.Tuple{element(item)}
			continue
		}
		t, ok := element(item).(semantics.Tuple)
		if !ok {
			return nil, fmt.Errorf("member %v of a %d-ary extension is not a list", item, arity)
		}
		tuples[i] = t
	}
	return semantics.NewExtension(arity, tuples...)
}

func buildStructured(name string, m map[string]any, l *logic.Language) (any, error) {
	switch {
	case m["positive"] != nil || m["negative"] != nil:
		if err := onlyKeys(m, "positive", "negative"); err != nil {
			return nil, err
		}
		arity, _ := l.Arity(name)
		pos, err := buildExtension(listOrEmpty(m["positive"]), arity)
		if err != nil {
			return nil, fmt.Errorf("positive part: %w", err)
		}
		neg, err := buildExtension(listOrEmpty(m["negative"]), arity)
		if err != nil {
			return nil, fmt.Errorf("negative part: %w", err)
		}
		return &semantics.SignedExtension{Positive: pos, Negative: neg}, nil

	case m["graph"] != nil:
		if err := onlyKeys(m, "graph"); err != nil {
			return nil, err
		}
		return buildGraph(m["graph"])

	case m["expr"] != nil:
		if err := onlyKeys(m, "expr"); err != nil {
			return nil, err
		}
		src, ok := m["expr"].(string)
		if !ok {
			return nil, fmt.Errorf("expression %v is not a string", m["expr"])
		}
		prg, err := expr.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("compiling %q: %w", src, err)
		}
		if l.IsFunctionSymbol(name) {
			return computedFunction(prg), nil
		}
		return computedRelation(prg), nil
	}
	return nil, fmt.Errorf("unrecognised denotation %v", m)
}

func listOrEmpty(v any) []any {
	list, _ := v.([]any)
	return list
}

func buildGraph(v any) (*semantics.Graph, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("graph %v is not a list", v)
	}
	entries := make([]semantics.GraphEntry, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("graph entry %d is not a map", i)
		}
		if err := onlyKeys(m, "args", "value"); err != nil {
			return nil, fmt.Errorf("graph entry %d: %w", i, err)
		}
		args, ok := element(m["args"]).(semantics.Tuple)
		if !ok {
			args = semantics.Tuple{element(m["args"])}
		}
		entries[i] = semantics.GraphEntry{Args: args, Value: element(m["value"])}
	}
	return semantics.NewGraph(entries...), nil
}

// exprEnv binds the arguments of a computed denotation: the first three as
// x, y and z, all of them as args.
func exprEnv(args []semantics.Element) map[string]any {
	env := map[string]any{"args": args}
	for i, name := range []string{"x", "y", "z"} {
		if i < len(args) {
			env[name] = args[i]
		}
	}
	return env
}

func computedFunction(prg *vm.Program) semantics.ComputedFunction {
	return func(args ...semantics.Element) (semantics.Element, error) {
		out, err := expr.Run(prg, exprEnv(args))
		if err != nil {
			return nil, err
		}
		return element(out), nil
	}
}

// computedRelation accepts a bool result, or a truth value written as a
// string.
func computedRelation(prg *vm.Program) semantics.ComputedRelation {
	return func(args ...semantics.Element) (semantics.TruthValue, error) {
		out, err := expr.Run(prg, exprEnv(args))
		if err != nil {
			return "", err
		}
		switch v := out.(type) {
		case bool:
			if v {
				return semantics.True, nil
			}
			return semantics.False, nil
		case string:
			return semantics.TruthValue(v), nil
		}
		return "", fmt.Errorf("expression returned %v, want a bool or a truth value", out)
	}
}
