// Package main walks through the logics kernel: languages, substitution,
// matching and valuation in classical and many-valued model theories.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gitrdm/logics/internal/parallel"
	"github.com/gitrdm/logics/pkg/logic"
	"github.com/gitrdm/logics/pkg/semantics"
)

var (
	a, b = logic.Sym("a"), logic.Sym("b")
	x    = logic.Sym("x")
)

func main() {
	fmt.Println("=== logics tour ===")
	fmt.Println()

	wellFormedness()
	substitution()
	matching()
	classicalValuation()
	manyValued()
	arithmetic()
	parallelEvaluation()
}

// wellFormedness checks formulas against the classical predicate language.
func wellFormedness() {
	fmt.Println("1. Well-formedness:")
	l := logic.ClassicalPredicateLanguage()

	for _, f := range []logic.Formula{
		logic.ForAll("x", logic.Implies(logic.Pred("P", x), logic.Pred("R", x, a))),
		logic.Pred("R", a),
		logic.Exists("a", logic.Pred("P", a)),
	} {
		if err := l.CheckWellFormed(f); err != nil {
			fmt.Printf("   %v\n", err)
			continue
		}
		fmt.Printf("   %s is well-formed, free variables %v\n", f, logic.FreeVariables(f, l))
	}
	fmt.Println()
}

// substitution replaces free variables and instantiates a schema.
func substitution() {
	fmt.Println("2. Substitution and instantiation:")
	l := logic.ClassicalPredicateLanguage()

	open := logic.And(logic.Pred("P", x), logic.Exists("x", logic.Pred("Q", x)))
	fmt.Printf("   [a/x] %s => %s\n", open, logic.VSubstitute(open, "x", a))

	schema := logic.Implies(logic.Atom("A"), logic.Or(logic.Atom("A"), logic.Atom("B")))
	inst, err := logic.Instantiate(schema, l, logic.Subst{
		"A": logic.Pred("P", a),
		"B": logic.Pred("Q", b),
	})
	if err != nil {
		fmt.Printf("   error: %v\n", err)
		return
	}
	fmt.Printf("   %s instantiates to %s\n", schema, inst)

	_, err = logic.Instantiate(schema, l, logic.Subst{"A": logic.Pred("P", a)})
	fmt.Printf("   missing B: %v\n", err)
	fmt.Println()
}

// matching recovers the substitution that turns a schema into a formula.
func matching() {
	fmt.Println("3. Matching:")
	l := logic.ClassicalPredicateLanguage()

	// ∀χ Π(χ) → Π(α): universal instantiation.
	schema := logic.Implies(
		logic.Quant("∀", "χ", logic.Pred("Π", logic.Sym("χ"))),
		logic.Pred("Π", logic.Sym("α")),
	)
	candidate := logic.Implies(logic.ForAll("x", logic.Pred("P", x)), logic.Pred("P", b))

	if subst, ok := logic.Match(candidate, schema, l, nil); ok {
		fmt.Printf("   %s matches with %s\n", candidate, subst)
	}
	fmt.Printf("   P(a) ∧ P(b) is an instance of A ∨ B: %v\n",
		logic.IsInstanceOf(logic.And(logic.Pred("P", a), logic.Pred("P", b)), logic.Or(logic.Atom("A"), logic.Atom("B")), l))
	fmt.Println()
}

// classicalValuation evaluates first- and second-order sentences.
func classicalValuation() {
	fmt.Println("4. Classical valuation:")
	m := semantics.NewModel(semantics.NewFiniteDomain(1, 2, 3), map[string]any{
		"a": 1,
		"b": 2,
		"P": semantics.Set(1, 2),
		"R": semantics.Pairs([2]semantics.Element{1, 2}, [2]semantics.Element{2, 3}),
	})
	mt := semantics.Classical()

	for _, f := range []logic.Formula{
		logic.Pred("R", a, b),
		logic.ForAll("x", logic.Pred("P", x)),
		logic.Exists("x", logic.Exists("y", logic.Pred("R", x, logic.Sym("y")))),
		logic.Exists("X", logic.ForAll("x", logic.Pred("X", x))),
	} {
		v, err := mt.Valuation(f, m, semantics.Assignment{})
		if err != nil {
			fmt.Printf("   %s: %v\n", f, err)
			continue
		}
		fmt.Printf("   %s = %s\n", f, v)
	}
	fmt.Println()
}

// manyValued evaluates the law of excluded middle with a gap and a glut.
func manyValued() {
	fmt.Println("5. Many-valued theories:")
	m := semantics.NewModel(semantics.NewFiniteDomain(1, 2), map[string]any{
		"a": 1,
		"b": 2,
		"P": &semantics.SignedExtension{
			Positive: semantics.Set(1, 2),
			Negative: semantics.Set(2),
		},
		"Q": &semantics.SignedExtension{
			Positive: semantics.Set(1),
			Negative: semantics.Set(),
		},
	})
	lem := func(t logic.Term, p string) logic.Formula {
		return logic.Or(logic.Pred(p, t), logic.Not(logic.Pred(p, t)))
	}

	for _, mt := range []*semantics.ModelTheory{semantics.K3(), semantics.LP(), semantics.FDE()} {
		glut, err := mt.Valuation(lem(b, "P"), m, semantics.Assignment{})
		if err != nil {
			fmt.Printf("   %s: %v\n", mt.Name(), err)
			continue
		}
		gap, err := mt.Valuation(lem(b, "Q"), m, semantics.Assignment{})
		if err != nil {
			fmt.Printf("   %s: %v\n", mt.Name(), err)
			continue
		}
		fmt.Printf("   %-4s glut %s (designated %v), gap %s (designated %v)\n",
			mt.Name(), glut, mt.IsDesignated(glut), gap, mt.IsDesignated(gap))
	}
	fmt.Println()
}

// arithmetic searches the naturals for witnesses.
func arithmetic() {
	fmt.Println("6. Arithmetic over the naturals:")
	zero := logic.Sym("0")
	two := logic.Apply("s", logic.Apply("s", zero))
	m := semantics.ArithmeticModel(nil)
	mt := semantics.Arithmetic()

	f := logic.Exists("x", logic.Pred("=", logic.Apply("*", x, x), logic.Apply("+", two, two)))
	v, err := mt.Valuation(f, m, semantics.Assignment{})
	fmt.Printf("   %s = %s %v\n", f, v, err)

	// No witness exists, so only a bounded domain lets the search finish.
	g := logic.Exists("x", logic.Pred("<", x, zero))
	v, err = mt.Valuation(g, m.WithDomain(semantics.LimitDomain(m.Domain(), 100)), semantics.Assignment{})
	fmt.Printf("   %s over the first 100 naturals = %s %v\n", g, v, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = mt.ValuationContext(ctx, g, m, semantics.Assignment{})
	fmt.Printf("   %s over all naturals: %v\n", g, err)
	fmt.Println()
}

// parallelEvaluation evaluates a batch of sentences on a worker pool.
func parallelEvaluation() {
	fmt.Println("7. Parallel evaluation:")
	m := semantics.ArithmeticModel(nil).WithDomain(semantics.LimitDomain(semantics.Naturals(), 200))
	mt := semantics.Arithmetic()

	var sentences []logic.Formula
	for n := range 8 {
		var t logic.Term = logic.Sym("0")
		for range n * 10 {
			t = logic.Apply("s", t)
		}
		// ∃x x*x = n*10
		sentences = append(sentences, logic.Exists("x", logic.Pred("=", logic.Apply("*", x, x), t)))
	}

	pool := parallel.NewWorkerPool(4)
	defer pool.Shutdown()

	start := time.Now()
	values, err := parallel.Map(context.Background(), pool, sentences, func(ctx context.Context, f logic.Formula) semantics.TruthValue {
		v, err := mt.ValuationContext(ctx, f, m, semantics.Assignment{})
		if err != nil {
			return "error"
		}
		return v
	})
	if err != nil {
		fmt.Printf("   error: %v\n", err)
		return
	}
	for n, v := range values {
		fmt.Printf("   %3d is a square: %s\n", n*10, v)
	}
	fmt.Printf("   %d sentences on %d workers in %v\n", len(values), pool.Workers(), time.Since(start).Round(time.Millisecond))
	fmt.Println()
}
