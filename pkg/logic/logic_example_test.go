package logic_test

import (
	"errors"
	"fmt"

	"github.com/gitrdm/logics/pkg/logic"
)

// ExampleLanguage_CheckWellFormed shows the defect reported for an arity error.
func ExampleLanguage_CheckWellFormed() {
	l := logic.ClassicalPredicateLanguage()

	fmt.Println(l.IsWellFormed(logic.Pred("R", logic.Sym("a"), logic.Sym("b"))))
	err := l.CheckWellFormed(logic.Pred("R", logic.Sym("a")))
	fmt.Println(errors.Is(err, logic.ErrNotWellFormed))
	fmt.Println(err)
	// Output:
	// true
	// true
	// formula is not well formed: R(a): incorrect number of arguments for 2-ary predicate R
}

// ExampleVSubstitute shows that a bounded quantifier's restriction lies
// outside the quantifier's own scope.
func ExampleVSubstitute() {
	x := logic.Sym("x")
	f := logic.BoundedQuant("∀", "x", logic.Apply("f", x), logic.Pred("P", x))

	fmt.Println(logic.VSubstitute(f, "x", logic.Sym("b")))
	// Output: ∀x ∈ f(b) (P(x))
}

// ExampleMatch recovers the substitution witnessing a rule application.
func ExampleMatch() {
	l := logic.ClassicalPredicateLanguage()
	a, b := logic.Sym("a"), logic.Sym("b")
	alpha := logic.Sym("α")

	schema := logic.Implies(logic.Pred("Π", alpha), logic.Atom("A"))
	candidate := logic.Implies(logic.Pred("P", a), logic.Pred("R", a, b))

	subst, ok := logic.Match(candidate, schema, l, nil)
	fmt.Println(ok)
	fmt.Println(subst)
	// Output:
	// true
	// {A: R(a, b), Π: P, α: a}
}

// ExampleInstantiate threads a fresh constant through the packed "[α/χ]A"
// notation used by quantifier rules.
func ExampleInstantiate() {
	l := logic.ClassicalInfinitePredicateLanguage()
	x := logic.Sym("x")
	body := logic.And(logic.Pred("P", x), logic.Exists("x", logic.Pred("Q", x)))

	fresh, _ := l.FreshConstant("a", "b", "c", "d", "e")
	out, err := logic.Instantiate(logic.Atom("[α/χ]A"), l, logic.Subst{
		"A": body,
		"χ": x,
		"α": logic.Sym(fresh),
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out)
	// Output: (P(a1) ∧ ∃x (Q(x)))
}

// ExampleFreeVariables lists free individual and predicate variables.
func ExampleFreeVariables() {
	l := logic.ClassicalFunctionLanguage()
	x, y := logic.Sym("x"), logic.Sym("y")
	f := logic.BoundedQuant("∃", "x", y, logic.ForAll("X", logic.Pred("R", x, logic.Apply("f", logic.Sym("z")))))

	fmt.Println(logic.FreeVariables(f, l))
	fmt.Println(logic.IsClosed(logic.ForAll("X", logic.Exists("x", logic.Pred("X", x))), l))
	// Output:
	// [y z]
	// true
}
