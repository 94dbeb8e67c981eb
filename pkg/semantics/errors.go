package semantics

import (
	"errors"
	"fmt"

	"github.com/gitrdm/logics/pkg/logic"
)

var (
	// ErrDenotation reports a term without a resolvable value in a model and
	// assignment. It is recoverable: a caller may retry with another model or
	// assignment.
	ErrDenotation = errors.New("no denotation")

	// ErrInvalidTheory is returned by NewModelTheory for an incomplete or
	// inconsistent configuration.
	ErrInvalidTheory = errors.New("invalid model theory")

	// ErrTruthFunction reports a truth function applied to the wrong number of
	// arguments or to a value outside its table.
	ErrTruthFunction = errors.New("truth function misapplied")
)

// DenotationError names the term that could not be resolved.
type DenotationError struct {
	Term   logic.Term
	Reason string
}

func (e *DenotationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s for term %s", ErrDenotation, e.Term)
	}
	return fmt.Sprintf("%s for term %s: %s", ErrDenotation, e.Term, e.Reason)
}

func (e *DenotationError) Unwrap() error { return ErrDenotation }
