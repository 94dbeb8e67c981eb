package logic

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to test for them; the concrete error values
// returned by this package carry more context and can be inspected with
// errors.As.
var (
	// ErrNotWellFormed reports a structural validity failure.
	ErrNotWellFormed = errors.New("formula is not well formed")

	// ErrUnboundMetavariable reports an instantiation that needed a binding
	// the substitution did not provide.
	ErrUnboundMetavariable = errors.New("unbound metavariable")

	// ErrBindingKind reports a metavariable bound to the wrong kind of value,
	// e.g. a sentential metavariable bound to a term.
	ErrBindingKind = errors.New("metavariable bound to a value of the wrong kind")
)

// NotWellFormedError names the offending (sub)formula and the defect found in it.
type NotWellFormedError struct {
	Formula Formula
	Reason  string
}

func (e *NotWellFormedError) Error() string {
	if e.Formula == nil {
		return fmt.Sprintf("%s: %s", ErrNotWellFormed, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrNotWellFormed, e.Formula, e.Reason)
}

func (e *NotWellFormedError) Unwrap() error { return ErrNotWellFormed }

// UnboundMetavariableError names the metavariable missing from a substitution.
type UnboundMetavariableError struct {
	Symbol string
}

func (e *UnboundMetavariableError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnboundMetavariable, e.Symbol)
}

func (e *UnboundMetavariableError) Unwrap() error { return ErrUnboundMetavariable }
