// Package symten is the root of the symmetry-adapted tensor network engine.
// It holds the cross-cutting error taxonomy (spec §7); the engine itself
// lives in the qnum, bond, block, symtensor, node and network subpackages.
package symten

import "fmt"

// Kind classifies an Error by the meaning the core specification assigns
// it, independent of which operation raised it.
type Kind uint8

const (
	// BondMismatch — incompatible bonds in contraction/partial trace.
	BondMismatch Kind = iota
	// ShapeMismatch — wrong-size block passed to putBlock without force.
	ShapeMismatch
	// LabelError — duplicate labels, wrong label count, unknown label.
	LabelError
	// SymmetryViolation — non-zero element at a charge-forbidden position.
	SymmetryViolation
	// UnboundTensor — launch() before all leaves bound.
	UnboundTensor
	// ScalarKindMismatch — real/complex mixed where not permitted.
	ScalarKindMismatch
	// InvalidNetwork — unmatched labels, malformed spec file.
	InvalidNetwork
)

func (k Kind) String() string {
	switch k {
	case BondMismatch:
		return "BondMismatch"
	case ShapeMismatch:
		return "ShapeMismatch"
	case LabelError:
		return "LabelError"
	case SymmetryViolation:
		return "SymmetryViolation"
	case UnboundTensor:
		return "UnboundTensor"
	case ScalarKindMismatch:
		return "ScalarKindMismatch"
	case InvalidNetwork:
		return "InvalidNetwork"
	default:
		return "UnknownError"
	}
}

// Error is the single error type used across the module's public API. Every
// error kind from spec §7 is represented by Kind rather than a distinct Go
// type, so callers branch with errors.Is against the sentinels below
// (modeled on lvlath's package-level Err* sentinel convention) instead of a
// type switch.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // optional wrapped cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("symten: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("symten: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so
// errors.Is(err, symten.ErrBondMismatch) works against both the sentinel
// values below and any *Error of the same kind returned with extra context.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error of the given kind with a message.
func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

// Wrap constructs an *Error of the given kind wrapping a cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// Sentinel values for errors.Is comparisons against a bare kind, e.g.
// errors.Is(err, symten.ErrBondMismatch).
var (
	ErrBondMismatch      = &Error{Kind: BondMismatch, Msg: "bond mismatch"}
	ErrShapeMismatch     = &Error{Kind: ShapeMismatch, Msg: "shape mismatch"}
	ErrLabelError        = &Error{Kind: LabelError, Msg: "label error"}
	ErrSymmetryViolation = &Error{Kind: SymmetryViolation, Msg: "symmetry violation"}
	ErrUnboundTensor     = &Error{Kind: UnboundTensor, Msg: "unbound tensor"}
	ErrScalarKindMismatch = &Error{Kind: ScalarKindMismatch, Msg: "scalar kind mismatch"}
	ErrInvalidNetwork    = &Error{Kind: InvalidNetwork, Msg: "invalid network"}
)
