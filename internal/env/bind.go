package env

import (
	"fmt"

	"github.com/cwbudde/lispcore/internal/heap"
	"github.com/cwbudde/lispcore/internal/object"
)

// BindErrorKind enumerates the precise bind failures from spec §4.C.
type BindErrorKind int

const (
	InvalidTargetType BindErrorKind = iota
	InvalidVariadicSyntax
	ValueCountMismatch
	CannotUnpack
	AllocationFailed
)

// BindError carries enough structure for the evaluator to build a
// BindingError Dict without re-deriving the failure from a formatted
// string.
type BindError struct {
	Kind     BindErrorKind
	Expected int
	Variadic bool
	Got      int
	ValueType string
	msg      string
}

func (e *BindError) Error() string { return e.msg }

func newBindError(kind BindErrorKind, msg string) *BindError {
	return &BindError{Kind: kind, msg: msg}
}

const variadicMarker = "&"

// Bind is the central destructuring mechanism behind parameter passing,
// `define`, and `let`-like forms (spec §4.C). It validates the full target
// shape against value before mutating env, so a rejected bind leaves env
// untouched.
func Bind(h *heap.Heap, env *object.Object, target, value *object.Object) error {
	if err := validate(target, value); err != nil {
		return err
	}
	return apply(h, env, target, value)
}

// validate walks target/value in lock-step without mutating anything,
// reporting the first shape mismatch.
func validate(target, value *object.Object) error {
	switch {
	case !object.IsNil(target) && target.Kind == object.KindSymbol:
		return nil
	case object.IsNil(target):
		if !object.IsNil(value) {
			return newBindError(CannotUnpack, fmt.Sprintf("cannot unpack %s into ()", object.TypeOf(value)))
		}
		return nil
	case target.Kind == object.KindCons:
		return validateList(target, value)
	default:
		return newBindError(InvalidTargetType, fmt.Sprintf("invalid bind target type %s", object.TypeOf(target)))
	}
}

func validateList(target, value *object.Object) error {
	if !object.IsProperList(target) {
		return newBindError(InvalidTargetType, "bind target list is improper")
	}
	if !object.IsProperList(value) {
		return newBindError(CannotUnpack, fmt.Sprintf("cannot unpack %s as a list", object.TypeOf(value)))
	}
	return validateTargets(object.ListSlice(target), object.ListSlice(value))
}

// validateTargets validates a flat target list against a flat value slice,
// handling the '&' variadic marker. When a tail target after '&' is itself
// a Cons, it recurses on the exact rest-value slice apply will later build
// the rest list from — not just the marker's syntax — so a shape mismatch
// nested inside a variadic tail (e.g. `(a & (b c))` bound against too few
// or too many rest values) is caught here rather than panicking on an
// unchecked index during apply.
func validateTargets(targets, values []*object.Object) error {
	// Locate the variadic marker, if any, and validate its syntax:
	// exactly one target (symbol or cons) must follow it, and it must be
	// the only occurrence.
	variadicAt := -1
	for i, t := range targets {
		if isAmpersand(t) {
			if variadicAt != -1 {
				return newBindError(InvalidVariadicSyntax, "multiple '&' markers in bind target")
			}
			variadicAt = i
		}
	}

	if variadicAt != -1 {
		if variadicAt != len(targets)-2 {
			return newBindError(InvalidVariadicSyntax, "'&' must be followed by exactly one target")
		}
		tailTarget := targets[variadicAt+1]
		if !object.IsNil(tailTarget) && tailTarget.Kind != object.KindSymbol && tailTarget.Kind != object.KindCons {
			return newBindError(InvalidVariadicSyntax, "invalid target after '&'")
		}
	}

	if variadicAt == -1 {
		if len(values) != len(targets) {
			return &BindError{Kind: ValueCountMismatch, Expected: len(targets), Variadic: false, Got: len(values),
				msg: fmt.Sprintf("expected %d values, got %d", len(targets), len(values))}
		}
		for i, t := range targets {
			if err := validate(t, values[i]); err != nil {
				return err
			}
		}
		return nil
	}

	required := variadicAt // positional targets before '&'
	if len(values) < required {
		return &BindError{Kind: ValueCountMismatch, Expected: required, Variadic: true, Got: len(values),
			msg: fmt.Sprintf("expected at least %d values, got %d", required, len(values))}
	}
	for i := 0; i < required; i++ {
		if err := validate(targets[i], values[i]); err != nil {
			return err
		}
	}

	tailTarget := targets[variadicAt+1]
	restValues := values[required:]
	switch {
	case object.IsNil(tailTarget):
		if len(restValues) != 0 {
			return newBindError(CannotUnpack, fmt.Sprintf("cannot unpack %d values into ()", len(restValues)))
		}
		return nil
	case tailTarget.Kind == object.KindSymbol:
		return nil
	default: // tailTarget.Kind == object.KindCons, the only remaining case syntax validation above allows
		if !object.IsProperList(tailTarget) {
			return newBindError(InvalidTargetType, "bind target list is improper")
		}
		return validateTargets(object.ListSlice(tailTarget), restValues)
	}
}

func isAmpersand(t *object.Object) bool {
	return !object.IsNil(t) && t.Kind == object.KindSymbol && t.Str == variadicMarker
}

// apply performs the mutations validate already proved safe. It still
// returns an error for allocation failures encountered while constructing
// rest-list tails or defining scope entries.
func apply(h *heap.Heap, env *object.Object, target, value *object.Object) error {
	switch {
	case !object.IsNil(target) && target.Kind == object.KindSymbol:
		DefineSymbol(env, target, value)
		return nil
	case object.IsNil(target):
		return nil
	case target.Kind == object.KindCons:
		return applyList(h, env, target, value)
	default:
		return newBindError(InvalidTargetType, fmt.Sprintf("invalid bind target type %s", object.TypeOf(target)))
	}
}

func applyList(h *heap.Heap, env *object.Object, target, value *object.Object) error {
	targets := object.ListSlice(target)
	values := object.ListSlice(value)

	variadicAt := -1
	for i, t := range targets {
		if isAmpersand(t) {
			variadicAt = i
			break
		}
	}

	if variadicAt == -1 {
		for i, t := range targets {
			if err := apply(h, env, t, values[i]); err != nil {
				return err
			}
		}
		return nil
	}

	for i := 0; i < variadicAt; i++ {
		if err := apply(h, env, targets[i], values[i]); err != nil {
			return err
		}
	}
	restValues := values[variadicAt:]
	restList, err := h.NewList(restValues...)
	if err != nil {
		return &BindError{Kind: AllocationFailed, msg: err.Error()}
	}
	return apply(h, env, targets[variadicAt+1], restList)
}
