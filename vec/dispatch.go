package vec

import "strconv"

// Table routes a value to the handler registered for its exact dynamic type.
//
// Matching is identity-based: no subtype or conversion matching happens, a
// case fires only when the value's witness equals the registered one. Exactly
// one handler runs per Dispatch call; values with no registered case fall
// through to the mandatory default arm.
//
// Cases are expected to be registered up front (composition root, package
// init, test setup) and the table treated as read-only afterwards.
type Table[R any] struct {
	cases    map[Witness]func(any) R
	fallback func(any) R
}

// DuplicateCaseError is raised when a case is registered twice for the same
// type. Double registration is a programming error at the registration site,
// so On panics with this error rather than silently overwriting.
type DuplicateCaseError struct{ TypeName string }

// Error implements the error interface.
func (e DuplicateCaseError) Error() string {
	// Example: vec: duplicate dispatch case for "float64"
	return "vec: duplicate dispatch case for " + strconv.Quote(e.TypeName)
}

// NewTable constructs a dispatch table around a default arm.
//
// The default arm is mandatory so dispatch stays total; a nil fallback
// panics immediately rather than at first unmatched Dispatch.
func NewTable[R any](fallback func(any) R) *Table[R] {
	if fallback == nil {
		panic("vec: nil dispatch fallback")
	}
	return &Table[R]{
		cases:    make(map[Witness]func(any) R),
		fallback: fallback,
	}
}

// On registers fn as the handler for values of exactly type T and returns the
// table for chaining.
//
// It panics with DuplicateCaseError if T already has a handler.
func On[T any, R any](t *Table[R], fn func(T) R) *Table[R] {
	w := Identify[T]()
	if _, exists := t.cases[w]; exists {
		panic(DuplicateCaseError{TypeName: w.String()})
	}
	t.cases[w] = func(v any) R { return fn(v.(T)) }
	return t
}

// Dispatch runs the handler registered for v's dynamic type, or the default
// arm when none matches. Exactly one handler runs per call.
func (t *Table[R]) Dispatch(v any) R {
	if fn, ok := t.cases[WitnessOf(v)]; ok {
		return fn(v)
	}
	return t.fallback(v)
}

// Handles reports whether a case (other than the default arm) is registered
// for v's dynamic type.
func (t *Table[R]) Handles(v any) bool {
	_, ok := t.cases[WitnessOf(v)]
	return ok
}
