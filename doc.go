// Package tracevec provides a construction-tracing container library for Go.
//
// The repository models a small generic sequence type whose elements can be
// wrapped in an instrumented cell recording every construction event
// (default, value-initialized, or copied) into an ordered trace log, plus the
// type-introspection helpers the tracing rides on (type witnesses, readable
// type names, exhaustive dispatch).
//
// The interesting part is construction resolution: a call with zero, one, or
// two arguments of heterogeneous kinds (a count, a scalar, a list of values,
// or a list of already-wrapped cells) deterministically picks the element
// type, whether elements get wrapped, and which population path runs. The
// statically-typed constructors settle this at compile time; the dynamic
// Deduce facade replays the same ordered rules at run time.
//
// Start with the examples in the repo for end-to-end wiring style.
//
// See subpackages:
//   - vec: the library package (witnesses, cells, resolution engine, arrays)
//   - cmd/tracevec: demo binary walking the construction cases
//   - examples/basic: minimal runnable wiring
package tracevec
