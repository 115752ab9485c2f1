// Package vec implements a construction-tracing dynamic array and the type
// identity machinery behind it.
//
// The package splits into four small layers:
//
//   - typeid.go / dispatch.go: Witness (a process-stable per-type token),
//     RawName/DisplayName rendering with graceful demangle fallback, and an
//     exhaustive exact-type dispatch table with a mandatory default arm.
//
//   - event.go: the construction trace — Kind, Event, the append-only Log,
//     the Sink collaborator interface, and a zap-backed Sink.
//
//   - cell.go: Cell[T], a single-value wrapper that records its own
//     construction history (default, value, copy) into a Log.
//
//   - resolve.go / array.go / deduce.go: the resolution engine mapping a
//     call shape to an element type plus a population strategy, the Array[E]
//     container with one constructor per strategy, and the dynamic Deduce
//     facade that replays the ordered resolution rules over untyped args.
//
// The typed constructors (New, Sized, Fill, Of, OfCells) are the build-time
// face of resolution: their generic signatures reject unresolvable shapes at
// compile time. Deduce is the run-time face and is where the ordered rule
// list, including the braced-list tie-break, is observable directly.
//
// Import
//
//	"github.com/sghaida/tracevec/vec"
package vec
