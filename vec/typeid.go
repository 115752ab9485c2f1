package vec

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Witness is a process-stable identity token for a concrete type.
//
// Two witnesses compare equal iff they denote the same concrete type, for the
// lifetime of the process. Witnesses are valid map keys and are what the
// dispatch table (see dispatch.go) keys on.
type Witness struct {
	rt reflect.Type
}

// Identify returns the witness for T.
//
// It is total over all instantiable types and has no failure mode. The first
// call for a given type registers it in the process-wide witness table;
// registration is never undone.
func Identify[T any]() Witness {
	return witnessOf(reflect.TypeOf((*T)(nil)).Elem())
}

// WitnessOf returns the witness for v's dynamic type.
//
// A nil v yields the zero Witness, which matches no identified type.
func WitnessOf(v any) Witness {
	rt := reflect.TypeOf(v)
	if rt == nil {
		return Witness{}
	}
	return witnessOf(rt)
}

// Raw returns the implementation-defined raw identifier for the witnessed
// type. It is deterministic per build but not guaranteed to be pretty.
func (w Witness) Raw() string {
	if w.rt == nil {
		return "<nil>"
	}
	return w.rt.String()
}

// ID returns the dense id assigned to the witnessed type on first use.
// Ids are stable for the process lifetime; ordering follows first use.
func (w Witness) ID() uint64 {
	if w.rt == nil {
		return 0
	}
	witnessTable.mu.Lock()
	defer witnessTable.mu.Unlock()
	return witnessTable.ids[w.rt]
}

// String implements fmt.Stringer using the display rendering.
func (w Witness) String() string {
	if w.rt == nil {
		return "<nil>"
	}
	return displayName(w.rt)
}

// witnessTable interns every type seen by Identify/WitnessOf and hands out
// dense ids on first use. Entries are immutable for the process lifetime, so
// there is no teardown.
var witnessTable = struct {
	mu   sync.Mutex
	ids  map[reflect.Type]uint64
	next uint64
}{ids: map[reflect.Type]uint64{}, next: 1}

func witnessOf(rt reflect.Type) Witness {
	witnessTable.mu.Lock()
	if _, ok := witnessTable.ids[rt]; !ok {
		witnessTable.ids[rt] = witnessTable.next
		witnessTable.next++
	}
	witnessTable.mu.Unlock()
	return Witness{rt: rt}
}

// RawName returns the raw, package-qualified identifier for T
// (e.g. "vec.Cell[float64]").
func RawName[T any]() string {
	return Identify[T]().Raw()
}

// DisplayName returns a human-readable rendering of T's name
// (e.g. "Cell[float64]" rather than "vec.Cell[float64]").
//
// It never fails the caller: when the raw form cannot be rewritten, the raw
// name is returned as-is and a DemangleUnavailableError is reported to the
// diagnostics handler (see SetDiagnosticHandler).
func DisplayName[T any]() string {
	return displayName(reflect.TypeOf((*T)(nil)).Elem())
}

// DemangleUnavailableError reports that a raw type identifier could not be
// rewritten into a display form. It is diagnostic-only and never aborts the
// operation that triggered it.
type DemangleUnavailableError struct{ Raw string }

// Error implements the error interface.
func (e DemangleUnavailableError) Error() string {
	// Example: vec: no display rendering for "struct { X int }"
	return "vec: no display rendering for " + strconv.Quote(e.Raw)
}

// diagHandler receives non-fatal diagnostics (currently only
// DemangleUnavailableError). The default handler drops them.
var diagHandler func(error) = func(error) {}

// SetDiagnosticHandler installs fn as the process diagnostics handler and
// returns the previous one. A nil fn restores the dropping default.
func SetDiagnosticHandler(fn func(error)) func(error) {
	prev := diagHandler
	if fn == nil {
		fn = func(error) {}
	}
	diagHandler = fn
	return prev
}

func displayName(rt reflect.Type) string {
	raw := rt.String()
	out, ok := stripQualifiers(raw)
	if !ok {
		diagHandler(DemangleUnavailableError{Raw: raw})
		return raw
	}
	return out
}

// stripQualifiers rewrites a package-qualified type string into its bare
// form: "vec.Cell[main.point]" -> "Cell[point]". It only understands the
// identifier/bracket/pointer grammar of named, builtin and composite types;
// anything else (struct literals, func and interface types) is left to the
// caller's fallback path.
func stripQualifiers(raw string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '.' || c == '/':
			// Qualifier separator: drop the package path segment
			// accumulated so far. Full import paths show up in generic
			// type arguments ("vec.Cell[pkg/path.T]").
			trimSegment(&b)
		case c == '[' || c == ']' || c == ',' || c == ' ' || c == '*':
			b.WriteByte(c)
		case isIdentByte(c):
			b.WriteByte(c)
		default:
			return "", false
		}
	}
	return b.String(), true
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// trimSegment removes the trailing identifier from b, leaving everything up
// to the last non-identifier byte intact.
func trimSegment(b *strings.Builder) {
	s := b.String()
	end := len(s)
	for end > 0 && isIdentByte(s[end-1]) {
		end--
	}
	b.Reset()
	b.WriteString(s[:end])
}
