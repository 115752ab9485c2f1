package vec

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Strategy identifies how a construction call populates backing storage.
type Strategy uint8

const (
	// StrategyEmpty builds an empty array.
	StrategyEmpty Strategy = iota
	// StrategySizedDefault builds n default-valued elements, untraced.
	StrategySizedDefault
	// StrategySizedFill builds n wrapped copies of one fill value.
	StrategySizedFill
	// StrategyList builds one element per supplied value.
	StrategyList
	// StrategyListOfCells adopts already-wrapped cells, cloning each into
	// storage.
	StrategyListOfCells
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case StrategyEmpty:
		return "empty"
	case StrategySizedDefault:
		return "sized-default"
	case StrategySizedFill:
		return "sized-fill"
	case StrategyList:
		return "list"
	case StrategyListOfCells:
		return "list-of-cells"
	default:
		return "unknown"
	}
}

// Call is the abstract description of one construction invocation: whether
// the arguments arrived as a braced list or a parenthesized argument pair,
// plus the arguments themselves.
//
// Callers of the typed constructors never build a Call; it exists for the
// dynamic Deduce path and for exercising the resolution rules directly.
type Call struct {
	Braced bool
	Args   []any
}

// BracedCall describes a braced-list invocation: {a, b, c}.
func BracedCall(args ...any) Call { return Call{Braced: true, Args: args} }

// ParenCall describes a parenthesized invocation: (n) or (n, v).
func ParenCall(args ...any) Call { return Call{Args: args} }

// Resolution is the engine's verdict for a call.
//
// Elem is the witness of the value type involved: the scalar type when Wrap
// is set (elements become Cell of that scalar), the element type itself
// otherwise. ElemName is the display rendering of the actual element type,
// including the Cell wrapper when one is introduced.
type Resolution struct {
	Strategy Strategy
	Elem     Witness
	ElemName string

	// Wrap reports whether the engine introduces a Cell around each
	// element. It is false for StrategyListOfCells: the values are
	// already cells and no additional wrapping happens.
	Wrap bool

	// Count is the element count for the sized strategies.
	Count int

	// Value is the fill value for StrategySizedFill.
	Value any

	// Values holds the element values for the list strategies, converted
	// to the deduced type when the deduction rule fired.
	Values []any
}

// NegativeCountError is returned when a sized construction is asked for a
// negative element count.
type NegativeCountError struct{ Count int64 }

// Error implements the error interface.
func (e NegativeCountError) Error() string {
	// Example: vec: negative element count -3
	return "vec: negative element count " + strconv.FormatInt(e.Count, 10)
}

// AmbiguousShapeError is returned when a call matches none of the resolution
// rules. On the typed constructor path this cannot happen (the generic
// signatures reject such calls at compile time); it is the dynamic path's
// rendering of the same rejection.
type AmbiguousShapeError struct {
	Braced bool
	Kinds  []string
}

// Error implements the error interface.
func (e AmbiguousShapeError) Error() string {
	form := "parenthesized"
	if e.Braced {
		form = "braced"
	}
	// Example: vec: no construction rule matches braced(int, string)
	return "vec: no construction rule matches " + form +
		"(" + strings.Join(e.Kinds, ", ") + ")"
}

// Resolve classifies a construction call into an element type and a
// population strategy.
//
// It is pure: no events are emitted and no storage is touched. The rules run
// in priority order, first match wins:
//
//  1. braced list of already-wrapped cells of one type -> list-of-cells,
//     element type is exactly the cell type, no wrapping introduced
//  2. braced list of bare values of one type -> list, no wrapping
//  3. braced pair (integer-like, scalar of another type) -> the deduction
//     rule under list precedence: both values convert to the scalar's type
//     and each element is wrapped in a Cell; the strategy stays list (this
//     is the tie-break: a braced call never becomes a sized fill)
//  4. parenthesized (count, value) -> sized-fill of wrapped copies
//  5. parenthesized (count) -> sized-default, untraced
//  6. no arguments -> empty
//
// Anything else returns AmbiguousShapeError; negative counts return
// NegativeCountError.
func Resolve(c Call) (Resolution, error) {
	if len(c.Args) == 0 {
		return Resolution{Strategy: StrategyEmpty}, nil
	}
	if c.Braced {
		return resolveBraced(c)
	}
	return resolveParen(c)
}

func resolveBraced(c Call) (Resolution, error) {
	// Rule 1: every value is already a cell of the same type.
	if cells, ok := allCells(c.Args); ok {
		return Resolution{
			Strategy: StrategyListOfCells,
			Elem:     WitnessOf(c.Args[0]),
			ElemName: cells[0].cellTypeName(),
			Values:   c.Args,
		}, nil
	}

	// Rule 2: homogeneous bare values.
	if w, ok := sameWitness(c.Args); ok {
		return Resolution{
			Strategy: StrategyList,
			Elem:     w,
			ElemName: w.String(),
			Values:   c.Args,
		}, nil
	}

	// Rule 3: the deduction rule, but list precedence holds. A braced
	// (integer-like, scalar) pair keeps the list strategy; the scalar's
	// type wins and every value is converted and wrapped.
	if len(c.Args) == 2 {
		if res, ok := resolveDeducedList(c.Args); ok {
			return res, nil
		}
	}

	return Resolution{}, AmbiguousShapeError{Braced: true, Kinds: argKinds(c.Args)}
}

func resolveParen(c Call) (Resolution, error) {
	switch len(c.Args) {
	case 1:
		n, ok := asCount(c.Args[0])
		if !ok {
			break
		}
		if n < 0 {
			return Resolution{}, NegativeCountError{Count: n}
		}
		// Rule 5: count only. The element type is whatever the caller
		// declared; the dynamic path cannot deduce it (see Deduce).
		return Resolution{Strategy: StrategySizedDefault, Count: int(n)}, nil
	case 2:
		n, ok := asCount(c.Args[0])
		if !ok {
			break
		}
		if n < 0 {
			return Resolution{}, NegativeCountError{Count: n}
		}
		if _, isCell := c.Args[1].(anyCell); isCell {
			// Filling from a cell would nest cells; nesting of the
			// resolution rules is out of scope.
			break
		}
		w := WitnessOf(c.Args[1])
		return Resolution{
			Strategy: StrategySizedFill,
			Elem:     w,
			ElemName: "Cell[" + w.String() + "]",
			Wrap:     true,
			Count:    int(n),
			Value:    c.Args[1],
		}, nil
	}
	return Resolution{}, AmbiguousShapeError{Kinds: argKinds(c.Args)}
}

// resolveDeducedList handles the mixed braced pair: first value
// integer-like, second a scalar of a different type both values convert to.
func resolveDeducedList(args []any) (Resolution, bool) {
	first := reflect.ValueOf(args[0])
	second := reflect.ValueOf(args[1])
	if !isIntegerKind(first.Kind()) || !isNumericKind(second.Kind()) {
		return Resolution{}, false
	}
	target := second.Type()
	if !first.Type().ConvertibleTo(target) {
		return Resolution{}, false
	}

	w := witnessOf(target)
	return Resolution{
		Strategy: StrategyList,
		Elem:     w,
		ElemName: "Cell[" + w.String() + "]",
		Wrap:     true,
		Values: []any{
			first.Convert(target).Interface(),
			args[1],
		},
	}, true
}

func allCells(args []any) ([]anyCell, bool) {
	cells := make([]anyCell, 0, len(args))
	var w Witness
	for i, a := range args {
		c, ok := a.(anyCell)
		if !ok {
			return nil, false
		}
		if i == 0 {
			w = WitnessOf(a)
		} else if WitnessOf(a) != w {
			return nil, false
		}
		cells = append(cells, c)
	}
	return cells, true
}

func sameWitness(args []any) (Witness, bool) {
	w := WitnessOf(args[0])
	for _, a := range args[1:] {
		if WitnessOf(a) != w {
			return Witness{}, false
		}
	}
	return w, true
}

// asCount extracts an element count from an integer-kinded value.
func asCount(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() >= reflect.Int && rv.Kind() <= reflect.Int64:
		return rv.Int(), true
	case rv.Kind() >= reflect.Uint && rv.Kind() <= reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	default:
		return 0, false
	}
}

func isIntegerKind(k reflect.Kind) bool {
	return (k >= reflect.Int && k <= reflect.Int64) ||
		(k >= reflect.Uint && k <= reflect.Uint64)
}

func isNumericKind(k reflect.Kind) bool {
	return isIntegerKind(k) || k == reflect.Float32 || k == reflect.Float64
}

func argKinds(args []any) []string {
	kinds := make([]string, len(args))
	for i, a := range args {
		kinds[i] = WitnessOf(a).String()
	}
	return kinds
}
