package vec

import (
	"errors"
	"fmt"
	"strconv"
)

// UndeducedElemError is returned by Deduce for a count-only call: a count
// alone names no element type, so only the typed Sized constructor (where
// the caller declares the type) can serve that shape.
type UndeducedElemError struct{}

// Error implements the error interface.
func (UndeducedElemError) Error() string {
	return "vec: element type cannot be deduced from a count alone"
}

// UnsupportedElemError is returned by Deduce when the resolved scalar type
// has no registered cell builder. The builders table's default arm produces
// it, once per failing call.
type UnsupportedElemError struct{ TypeName string }

// Error implements the error interface.
func (e UnsupportedElemError) Error() string {
	// Example: vec: no cell builder registered for "complex128"
	return "vec: no cell builder registered for " + strconv.Quote(e.TypeName)
}

// ErrBuilderPanic is returned if a registered cell builder panics.
var ErrBuilderPanic = errors.New("vec: panic while building deduced element")

// buildResult is what the builders table yields per dispatched value: a
// deferred cell construction, or nothing when the default arm fired.
type buildResult struct {
	build func(log *Log) any
}

// Builders is the registry of scalar types the dynamic Deduce path can build
// instrumented cells for.
//
// It wraps an exact-type dispatch Table whose default arm marks the value
// unsupported. Register types up front and treat the registry as read-only
// afterwards.
type Builders struct {
	table *Table[buildResult]
}

// NewBuilders constructs an empty registry.
func NewBuilders() *Builders {
	return &Builders{
		table: NewTable[buildResult](func(any) buildResult {
			return buildResult{}
		}),
	}
}

// RegisterBuilder adds a cell builder for scalar type T and returns the
// registry for chaining. Registering a type twice panics with
// DuplicateCaseError.
func RegisterBuilder[T any](b *Builders) *Builders {
	On(b.table, func(v T) buildResult {
		return buildResult{build: func(log *Log) any {
			return CellOf(log, v)
		}}
	})
	return b
}

// DefaultBuilders returns a registry covering the basic scalar set.
func DefaultBuilders() *Builders {
	b := NewBuilders()
	RegisterBuilder[bool](b)
	RegisterBuilder[string](b)
	RegisterBuilder[int](b)
	RegisterBuilder[int8](b)
	RegisterBuilder[int16](b)
	RegisterBuilder[int32](b)
	RegisterBuilder[int64](b)
	RegisterBuilder[uint](b)
	RegisterBuilder[uint8](b)
	RegisterBuilder[uint16](b)
	RegisterBuilder[uint32](b)
	RegisterBuilder[uint64](b)
	RegisterBuilder[float32](b)
	RegisterBuilder[float64](b)
	return b
}

// Deduce classifies a dynamic construction call and builds the container the
// resolution selects, using the default builders registry.
//
// The element type of the returned array is erased to any; the Resolution
// reports what the elements actually are. Event emission follows the same
// contract as the typed constructors: nothing for bare lists and defaulted
// sizes, one value event per element for a deduced (wrapped) list, one copy
// event per adopted cell, and a value/copy pair per filled element.
func Deduce(log *Log, c Call) (*Array[any], Resolution, error) {
	return DeduceWith(log, DefaultBuilders(), c)
}

// DeduceWith is Deduce against a caller-supplied builders registry.
func DeduceWith(log *Log, b *Builders, c Call) (arr *Array[any], res Resolution, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			arr = nil
			err = fmt.Errorf("%w: %v", ErrBuilderPanic, rec)
		}
	}()

	res, err = Resolve(c)
	if err != nil {
		return nil, Resolution{}, err
	}

	switch res.Strategy {
	case StrategyEmpty:
		return New[any](), res, nil

	case StrategySizedDefault:
		return nil, res, UndeducedElemError{}

	case StrategyList:
		if !res.Wrap {
			return Of[any](res.Values...), res, nil
		}
		// Deduced list: value-construct each cell straight into
		// storage. One value event per element, no copies.
		elems := make([]any, 0, len(res.Values))
		for _, v := range res.Values {
			br := b.table.Dispatch(v)
			if br.build == nil {
				return nil, res, UnsupportedElemError{TypeName: WitnessOf(v).String()}
			}
			elems = append(elems, br.build(log))
		}
		return &Array[any]{elems: elems}, res, nil

	case StrategyListOfCells:
		// Adopt the supplied cells, cloning each into storage.
		elems := make([]any, 0, len(res.Values))
		for _, v := range res.Values {
			elems = append(elems, v.(anyCell).cloneAny())
		}
		return &Array[any]{elems: elems}, res, nil

	case StrategySizedFill:
		br := b.table.Dispatch(res.Value)
		if br.build == nil {
			return nil, res, UnsupportedElemError{TypeName: res.Elem.String()}
		}
		// Temporary-then-store: a value event and a copy event per
		// element, interleaved.
		elems := make([]any, 0, res.Count)
		for i := 0; i < res.Count; i++ {
			tmp := br.build(log)
			elems = append(elems, tmp.(anyCell).cloneAny())
		}
		return &Array[any]{elems: elems}, res, nil
	}

	return nil, res, AmbiguousShapeError{Braced: c.Braced, Kinds: argKinds(c.Args)}
}
