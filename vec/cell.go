package vec

import "fmt"

// Cell wraps a single value of type T and records how it was constructed.
//
// Every construction path emits exactly one Event to the log the cell was
// built against: NewCell emits a default event, CellOf a value event, and
// Clone a copy event. Cells are read-only after construction; Get returns a
// copy of the held value and there is no mutation API.
type Cell[T any] struct {
	val T
	log *Log
}

// NewCell constructs a cell holding T's zero value.
//
// Emits {default, DisplayName[T]} with no payload.
func NewCell[T any](log *Log) Cell[T] {
	log.record(KindDefault, DisplayName[T]())
	return Cell[T]{log: log}
}

// CellOf constructs a cell holding a copy of v.
//
// Emits {value, DisplayName[T], stringify(v)}.
func CellOf[T any](log *Log, v T) Cell[T] {
	log.record(KindValue, DisplayName[T](), stringify(v))
	return Cell[T]{val: v, log: log}
}

// Clone duplicates the cell, copying the held value.
//
// Emits {copy, DisplayName[T], stringify(held)}. This is the path that fires
// whenever a population step inserts a temporary cell into backing storage.
func (c Cell[T]) Clone() Cell[T] {
	c.log.record(KindCopy, DisplayName[T](), stringify(c.val))
	return Cell[T]{val: c.val, log: c.log}
}

// Get returns a copy of the held value.
func (c Cell[T]) Get() T { return c.val }

// anyCell is the type-erased view the resolution engine uses to recognize
// and duplicate wrapped values without knowing T.
type anyCell interface {
	heldValue() any
	cloneAny() any
	cellTypeName() string
}

func (c Cell[T]) heldValue() any { return c.val }
func (c Cell[T]) cloneAny() any  { return c.Clone() }
func (c Cell[T]) cellTypeName() string {
	return DisplayName[Cell[T]]()
}

func stringify(v any) string {
	return fmt.Sprintf("%v", v)
}
