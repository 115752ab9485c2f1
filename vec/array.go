package vec

// Array is an ordered, index-accessible sequence fixed at construction.
//
// Exactly one constructor populates an Array and no mutation API exists
// afterwards; each constructor realizes one resolution strategy (see
// Resolve). Element type E is either a bare value type or Cell[T].
type Array[E any] struct {
	elems []E
}

// New constructs an empty array (the empty strategy). No events.
func New[E any]() *Array[E] {
	return &Array[E]{}
}

// Sized constructs an array of n default-valued elements (the sized-default
// strategy). No cells are created and nothing is traced.
//
// A negative n returns NegativeCountError.
func Sized[E any](n int) (*Array[E], error) {
	res, err := Resolve(ParenCall(n))
	if err != nil {
		return nil, err
	}
	return &Array[E]{elems: make([]E, res.Count)}, nil
}

// Fill constructs an array of n cells each holding a copy of v (the
// sized-fill strategy, the parenthesized form's deduction rule).
//
// Each element is produced by value-constructing a temporary cell from v and
// then copying it into backing storage, so every element contributes two
// trace events: one value event followed by one copy event. The resulting
// 2n-event interleaving is part of the contract.
//
// A negative n returns NegativeCountError. Filling from a value that is
// itself a cell returns AmbiguousShapeError: nested wrapping is out of scope.
func Fill[T any](log *Log, n int, v T) (*Array[Cell[T]], error) {
	res, err := Resolve(ParenCall(n, v))
	if err != nil {
		return nil, err
	}
	elems := make([]Cell[T], 0, res.Count)
	for i := 0; i < res.Count; i++ {
		tmp := CellOf(log, v)
		elems = append(elems, tmp.Clone())
	}
	return &Array[Cell[T]]{elems: elems}, nil
}

// Of constructs an array from a braced list of bare values (the list
// strategy). The element type is exactly E, no cells are introduced, and
// nothing is traced.
func Of[E any](vs ...E) *Array[E] {
	elems := make([]E, len(vs))
	copy(elems, vs)
	return &Array[E]{elems: elems}
}

// OfCells constructs an array from a braced list of already-wrapped cells
// (the list-of-cells strategy). The element type is exactly the cells' type;
// no additional wrapping happens.
//
// Each supplied cell is cloned into backing storage, so the trace gains one
// copy event per element, recorded against each cell's own log.
func OfCells[T any](cs ...Cell[T]) *Array[Cell[T]] {
	elems := make([]Cell[T], 0, len(cs))
	for _, c := range cs {
		elems = append(elems, c.Clone())
	}
	return &Array[Cell[T]]{elems: elems}
}

// Len returns the number of elements.
func (a *Array[E]) Len() int {
	if a == nil {
		return 0
	}
	return len(a.elems)
}

// At returns the element at index i. Out-of-range indexes panic with the
// usual slice semantics.
func (a *Array[E]) At(i int) E {
	return a.elems[i]
}

// Elems returns a view over the backing storage.
//
// The slice aliases the array's storage; treat it as read-only.
func (a *Array[E]) Elems() []E {
	if a == nil {
		return nil
	}
	return a.elems
}
