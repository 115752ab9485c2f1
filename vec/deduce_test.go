package vec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/tracevec/vec"
)

//
// -----------------------------------------------------------------------------
// Deduce over the list strategies
// -----------------------------------------------------------------------------

// TestDeduce_BareList verifies a homogeneous braced call stays unwrapped and
// untraced.
func TestDeduce_BareList(t *testing.T) {
	t.Parallel()

	log := vec.NewLog()
	arr, res, err := vec.Deduce(log, vec.BracedCall(10.0, 1.3))
	require.NoError(t, err)

	assert.Equal(t, vec.StrategyList, res.Strategy)
	assert.False(t, res.Wrap)
	assert.Equal(t, []any{10.0, 1.3}, arr.Elems())
	assert.Zero(t, log.Len())
}

// TestDeduce_TieBreak verifies the braced {10, 1.3} call yields two wrapped
// cells of the floating type with exactly two value events, not a
// ten-element fill.
func TestDeduce_TieBreak(t *testing.T) {
	t.Parallel()

	log := vec.NewLog()
	arr, res, err := vec.Deduce(log, vec.BracedCall(10, 1.3))
	require.NoError(t, err)

	assert.Equal(t, vec.StrategyList, res.Strategy)
	assert.True(t, res.Wrap)
	assert.Equal(t, "Cell[float64]", res.ElemName)

	require.Equal(t, 2, arr.Len())
	first, ok := arr.At(0).(vec.Cell[float64])
	require.True(t, ok, "expected Cell[float64], got %T", arr.At(0))
	assert.Equal(t, 10.0, first.Get())

	second, ok := arr.At(1).(vec.Cell[float64])
	require.True(t, ok)
	assert.Equal(t, 1.3, second.Get())

	events := log.Events()
	require.Len(t, events, 2)
	assert.Equal(t, vec.KindValue, events[0].Kind)
	assert.Equal(t, vec.KindValue, events[1].Kind)
}

// TestDeduce_CellList verifies adopted cells keep their held values, stay
// singly wrapped, and add one copy event each.
func TestDeduce_CellList(t *testing.T) {
	t.Parallel()

	log := vec.NewLog()
	call := vec.BracedCall(
		vec.CellOf(log, 10.34),
		vec.CellOf(log, 9.23),
		vec.CellOf(log, 3.14),
	)
	require.Equal(t, 3, log.Len())

	arr, res, err := vec.Deduce(log, call)
	require.NoError(t, err)

	assert.Equal(t, vec.StrategyListOfCells, res.Strategy)
	assert.Equal(t, "Cell[float64]", res.ElemName)

	require.Equal(t, 3, arr.Len())
	want := []float64{10.34, 9.23, 3.14}
	for i, w := range want {
		c, ok := arr.At(i).(vec.Cell[float64])
		require.True(t, ok, "element %d: got %T", i, arr.At(i))
		assert.Equal(t, w, c.Get())
	}

	events := log.Events()
	require.Len(t, events, 6)
	for _, e := range events[3:] {
		assert.Equal(t, vec.KindCopy, e.Kind)
	}
}

//
// -----------------------------------------------------------------------------
// Deduce over the sized strategies
// -----------------------------------------------------------------------------

// TestDeduce_Fill verifies the parenthesized (5, 1.3) call builds five cells
// with the value/copy pair per element.
func TestDeduce_Fill(t *testing.T) {
	t.Parallel()

	log := vec.NewLog()
	arr, res, err := vec.Deduce(log, vec.ParenCall(5, 1.3))
	require.NoError(t, err)

	assert.Equal(t, vec.StrategySizedFill, res.Strategy)
	require.Equal(t, 5, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		c, ok := arr.At(i).(vec.Cell[float64])
		require.True(t, ok)
		assert.Equal(t, 1.3, c.Get())
	}

	events := log.Events()
	require.Len(t, events, 10)
	for i, e := range events {
		if i%2 == 0 {
			assert.Equal(t, vec.KindValue, e.Kind, "event %d", i)
		} else {
			assert.Equal(t, vec.KindCopy, e.Kind, "event %d", i)
		}
	}
}

// TestDeduce_Empty verifies the zero-argument call.
func TestDeduce_Empty(t *testing.T) {
	t.Parallel()

	arr, res, err := vec.Deduce(nil, vec.ParenCall())
	require.NoError(t, err)
	assert.Equal(t, vec.StrategyEmpty, res.Strategy)
	assert.Zero(t, arr.Len())
}

// TestDeduce_CountOnly verifies a bare count cannot name an element type on
// the dynamic path.
func TestDeduce_CountOnly(t *testing.T) {
	t.Parallel()

	_, res, err := vec.Deduce(nil, vec.ParenCall(5))
	assert.Equal(t, vec.StrategySizedDefault, res.Strategy)

	var und vec.UndeducedElemError
	require.ErrorAs(t, err, &und)
	assert.Contains(t, err.Error(), "count alone")
}

//
// -----------------------------------------------------------------------------
// Builders registry
// -----------------------------------------------------------------------------

// TestDeduce_UnsupportedScalar verifies a resolvable shape over an
// unregistered scalar reports the type, via the table's default arm.
func TestDeduce_UnsupportedScalar(t *testing.T) {
	t.Parallel()

	// Only float64 registered; fill over a string has no builder.
	b := vec.RegisterBuilder[float64](vec.NewBuilders())

	_, _, err := vec.DeduceWith(vec.NewLog(), b, vec.ParenCall(2, "x"))
	var unsupported vec.UnsupportedElemError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "string", unsupported.TypeName)
	assert.Contains(t, err.Error(), `no cell builder registered for "string"`)
}

// TestDeduce_DefaultBuildersCoverScalars verifies the stock registry handles
// the basic scalar set.
func TestDeduce_DefaultBuildersCoverScalars(t *testing.T) {
	t.Parallel()

	log := vec.NewLog()
	for _, v := range []any{true, "s", int8(1), uint16(2), float32(3)} {
		_, res, err := vec.Deduce(log, vec.ParenCall(1, v))
		require.NoError(t, err, "fill value %T", v)
		assert.Equal(t, vec.StrategySizedFill, res.Strategy)
	}
}

// TestDeduceWith_RecoversPanics verifies a broken registry surfaces as
// ErrBuilderPanic instead of taking the caller down. A nil registry panics
// on first dispatch.
func TestDeduceWith_RecoversPanics(t *testing.T) {
	t.Parallel()

	var b *vec.Builders

	arr, _, err := vec.DeduceWith(vec.NewLog(), b, vec.ParenCall(2, 1.3))
	require.Error(t, err)
	assert.Nil(t, arr)
	assert.ErrorIs(t, err, vec.ErrBuilderPanic)
}

// TestRegisterBuilder_DuplicatePanics verifies double registration is a
// registration-site error.
func TestRegisterBuilder_DuplicatePanics(t *testing.T) {
	t.Parallel()

	b := vec.RegisterBuilder[int](vec.NewBuilders())
	assert.Panics(t, func() { vec.RegisterBuilder[int](b) })
}
