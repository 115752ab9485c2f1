package vec_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sghaida/tracevec/vec"
)

// captureSink records every emitted event, in order.
type captureSink struct {
	got []vec.Event
}

func (s *captureSink) Emit(e vec.Event) { s.got = append(s.got, e) }

//
// -----------------------------------------------------------------------------
// Log
// -----------------------------------------------------------------------------

// TestLog_AppendAssignsSeqInOrder verifies events are stored in append order
// with sequence numbers starting at 1.
func TestLog_AppendAssignsSeqInOrder(t *testing.T) {
	t.Parallel()

	log := vec.NewLog()
	log.Append(vec.Event{Kind: vec.KindDefault, TypeName: "int"})
	log.Append(vec.Event{Kind: vec.KindValue, TypeName: "int", Payload: "7", HasPayload: true})

	want := []vec.Event{
		{Seq: 1, Kind: vec.KindDefault, TypeName: "int"},
		{Seq: 2, Kind: vec.KindValue, TypeName: "int", Payload: "7", HasPayload: true},
	}
	if diff := cmp.Diff(want, log.Events()); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, log.Len())
}

// TestLog_EventsReturnsCopy verifies mutating the returned slice does not
// touch the log.
func TestLog_EventsReturnsCopy(t *testing.T) {
	t.Parallel()

	log := vec.NewLog()
	log.Append(vec.Event{Kind: vec.KindDefault, TypeName: "int"})

	events := log.Events()
	events[0].TypeName = "mutated"

	assert.Equal(t, "int", log.Events()[0].TypeName)
}

// TestLog_FansOutToSinks verifies every sink sees every event once, already
// sequenced.
func TestLog_FansOutToSinks(t *testing.T) {
	t.Parallel()

	first := &captureSink{}
	second := &captureSink{}
	log := vec.NewLog(first, second)

	log.Append(vec.Event{Kind: vec.KindCopy, TypeName: "float64", Payload: "1.3", HasPayload: true})

	require.Len(t, first.got, 1)
	assert.Equal(t, uint64(1), first.got[0].Seq)
	assert.Equal(t, first.got, second.got)
}

// TestLog_Reset verifies Reset drops events and restarts sequencing.
func TestLog_Reset(t *testing.T) {
	t.Parallel()

	log := vec.NewLog()
	log.Append(vec.Event{Kind: vec.KindDefault, TypeName: "int"})
	log.Reset()

	assert.Zero(t, log.Len())

	log.Append(vec.Event{Kind: vec.KindDefault, TypeName: "int"})
	assert.Equal(t, uint64(1), log.Events()[0].Seq)
}

// TestLog_NilIsNoOp verifies a nil *Log is a valid do-nothing collaborator.
func TestLog_NilIsNoOp(t *testing.T) {
	t.Parallel()

	var log *vec.Log
	log.Append(vec.Event{Kind: vec.KindDefault})
	log.Reset()

	assert.Zero(t, log.Len())
	assert.Nil(t, log.Events())
	assert.Equal(t, uuid.Nil, log.ID())
}

// TestLog_HasIdentity verifies each log carries a distinct identity.
func TestLog_HasIdentity(t *testing.T) {
	t.Parallel()

	a, b := vec.NewLog(), vec.NewLog()
	assert.NotEqual(t, uuid.Nil, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

//
// -----------------------------------------------------------------------------
// Kind
// -----------------------------------------------------------------------------

// TestKind_String verifies the kind labels.
func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "default", vec.KindDefault.String())
	assert.Equal(t, "value", vec.KindValue.String())
	assert.Equal(t, "copy", vec.KindCopy.String())
	assert.Equal(t, "unknown", vec.Kind(9).String())
}

//
// -----------------------------------------------------------------------------
// ZapSink
// -----------------------------------------------------------------------------

// TestZapSink_EmitsStructuredEntries verifies one structured entry per event
// with kind/type/payload/trace fields.
func TestZapSink_EmitsStructuredEntries(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	sink := vec.NewZapSink(zap.New(core))
	log := vec.NewLog(sink)
	sink.Bind(log)

	vec.CellOf(log, 1.3)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "construction", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "value", fields["kind"])
	assert.Equal(t, "float64", fields["type"])
	assert.Equal(t, "1.3", fields["payload"])
	assert.Equal(t, log.ID().String(), fields["trace"])
}

// TestZapSink_NilLoggerIsNoOp verifies a sink over a nil logger drops events.
func TestZapSink_NilLoggerIsNoOp(t *testing.T) {
	t.Parallel()

	sink := vec.NewZapSink(nil)
	log := vec.NewLog(sink)

	vec.CellOf(log, 42)
	assert.Equal(t, 1, log.Len())
}
