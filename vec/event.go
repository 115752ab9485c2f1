package vec

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind labels the construction path that produced an Event.
type Kind uint8

const (
	// KindDefault is a default construction (zero value, no payload).
	KindDefault Kind = iota
	// KindValue is a value-initialized construction.
	KindValue
	// KindCopy is a copy from an existing cell.
	KindCopy
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindValue:
		return "value"
	case KindCopy:
		return "copy"
	default:
		return "unknown"
	}
}

// Event is one record in the construction trace.
//
// Events are immutable once appended; Seq is assigned by the owning Log in
// append order, starting at 1.
type Event struct {
	Seq      uint64
	Kind     Kind
	TypeName string

	// Payload is the stringified constructed value. HasPayload
	// distinguishes an absent payload from an empty string.
	Payload    string
	HasPayload bool
}

// Sink receives construction events as they are recorded.
//
// The library only promises to hand each event to every attached sink once,
// in append order; formatting and delivery are the sink's concern.
type Sink interface {
	Emit(Event)
}

// Log is an append-only, ordered record of construction events.
//
// A nil *Log is a valid no-op collaborator: cells constructed against a nil
// log simply record nothing. Appends fan out to every attached sink after
// the event is stored.
type Log struct {
	mu     sync.Mutex
	id     uuid.UUID
	events []Event
	sinks  []Sink
}

// NewLog constructs an empty Log fanning out to the given sinks.
func NewLog(sinks ...Sink) *Log {
	return &Log{id: uuid.New(), sinks: sinks}
}

// ID returns the log's identity, used by sinks to correlate entries.
func (l *Log) ID() uuid.UUID {
	if l == nil {
		return uuid.Nil
	}
	return l.id
}

// Append stores e (stamping its Seq) and forwards it to the attached sinks.
// Append on a nil log is a no-op.
func (l *Log) Append(e Event) {
	if l == nil {
		return
	}
	l.mu.Lock()
	e.Seq = uint64(len(l.events) + 1)
	l.events = append(l.events, e)
	sinks := l.sinks
	l.mu.Unlock()

	for _, s := range sinks {
		s.Emit(e)
	}
}

// Events returns a copy of the recorded events in append order.
func (l *Log) Events() []Event {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of recorded events.
func (l *Log) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// Reset drops all recorded events. Sequence numbers restart at 1.
// Intended for tests and demos; attached sinks are kept.
func (l *Log) Reset() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
}

// record is the cell-facing append helper.
func (l *Log) record(k Kind, typeName string, payload ...string) {
	if l == nil {
		return
	}
	e := Event{Kind: k, TypeName: typeName}
	if len(payload) > 0 {
		e.Payload = payload[0]
		e.HasPayload = true
	}
	l.Append(e)
}

// ZapSink forwards construction events to a zap logger as structured entries.
type ZapSink struct {
	logger *zap.Logger
	log    *Log
}

// NewZapSink wraps logger as a Sink. The returned sink is nil-safe to build
// against a nil logger (it emits nothing).
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

// Bind associates the sink with a log so emitted entries carry its id.
// Returns the sink for chaining before NewLog attachment.
func (s *ZapSink) Bind(l *Log) *ZapSink {
	s.log = l
	return s
}

// Emit implements Sink.
func (s *ZapSink) Emit(e Event) {
	if s == nil || s.logger == nil {
		return
	}
	fields := []zap.Field{
		zap.Uint64("seq", e.Seq),
		zap.Stringer("kind", e.Kind),
		zap.String("type", e.TypeName),
	}
	if e.HasPayload {
		fields = append(fields, zap.String("payload", e.Payload))
	}
	if s.log != nil {
		fields = append(fields, zap.String("trace", s.log.ID().String()))
	}
	s.logger.Info("construction", fields...)
}
