package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last N events in memory.
type RingTracer struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	head     int  // next write position
	full     bool // has wrapped around
	level    Level
	capture  Level
}

// NewRingTracer creates a ring of the given capacity (4096 when <= 0).
// At LevelError the ring still captures per-file events so a crash dump
// shows where the run stopped.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	capture := level
	if level == LevelError {
		capture = LevelDetail
	}
	return &RingTracer{
		events:   make([]Event, capacity),
		capacity: capacity,
		level:    level,
		capture:  capture,
	}
}

// Emit stores a copy of the event, overwriting the oldest one when full.
func (t *RingTracer) Emit(ev *Event) {
	if !t.capture.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}
	if ev.Seq == 0 {
		ev.Seq = NextSeq()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.events[t.head] = *ev
	t.head = (t.head + 1) % t.capacity
	if t.head == 0 {
		t.full = true
	}
}

// Snapshot returns the stored events in chronological order.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.full {
		out := make([]Event, t.head)
		copy(out, t.events[:t.head])
		return out
	}
	out := make([]Event, t.capacity)
	copy(out, t.events[t.head:])
	copy(out[t.capacity-t.head:], t.events[:t.head])
	return out
}

// Dump writes all stored events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

// Captures reports whether the ring stores events of scope.
func (t *RingTracer) Captures(scope Scope) bool { return t.capture.ShouldEmit(scope) }

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }

// Dumper is implemented by tracers that can replay recent events.
type Dumper interface {
	Dump(w io.Writer, format Format) error
}

// DumpTo replays the ring of t, if it has one, into w.
func DumpTo(t Tracer, w io.Writer) error {
	switch tr := t.(type) {
	case Dumper:
		return tr.Dump(w, FormatText)
	case *MultiTracer:
		for _, inner := range tr.tracers {
			if d, ok := inner.(Dumper); ok {
				return d.Dump(w, FormatText)
			}
		}
	}
	return nil
}
