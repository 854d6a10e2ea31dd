package trace

import (
	"io"
	"sync"
)

// Recorder keeps the most recent events in memory for later inspection or
// a Dump.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	limit  int
	level  Level
}

// NewRecorder keeps at most limit events (the most recent ones); limit <= 0
// keeps 4096.
func NewRecorder(limit int, level Level) *Recorder {
	if limit <= 0 {
		limit = 4096
	}
	return &Recorder{limit: limit, level: level}
}

func (r *Recorder) Emit(ev *Event) {
	if !r.level.ShouldEmit(ev.Scope, ev.Kind) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == r.limit {
		copy(r.events, r.events[1:])
		r.events = r.events[:len(r.events)-1]
	}
	r.events = append(r.events, *ev)
}

// Events returns a copy of the recorded events in order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Dump writes the recorded events to w.
func (r *Recorder) Dump(w io.Writer, format Format) error {
	for _, ev := range r.Events() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recorder) Flush() error { return nil }
func (r *Recorder) Close() error { return nil }
func (r *Recorder) Level() Level { return r.level }
func (r *Recorder) Enabled() bool { return r.level > LevelOff }
