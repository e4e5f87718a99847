package event

// Log is the append-only event log of a single tick.
// It is owned by the step driver; callers see events only after Drain.
type Log struct {
	tick   uint64
	events []Event
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{events: make([]Event, 0, 16)}
}

// Begin starts a new tick. Events appended afterwards are stamped with tick.
func (l *Log) Begin(tick uint64) {
	l.tick = tick
}

// Append adds an event, stamping the current tick.
func (l *Log) Append(e Event) {
	e.Tick = l.tick
	l.events = append(l.events, e)
}

// AppendAll adds events in order.
func (l *Log) AppendAll(events []Event) {
	for _, e := range events {
		l.Append(e)
	}
}

// Len returns the number of pending events.
func (l *Log) Len() int {
	return len(l.events)
}

// Drain returns pending events in append order and empties the log.
// The returned slice is owned by the caller.
func (l *Log) Drain() []Event {
	if len(l.events) == 0 {
		return nil
	}
	out := l.events
	l.events = make([]Event, 0, cap(out))
	return out
}
