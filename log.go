package flowtrace

// EventLog is the ordered, append-only sequence of events for one call to an
// instrumented function. A fresh log is produced per call; the engine never
// shares one across calls.
type EventLog struct {
	events  []Event
	nextSeq int
}

// NewEventLog returns an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// FromEvents builds a log from an already-sequenced slice, preserving the
// producer's Seq values. Use Validate before reconstruction.
func FromEvents(events []Event) *EventLog {
	l := &EventLog{events: events}
	if n := len(events); n > 0 {
		l.nextSeq = events[n-1].Seq + 1
	}
	return l
}

// Append adds an event, assigning the next sequence number.
func (l *EventLog) Append(ev Event) {
	ev.Seq = l.nextSeq
	l.nextSeq++
	l.events = append(l.events, ev)
}

// Events returns the recorded events in log order.
func (l *EventLog) Events() []Event { return l.events }

// Len returns the number of recorded events.
func (l *EventLog) Len() int { return len(l.events) }

// Terminated reports whether the log ends with an explicit Return.
func (l *EventLog) Terminated() bool {
	n := len(l.events)
	return n > 0 && l.events[n-1].Kind == EvReturn
}

// Validate checks the ingestion invariants:
//
//   - sequence numbers are non-decreasing,
//   - every Load has a dominating Store on the same slot, and exactly one
//     (duplicate sequence numbers on stores to the same slot make resolution
//     ambiguous),
//   - Return, when present, is the final event.
//
// A log with no Return is valid; reconstruction signals the implicit
// fall-through instead of guessing a result.
func (l *EventLog) Validate() error {
	type lastStore struct {
		seq int
		dup bool
	}
	stores := make(map[SlotID]lastStore)
	prevSeq := -1
	returned := false

	for _, ev := range l.events {
		if ev.Seq < prevSeq {
			return &LogConsistencyError{Seq: ev.Seq, Msg: "events out of order"}
		}
		prevSeq = ev.Seq

		if returned {
			return &LogConsistencyError{Seq: ev.Seq, Msg: "event after terminal return"}
		}

		switch ev.Kind {
		case EvStore:
			st, ok := stores[ev.Slot.ID]
			stores[ev.Slot.ID] = lastStore{seq: ev.Seq, dup: ok && st.seq == ev.Seq}
		case EvLoad:
			st, ok := stores[ev.Slot.ID]
			if !ok {
				return &LogConsistencyError{Seq: ev.Seq, Msg: "load with no dominating store for slot " + ev.Slot.Name}
			}
			if st.dup {
				return &AmbiguousNameResolutionError{Seq: ev.Seq, Slot: ev.Slot}
			}
		case EvReturn:
			returned = true
		case EvBinOp, EvBranch:
			// No ingestion constraints beyond ordering.
		default:
			return &LogConsistencyError{Seq: ev.Seq, Msg: "invalid event kind"}
		}
	}
	return nil
}
