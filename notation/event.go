package notation

import "time"

// EventKind tags an Event as sounded or silent.
type EventKind uint8

const (
	KindNote EventKind = iota
	KindRest
)

// Event is one element of a performance: a tone at a fixed frequency,
// or a rest. Duration is nominal milliseconds; each backend converts to
// its own clock. Events are immutable once emitted.
type Event struct {
	Kind      EventKind
	Frequency float64 // Hz, > 0 for notes, 0 for rests
	Duration  float64 // milliseconds, >= 0
}

// Note returns a sounded event.
func Note(freq, ms float64) Event {
	return Event{Kind: KindNote, Frequency: freq, Duration: ms}
}

// Rest returns a silent event.
func Rest(ms float64) Event {
	return Event{Kind: KindRest, Duration: ms}
}

// Wait converts the event duration into a sleepable time.Duration.
func (e Event) Wait() time.Duration {
	return time.Duration(e.Duration * float64(time.Millisecond))
}

// TotalDuration sums a sequence's nominal duration in milliseconds.
func TotalDuration(events []Event) float64 {
	var ms float64
	for _, e := range events {
		ms += e.Duration
	}
	return ms
}
