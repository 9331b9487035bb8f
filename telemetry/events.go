// Package telemetry provides frame timing, ribbon activity statistics,
// lifecycle event logging and state snapshots.
package telemetry

// EventType identifies lifecycle events.
type EventType uint8

const (
	EventInit EventType = iota
	EventInitAborted
	EventDispose
	EventFallback
	EventRestore
	EventMotionReduced
	EventResize
	EventGust
)

var eventNames = [...]string{
	EventInit:          "init",
	EventInitAborted:   "init_aborted",
	EventDispose:       "dispose",
	EventFallback:      "fallback",
	EventRestore:       "restore",
	EventMotionReduced: "motion_reduced",
	EventResize:        "resize",
	EventGust:          "gust",
}

// String returns the event name used in logs and CSV output.
func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// MarshalCSV implements gocsv's TypeMarshaller.
func (t EventType) MarshalCSV() (string, error) {
	return t.String(), nil
}

// Event is a single lifecycle event.
type Event struct {
	Type   EventType `csv:"type"`
	Frame  int64     `csv:"frame"`
	Time   float64   `csv:"time"` // Seconds since the renderer was created
	Detail string    `csv:"detail"`
}

// NewEvent creates an event.
func NewEvent(t EventType, frame int64, at float64, detail string) Event {
	return Event{Type: t, Frame: frame, Time: at, Detail: detail}
}
