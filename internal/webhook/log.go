package webhook

import (
	"encoding/json"
	"sync"
)

// EventLog is the process-wide, append-only record of decoded webhook
// payloads. It exists for operator inspection only: created empty at
// startup, never pruned, never persisted. Appends are mutex-guarded so
// concurrent webhook deliveries cannot lose entries.
type EventLog struct {
	mu     sync.Mutex
	events []json.RawMessage
}

// NewEventLog returns an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Append records one decoded payload in arrival order.
func (l *EventLog) Append(event json.RawMessage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

// Events returns a snapshot of all recorded payloads in insertion order.
func (l *EventLog) Events() []json.RawMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]json.RawMessage, len(l.events))
	copy(out, l.events)
	return out
}

// Len reports the number of recorded events.
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}
