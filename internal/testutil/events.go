package testutil

import (
	"testing"
	"time"

	"github.com/thenoetrevino/tally/internal/events"
)

// RecordingPublisher collects published events in memory
type RecordingPublisher struct {
	Events []events.Event
}

// Publish records the event
func (p *RecordingPublisher) Publish(event events.Event) error {
	p.Events = append(p.Events, event)
	return nil
}

// Types returns the recorded event types in publish order
func (p *RecordingPublisher) Types() []events.EventType {
	types := make([]events.EventType, 0, len(p.Events))
	for _, e := range p.Events {
		types = append(types, e.Type)
	}
	return types
}

// WaitForEvent waits for an event on a channel with timeout.
// Returns the event if received, or fails the test on timeout.
func WaitForEvent(t *testing.T, ch <-chan events.Event, timeout time.Duration) events.Event {
	t.Helper()

	select {
	case event, ok := <-ch:
		if !ok {
			t.Fatal("Event channel closed unexpectedly")
		}
		return event
	case <-time.After(timeout):
		t.Fatalf("Timeout waiting for event after %v", timeout)
		return events.Event{}
	}
}

// WaitForNoEvent verifies that no event is received within the timeout.
func WaitForNoEvent(t *testing.T, ch <-chan events.Event, timeout time.Duration) {
	t.Helper()

	select {
	case event := <-ch:
		t.Fatalf("Unexpected event received: %+v", event)
	case <-time.After(timeout):
	}
}

// DrainEvents drains all pending events from a channel (non-blocking).
func DrainEvents(ch <-chan events.Event) []events.Event {
	var pending []events.Event
	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return pending
			}
			pending = append(pending, event)
		default:
			return pending
		}
	}
}

// WaitForCondition polls condition until it returns true or timeout expires.
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, description string) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Logf("Timeout waiting for condition: %s", description)
	return false
}
