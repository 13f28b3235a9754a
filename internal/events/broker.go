package events

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ErrBrokerClosed is returned when publishing to a closed broker
var ErrBrokerClosed = errors.New("event broker is closed")

// subscriber is one listener registered with the broker
type subscriber struct {
	projectID int // 0 = all projects
	send      chan Event
}

// Broker fans committed changes out to in-process subscribers (SSE streams).
// Sends never block: a subscriber whose queue is full misses the event.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber
	closed      bool
	bufferSize  int

	sequenceCounter atomic.Int64
	published       atomic.Int64
	dropped         atomic.Int64
}

// DefaultBufferSize is the per-subscriber queue length used when none is given
const DefaultBufferSize = 64

// NewBroker creates a broker whose subscribers buffer up to bufferSize events
func NewBroker(bufferSize int) *Broker {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Broker{
		subscribers: make(map[string]*subscriber),
		bufferSize:  bufferSize,
	}
}

// Subscribe registers a listener for one project (or all when projectID is 0).
// The returned cancel function unregisters it and closes the channel.
func (b *Broker) Subscribe(projectID int) (string, <-chan Event, func()) {
	id := uuid.NewString()
	sub := &subscriber{
		projectID: projectID,
		send:      make(chan Event, b.bufferSize),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.send)
		return id, sub.send, func() {}
	}
	b.subscribers[id] = sub
	b.mu.Unlock()

	slog.Debug("event subscriber registered", "subscriber_id", id, "project_id", projectID)

	var once sync.Once
	cancel := func() {
		once.Do(func() { b.unsubscribe(id) })
	}
	return id, sub.send, cancel
}

func (b *Broker) unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subscribers[id]; ok {
		delete(b.subscribers, id)
		close(sub.send)
		slog.Debug("event subscriber removed", "subscriber_id", id)
	}
}

// Publish stamps the event with a sequence number and delivers it to every
// matching subscriber
func (b *Broker) Publish(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBrokerClosed
	}

	event.SequenceID = b.sequenceCounter.Add(1)
	b.published.Add(1)

	for id, sub := range b.subscribers {
		if sub.projectID != 0 && sub.projectID != event.ProjectID {
			continue
		}
		select {
		case sub.send <- event:
		default:
			b.dropped.Add(1)
			slog.Warn("subscriber queue full, event dropped",
				"subscriber_id", id,
				"event_type", event.Type,
				"project_id", event.ProjectID)
		}
	}
	return nil
}

// Stats is a point-in-time snapshot of broker counters
type Stats struct {
	Subscribers int   `json:"subscribers"`
	Published   int64 `json:"published"`
	Dropped     int64 `json:"dropped"`
}

// Stats returns the current broker counters
func (b *Broker) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Stats{
		Subscribers: len(b.subscribers),
		Published:   b.published.Load(),
		Dropped:     b.dropped.Load(),
	}
}

// Close unregisters every subscriber. Later publishes fail with ErrBrokerClosed.
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for id, sub := range b.subscribers {
		delete(b.subscribers, id)
		close(sub.send)
	}
	return nil
}
