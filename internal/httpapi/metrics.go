package httpapi

import (
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/tally/internal/events"
)

// Metrics tracks request statistics using atomic operations for thread-safety
type Metrics struct {
	RequestsTotal  atomic.Int64
	ClientErrors   atomic.Int64
	ServerErrors   atomic.Int64
	StreamsOpen    atomic.Int32
	EventsStreamed atomic.Int64
	StartTime      time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// Observe records one finished request by status code
func (m *Metrics) Observe(status int) {
	m.RequestsTotal.Add(1)
	switch {
	case status >= 500:
		m.ServerErrors.Add(1)
	case status >= 400:
		m.ClientErrors.Add(1)
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	RequestsTotal   int64     `json:"requests_total"`
	ClientErrors    int64     `json:"client_errors"`
	ServerErrors    int64     `json:"server_errors"`
	StreamsOpen     int32     `json:"streams_open"`
	EventsStreamed  int64     `json:"events_streamed"`
	EventsPublished int64     `json:"events_published"`
	EventsDropped   int64     `json:"events_dropped"`
	StartTime       time.Time `json:"start_time"`
	Uptime          string    `json:"uptime"`
}

// Snapshot returns a snapshot of current metrics, folding in broker stats when present
func (m *Metrics) Snapshot(broker *events.Broker) MetricsSnapshot {
	snap := MetricsSnapshot{
		RequestsTotal:  m.RequestsTotal.Load(),
		ClientErrors:   m.ClientErrors.Load(),
		ServerErrors:   m.ServerErrors.Load(),
		StreamsOpen:    m.StreamsOpen.Load(),
		EventsStreamed: m.EventsStreamed.Load(),
		StartTime:      m.StartTime,
		Uptime:         time.Since(m.StartTime).String(),
	}
	if broker != nil {
		stats := broker.Stats()
		snap.EventsPublished = stats.Published
		snap.EventsDropped = stats.Dropped
	}
	return snap
}
