package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	EventProjectCreated EventType = "project_created"
	EventProjectUpdated EventType = "project_updated"
	EventProjectDeleted EventType = "project_deleted"
	EventTaskCreated    EventType = "task_created"
	EventTaskUpdated    EventType = "task_updated"
	EventTaskDeleted    EventType = "task_deleted"
)

// Event represents a committed change to a project or one of its tasks
type Event struct {
	Type       EventType `json:"type"`
	ProjectID  int       `json:"projectId"` // For filtering - which project was modified
	EntityID   int       `json:"entityId"`  // ID of the project or task that changed
	Timestamp  time.Time `json:"timestamp"`
	SequenceID int64     `json:"sequenceId"` // Monotonically increasing sequence number for ordering
}
