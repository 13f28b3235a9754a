package events

import "log/slog"

// Notify publishes a change event if a publisher is configured.
// Errors are logged but not returned (fire-and-forget): the store write has
// already committed and must not be reported as failed.
func Notify(publisher EventPublisher, eventType EventType, projectID, entityID int) {
	if publisher == nil {
		return
	}

	if err := publisher.Publish(Event{
		Type:      eventType,
		ProjectID: projectID,
		EntityID:  entityID,
	}); err != nil {
		slog.Warn("failed to publish event",
			"event_type", eventType,
			"project_id", projectID,
			"entity_id", entityID,
			"error", err)
	}
}
