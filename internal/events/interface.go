package events

// EventPublisher is what the services depend on to announce changes.
// A nil EventPublisher is valid everywhere and means "nobody is listening".
type EventPublisher interface {
	Publish(event Event) error
}

// Compile-time verification that *Broker implements EventPublisher
var _ EventPublisher = (*Broker)(nil)
