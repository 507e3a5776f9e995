package interfaces

// EventPublisher delivers audit events emitted after committed transactions.
// Implementations must not block the calling transaction longer than a
// network write; failures are reported, not retried.
type EventPublisher interface {
	Publish(topic string, event any) error
}
