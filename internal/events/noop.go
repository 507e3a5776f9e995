// Package events provides the default no-op audit publisher, used when no
// broker is configured.
package events

import "github.com/gbanking/gbanking/internal/interfaces"

// NoopPublisher discards every event.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (n *NoopPublisher) Publish(_ string, _ any) error { return nil }

var _ interfaces.EventPublisher = (*NoopPublisher)(nil)
