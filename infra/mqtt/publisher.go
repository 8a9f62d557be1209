package mqtt

import (
	"fmt"
	"sync"
)

// Publisher sends scheduling events to an external broker.
type Publisher interface {
	Publish(topic string, event any) error
}

// MockPublisher is a simple publisher used in tests.
type MockPublisher struct {
	Messages map[string][]any
	Fail     bool
	mu       sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Messages: make(map[string][]any)}
}

// Publish records the event or returns an error if configured to fail.
func (m *MockPublisher) Publish(topic string, event any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Messages[topic] = append(m.Messages[topic], event)
	return nil
}

// Published returns the events recorded for a topic.
func (m *MockPublisher) Published(topic string) []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]any(nil), m.Messages[topic]...)
}
