package mqtt

import (
	"fmt"
	"sync"

	"github.com/kochimetro/induction/core/planner"
)

// MockPublisher records published plans for tests.
type MockPublisher struct {
	Plans  []*planner.InductionPlan
	Fail   bool
	Closed bool
	mu     sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishPlan records the plan or returns an error if configured to fail.
func (m *MockPublisher) PublishPlan(plan *planner.InductionPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("publish failed")
	}
	m.Plans = append(m.Plans, plan)
	return nil
}

// Close marks the publisher closed.
func (m *MockPublisher) Close() error {
	m.mu.Lock()
	m.Closed = true
	m.mu.Unlock()
	return nil
}
