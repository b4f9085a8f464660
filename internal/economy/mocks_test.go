package economy

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/LuckBot_Go/internal/event"
	"github.com/osse101/LuckBot_Go/internal/roll"
)

// MockPublisher implements event.Publisher for testing
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}

func eventOfType(t event.Type) interface{} {
	return mock.MatchedBy(func(e event.Event) bool { return e.Type == t })
}

// stubRoller always drops the same item and records the luck it was asked to roll with
type stubRoller struct {
	mu     sync.Mutex
	result roll.Result
	lucks  []float64
}

func (r *stubRoller) PerformRoll(luck float64) roll.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lucks = append(r.lucks, luck)
	return r.result
}

func (r *stubRoller) lastLuck() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.lucks) == 0 {
		return 0
	}
	return r.lucks[len(r.lucks)-1]
}
