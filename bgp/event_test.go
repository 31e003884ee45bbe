package bgp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventQueueFIFOOrder(t *testing.T) {
	q := NewEventQueue()
	q.Enqueue(Event{Kind: EventManualStart})
	q.Enqueue(Event{Kind: EventBgpOpen})
	q.Enqueue(Event{Kind: EventKeepAliveMsg})

	first, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, EventManualStart, first.Kind)

	second, ok := q.Dequeue()
	assert.True(t, ok)
	assert.Equal(t, EventBgpOpen, second.Kind)

	assert.Equal(t, 1, q.Len())
}

func TestEventQueueDequeueEmpty(t *testing.T) {
	q := NewEventQueue()
	_, ok := q.Dequeue()
	assert.False(t, ok)
}
