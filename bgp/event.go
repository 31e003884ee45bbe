package bgp

// EventKind tags the variant carried by an Event.
type EventKind uint8

const (
	EventManualStart EventKind = iota
	EventTcpConnectionConfirmed
	EventBgpOpen
	EventKeepAliveMsg
	EventUpdateMsg
	EventEstablished
	EventLocRibChanged
	EventAdjRibInChanged
	EventAdjRibOutChanged
)

func (k EventKind) String() string {
	switch k {
	case EventManualStart:
		return "ManualStart"
	case EventTcpConnectionConfirmed:
		return "TcpConnectionConfirmed"
	case EventBgpOpen:
		return "BgpOpen"
	case EventKeepAliveMsg:
		return "KeepAliveMsg"
	case EventUpdateMsg:
		return "UpdateMsg"
	case EventEstablished:
		return "Established"
	case EventLocRibChanged:
		return "LocRibChanged"
	case EventAdjRibInChanged:
		return "AdjRibInChanged"
	case EventAdjRibOutChanged:
		return "AdjRibOutChanged"
	default:
		return "Unknown"
	}
}

// Event is a typed variant; Open/Keepalive/Update only populate the Msg
// field relevant to their Kind.
type Event struct {
	Kind EventKind
	Msg  Message
}

// EventQueue is a strictly FIFO, single-producer/single-consumer queue of
// events for one peer. The peer task is the sole owner; no locking is
// required because nothing else touches it.
type EventQueue struct {
	items []Event
}

// NewEventQueue returns an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Enqueue appends e to the back of the queue.
func (q *EventQueue) Enqueue(e Event) {
	q.items = append(q.items, e)
}

// Dequeue removes and returns the front event, or ok=false if the queue is
// empty.
func (q *EventQueue) Dequeue() (Event, bool) {
	if len(q.items) == 0 {
		return Event{}, false
	}
	e := q.items[0]
	q.items = q.items[1:]
	return e, true
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.items)
}
