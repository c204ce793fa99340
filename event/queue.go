package event

import (
	"github.com/lixenwraith/starfall/parameter"
)

// EventQueue is a ring buffer of simulation events
// Single producer/consumer: the simulation pushes and drains within one frame
//
// Overflow: the ring doubles, pending events are never overwritten
type EventQueue struct {
	events []GameEvent
	mask   uint64
	head   uint64 // Read index
	tail   uint64 // Write index
	frame  int64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{
		events: make([]GameEvent, parameter.EventQueueSize),
		mask:   parameter.EventQueueSize - 1,
	}
}

// SetFrame stamps subsequently pushed events with frame
func (eq *EventQueue) SetFrame(frame int64) {
	eq.frame = frame
}

// Push appends an event, amortized O(1)
func (eq *EventQueue) Push(event GameEvent) {
	if eq.tail-eq.head == uint64(len(eq.events)) {
		eq.grow()
	}
	eq.events[eq.tail&eq.mask] = event
	eq.tail++
}

// grow doubles capacity and unwraps pending events to the front
func (eq *EventQueue) grow() {
	n := eq.tail - eq.head
	next := make([]GameEvent, max(2*uint64(len(eq.events)), parameter.EventQueueSize))
	for i := uint64(0); i < n; i++ {
		next[i] = eq.events[(eq.head+i)&eq.mask]
	}
	eq.events = next
	eq.mask = uint64(len(next)) - 1
	eq.head = 0
	eq.tail = n
}

// Emit pushes a typed event stamped with the current frame, safe on a nil queue
func (eq *EventQueue) Emit(t EventType, payload any) {
	if eq == nil {
		return
	}
	eq.Push(GameEvent{Type: t, Payload: payload, Frame: eq.frame})
}

// Consume returns all pending events in FIFO order and advances head
func (eq *EventQueue) Consume() []GameEvent {
	if eq.tail == eq.head {
		return nil
	}

	result := make([]GameEvent, 0, eq.tail-eq.head)
	for i := eq.head; i < eq.tail; i++ {
		idx := i & eq.mask
		result = append(result, eq.events[idx])
		eq.events[idx] = GameEvent{}
	}
	eq.head = eq.tail
	return result
}

// Len returns pending event count
func (eq *EventQueue) Len() int {
	return int(eq.tail - eq.head)
}

// Cap returns the current ring capacity
func (eq *EventQueue) Cap() int {
	return len(eq.events)
}
