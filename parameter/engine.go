package parameter

import "time"

// Game loop
const (
	// TickInterval is the fixed simulation step (~60 Hz)
	TickInterval = 16 * time.Millisecond

	// MaxFrameDelta caps dt handed to the simulation after a stall
	MaxFrameDelta = 0.1
)

// Event queue
const (
	// EventQueueSize is the initial capacity of the event ring buffer, a power of two
	EventQueueSize = 1024
)
