package core

import "fmt"

// Handle is a weak, generation-checked reference to an arena slot
// The zero Handle refers to nothing; generations start at 1
type Handle struct {
	Index      uint32
	Generation uint32
}

// Nil is the empty handle
var Nil Handle

// IsNil reports whether the handle was never assigned
func (h Handle) IsNil() bool {
	return h.Generation == 0
}

func (h Handle) String() string {
	if h.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%d:%d", h.Index, h.Generation)
}
