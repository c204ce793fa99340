package core

type arenaSlot[T any] struct {
	value      T
	generation uint32
	alive      bool
}

// Arena stores values addressed by generation-checked handles
// Removal tombstones the slot: the old handle stops resolving and the slot index is
// recycled with a bumped generation, so stale handles never alias a newer value
// Acquire and release are O(1) via a free list
type Arena[T any] struct {
	slots []arenaSlot[T]
	free  []uint32
	live  int
}

func NewArena[T any](capacity int) *Arena[T] {
	return &Arena[T]{
		slots: make([]arenaSlot[T], 0, capacity),
		free:  make([]uint32, 0, capacity),
	}
}

// Insert stores v and returns its handle
func (a *Arena[T]) Insert(v T) Handle {
	a.live++

	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]

		s := &a.slots[idx]
		s.generation++
		if s.generation == 0 {
			s.generation = 1
		}
		s.value = v
		s.alive = true
		return Handle{Index: idx, Generation: s.generation}
	}

	a.slots = append(a.slots, arenaSlot[T]{value: v, generation: 1, alive: true})
	return Handle{Index: uint32(len(a.slots) - 1), Generation: 1}
}

// Get resolves h, ok is false for nil, removed, or recycled handles
func (a *Arena[T]) Get(h Handle) (T, bool) {
	var zero T
	if !a.Alive(h) {
		return zero, false
	}
	return a.slots[h.Index].value, true
}

// Alive reports whether h still refers to a live value
func (a *Arena[T]) Alive(h Handle) bool {
	if h.IsNil() || int(h.Index) >= len(a.slots) {
		return false
	}
	s := &a.slots[h.Index]
	return s.alive && s.generation == h.Generation
}

// Remove tombstones h, returns false if it was already stale
func (a *Arena[T]) Remove(h Handle) bool {
	if !a.Alive(h) {
		return false
	}
	var zero T
	s := &a.slots[h.Index]
	s.alive = false
	s.value = zero
	a.free = append(a.free, h.Index)
	a.live--
	return true
}

// Len returns the number of live values
func (a *Arena[T]) Len() int {
	return a.live
}

// Each visits live values in slot order until fn returns false
func (a *Arena[T]) Each(fn func(Handle, T) bool) {
	for i := range a.slots {
		s := &a.slots[i]
		if !s.alive {
			continue
		}
		if !fn(Handle{Index: uint32(i), Generation: s.generation}, s.value) {
			return
		}
	}
}

// Clear tombstones every live value
func (a *Arena[T]) Clear() {
	a.Each(func(h Handle, _ T) bool {
		a.Remove(h)
		return true
	})
}
