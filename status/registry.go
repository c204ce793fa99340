// Package status is a lock-free registry of named simulation counters and gauges
package status

import "sync/atomic"

// Registry holds the counters and gauges published by simulation components
// Writes happen on the sim goroutine, exporters read concurrently
type Registry struct {
	Ints   *Table[atomic.Int64]
	Floats *Table[AtomicFloat]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewTable[atomic.Int64](),
		Floats: NewTable[AtomicFloat](),
	}
}

// TotalCount returns the number of registered names of either kind
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}

// Snapshot copies every value into a plain map keyed by name
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64, r.TotalCount())
	r.Ints.Range(func(name string, v *atomic.Int64) { out[name] = float64(v.Load()) })
	r.Floats.Range(func(name string, v *AtomicFloat) { out[name] = v.Get() })
	return out
}
