package status

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableStablePointers(t *testing.T) {
	r := NewRegistry()

	a := r.Ints.Get("combat.fired")
	a.Add(3)
	assert.Same(t, a, r.Ints.Get("combat.fired"))
	assert.True(t, r.Ints.Has("combat.fired"))
	assert.False(t, r.Ints.Has("combat.rejected"))
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("lod.managed").Store(4)
	r.Floats.Get("engine.frame_ms").Set(1.5)

	snap := r.Snapshot()
	assert.Equal(t, map[string]float64{"lod.managed": 4, "engine.frame_ms": 1.5}, snap)
	assert.Equal(t, 2, r.TotalCount())
}

func TestRangeSorted(t *testing.T) {
	r := NewRegistry()
	for _, k := range []string{"c", "a", "b"} {
		r.Ints.Get(k)
	}
	var keys []string
	r.Ints.Range(func(key string, _ *atomic.Int64) { keys = append(keys, key) })
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestAtomicFloatConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 400.0, f.Get())
}

func TestAtomicFloatSetMax(t *testing.T) {
	var f AtomicFloat
	assert.Equal(t, 2.0, f.SetMax(2))
	assert.Equal(t, 2.0, f.SetMax(1))
	assert.Equal(t, 3.5, f.SetMax(3.5))
	assert.Equal(t, 3.5, f.Get())
}

func TestTableConcurrentGet(t *testing.T) {
	tab := NewTable[atomic.Int64]()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tab.Get("shared").Add(1)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, tab.Count())
	assert.Equal(t, int64(8), tab.Get("shared").Load())
	assert.Equal(t, []string{"shared"}, tab.Names())
}
