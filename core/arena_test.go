package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaInsertGetRemove(t *testing.T) {
	a := NewArena[string](4)

	h1 := a.Insert("ship")
	h2 := a.Insert("alien")
	require.False(t, h1.IsNil())
	assert.Equal(t, 2, a.Len())

	v, ok := a.Get(h2)
	require.True(t, ok)
	assert.Equal(t, "alien", v)

	assert.True(t, a.Remove(h1))
	assert.False(t, a.Remove(h1), "second remove must report stale")
	_, ok = a.Get(h1)
	assert.False(t, ok)
	assert.Equal(t, 1, a.Len())
}

func TestArenaRecycledSlotRejectsStaleHandle(t *testing.T) {
	a := NewArena[int](1)

	old := a.Insert(1)
	a.Remove(old)
	fresh := a.Insert(2)

	assert.Equal(t, old.Index, fresh.Index, "slot index is recycled")
	assert.NotEqual(t, old.Generation, fresh.Generation)

	_, ok := a.Get(old)
	assert.False(t, ok, "stale handle must not alias the new value")

	v, ok := a.Get(fresh)
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestArenaNilHandle(t *testing.T) {
	a := NewArena[int](0)
	a.Insert(7)

	_, ok := a.Get(Nil)
	assert.False(t, ok)
	assert.False(t, a.Alive(Handle{Index: 99, Generation: 1}))
	assert.Equal(t, "nil", Nil.String())
}

func TestArenaEachAndClear(t *testing.T) {
	a := NewArena[int](3)
	for i := 0; i < 3; i++ {
		a.Insert(i)
	}

	sum := 0
	a.Each(func(_ Handle, v int) bool {
		sum += v
		return true
	})
	assert.Equal(t, 3, sum)

	a.Clear()
	assert.Equal(t, 0, a.Len())
}

func TestGuardRecoversPanic(t *testing.T) {
	err := Guard(func() { panic("bad entity") })
	require.Error(t, err)

	var fault *Fault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, "bad entity", fault.Value)
	assert.NotEmpty(t, fault.Stack)

	assert.NoError(t, Guard(func() {}))
}

func TestKineticIntegrate(t *testing.T) {
	k := Kinetic{Accel: [3]float64{0, 0, 2}}
	k.Integrate(0.5)
	assert.Equal(t, 1.0, k.Velocity[2])
	assert.Equal(t, 0.5, k.Position[2])
}

func TestGoReportsCrash(t *testing.T) {
	crashed := make(chan *Fault, 1)
	Go(func() { panic("input lost") }, func(f *Fault) { crashed <- f })

	f := <-crashed
	assert.Equal(t, "input lost", f.Value)
	assert.NotEmpty(t, f.Stack)
}
