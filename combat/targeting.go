package combat

import (
	"math"
	"sort"

	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/physics"
	"github.com/lixenwraith/starfall/vmath"
)

// Target is one hostile in range of the player
type Target struct {
	Entity   core.Handle
	Distance float64
}

// targetList is rebuilt every pass, only the selected handle survives between passes
type targetList struct {
	entries []Target
	index   int // -1 when nothing is selected
}

func newTargetList() targetList {
	return targetList{entries: make([]Target, 0, 16), index: -1}
}

// rebuild scans hostile bodies within maxDist of origin, closest first
// Returns true when the selection changed
func (t *targetList) rebuild(world *physics.World, origin vmath.Vec3, maxDist float64, exclude core.Handle) bool {
	prev, hadPrev := t.current()

	t.entries = t.entries[:0]
	maxSq := maxDist * maxDist
	world.Bodies(func(c physics.Collidable) bool {
		h, ok := c.(physics.Hostile)
		if !ok || !h.IsHostile() {
			return true
		}
		b := c.PhysicsBody()
		if b.Handle() == exclude || !vmath.IsFinite(b.Position) {
			return true
		}
		dSq := vmath.DistanceSq(origin, b.Position)
		if dSq > maxSq {
			return true
		}
		t.entries = append(t.entries, Target{Entity: b.Handle(), Distance: math.Sqrt(dSq)})
		return true
	})

	sort.SliceStable(t.entries, func(i, j int) bool {
		return t.entries[i].Distance < t.entries[j].Distance
	})

	if len(t.entries) == 0 {
		t.index = -1
		return hadPrev
	}
	if !hadPrev {
		return false
	}

	for i, e := range t.entries {
		if e.Entity == prev.Entity {
			t.index = i
			return false
		}
	}

	// Previous target left range or died
	if t.index >= len(t.entries) {
		t.index = len(t.entries) - 1
	}
	return true
}

func (t *targetList) cycle() (Target, bool) {
	if len(t.entries) == 0 {
		t.index = -1
		return Target{}, false
	}
	t.index = (t.index + 1) % len(t.entries)
	return t.entries[t.index], true
}

func (t *targetList) current() (Target, bool) {
	if t.index < 0 || t.index >= len(t.entries) {
		return Target{}, false
	}
	return t.entries[t.index], true
}

func (t *targetList) clear() {
	t.entries = t.entries[:0]
	t.index = -1
}
