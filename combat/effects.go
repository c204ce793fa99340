package combat

import (
	"github.com/lixenwraith/starfall/scene"
	"github.com/lixenwraith/starfall/vmath"
)

// Effect is one pooled visual effect slot
type Effect struct {
	InUse       bool
	Lifetime    float64
	MaxLifetime float64
	Visual      scene.Visual

	Position  vmath.Vec3
	Size      float64
	Scale     float64
	Opacity   float64
	Intensity float64
}

// Progress returns Lifetime/MaxLifetime
func (e *Effect) Progress() float64 {
	if e.MaxLifetime <= 0 {
		return 1
	}
	return e.Lifetime / e.MaxLifetime
}

// EffectProfile controls slot lifetime and interpolation
type EffectProfile struct {
	Kind         scene.Kind
	Lifetime     float64
	Growth       float64 // Scale multiplier reached at end of life, added to 1
	MaxIntensity float64
}

// EffectPool is a fixed set of pre-attached visuals with a free-slot stack
// Spawn with no free slot is dropped
type EffectPool struct {
	profile EffectProfile
	slots   []Effect
	free    []int // Indices of idle slots, top is the next to spawn
	scene   scene.Scene
	active  int
	dropped int
}

// NewEffectPool pre-attaches size hidden visuals
func NewEffectPool(size int, profile EffectProfile, s scene.Scene) *EffectPool {
	p := &EffectPool{
		profile: profile,
		slots:   make([]Effect, size),
		free:    make([]int, 0, size),
		scene:   scene.OrDiscard(s),
	}
	for i := range p.slots {
		v := p.scene.Attach(profile.Kind, vmath.Vec3{}, 0)
		p.scene.SetVisible(v, false)
		p.slots[i].Visual = v
		p.slots[i].MaxLifetime = profile.Lifetime
	}
	for i := size - 1; i >= 0; i-- {
		p.free = append(p.free, i)
	}
	return p
}

// Spawn pops a free slot, returns false when the pool is exhausted
func (p *EffectPool) Spawn(pos vmath.Vec3, size float64) bool {
	n := len(p.free)
	if n == 0 {
		p.dropped++
		return false
	}
	i := p.free[n-1]
	p.free = p.free[:n-1]

	e := &p.slots[i]
	e.InUse = true
	e.Lifetime = 0
	e.MaxLifetime = p.profile.Lifetime
	e.Position = pos
	e.Size = size
	e.Scale = size
	e.Opacity = 1
	e.Intensity = p.profile.MaxIntensity
	p.active++

	p.scene.SetTransform(e.Visual, pos, e.Scale, e.Opacity)
	p.scene.SetVisible(e.Visual, true)
	return true
}

// Update ages active slots, hiding the ones past MaxLifetime
func (p *EffectPool) Update(dt float64) {
	for i := range p.slots {
		e := &p.slots[i]
		if !e.InUse {
			continue
		}

		e.Lifetime += dt
		if e.Lifetime >= e.MaxLifetime {
			p.release(i)
			continue
		}

		progress := e.Progress()
		e.Scale = e.Size * (1 + p.profile.Growth*progress)
		e.Opacity = 1 - progress
		e.Intensity = p.profile.MaxIntensity * (1 - progress)
		p.scene.SetTransform(e.Visual, e.Position, e.Scale, e.Opacity)
	}
}

func (p *EffectPool) release(i int) {
	e := &p.slots[i]
	e.InUse = false
	e.Opacity = 0
	e.Intensity = 0
	p.active--
	p.free = append(p.free, i)
	p.scene.SetVisible(e.Visual, false)
}

// Clear hides every active slot
func (p *EffectPool) Clear() {
	for i := range p.slots {
		if p.slots[i].InUse {
			p.release(i)
		}
	}
}

// Close detaches every visual, the pool is unusable afterwards
func (p *EffectPool) Close() {
	for i := range p.slots {
		p.scene.Detach(p.slots[i].Visual)
		p.slots[i] = Effect{}
	}
	p.slots = nil
	p.free = nil
	p.active = 0
}

// Active returns the number of slots in use
func (p *EffectPool) Active() int { return p.active }

// Cap returns the pool size
func (p *EffectPool) Cap() int { return len(p.slots) }

// Dropped returns how many spawns found no free slot
func (p *EffectPool) Dropped() int { return p.dropped }

// Each visits active slots
func (p *EffectPool) Each(fn func(*Effect)) {
	for i := range p.slots {
		if p.slots[i].InUse {
			fn(&p.slots[i])
		}
	}
}
