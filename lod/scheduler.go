package lod

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/parameter"
	"github.com/lixenwraith/starfall/status"
	"github.com/lixenwraith/starfall/vmath"
)

// Viewpoint supplies the camera position distances are measured from
type Viewpoint interface {
	ViewPosition() vmath.Vec3
}

// ViewpointFunc adapts a function to Viewpoint
type ViewpointFunc func() vmath.Vec3

func (f ViewpointFunc) ViewPosition() vmath.Vec3 { return f() }

// Managed is an entity whose detail the scheduler controls
type Managed interface {
	LODPosition() vmath.Vec3
	SetDetail(t Tier)
}

// Options configures a Scheduler
type Options struct {
	Interval    float64
	MaxDistance float64
	Thresholds  Thresholds

	Status *status.Registry
	Logger *zerolog.Logger
}

// DefaultOptions returns parameter tuning
func DefaultOptions() Options {
	return Options{
		Interval:    parameter.LODUpdateInterval,
		MaxDistance: parameter.LODMaxDistance,
		Thresholds:  DefaultThresholds(),
	}
}

type entry struct {
	tier    Tier
	enabled bool
}

// Scheduler recomputes detail tiers on a fixed interval
// SetDetail is called exactly once per tier change with the new tier
type Scheduler struct {
	view    Viewpoint
	opts    Options
	entries map[Managed]*entry
	order   []Managed

	elapsed float64
	enabled bool
	log     zerolog.Logger

	statChanges *atomic.Int64
	statManaged *atomic.Int64
}

// NewScheduler creates a scheduler measuring from view
func NewScheduler(view Viewpoint, opts Options) *Scheduler {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "lod").Logger()
	}
	if opts.Thresholds == (Thresholds{}) {
		opts.Thresholds = DefaultThresholds()
	}
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}

	return &Scheduler{
		view:        view,
		opts:        opts,
		entries:     make(map[Managed]*entry),
		enabled:     true,
		log:         log,
		statChanges: reg.Ints.Get("lod.changes"),
		statManaged: reg.Ints.Get("lod.managed"),
	}
}

// Register starts managing m at TierHigh, false if already managed
func (s *Scheduler) Register(m Managed) bool {
	if m == nil {
		return false
	}
	if _, ok := s.entries[m]; ok {
		return false
	}
	s.entries[m] = &entry{tier: TierHigh, enabled: true}
	s.order = append(s.order, m)
	s.statManaged.Store(int64(len(s.order)))
	return true
}

// Unregister restores m to TierHigh and stops managing it
func (s *Scheduler) Unregister(m Managed) bool {
	e, ok := s.entries[m]
	if !ok {
		return false
	}
	s.setTier(m, e, TierHigh)
	delete(s.entries, m)
	for i, o := range s.order {
		if o == m {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.statManaged.Store(int64(len(s.order)))
	return true
}

// SetEnabled toggles management of m, disabling restores TierHigh
func (s *Scheduler) SetEnabled(m Managed, enabled bool) bool {
	e, ok := s.entries[m]
	if !ok {
		return false
	}
	e.enabled = enabled
	if !enabled {
		s.setTier(m, e, TierHigh)
	}
	return true
}

// SetGlobalEnabled toggles the whole scheduler, disabling restores every entity to TierHigh
func (s *Scheduler) SetGlobalEnabled(enabled bool) {
	s.enabled = enabled
	if enabled {
		s.elapsed = 0
		return
	}
	for _, m := range s.order {
		s.setTier(m, s.entries[m], TierHigh)
	}
}

// Enabled reports the global toggle
func (s *Scheduler) Enabled() bool {
	return s.enabled
}

// Tier returns the current tier of m
func (s *Scheduler) Tier(m Managed) (Tier, bool) {
	e, ok := s.entries[m]
	if !ok {
		return TierHigh, false
	}
	return e.tier, true
}

// Len returns the number of managed entities
func (s *Scheduler) Len() int {
	return len(s.order)
}

// Update accumulates dt and recomputes tiers once per interval
func (s *Scheduler) Update(dt float64) {
	if !s.enabled || dt <= 0 {
		return
	}
	s.elapsed += dt
	if s.elapsed < s.opts.Interval {
		return
	}
	s.elapsed = 0
	s.recompute()
}

// ForceUpdate recomputes immediately and restarts the interval
func (s *Scheduler) ForceUpdate() {
	if !s.enabled {
		return
	}
	s.elapsed = 0
	s.recompute()
}

func (s *Scheduler) recompute() {
	if s.view == nil {
		return
	}
	origin := s.view.ViewPosition()

	for _, m := range s.order {
		e := s.entries[m]
		if !e.enabled {
			continue
		}
		pos := m.LODPosition()
		if !vmath.IsFinite(pos) {
			continue
		}
		s.setTier(m, e, TierFor(vmath.Distance(origin, pos), s.opts.MaxDistance, s.opts.Thresholds))
	}
}

func (s *Scheduler) setTier(m Managed, e *entry, t Tier) {
	if e.tier == t {
		return
	}
	e.tier = t
	s.statChanges.Add(1)
	if err := core.Guard(func() { m.SetDetail(t) }); err != nil {
		s.log.Warn().Err(err).Str("tier", t.String()).Msg("detail callback failed")
	}
}
