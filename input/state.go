package input

// State accumulates one frame of player intent
// Owned by the top-level loop and passed by reference; the simulation reads it once per
// frame and then calls Clear
//
// Axes are in [-1, 1]. A terminal delivers key repeats instead of key-up events, so axes
// are re-asserted by every repeat and fall back to zero after each frame
type State struct {
	Throttle float64
	Lateral  float64
	Yaw      float64
	Pitch    float64

	FirePrimary   bool
	FireSecondary bool
	CycleTarget   bool
	ToggleLOD     bool
	Reset         bool
	Quit          bool

	// Purchase holds upgrade ids requested this frame in request order
	Purchase []string
}

// Accelerate sets the forward throttle axis
func (s *State) Accelerate(amount float64) {
	s.Throttle = clampAxis(amount)
}

// Strafe sets the lateral thrust axis, positive is right
func (s *State) Strafe(amount float64) {
	s.Lateral = clampAxis(amount)
}

// Rotate sets yaw and pitch axes, positive yaw turns right and positive pitch noses up
func (s *State) Rotate(yaw, pitch float64) {
	s.Yaw = clampAxis(yaw)
	s.Pitch = clampAxis(pitch)
}

// RequestPurchase queues an upgrade purchase for this frame
func (s *State) RequestPurchase(id string) {
	if id == "" {
		return
	}
	s.Purchase = append(s.Purchase, id)
}

// Apply folds a bound action into the state
func (s *State) Apply(a Action) {
	switch a {
	case ActionThrottleUp:
		s.Accelerate(1)
	case ActionThrottleDown:
		s.Accelerate(-1)
	case ActionStrafeLeft:
		s.Strafe(-1)
	case ActionStrafeRight:
		s.Strafe(1)
	case ActionYawLeft:
		s.Yaw = -1
	case ActionYawRight:
		s.Yaw = 1
	case ActionPitchUp:
		s.Pitch = 1
	case ActionPitchDown:
		s.Pitch = -1
	case ActionFirePrimary:
		s.FirePrimary = true
	case ActionFireSecondary:
		s.FireSecondary = true
	case ActionCycleTarget:
		s.CycleTarget = true
	case ActionToggleLOD:
		s.ToggleLOD = true
	case ActionReset:
		s.Reset = true
	case ActionQuit:
		s.Quit = true
	}
}

// Idle reports whether the state carries no intent
func (s *State) Idle() bool {
	return s.Throttle == 0 && s.Lateral == 0 && s.Yaw == 0 && s.Pitch == 0 &&
		!s.FirePrimary && !s.FireSecondary && !s.CycleTarget && !s.ToggleLOD &&
		!s.Reset && !s.Quit && len(s.Purchase) == 0
}

// Clear zeroes per-frame intent, Quit is sticky
func (s *State) Clear() {
	quit := s.Quit
	purchase := s.Purchase[:0]
	*s = State{Quit: quit, Purchase: purchase}
}

func clampAxis(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	if v != v {
		return 0
	}
	return v
}
