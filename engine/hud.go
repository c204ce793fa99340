package engine

import (
	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/event"
)

// notificationTTL is how long a notification stays on the HUD, in sim seconds
const notificationTTL = 3.0

type hudState struct {
	notice    event.NotificationPayload
	noticeAge float64
	hasNotice bool
}

// post shows n unless a higher-priority notice is still displayed
func (h *hudState) post(n event.NotificationPayload) {
	if h.hasNotice && n.Priority < h.notice.Priority {
		return
	}
	h.notice = n
	h.noticeAge = 0
	h.hasNotice = true
}

func (h *hudState) age(dt float64) {
	if !h.hasNotice {
		return
	}
	h.noticeAge += dt
	if h.noticeAge >= notificationTTL {
		h.hasNotice = false
		h.notice = event.NotificationPayload{}
	}
}

// HUD is a read-only snapshot for the UI collaborator
type HUD struct {
	Frame int64
	Alive bool

	Health float64 // Ratios in [0,1]
	Shield float64
	Energy float64
	Speed  float64

	Target         core.Handle
	TargetDistance float64
	TargetIndex    int
	TargetCount    int

	Credits int

	Notice   string
	Severity event.Severity
}

// HUD returns the current snapshot
func (s *Simulation) HUD() HUD {
	h := HUD{
		Frame:       s.frame,
		TargetIndex: -1,
		TargetCount: len(s.combat.Targets()),
		Credits:     s.ledger.Credits(),
	}
	if t, ok := s.combat.CurrentTarget(); ok {
		h.Target = t.Entity
		h.TargetDistance = t.Distance
		h.TargetIndex = s.combat.TargetIndex()
	}
	if p := s.player; p != nil {
		h.Alive = p.Alive()
		h.Health = p.HealthRatio()
		h.Shield = p.ShieldRatio()
		h.Energy = p.EnergyRatio()
		h.Speed = p.Velocity.Len()
	}
	if s.hud.hasNotice {
		h.Notice = s.hud.notice.Message
		h.Severity = s.hud.notice.Severity
	}
	return h
}
