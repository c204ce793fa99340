package event

import (
	"github.com/lixenwraith/starfall/core"
	"github.com/lixenwraith/starfall/vmath"
)

// Severity tags a notification for UI styling
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "info"
	}
}

// NotificationPayload is a UI message, higher priority displaces lower
type NotificationPayload struct {
	Message  string
	Severity Severity
	Priority int
}

// CollisionPayload describes a resolved body-body contact
type CollisionPayload struct {
	A, B        core.Handle
	Position    vmath.Vec3
	ImpactSpeed float64
	Damage      float64
}

// ProjectileImpactPayload describes a projectile hit
type ProjectileImpactPayload struct {
	Owner    core.Handle
	Target   core.Handle
	WeaponID string
	Position vmath.Vec3
	Damage   float64
	Size     float64
}

// ProjectileExpiredPayload describes a projectile removed without hitting
type ProjectileExpiredPayload struct {
	Owner    core.Handle
	WeaponID string
	Position vmath.Vec3
}

// EntityDestroyedPayload describes a body removed after losing all hit points
type EntityDestroyedPayload struct {
	Entity   core.Handle
	Killer   core.Handle
	Position vmath.Vec3
	Size     float64
	Hostile  bool
	Bounty   int
}

// WeaponFiredPayload describes a successful discharge
type WeaponFiredPayload struct {
	Source   core.Handle
	WeaponID string
	Effect   string
	Count    int
	Position vmath.Vec3
	Player   bool
}

// FireRejectedPayload describes a gated discharge
type FireRejectedPayload struct {
	Source   core.Handle
	WeaponID string
	Reason   string
	Player   bool
}

// TargetChangedPayload describes the selected target, Target is nil when the list emptied
type TargetChangedPayload struct {
	Target   core.Handle
	Distance float64
	Index    int
	Count    int
}

// UpgradePurchasedPayload describes a purchase
type UpgradePurchasedPayload struct {
	ID      string
	Name    string
	Cost    int
	Balance int
}

// CreditsChangedPayload describes a balance change
type CreditsChangedPayload struct {
	Delta   int
	Balance int
}
