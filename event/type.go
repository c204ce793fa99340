package event

// EventType represents the type of simulation event
type EventType int

const (
	// EventGameReset clears transient combat state
	// Trigger: Simulation.Reset | Consumer: CombatResolver | Payload: nil
	EventGameReset EventType = iota

	// EventNotification carries a message for the UI collaborator
	// Trigger: any component | Consumer: HUD | Payload: *NotificationPayload
	EventNotification

	// EventCollision signals a resolved body-body collision
	// Trigger: PhysicsWorld | Consumer: audio, metrics | Payload: *CollisionPayload
	EventCollision

	// EventProjectileImpact signals a projectile hit a body
	// Trigger: PhysicsWorld | Consumer: CombatResolver (impact effect), audio | Payload: *ProjectileImpactPayload
	EventProjectileImpact

	// EventProjectileExpired signals a projectile reached the end of its lifespan
	// Trigger: PhysicsWorld | Consumer: metrics | Payload: *ProjectileExpiredPayload
	EventProjectileExpired

	// EventEntityDestroyed signals a damageable body ran out of hit points
	// Trigger: PhysicsWorld | Consumer: CombatResolver (explosion), Simulation (bounty), audio | Payload: *EntityDestroyedPayload
	EventEntityDestroyed

	// EventWeaponFired signals a successful weapon discharge
	// Trigger: CombatResolver | Consumer: audio | Payload: *WeaponFiredPayload
	EventWeaponFired

	// EventFireRejected signals a gated weapon discharge
	// Trigger: CombatResolver | Consumer: audio, HUD | Payload: *FireRejectedPayload
	EventFireRejected

	// EventTargetChanged signals a new selected target
	// Trigger: CombatResolver | Consumer: HUD | Payload: *TargetChangedPayload
	EventTargetChanged

	// EventUpgradePurchased signals a completed upgrade purchase
	// Trigger: UpgradeLedger | Consumer: HUD, audio | Payload: *UpgradePurchasedPayload
	EventUpgradePurchased

	// EventCreditsChanged signals a credit balance change
	// Trigger: UpgradeLedger | Consumer: HUD | Payload: *CreditsChangedPayload
	EventCreditsChanged
)

// GameEvent represents a single event with metadata
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
