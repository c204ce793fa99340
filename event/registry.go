package event

var typeToName = map[EventType]string{
	EventGameReset:         "GameReset",
	EventNotification:      "Notification",
	EventCollision:         "Collision",
	EventProjectileImpact:  "ProjectileImpact",
	EventProjectileExpired: "ProjectileExpired",
	EventEntityDestroyed:   "EntityDestroyed",
	EventWeaponFired:       "WeaponFired",
	EventFireRejected:      "FireRejected",
	EventTargetChanged:     "TargetChanged",
	EventUpgradePurchased:  "UpgradePurchased",
	EventCreditsChanged:    "CreditsChanged",
}

var nameToType = func() map[string]EventType {
	m := make(map[string]EventType, len(typeToName))
	for t, n := range typeToName {
		m[n] = t
	}
	return m
}()

// String returns the registered name of the event type
func (t EventType) String() string {
	if n, ok := typeToName[t]; ok {
		return n
	}
	return "Unknown"
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[name]
	return et, ok
}
