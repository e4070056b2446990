package model

// CombatTarget is the capability contract every attackable agent implements.
// Player, Npc and Pet all satisfy it; combat code never type-switches on the
// concrete kind.
type CombatTarget interface {
	// ID returns the unique object ID inside the world.
	ID() uint32

	// Name returns the display name.
	Name() string

	// IsAlive reports whether current HP is above zero.
	IsAlive() bool

	// CurrentHP returns current hitpoints.
	CurrentHP() int

	// MaxHP returns maximum hitpoints.
	MaxHP() int

	// Position returns the logical (end-of-tick) position.
	Position() Position

	// PreferredDefenceType returns the damage type this target defends
	// against by default; informational for attackers picking a style.
	PreferredDefenceType() DamageType

	// DefenceStats builds the defender-side stat snapshot for one attack
	// resolution. Called fresh per resolution, never cached.
	DefenceStats() CombatantStats

	// ApplyDamage subtracts amount from current HP, clamped to zero, and
	// returns the amount actually applied. Health-changed observers fire
	// before death observers; death fires exactly once per life.
	ApplyDamage(amount int, dtype DamageType, source CombatTarget) int
}

// HealthObserver receives HP changes on a target (HUD, bars).
type HealthObserver interface {
	OnHealthChanged(target CombatTarget, oldHP, newHP int)
}

// DamageObserver receives applied hits with their source.
// Used for retaliation (guard pets) and hate tracking.
type DamageObserver interface {
	OnDamaged(target CombatTarget, source CombatTarget, amount int)
}

// DeathObserver receives the terminal death notification.
// This is the hook loot/drop systems consume.
type DeathObserver interface {
	OnDeath(target CombatTarget, killer CombatTarget)
}
