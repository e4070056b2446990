package model

// DamageType classifies an attack for defence-bonus selection.
type DamageType int32

const (
	DamageMelee DamageType = iota
	DamageRanged
	DamageMagic
	DamageBurn
	DamagePoison
)

// String returns human-readable damage type name.
func (d DamageType) String() string {
	switch d {
	case DamageMelee:
		return "MELEE"
	case DamageRanged:
		return "RANGED"
	case DamageMagic:
		return "MAGIC"
	case DamageBurn:
		return "BURN"
	case DamagePoison:
		return "POISON"
	default:
		return "UNKNOWN"
	}
}

// CombatStyle determines which effective levels receive a flat style bonus.
type CombatStyle int32

const (
	StyleAccurate CombatStyle = iota
	StyleAggressive
	StyleDefensive
	StyleControlled
)

// String returns human-readable style name.
func (s CombatStyle) String() string {
	switch s {
	case StyleAccurate:
		return "ACCURATE"
	case StyleAggressive:
		return "AGGRESSIVE"
	case StyleDefensive:
		return "DEFENSIVE"
	case StyleControlled:
		return "CONTROLLED"
	default:
		return "UNKNOWN"
	}
}

// EquipmentBonus is the combined gear contribution to combat rolls.
// Defensive bonuses are kept per damage type; DefenceFor selects one.
type EquipmentBonus struct {
	Attack           int `yaml:"attack"`
	Strength         int `yaml:"strength"`
	MeleeDefence     int `yaml:"melee_defence"`
	RangeDefence     int `yaml:"range_defence"`
	MagicDefence     int `yaml:"magic_defence"`
	AttackSpeedTicks int `yaml:"attack_speed_ticks"`
}

// DefenceFor returns the defensive bonus matching the incoming damage type.
// Burn and Poison bypass gear entirely (typeless damage).
func (b EquipmentBonus) DefenceFor(dtype DamageType) int {
	switch dtype {
	case DamageMelee:
		return b.MeleeDefence
	case DamageRanged:
		return b.RangeDefence
	case DamageMagic:
		return b.MagicDefence
	default:
		return 0
	}
}

// CombatantStats is a stat snapshot for one side of a single attack resolution.
// Built fresh at the moment of resolution and discarded after use. It is a
// value, not an entity, and must never be cached across ticks.
type CombatantStats struct {
	Attack     int
	Strength   int
	Defence    int
	Bonus      EquipmentBonus
	Style      CombatStyle
	DamageType DamageType
}
