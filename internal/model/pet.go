package model

import (
	"math"
	"sync"
)

// EvolutionTier is a pet-level threshold changing stat multiplier and visual
// scale. Tiers are ordered by MinLevel ascending.
type EvolutionTier struct {
	MinLevel       int
	StatMultiplier float64
	Scale          float64
}

// PetDefinition is the static definition of one pet kind: base combat levels,
// innate bonuses, and the evolution tier table.
type PetDefinition struct {
	Name          string
	MaxHP         int
	AttackLevel   int
	StrengthLevel int
	DefenceLevel  int
	Bonus         EquipmentBonus
	AttackType    DamageType
	MoveSpeed     float64 // tiles per tick
	MaxLevel      int
	Tiers         []EvolutionTier
}

// TierFor returns the evolution tier active at the given pet level.
// Falls back to a neutral multiplier when no tier matches.
func (d *PetDefinition) TierFor(level int) EvolutionTier {
	tier := EvolutionTier{MinLevel: 1, StatMultiplier: 1, Scale: 1}
	for _, t := range d.Tiers {
		if level >= t.MinLevel {
			tier = t
		}
	}
	return tier
}

// StatsAt builds the pet's combat stat snapshot at the given pet level and
// owner Beastmastery level. The tier multiplier and the per-level owner
// percentage apply multiplicatively to both levels and bonuses.
func (d *PetDefinition) StatsAt(petLevel, beastmasteryLevel int, pctPerLevel float64) CombatantStats {
	if petLevel < 1 {
		petLevel = 1
	}
	if beastmasteryLevel < 1 {
		beastmasteryLevel = 1
	}

	factor := d.TierFor(petLevel).StatMultiplier
	factor *= 1 + pctPerLevel/100*float64(beastmasteryLevel)
	if factor < 0 {
		factor = 0
	}

	scaleLevel := func(v int) int {
		scaled := int(math.Floor(float64(v) * factor))
		if scaled < 1 {
			scaled = 1
		}
		return scaled
	}
	scaleBonus := func(v int) int {
		scaled := int(math.Floor(float64(v) * factor))
		if scaled < 0 {
			scaled = 0
		}
		return scaled
	}

	return CombatantStats{
		Attack:   scaleLevel(d.AttackLevel),
		Strength: scaleLevel(d.StrengthLevel),
		Defence:  scaleLevel(d.DefenceLevel),
		Bonus: EquipmentBonus{
			Attack:           scaleBonus(d.Bonus.Attack),
			Strength:         scaleBonus(d.Bonus.Strength),
			MeleeDefence:     scaleBonus(d.Bonus.MeleeDefence),
			RangeDefence:     scaleBonus(d.Bonus.RangeDefence),
			MagicDefence:     scaleBonus(d.Bonus.MagicDefence),
			AttackSpeedTicks: d.Bonus.AttackSpeedTicks,
		},
		Style:      StyleAggressive,
		DamageType: d.AttackType,
	}
}

// Pet is a player-owned combat or cosmetic pet.
type Pet struct {
	*Creature

	def   *PetDefinition
	owner *Player

	// pctPerLevel is the configured Beastmastery percentage applied per
	// owner skill level.
	pctPerLevel float64

	petMu      sync.RWMutex
	level      int
	experience int64
	guardMode  bool
}

// NewPet summons a pet of the given definition next to its owner.
func NewPet(id uint32, def *PetDefinition, owner *Player, level int, pctPerLevel float64) *Pet {
	if level < 1 {
		level = 1
	}
	if def.MaxLevel > 0 && level > def.MaxLevel {
		level = def.MaxLevel
	}
	p := &Pet{
		Creature:    NewCreature(id, def.Name, def.MaxHP, owner.Position(), def.MoveSpeed, def.AttackType),
		def:         def,
		owner:       owner,
		pctPerLevel: pctPerLevel,
		level:       level,
	}
	p.Bind(p)
	return p
}

// Definition returns the static pet definition.
func (p *Pet) Definition() *PetDefinition { return p.def }

// Owner returns the owning player.
func (p *Pet) Owner() *Player { return p.owner }

// Level returns the pet's level.
func (p *Pet) Level() int {
	p.petMu.RLock()
	defer p.petMu.RUnlock()
	return p.level
}

// SetLevel sets the pet's level (clamped to 1..MaxLevel).
func (p *Pet) SetLevel(level int) {
	p.petMu.Lock()
	defer p.petMu.Unlock()
	if level < 1 {
		level = 1
	}
	if p.def.MaxLevel > 0 && level > p.def.MaxLevel {
		level = p.def.MaxLevel
	}
	p.level = level
}

// Experience returns accumulated pet experience.
func (p *Pet) Experience() int64 {
	p.petMu.RLock()
	defer p.petMu.RUnlock()
	return p.experience
}

// AddExperience adds experience (never below zero). Level-up thresholds are
// handled by the external pet progression system.
func (p *Pet) AddExperience(amount int64) {
	p.petMu.Lock()
	defer p.petMu.Unlock()
	p.experience += amount
	if p.experience < 0 {
		p.experience = 0
	}
}

// GuardMode reports whether the pet retaliates when its owner is hit.
func (p *Pet) GuardMode() bool {
	p.petMu.RLock()
	defer p.petMu.RUnlock()
	return p.guardMode
}

// SetGuardMode toggles owner-hit retaliation.
func (p *Pet) SetGuardMode(on bool) {
	p.petMu.Lock()
	defer p.petMu.Unlock()
	p.guardMode = on
}

// Tier returns the evolution tier active at the current level.
func (p *Pet) Tier() EvolutionTier {
	return p.def.TierFor(p.Level())
}

// CombatStats builds the attacker-side snapshot scaled by level tier and the
// owner's Beastmastery skill.
func (p *Pet) CombatStats() CombatantStats {
	return p.def.StatsAt(p.Level(), p.owner.Skills().GetLevel(SkillBeastmastery), p.pctPerLevel)
}

// DefenceStats builds the defender-side snapshot; same scaling as attack.
func (p *Pet) DefenceStats() CombatantStats {
	return p.CombatStats()
}
