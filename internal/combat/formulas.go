package combat

import (
	"math"
	"math/rand/v2"

	"github.com/aicovergod/tickrpg/internal/model"
)

// Style bonus constants. Accurate/Aggressive/Defensive grant a full bonus to
// one effective level; Controlled grants a smaller bonus to all three.
const (
	styleBonusFull       = 3
	styleBonusControlled = 1

	// rollBase is the flat term added to every equipment bonus before an
	// accuracy roll or max-hit computation.
	rollBase = 64

	// maxHitDivisor scales effective strength × bonus down to hitpoints.
	maxHitDivisor = 640
)

// EffectiveAttack returns the effective attack level for a style.
// Never returns less than 1, whatever the input.
func EffectiveAttack(level int, style model.CombatStyle) int {
	switch style {
	case model.StyleAccurate:
		level += styleBonusFull
	case model.StyleControlled:
		level += styleBonusControlled
	}
	return clampLevel(level)
}

// EffectiveStrength returns the effective strength level for a style.
func EffectiveStrength(level int, style model.CombatStyle) int {
	switch style {
	case model.StyleAggressive:
		level += styleBonusFull
	case model.StyleControlled:
		level += styleBonusControlled
	}
	return clampLevel(level)
}

// EffectiveDefence returns the effective defence level for a style.
func EffectiveDefence(level int, style model.CombatStyle) int {
	switch style {
	case model.StyleDefensive:
		level += styleBonusFull
	case model.StyleControlled:
		level += styleBonusControlled
	}
	return clampLevel(level)
}

// AttackRoll combines an effective attack level with an equipment attack
// bonus into the accuracy roll: effective × (bonus + 64), integer floor.
func AttackRoll(effectiveAttack, equipmentBonus int) int {
	return accuracyRoll(effectiveAttack, equipmentBonus)
}

// DefenceRoll combines an effective defence level with the matching
// equipment defence bonus: effective × (bonus + 64), integer floor.
func DefenceRoll(effectiveDefence, equipmentBonus int) int {
	return accuracyRoll(effectiveDefence, equipmentBonus)
}

func accuracyRoll(effective, bonus int) int {
	effective = clampLevel(effective)
	if bonus < 0 {
		bonus = 0
	}
	return effective * (bonus + rollBase)
}

// ChanceToHit returns the probability in [0, 1] that an attack roll beats a
// defence roll. Piecewise ratio formula:
//
//	attack > defence: 1 − (defence+2) / (2·(attack+1))
//	otherwise:        attack / (2·(defence+1))
func ChanceToHit(attackRoll, defenceRoll int) float64 {
	if attackRoll < 0 {
		attackRoll = 0
	}
	if defenceRoll < 0 {
		defenceRoll = 0
	}

	var chance float64
	if attackRoll > defenceRoll {
		chance = 1 - float64(defenceRoll+2)/(2*float64(attackRoll+1))
	} else {
		chance = float64(attackRoll) / (2 * float64(defenceRoll+1))
	}

	if chance < 0 {
		return 0
	}
	if chance > 1 {
		return 1
	}
	return chance
}

// MaxHit returns the damage roll upper bound for one attack:
// floor(0.5 + effectiveStrength·(bonus+64)/640). Never negative.
func MaxHit(effectiveStrength, equipmentBonus int) int {
	effectiveStrength = clampLevel(effectiveStrength)
	if equipmentBonus < 0 {
		equipmentBonus = 0
	}
	hit := int(math.Floor(0.5 + float64(effectiveStrength)*float64(equipmentBonus+rollBase)/maxHitDivisor))
	if hit < 0 {
		return 0
	}
	return hit
}

// RollHit samples the hit chance. Chance is clamped to [0, 1].
func RollHit(rng *rand.Rand, chance float64) bool {
	if chance <= 0 {
		return false
	}
	if chance >= 1 {
		return true
	}
	return rng.Float64() < chance
}

// RollDamage returns a uniform integer in [0, maxHit] inclusive.
func RollDamage(rng *rand.Rand, maxHit int) int {
	if maxHit <= 0 {
		return 0
	}
	return rng.IntN(maxHit + 1)
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	return level
}
