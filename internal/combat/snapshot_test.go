package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aicovergod/tickrpg/internal/model"
)

func TestSnapshotPlayer_ReadsLiveProviders(t *testing.T) {
	skills := model.StaticSkills{
		model.SkillAttack:   40,
		model.SkillStrength: 35,
		model.SkillDefence:  30,
	}
	gear := model.StaticEquipment{Attack: 20, Strength: 31, MeleeDefence: 12, AttackSpeedTicks: 5}

	s := SnapshotPlayer(skills, gear, model.StyleAggressive, model.DamageMelee)
	assert.Equal(t, 40, s.Attack)
	assert.Equal(t, 35, s.Strength)
	assert.Equal(t, 30, s.Defence)
	assert.Equal(t, 31, s.Bonus.Strength)
	assert.Equal(t, model.StyleAggressive, s.Style)
	assert.Equal(t, model.DamageMelee, s.DamageType)
}

func TestSnapshotNpc_MirrorsProfile(t *testing.T) {
	profile := &model.NpcProfile{
		AttackLevel:   12,
		StrengthLevel: 14,
		DefenceLevel:  9,
		Bonus:         model.EquipmentBonus{Strength: 6},
		Style:         model.StyleControlled,
		AttackType:    model.DamageRanged,
	}

	s := SnapshotNpc(profile)
	assert.Equal(t, 12, s.Attack)
	assert.Equal(t, 14, s.Strength)
	assert.Equal(t, 9, s.Defence)
	assert.Equal(t, 6, s.Bonus.Strength)
	assert.Equal(t, model.StyleControlled, s.Style)
	assert.Equal(t, model.DamageRanged, s.DamageType)
}

func TestSnapshotPet_ScalesWithOwnerSkill(t *testing.T) {
	def := &model.PetDefinition{
		AttackLevel:   10,
		StrengthLevel: 10,
		DefenceLevel:  10,
		AttackType:    model.DamageMelee,
		Tiers:         []model.EvolutionTier{{MinLevel: 1, StatMultiplier: 1, Scale: 1}},
	}

	base := SnapshotPet(def, 1, 1, 1.5)
	boosted := SnapshotPet(def, 1, 40, 1.5)
	assert.Greater(t, boosted.Attack, base.Attack)
	assert.Equal(t, model.StyleAggressive, base.Style)
}
