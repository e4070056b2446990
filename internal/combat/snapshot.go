package combat

import "github.com/aicovergod/tickrpg/internal/model"

// SnapshotPlayer assembles the attacker-side stat snapshot for a player from
// live skill levels and the equipment aggregator. Built fresh per resolution.
func SnapshotPlayer(skills model.SkillProvider, equipment model.EquipmentProvider, style model.CombatStyle, dtype model.DamageType) model.CombatantStats {
	return model.CombatantStats{
		Attack:     skills.GetLevel(model.SkillAttack),
		Strength:   skills.GetLevel(model.SkillStrength),
		Defence:    skills.GetLevel(model.SkillDefence),
		Bonus:      equipment.CombinedStats(),
		Style:      style,
		DamageType: dtype,
	}
}

// SnapshotNpc assembles the stat snapshot from an NPC's static combat profile.
func SnapshotNpc(profile *model.NpcProfile) model.CombatantStats {
	return model.CombatantStats{
		Attack:     profile.AttackLevel,
		Strength:   profile.StrengthLevel,
		Defence:    profile.DefenceLevel,
		Bonus:      profile.Bonus,
		Style:      profile.Style,
		DamageType: profile.AttackType,
	}
}

// SnapshotPet assembles the stat snapshot for a pet: base definition scaled
// by the evolution tier at petLevel and by the owner's Beastmastery skill
// (pctPerLevel percent per level, multiplicative).
func SnapshotPet(def *model.PetDefinition, petLevel, beastmasteryLevel int, pctPerLevel float64) model.CombatantStats {
	return def.StatsAt(petLevel, beastmasteryLevel, pctPerLevel)
}
