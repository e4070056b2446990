package model

import "sync"

// SkillType identifies a trainable player skill.
type SkillType int32

const (
	SkillAttack SkillType = iota
	SkillStrength
	SkillDefence
	SkillHitpoints
	// SkillBeastmastery scales owned pet combat stats.
	SkillBeastmastery
)

// SkillProvider exposes player skill levels.
// Implemented by the external skill/progression system.
type SkillProvider interface {
	GetLevel(skill SkillType) int
}

// EquipmentProvider exposes the combined bonuses of worn equipment.
// Implemented by the external equipment aggregator.
type EquipmentProvider interface {
	CombinedStats() EquipmentBonus
}

// StaticSkills is a fixed skill table, used in tests and for stubbed agents.
type StaticSkills map[SkillType]int

// GetLevel returns the configured level, defaulting to 1.
func (s StaticSkills) GetLevel(skill SkillType) int {
	if lvl, ok := s[skill]; ok && lvl >= 1 {
		return lvl
	}
	return 1
}

// StaticEquipment is a fixed equipment bonus set.
type StaticEquipment EquipmentBonus

// CombinedStats returns the fixed bonuses.
func (e StaticEquipment) CombinedStats() EquipmentBonus {
	return EquipmentBonus(e)
}

// Player is the player-controlled agent. Skill levels and equipment bonuses
// come from injected providers so the combat core never reaches into the
// progression or inventory systems directly.
type Player struct {
	*Creature

	skills    SkillProvider
	equipment EquipmentProvider

	mu         sync.RWMutex
	style      CombatStyle
	attackType DamageType
}

// NewPlayer creates a player agent with injected skill and equipment sources.
func NewPlayer(id uint32, name string, pos Position, skills SkillProvider, equipment EquipmentProvider) *Player {
	maxHP := skills.GetLevel(SkillHitpoints)
	p := &Player{
		Creature:   NewCreature(id, name, maxHP, pos, 1, DamageMelee),
		skills:     skills,
		equipment:  equipment,
		style:      StyleAccurate,
		attackType: DamageMelee,
	}
	p.Bind(p)
	return p
}

// Skills returns the skill provider.
func (p *Player) Skills() SkillProvider { return p.skills }

// Equipment returns the equipment provider.
func (p *Player) Equipment() EquipmentProvider { return p.equipment }

// Style returns the selected combat style.
func (p *Player) Style() CombatStyle {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.style
}

// SetStyle selects the combat style.
func (p *Player) SetStyle(style CombatStyle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.style = style
}

// AttackType returns the damage type of the equipped weapon.
func (p *Player) AttackType() DamageType {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.attackType
}

// SetAttackType sets the damage type (changes with the equipped weapon).
func (p *Player) SetAttackType(dtype DamageType) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.attackType = dtype
}

// CombatStats builds the attacker-side snapshot from live skills and gear.
// Rebuilt on every resolved attack so mid-fight style, level, and equipment
// changes take effect immediately.
func (p *Player) CombatStats() CombatantStats {
	return CombatantStats{
		Attack:     p.skills.GetLevel(SkillAttack),
		Strength:   p.skills.GetLevel(SkillStrength),
		Defence:    p.skills.GetLevel(SkillDefence),
		Bonus:      p.equipment.CombinedStats(),
		Style:      p.Style(),
		DamageType: p.AttackType(),
	}
}

// DefenceStats builds the defender-side snapshot; same live sources as the
// attack snapshot.
func (p *Player) DefenceStats() CombatantStats {
	return p.CombatStats()
}
