package model

import "sync/atomic"

// NpcProfile is the static combat profile for one NPC kind.
// Loaded once at startup and shared by every spawn of that kind.
type NpcProfile struct {
	Name          string
	Level         int
	MaxHP         int
	AttackLevel   int
	StrengthLevel int
	DefenceLevel  int
	Bonus         EquipmentBonus
	Style         CombatStyle
	AttackType    DamageType
	Aggressive    bool
	AggroRadius   float64
	WanderRadius  float64
	MoveSpeed     float64 // tiles per tick
}

// Npc is a spawned NPC instance: creature state plus its combat profile,
// spawn-anchored aggro state, and hate list.
type Npc struct {
	*Creature

	profile *NpcProfile
	aggro   AggroState
	hate    *AggroList
	state   atomic.Int32 // BehaviorState
}

// NewNpc spawns an NPC of the given profile at the spawn origin.
// The aggro radius derives from the profile; the origin is fixed for life.
func NewNpc(id uint32, profile *NpcProfile, spawn Position) *Npc {
	n := &Npc{
		Creature: NewCreature(id, profile.Name, profile.MaxHP, spawn, profile.MoveSpeed, profile.AttackType),
		profile:  profile,
		aggro:    NewAggroState(spawn, profile.AggroRadius),
		hate:     NewAggroList(),
	}
	n.Bind(n)
	return n
}

// Profile returns the static combat profile.
func (n *Npc) Profile() *NpcProfile { return n.profile }

// Aggro returns the spawn-anchored aggro state.
func (n *Npc) Aggro() AggroState { return n.aggro }

// Hate returns the NPC's hate list.
func (n *Npc) Hate() *AggroList { return n.hate }

// State returns the current behavior state.
func (n *Npc) State() BehaviorState {
	return BehaviorState(n.state.Load())
}

// SetState sets the behavior state.
func (n *Npc) SetState(s BehaviorState) {
	n.state.Store(int32(s))
}

// DefenceStats builds the defender-side snapshot from the static profile.
func (n *Npc) DefenceStats() CombatantStats {
	return CombatantStats{
		Attack:     n.profile.AttackLevel,
		Strength:   n.profile.StrengthLevel,
		Defence:    n.profile.DefenceLevel,
		Bonus:      n.profile.Bonus,
		Style:      n.profile.Style,
		DamageType: n.profile.AttackType,
	}
}
