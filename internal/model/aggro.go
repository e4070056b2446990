package model

import (
	"sync"
	"sync/atomic"
)

// AggroState pins an NPC to its spawn: the origin is fixed for the NPC's
// lifetime and the aggro radius bounds both target acquisition and how far
// the NPC may stray before breaking off.
type AggroState struct {
	origin Position
	radius float64
}

// NewAggroState creates aggro state anchored at the spawn origin.
func NewAggroState(origin Position, radius float64) AggroState {
	if radius < 0 {
		radius = 0
	}
	return AggroState{origin: origin, radius: radius}
}

// Origin returns the spawn origin.
func (a AggroState) Origin() Position { return a.origin }

// Radius returns the aggro radius.
func (a AggroState) Radius() float64 { return a.radius }

// Contains reports whether a point is within the aggro radius of the origin.
func (a AggroState) Contains(p Position) bool {
	return a.origin.DistanceSquared(p) <= a.radius*a.radius
}

// AggroInfo tracks hate and damage from a single attacker.
type AggroInfo struct {
	hate   atomic.Int64
	damage atomic.Int64
}

// Hate returns current hate value.
func (a *AggroInfo) Hate() int64 { return a.hate.Load() }

// AddHate adds hate value.
func (a *AggroInfo) AddHate(amount int64) { a.hate.Add(amount) }

// Damage returns total damage received from this attacker.
func (a *AggroInfo) Damage() int64 { return a.damage.Load() }

// AddDamage adds damage value.
func (a *AggroInfo) AddDamage(amount int64) { a.damage.Add(amount) }

// AggroList manages hate for an NPC against multiple attackers.
type AggroList struct {
	entries sync.Map // map[uint32]*AggroInfo, keyed by targetID
}

// NewAggroList creates a new empty AggroList.
func NewAggroList() *AggroList {
	return &AggroList{}
}

// AddHate adds hate for an attacker. Creates the entry if absent.
func (l *AggroList) AddHate(targetID uint32, hate int64) {
	l.getOrCreate(targetID).AddHate(hate)
}

// AddDamage records damage from an attacker. Creates the entry if absent.
func (l *AggroList) AddDamage(targetID uint32, damage int64) {
	l.getOrCreate(targetID).AddDamage(damage)
}

// MostHated returns the ID of the attacker with the highest hate.
// Returns 0 if the list is empty.
func (l *AggroList) MostHated() uint32 {
	var maxHate int64
	var mostHatedID uint32

	l.entries.Range(func(key, value any) bool {
		id := key.(uint32)
		hate := value.(*AggroInfo).Hate()
		if hate > maxHate || mostHatedID == 0 {
			maxHate = hate
			mostHatedID = id
		}
		return true
	})

	return mostHatedID
}

// Get returns AggroInfo for a specific attacker, or nil if absent.
func (l *AggroList) Get(targetID uint32) *AggroInfo {
	value, ok := l.entries.Load(targetID)
	if !ok {
		return nil
	}
	return value.(*AggroInfo)
}

// Remove removes an attacker from the hate list.
func (l *AggroList) Remove(targetID uint32) {
	l.entries.Delete(targetID)
}

// Clear removes all entries from the hate list.
func (l *AggroList) Clear() {
	l.entries.Range(func(key, _ any) bool {
		l.entries.Delete(key)
		return true
	})
}

// IsEmpty reports whether the hate list has no entries.
func (l *AggroList) IsEmpty() bool {
	empty := true
	l.entries.Range(func(_, _ any) bool {
		empty = false
		return false
	})
	return empty
}

func (l *AggroList) getOrCreate(targetID uint32) *AggroInfo {
	if v, ok := l.entries.Load(targetID); ok {
		return v.(*AggroInfo)
	}
	v, _ := l.entries.LoadOrStore(targetID, &AggroInfo{})
	return v.(*AggroInfo)
}

// CalcHateValue converts damage received into hate.
// Higher-level NPCs accumulate hate more slowly.
func CalcHateValue(damage int, npcLevel int) int64 {
	if npcLevel < 1 {
		npcLevel = 1
	}
	return (int64(damage) * 100) / int64(npcLevel+7)
}
