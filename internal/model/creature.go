package model

import (
	"sync"
	"time"
)

// Creature is the base for living agents (Player, Npc, Pet).
// It owns HP state, the move window, facing, and the observer lists.
//
// All simulation writes happen inside the owning agent's tick callback; the
// only cross-agent write is ApplyDamage, which is serialized by the
// single-threaded scheduler. The mutex exists so the render loop can read
// positions concurrently with tick processing.
type Creature struct {
	id   uint32
	name string

	mu          sync.RWMutex
	currentHP   int
	maxHP       int
	pos         Position
	window      MoveWindow
	facing      Facing
	moveSpeed   float64 // tiles per tick
	prefDefence DamageType

	deathOnce sync.Once // protects death notification from double firing

	// Observer registration lists. Lifetime is tied to the observing
	// entity: it must Unregister before it is destroyed.
	obsMu     sync.Mutex
	healthObs []HealthObserver
	damageObs []DamageObserver
	deathObs  []DeathObserver

	// self points at the outer agent so observers receive the concrete
	// CombatTarget, not the embedded base.
	self CombatTarget
}

// NewCreature creates a creature at full health at the given position.
func NewCreature(id uint32, name string, maxHP int, pos Position, moveSpeed float64, prefDefence DamageType) *Creature {
	if maxHP < 1 {
		maxHP = 1
	}
	return &Creature{
		id:          id,
		name:        name,
		currentHP:   maxHP,
		maxHP:       maxHP,
		pos:         pos,
		window:      MoveWindow{From: pos, To: pos},
		facing:      FacingDown,
		moveSpeed:   moveSpeed,
		prefDefence: prefDefence,
	}
}

// Bind sets the outer agent reference used in observer callbacks.
// Called once by the Player/Npc/Pet constructor.
func (c *Creature) Bind(self CombatTarget) {
	c.self = self
}

// ID returns the unique object ID.
func (c *Creature) ID() uint32 { return c.id }

// Name returns the display name.
func (c *Creature) Name() string { return c.name }

// CurrentHP returns current hitpoints.
func (c *Creature) CurrentHP() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentHP
}

// MaxHP returns maximum hitpoints.
func (c *Creature) MaxHP() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxHP
}

// IsAlive reports whether current HP is above zero.
func (c *Creature) IsAlive() bool {
	return c.CurrentHP() > 0
}

// PreferredDefenceType returns the default defensive damage type.
func (c *Creature) PreferredDefenceType() DamageType {
	return c.prefDefence
}

// MoveSpeed returns movement speed in tiles per tick.
func (c *Creature) MoveSpeed() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.moveSpeed
}

// SetMoveSpeed sets movement speed in tiles per tick (clamped to >= 0).
func (c *Creature) SetMoveSpeed(speed float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if speed < 0 {
		speed = 0
	}
	c.moveSpeed = speed
}

// Heal restores HP up to the maximum and notifies health observers.
func (c *Creature) Heal(amount int) {
	if amount <= 0 {
		return
	}
	c.mu.Lock()
	old := c.currentHP
	hp := old + amount
	if hp > c.maxHP {
		hp = c.maxHP
	}
	c.currentHP = hp
	c.mu.Unlock()

	if hp != old {
		c.notifyHealth(old, hp)
	}
}

// RestoreFull resets HP to maximum and re-arms the death notification.
// Used on respawn and when an NPC returns home.
func (c *Creature) RestoreFull() {
	c.mu.Lock()
	old := c.currentHP
	c.currentHP = c.maxHP
	hp := c.currentHP
	c.mu.Unlock()

	c.deathOnce = sync.Once{}
	if hp != old {
		c.notifyHealth(old, hp)
	}
}

// ApplyDamage subtracts amount from current HP, clamped to zero.
// Returns the amount actually applied (>= 0). Hitting a dead target is a
// benign no-op. Health-changed observers fire before the death observers;
// the death notification fires exactly once per life.
func (c *Creature) ApplyDamage(amount int, dtype DamageType, source CombatTarget) int {
	if amount < 0 {
		amount = 0
	}

	c.mu.Lock()
	old := c.currentHP
	if old <= 0 {
		c.mu.Unlock()
		return 0
	}
	applied := amount
	if applied > old {
		applied = old
	}
	c.currentHP = old - applied
	hp := c.currentHP
	c.mu.Unlock()

	if applied == 0 {
		return 0
	}

	c.notifyHealth(old, hp)
	c.notifyDamaged(source, applied)

	if hp == 0 {
		c.deathOnce.Do(func() {
			c.notifyDeath(source)
		})
	}
	return applied
}

// --- Movement ---

// Position returns the logical (end-of-tick) position.
func (c *Creature) Position() Position {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pos
}

// SetPosition teleports the creature, collapsing the move window so the
// render loop does not sweep across the jump.
func (c *Creature) SetPosition(pos Position) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pos = pos
	c.window = MoveWindow{From: pos, To: pos}
}

// BeginMove records the (from, to) pair for the upcoming tick window and
// advances the logical position to the destination. Called once per tick by
// the behavior controller; per-frame rendering interpolates inside the pair.
func (c *Creature) BeginMove(to Position) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.window = MoveWindow{From: c.pos, To: to}
	c.pos = to
}

// Window returns the current tick's move window.
func (c *Creature) Window() MoveWindow {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.window
}

// RenderPosition interpolates the rendered position at elapsed time into the
// current tick window. Read-only with respect to simulation state.
func (c *Creature) RenderPosition(elapsed, tickDuration time.Duration) Position {
	return c.Window().At(elapsed, tickDuration)
}

// Facing returns the current sprite direction.
func (c *Creature) Facing() Facing {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.facing
}

// SetFacing sets the sprite direction (recomputed on every resolved attack).
func (c *Creature) SetFacing(f Facing) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.facing = f
}

// FaceToward turns the creature toward a point.
func (c *Creature) FaceToward(target Position) {
	c.SetFacing(FacingTo(c.Position(), target))
}

// --- Observers ---

// RegisterHealthObserver adds a health-changed observer.
func (c *Creature) RegisterHealthObserver(o HealthObserver) {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()
	c.healthObs = append(c.healthObs, o)
}

// UnregisterHealthObserver removes a previously registered observer.
func (c *Creature) UnregisterHealthObserver(o HealthObserver) {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()
	for i, cur := range c.healthObs {
		if cur == o {
			c.healthObs = append(c.healthObs[:i], c.healthObs[i+1:]...)
			return
		}
	}
}

// RegisterDamageObserver adds a damage observer.
func (c *Creature) RegisterDamageObserver(o DamageObserver) {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()
	c.damageObs = append(c.damageObs, o)
}

// UnregisterDamageObserver removes a previously registered observer.
func (c *Creature) UnregisterDamageObserver(o DamageObserver) {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()
	for i, cur := range c.damageObs {
		if cur == o {
			c.damageObs = append(c.damageObs[:i], c.damageObs[i+1:]...)
			return
		}
	}
}

// RegisterDeathObserver adds a death observer (loot/drop systems).
func (c *Creature) RegisterDeathObserver(o DeathObserver) {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()
	c.deathObs = append(c.deathObs, o)
}

// UnregisterDeathObserver removes a previously registered observer.
func (c *Creature) UnregisterDeathObserver(o DeathObserver) {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()
	for i, cur := range c.deathObs {
		if cur == o {
			c.deathObs = append(c.deathObs[:i], c.deathObs[i+1:]...)
			return
		}
	}
}

func (c *Creature) target() CombatTarget {
	return c.self
}

func (c *Creature) notifyHealth(oldHP, newHP int) {
	c.obsMu.Lock()
	obs := make([]HealthObserver, len(c.healthObs))
	copy(obs, c.healthObs)
	c.obsMu.Unlock()

	for _, o := range obs {
		o.OnHealthChanged(c.target(), oldHP, newHP)
	}
}

func (c *Creature) notifyDamaged(source CombatTarget, amount int) {
	c.obsMu.Lock()
	obs := make([]DamageObserver, len(c.damageObs))
	copy(obs, c.damageObs)
	c.obsMu.Unlock()

	for _, o := range obs {
		o.OnDamaged(c.target(), source, amount)
	}
}

func (c *Creature) notifyDeath(killer CombatTarget) {
	c.obsMu.Lock()
	obs := make([]DeathObserver, len(c.deathObs))
	copy(obs, c.deathObs)
	c.obsMu.Unlock()

	for _, o := range obs {
		o.OnDeath(c.target(), killer)
	}
}
