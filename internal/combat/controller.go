package combat

import (
	"log/slog"
	"math/rand/v2"

	"github.com/aicovergod/tickrpg/internal/model"
)

// Attacker is what the controller needs from its owning agent: the full
// target capability plus facing control (facing is recomputed on every
// resolved attack for the animation layer).
type Attacker interface {
	model.CombatTarget
	FaceToward(model.Position)
}

// StatsFunc builds the attacker-side stat snapshot at resolution time.
// Called fresh for every resolved attack, never cached.
type StatsFunc func() model.CombatantStats

// SpeedFunc returns the attack cadence in ticks (minimum 1).
type SpeedFunc func() int

// Hooks are optional observation points on the attack loop.
type Hooks struct {
	// OnHit fires after damage is applied (damage > 0).
	// The pet experience-award hook hangs off this.
	OnHit func(attacker, target model.CombatTarget, damage int)

	// OnAttack fires on every resolved attack, hit or miss.
	// Consumed by the animation/sprite layer ("attack occurred" signal).
	OnAttack func(attacker, target model.CombatTarget, damage int, hit bool)
}

// SessionStatus is the outcome of one Step call.
type SessionStatus int

const (
	// StatusIdle - no live session
	StatusIdle SessionStatus = iota
	// StatusApproaching - target beyond melee range; owner should close in
	StatusApproaching
	// StatusWaiting - in range, cadence cooldown still counting down
	StatusWaiting
	// StatusAttacked - an attack was resolved this tick
	StatusAttacked
	// StatusEnded - target died or became invalid; session was cleared
	StatusEnded
)

// String returns human-readable status name.
func (s SessionStatus) String() string {
	switch s {
	case StatusIdle:
		return "IDLE"
	case StatusApproaching:
		return "APPROACHING"
	case StatusWaiting:
		return "WAITING"
	case StatusAttacked:
		return "ATTACKED"
	case StatusEnded:
		return "ENDED"
	default:
		return "UNKNOWN"
	}
}

// AttackSession is one agent's repeated-attack loop against a single target.
// At most one session exists per agent; superseding it for a different target
// cancels the prior one, including any pending cadence wait.
type AttackSession struct {
	target        model.CombatTarget
	cooldownTicks int
}

// Target returns the session's target.
func (s *AttackSession) Target() model.CombatTarget { return s.target }

// CooldownRemaining returns ticks left until the next attack resolves.
func (s *AttackSession) CooldownRemaining() int { return s.cooldownTicks }

// AttackController orchestrates one agent's attack loop: engage, cadence,
// resolution, break conditions. Waits are resumable tick counters, never
// blocking calls, so the scheduler keeps servicing other agents.
type AttackController struct {
	owner      Attacker
	stats      StatsFunc
	speed      SpeedFunc
	meleeRange float64
	rng        *rand.Rand
	hooks      Hooks

	session *AttackSession
}

// NewAttackController creates a controller for one attacking agent.
// The RNG is injected so tests can run deterministically.
func NewAttackController(owner Attacker, stats StatsFunc, speed SpeedFunc, meleeRange float64, rng *rand.Rand, hooks Hooks) *AttackController {
	return &AttackController{
		owner:      owner,
		stats:      stats,
		speed:      speed,
		meleeRange: meleeRange,
		rng:        rng,
		hooks:      hooks,
	}
}

// BeginAttacking starts (or redirects) the attack loop onto target.
// Re-issuing for the current live target is a no-op; a different target
// supersedes the prior session and clears its pending wait. Nil, dead, and
// self targets decline silently. Returns true if a session is live on the
// requested target afterwards.
func (c *AttackController) BeginAttacking(target model.CombatTarget) bool {
	if target == nil || !target.IsAlive() || target.ID() == c.owner.ID() {
		return false
	}

	if c.session != nil {
		if c.session.target.ID() == target.ID() {
			return true // idempotent re-issue
		}
		c.cancel("superseded")
	}

	c.session = &AttackSession{target: target}
	slog.Debug("attack session started",
		"attacker", c.owner.Name(),
		"attackerID", c.owner.ID(),
		"target", target.Name(),
		"targetID", target.ID())
	return true
}

// CommandAttack is the external command entry point; same semantics as
// BeginAttacking.
func (c *AttackController) CommandAttack(target model.CombatTarget) bool {
	return c.BeginAttacking(target)
}

// ExitCombat cancels the live session immediately, including any pending
// cadence wait. No-op when idle.
func (c *AttackController) ExitCombat() {
	if c.session != nil {
		c.cancel("exit combat")
	}
}

// InCombat reports whether a session is live.
func (c *AttackController) InCombat() bool { return c.session != nil }

// Session returns the live session, or nil.
func (c *AttackController) Session() *AttackSession { return c.session }

// Target returns the live session's target, or nil.
func (c *AttackController) Target() model.CombatTarget {
	if c.session == nil {
		return nil
	}
	return c.session.target
}

// Step advances the attack loop by one tick. Called from the owning agent's
// tick callback only. Movement toward an out-of-range target is the behavior
// controller's job; Step just reports StatusApproaching.
func (c *AttackController) Step() SessionStatus {
	s := c.session
	if s == nil {
		return StatusIdle
	}

	if s.target == nil || !s.target.IsAlive() {
		c.cancel("target gone")
		return StatusEnded
	}

	if c.owner.Position().Dist(s.target.Position()) > c.meleeRange {
		return StatusApproaching
	}

	if s.cooldownTicks > 0 {
		s.cooldownTicks--
		return StatusWaiting
	}

	c.resolveAttack(s.target)

	// Target may have died from this hit. End promptly instead of
	// lingering through another cadence wait.
	if !s.target.IsAlive() {
		c.cancel("target died")
		return StatusEnded
	}

	s.cooldownTicks = c.attackSpeed()
	return StatusAttacked
}

// resolveAttack rolls one attack and applies the damage.
func (c *AttackController) resolveAttack(target model.CombatTarget) {
	att := c.stats()
	def := target.DefenceStats()

	attackRoll := AttackRoll(EffectiveAttack(att.Attack, att.Style), att.Bonus.Attack)
	defenceRoll := DefenceRoll(EffectiveDefence(def.Defence, def.Style), def.Bonus.DefenceFor(att.DamageType))
	chance := ChanceToHit(attackRoll, defenceRoll)

	damage := 0
	hit := RollHit(c.rng, chance)
	if hit {
		maxHit := MaxHit(EffectiveStrength(att.Strength, att.Style), att.Bonus.Strength)
		damage = RollDamage(c.rng, maxHit)
	}

	// Facing is recomputed on every resolved attack.
	c.owner.FaceToward(target.Position())

	applied := 0
	if damage > 0 {
		applied = target.ApplyDamage(damage, att.DamageType, c.owner)
	}

	if c.hooks.OnAttack != nil {
		c.hooks.OnAttack(c.owner, target, applied, hit)
	}
	if applied > 0 && c.hooks.OnHit != nil {
		c.hooks.OnHit(c.owner, target, applied)
	}

	slog.Debug("attack resolved",
		"attacker", c.owner.Name(),
		"target", target.Name(),
		"chance", chance,
		"hit", hit,
		"damage", applied,
		"targetHP", target.CurrentHP())
}

func (c *AttackController) attackSpeed() int {
	ticks := 1
	if c.speed != nil {
		ticks = c.speed()
	}
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

func (c *AttackController) cancel(reason string) {
	s := c.session
	c.session = nil
	if s != nil && s.target != nil {
		slog.Debug("attack session ended",
			"attacker", c.owner.Name(),
			"target", s.target.Name(),
			"reason", reason)
	}
}
