package ai

import (
	"log/slog"
	"math/rand/v2"
	"sync/atomic"

	"github.com/aicovergod/tickrpg/internal/combat"
	"github.com/aicovergod/tickrpg/internal/model"
)

// PetMode is the pet's current order.
type PetMode int32

const (
	// PetModeFollow trails the owner, teleporting when left too far behind.
	PetModeFollow PetMode = iota
	// PetModeStay holds position.
	PetModeStay
	// PetModeAttack fights the ordered (or retaliation) target.
	PetModeAttack
)

// String returns human-readable mode name.
func (m PetMode) String() string {
	switch m {
	case PetModeFollow:
		return "FOLLOW"
	case PetModeStay:
		return "STAY"
	case PetModeAttack:
		return "ATTACK"
	default:
		return "UNKNOWN"
	}
}

// Pet follow defaults.
const (
	defaultFollowNear = 2.0
	defaultFollowFar  = 12.0
)

// PetConfig tunes pet movement and combat.
type PetConfig struct {
	// FollowNear is the distance beyond which the pet walks toward its
	// owner.
	FollowNear float64

	// FollowFar is the distance beyond which the pet teleports to its
	// owner instead of walking.
	FollowFar float64

	// MeleeRange is the maximum distance at which attacks resolve.
	MeleeRange float64
}

func (c PetConfig) withDefaults() PetConfig {
	if c.FollowNear <= 0 {
		c.FollowNear = defaultFollowNear
	}
	if c.FollowFar <= c.FollowNear {
		c.FollowFar = max(c.FollowNear*2, defaultFollowFar)
	}
	if c.MeleeRange <= 0 {
		c.MeleeRange = defaultMeleeRange
	}
	return c
}

// PetAI drives a summoned pet: follow the owner, hold position, or fight.
// While guard mode is on, the pet listens for damage landing on its owner
// and retaliates once per engagement; the observer callback runs inside the
// attacker's tick, so it only queues the target ID, and the engagement
// starts on the pet's own next tick.
type PetAI struct {
	pet    *model.Pet
	world  *model.World
	combat *combat.AttackController
	cfg    PetConfig

	running atomic.Bool
	mode    atomic.Int32
	state   atomic.Int32

	// engaged latches the guard retaliation so repeated owner hits during
	// one fight do not re-trigger it. Reset when the session ends.
	engaged          atomic.Bool
	pendingRetaliate atomic.Uint32 // queued target ID, consumed on own tick
}

// NewPetAI creates a controller for a summoned pet. Hooks are forwarded to
// the pet's attack controller; the owner's skill-experience award hangs off
// Hooks.OnHit.
func NewPetAI(pet *model.Pet, world *model.World, cfg PetConfig, rng *rand.Rand, hooks combat.Hooks) *PetAI {
	cfg = cfg.withDefaults()
	p := &PetAI{
		pet:   pet,
		world: world,
		cfg:   cfg,
	}
	p.combat = combat.NewAttackController(
		pet,
		pet.CombatStats,
		func() int { return pet.CombatStats().Bonus.AttackSpeedTicks },
		cfg.MeleeRange,
		rng,
		hooks,
	)
	return p
}

// Start arms the controller in follow mode and begins listening for hits on
// the owner.
func (p *PetAI) Start() {
	p.running.Store(true)
	p.mode.Store(int32(PetModeFollow))
	p.state.Store(int32(model.StateIdle))
	p.pet.Owner().RegisterDamageObserver(p)

	if IsDebugEnabled() {
		slog.Debug("pet AI started", "pet", p.pet.Name(), "id", p.pet.ID(), "owner", p.pet.Owner().Name())
	}
}

// Stop disarms the controller and cancels any live session.
func (p *PetAI) Stop() {
	p.running.Store(false)
	p.pet.Owner().UnregisterDamageObserver(p)
	p.combat.ExitCombat()
	p.engaged.Store(false)
	p.pendingRetaliate.Store(0)
	p.state.Store(int32(model.StateIdle))

	if IsDebugEnabled() {
		slog.Debug("pet AI stopped", "pet", p.pet.Name(), "id", p.pet.ID())
	}
}

// State returns the pet's current behavior state.
func (p *PetAI) State() model.BehaviorState {
	return model.BehaviorState(p.state.Load())
}

// Mode returns the pet's current order.
func (p *PetAI) Mode() PetMode {
	return PetMode(p.mode.Load())
}

// Pet returns the controlled pet.
func (p *PetAI) Pet() *model.Pet {
	return p.pet
}

// Combat returns the pet's attack controller.
func (p *PetAI) Combat() *combat.AttackController {
	return p.combat
}

// OnDamaged implements model.DamageObserver for the owner: with guard mode
// on, the first hit of an engagement queues the attacker for retaliation.
func (p *PetAI) OnDamaged(_ model.CombatTarget, source model.CombatTarget, _ int) {
	if !p.running.Load() || source == nil {
		return
	}
	if !p.pet.GuardMode() || !p.pet.IsAlive() {
		return
	}
	if p.Mode() == PetModeStay {
		return
	}
	// One retaliation per engagement.
	if p.engaged.CompareAndSwap(false, true) {
		p.pendingRetaliate.Store(source.ID())
	}
}

// OrderAttack commands the pet onto a target. Re-issuing for the current
// target is a no-op; a different target supersedes the live session.
func (p *PetAI) OrderAttack(target model.CombatTarget) bool {
	if !p.running.Load() || !p.pet.IsAlive() {
		return false
	}
	if !p.combat.BeginAttacking(target) {
		return false
	}
	p.engaged.Store(true)
	p.mode.Store(int32(PetModeAttack))
	return true
}

// OrderFollow cancels combat and resumes trailing the owner.
func (p *PetAI) OrderFollow() {
	p.combat.ExitCombat()
	p.engaged.Store(false)
	p.pendingRetaliate.Store(0)
	p.mode.Store(int32(PetModeFollow))
}

// OrderStay cancels combat and holds position.
func (p *PetAI) OrderStay() {
	p.combat.ExitCombat()
	p.engaged.Store(false)
	p.pendingRetaliate.Store(0)
	p.mode.Store(int32(PetModeStay))
}

// OnTick advances the pet by one tick.
func (p *PetAI) OnTick(_ uint64) {
	if !p.running.Load() || !p.pet.IsAlive() {
		return
	}

	p.consumeRetaliation()

	switch p.Mode() {
	case PetModeAttack:
		p.thinkAttack()
	case PetModeStay:
		p.stay()
		p.state.Store(int32(model.StateIdle))
	default:
		p.thinkFollow()
	}
}

// consumeRetaliation starts the queued guard engagement, if any.
func (p *PetAI) consumeRetaliation() {
	id := p.pendingRetaliate.Swap(0)
	if id == 0 {
		return
	}

	target, ok := p.world.Get(id)
	if !ok || !target.IsAlive() || target.ID() == p.pet.ID() || target.ID() == p.pet.Owner().ID() {
		p.engaged.Store(false)
		return
	}
	if !p.combat.BeginAttacking(target) {
		p.engaged.Store(false)
		return
	}
	p.mode.Store(int32(PetModeAttack))

	if IsDebugEnabled() {
		slog.Debug("pet retaliating",
			"pet", p.pet.Name(),
			"id", p.pet.ID(),
			"target", target.Name(),
			"targetID", target.ID())
	}
}

func (p *PetAI) thinkAttack() {
	target := p.combat.Target()
	if target == nil {
		p.endEngagement()
		return
	}

	switch p.combat.Step() {
	case combat.StatusEnded, combat.StatusIdle:
		p.endEngagement()

	case combat.StatusApproaching:
		p.state.Store(int32(model.StateApproaching))
		next := p.pet.Position().Step(target.Position(), p.pet.MoveSpeed())
		p.pet.BeginMove(next)

	case combat.StatusWaiting, combat.StatusAttacked:
		p.state.Store(int32(model.StateAttacking))
		p.stay()
	}
}

// endEngagement drops back to follow mode and re-arms guard retaliation.
func (p *PetAI) endEngagement() {
	p.combat.ExitCombat()
	p.engaged.Store(false)
	p.mode.Store(int32(PetModeFollow))
	p.state.Store(int32(model.StateIdle))
}

func (p *PetAI) thinkFollow() {
	owner := p.pet.Owner()
	dist := p.pet.Position().Dist(owner.Position())

	switch {
	case dist > p.cfg.FollowFar:
		// Left too far behind: snap to the owner.
		p.pet.SetPosition(owner.Position())
		p.state.Store(int32(model.StateIdle))

	case dist > p.cfg.FollowNear:
		next := p.pet.Position().Step(owner.Position(), p.pet.MoveSpeed())
		p.pet.BeginMove(next)
		p.pet.FaceToward(owner.Position())
		p.state.Store(int32(model.StateWandering))

	default:
		p.stay()
		p.state.Store(int32(model.StateIdle))
	}
}

func (p *PetAI) stay() {
	p.pet.BeginMove(p.pet.Position())
}
