package ai

import (
	"log/slog"
	"math/rand/v2"
	"sync/atomic"

	"github.com/aicovergod/tickrpg/internal/combat"
	"github.com/aicovergod/tickrpg/internal/model"
)

// Wanderer defaults, applied when the config leaves a field zero.
const (
	defaultIdleMinTicks       = 3
	defaultIdleMaxTicks       = 8
	defaultArrivalThreshold   = 0.25
	defaultMeleeRange         = 1.5
	defaultSpawnImmunityTicks = 10
	defaultAttackTimeoutTicks = 200
	defaultHateDecayChance    = 500 // 1/500 per tick at full HP
)

// WandererConfig tunes one NPC's behavior state machine.
type WandererConfig struct {
	// IdleMinTicks..IdleMaxTicks bounds the randomized idle timer.
	IdleMinTicks int
	IdleMaxTicks int

	// ArrivalThreshold is the distance at which a move target counts as
	// reached.
	ArrivalThreshold float64

	// MeleeRange is the maximum distance at which attacks resolve.
	MeleeRange float64

	// SpawnImmunityTicks delays the first aggro scan after spawn.
	SpawnImmunityTicks int

	// AttackTimeoutTicks abandons a chase that lands no attack for this
	// many ticks.
	AttackTimeoutTicks int

	// HateDecayChance is the 1/N per-tick chance to forget all hate while
	// out of combat at full HP.
	HateDecayChance int
}

func (c WandererConfig) withDefaults() WandererConfig {
	if c.IdleMinTicks <= 0 {
		c.IdleMinTicks = defaultIdleMinTicks
	}
	if c.IdleMaxTicks < c.IdleMinTicks {
		c.IdleMaxTicks = max(c.IdleMinTicks, defaultIdleMaxTicks)
	}
	if c.ArrivalThreshold <= 0 {
		c.ArrivalThreshold = defaultArrivalThreshold
	}
	if c.MeleeRange <= 0 {
		c.MeleeRange = defaultMeleeRange
	}
	if c.SpawnImmunityTicks < 0 {
		c.SpawnImmunityTicks = defaultSpawnImmunityTicks
	}
	if c.AttackTimeoutTicks <= 0 {
		c.AttackTimeoutTicks = defaultAttackTimeoutTicks
	}
	if c.HateDecayChance <= 0 {
		c.HateDecayChance = defaultHateDecayChance
	}
	return c
}

// WandererAI drives an NPC's behavior state machine:
// Idle → Wandering → Approaching → Attacking → Returning → Idle.
// Movement and combat decisions happen only inside OnTick; damage received
// from other agents' ticks is queued through the hate list and an atomic
// provoked flag, then consumed on this NPC's own tick.
type WandererAI struct {
	npc    *model.Npc
	world  *model.World
	combat *combat.AttackController
	cfg    WandererConfig
	rng    *rand.Rand

	running  atomic.Bool
	provoked atomic.Bool // set when damage arrives; cancels spawn immunity

	idleTicksLeft int
	wanderTarget  model.Position
	immunityLeft  int
	timeoutLeft   int
}

// NewWandererAI creates a behavior controller for one spawned NPC.
// Hooks are forwarded to the NPC's attack controller.
func NewWandererAI(npc *model.Npc, world *model.World, cfg WandererConfig, rng *rand.Rand, hooks combat.Hooks) *WandererAI {
	cfg = cfg.withDefaults()
	w := &WandererAI{
		npc:   npc,
		world: world,
		cfg:   cfg,
		rng:   rng,
	}
	w.combat = combat.NewAttackController(
		npc,
		func() model.CombatantStats { return combat.SnapshotNpc(npc.Profile()) },
		func() int { return npc.Profile().Bonus.AttackSpeedTicks },
		cfg.MeleeRange,
		rng,
		hooks,
	)
	return w
}

// Start arms the controller: spawn immunity begins counting, the idle timer
// is rolled, and the NPC starts listening for incoming damage.
func (w *WandererAI) Start() {
	w.running.Store(true)
	w.immunityLeft = w.cfg.SpawnImmunityTicks
	w.rollIdleTimer()
	w.npc.SetState(model.StateIdle)
	w.npc.RegisterDamageObserver(w)

	if IsDebugEnabled() {
		slog.Debug("wanderer AI started",
			"npc", w.npc.Name(),
			"id", w.npc.ID(),
			"aggroRadius", w.npc.Aggro().Radius())
	}
}

// Stop disarms the controller and cancels any live session.
func (w *WandererAI) Stop() {
	w.running.Store(false)
	w.npc.UnregisterDamageObserver(w)
	w.combat.ExitCombat()
	w.npc.Hate().Clear()
	w.npc.SetState(model.StateIdle)

	if IsDebugEnabled() {
		slog.Debug("wanderer AI stopped", "npc", w.npc.Name(), "id", w.npc.ID())
	}
}

// State returns the NPC's current behavior state.
func (w *WandererAI) State() model.BehaviorState {
	return w.npc.State()
}

// Npc returns the controlled NPC.
func (w *WandererAI) Npc() *model.Npc {
	return w.npc
}

// Combat returns the NPC's attack controller.
func (w *WandererAI) Combat() *combat.AttackController {
	return w.combat
}

// OnDamaged implements model.DamageObserver: incoming hits build hate and
// cancel spawn immunity. Runs inside the attacker's tick, so it only touches
// the hate list and the provoked flag; the state transition happens on this
// NPC's own next tick.
func (w *WandererAI) OnDamaged(_ model.CombatTarget, source model.CombatTarget, amount int) {
	if !w.running.Load() || source == nil {
		return
	}
	w.npc.Hate().AddHate(source.ID(), model.CalcHateValue(amount, w.npc.Profile().Level))
	w.npc.Hate().AddDamage(source.ID(), int64(amount))
	w.provoked.Store(true)
}

// CommandAttack is the explicit external attack command.
// Re-issuing for the current target is a no-op; a different target
// supersedes the live session. Nil and dead targets decline silently.
func (w *WandererAI) CommandAttack(target model.CombatTarget) {
	if !w.running.Load() || !w.npc.IsAlive() {
		return
	}
	if cur := w.combat.Target(); cur != nil && target != nil && cur.ID() == target.ID() {
		return
	}
	w.engage(target)
}

// OnTick advances the state machine by one tick.
func (w *WandererAI) OnTick(_ uint64) {
	if !w.running.Load() || !w.npc.IsAlive() {
		return
	}

	if w.provoked.Swap(false) {
		w.immunityLeft = 0
	}
	if w.immunityLeft > 0 {
		w.immunityLeft--
	}

	switch w.npc.State() {
	case model.StateApproaching, model.StateAttacking:
		w.thinkCombat()
	case model.StateReturning:
		w.thinkReturn()
	case model.StateWandering:
		w.thinkWander()
	default:
		w.thinkIdle()
	}
}

// thinkIdle waits out the idle timer, scanning for targets meanwhile.
func (w *WandererAI) thinkIdle() {
	w.stay()

	if w.tryAcquireTarget() {
		return
	}
	w.checkHateDecay()

	w.idleTicksLeft--
	if w.idleTicksLeft > 0 {
		return
	}

	w.wanderTarget = w.randomWanderPoint()
	w.npc.SetState(model.StateWandering)
}

// thinkWander walks toward the chosen random point.
func (w *WandererAI) thinkWander() {
	if w.tryAcquireTarget() {
		return
	}
	w.checkHateDecay()

	w.stepToward(w.wanderTarget, w.npc.MoveSpeed())

	if w.npc.Position().Dist(w.wanderTarget) <= w.cfg.ArrivalThreshold {
		w.rollIdleTimer()
		w.npc.SetState(model.StateIdle)
	}
}

// thinkCombat services the live session: chase, cadence, break conditions.
func (w *WandererAI) thinkCombat() {
	target := w.combat.Target()
	if target == nil {
		w.startReturn()
		return
	}

	// Strayed beyond the aggro radius from spawn: break off.
	if !w.npc.Aggro().Contains(w.npc.Position()) {
		w.combat.ExitCombat()
		w.startReturn()
		return
	}

	switch w.combat.Step() {
	case combat.StatusEnded, combat.StatusIdle:
		w.startReturn()

	case combat.StatusApproaching:
		w.npc.SetState(model.StateApproaching)
		w.stepToward(target.Position(), w.npc.MoveSpeed())
		if w.npc.Position().Dist(target.Position()) <= w.cfg.MeleeRange {
			w.npc.SetState(model.StateAttacking)
		}
		w.tickAttackTimeout()

	case combat.StatusWaiting:
		w.npc.SetState(model.StateAttacking)
		w.stay()
		w.tickAttackTimeout()

	case combat.StatusAttacked:
		w.npc.SetState(model.StateAttacking)
		w.stay()
		w.timeoutLeft = w.cfg.AttackTimeoutTicks
	}
}

// thinkReturn walks back to the spawn origin.
func (w *WandererAI) thinkReturn() {
	origin := w.npc.Aggro().Origin()
	w.stepToward(origin, w.npc.MoveSpeed())

	if w.npc.Position().Dist(origin) <= w.cfg.ArrivalThreshold {
		// Home again: forget grudges and recover to full.
		w.npc.Hate().Clear()
		w.npc.RestoreFull()
		w.rollIdleTimer()
		w.npc.SetState(model.StateIdle)

		if IsDebugEnabled() {
			slog.Debug("npc returned home", "npc", w.npc.Name(), "id", w.npc.ID())
		}
	}
}

// tryAcquireTarget engages the most hated live attacker. Aggressive NPCs
// still inside their own aggro radius also scan for fresh targets around the
// spawn origin. Returns true when an engagement started.
func (w *WandererAI) tryAcquireTarget() bool {
	if w.immunityLeft > 0 {
		return false
	}

	// Retaliation first: anyone on the hate list takes priority.
	if !w.npc.Hate().IsEmpty() {
		if w.engageMostHated() {
			return true
		}
	}

	if !w.npc.Profile().Aggressive {
		return false
	}

	aggro := w.npc.Aggro()
	if !aggro.Contains(w.npc.Position()) {
		return false
	}

	w.world.ScanNear(aggro.Origin(), aggro.Radius(), func(t model.CombatTarget) bool {
		if t.ID() == w.npc.ID() || !t.IsAlive() {
			return true
		}
		// NPCs never aggro other NPCs.
		if _, isNpc := t.(*model.Npc); isNpc {
			return true
		}
		w.npc.Hate().AddHate(t.ID(), 1)
		return true
	})

	if w.npc.Hate().IsEmpty() {
		return false
	}
	return w.engageMostHated()
}

// engageMostHated resolves the hate list to a live target and engages it.
// Stale entries are pruned as they are found.
func (w *WandererAI) engageMostHated() bool {
	for {
		id := w.npc.Hate().MostHated()
		if id == 0 {
			return false
		}
		target, ok := w.world.Get(id)
		if !ok || !target.IsAlive() {
			w.npc.Hate().Remove(id)
			continue
		}
		w.engage(target)
		return true
	}
}

func (w *WandererAI) engage(target model.CombatTarget) {
	if !w.combat.BeginAttacking(target) {
		return
	}
	w.timeoutLeft = w.cfg.AttackTimeoutTicks
	if w.npc.Position().Dist(target.Position()) <= w.cfg.MeleeRange {
		w.npc.SetState(model.StateAttacking)
	} else {
		w.npc.SetState(model.StateApproaching)
	}

	if IsDebugEnabled() {
		slog.Debug("npc acquired target",
			"npc", w.npc.Name(),
			"id", w.npc.ID(),
			"target", target.Name(),
			"targetID", target.ID())
	}
}

// startReturn leaves combat and heads back to spawn. Skips straight to Idle
// when already home.
func (w *WandererAI) startReturn() {
	w.combat.ExitCombat()
	w.npc.Hate().Clear()

	origin := w.npc.Aggro().Origin()
	if w.npc.Position().Dist(origin) <= w.cfg.ArrivalThreshold {
		w.npc.RestoreFull()
		w.rollIdleTimer()
		w.npc.SetState(model.StateIdle)
		return
	}
	w.npc.SetState(model.StateReturning)
}

// checkHateDecay occasionally forgets all hate while unharmed at full HP.
func (w *WandererAI) checkHateDecay() {
	if w.npc.Hate().IsEmpty() {
		return
	}
	if w.npc.CurrentHP() < w.npc.MaxHP() {
		return
	}
	if w.rng.IntN(w.cfg.HateDecayChance) != 0 {
		return
	}
	w.npc.Hate().Clear()
}

// stepToward moves up to speed tiles toward target this tick window.
func (w *WandererAI) stepToward(target model.Position, speed float64) {
	next := w.npc.Position().Step(target, speed)
	w.npc.BeginMove(next)
}

// stay records a stationary window so render interpolation holds position.
func (w *WandererAI) stay() {
	w.npc.BeginMove(w.npc.Position())
}

func (w *WandererAI) tickAttackTimeout() {
	w.timeoutLeft--
	if w.timeoutLeft <= 0 {
		w.combat.ExitCombat()
		w.startReturn()
	}
}

func (w *WandererAI) rollIdleTimer() {
	span := w.cfg.IdleMaxTicks - w.cfg.IdleMinTicks
	w.idleTicksLeft = w.cfg.IdleMinTicks
	if span > 0 {
		w.idleTicksLeft += w.rng.IntN(span + 1)
	}
}

// randomWanderPoint picks a point inside the wander bounds around spawn.
func (w *WandererAI) randomWanderPoint() model.Position {
	origin := w.npc.Aggro().Origin()
	radius := w.npc.Profile().WanderRadius
	if radius <= 0 {
		return origin
	}
	dx := (w.rng.Float64()*2 - 1) * radius
	dy := (w.rng.Float64()*2 - 1) * radius
	return model.NewPosition(origin.X+dx, origin.Y+dy).ClampToRadius(origin, radius)
}
