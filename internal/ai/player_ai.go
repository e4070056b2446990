package ai

import (
	"math/rand/v2"
	"sync/atomic"

	"github.com/aicovergod/tickrpg/internal/combat"
	"github.com/aicovergod/tickrpg/internal/model"
)

// PlayerAI is the thin per-tick stepper for a player's attack loop. Input
// handling lives elsewhere; this only services the live attack session on
// the simulation heartbeat, closing distance while the target is out of
// range.
type PlayerAI struct {
	player *model.Player
	combat *combat.AttackController

	running atomic.Bool
	state   atomic.Int32
}

// NewPlayerAI creates the tick stepper for one player.
func NewPlayerAI(player *model.Player, meleeRange float64, rng *rand.Rand, hooks combat.Hooks) *PlayerAI {
	if meleeRange <= 0 {
		meleeRange = defaultMeleeRange
	}
	p := &PlayerAI{player: player}
	p.combat = combat.NewAttackController(
		player,
		player.CombatStats,
		func() int { return player.Equipment().CombinedStats().AttackSpeedTicks },
		meleeRange,
		rng,
		hooks,
	)
	return p
}

// Start arms the stepper.
func (p *PlayerAI) Start() {
	p.running.Store(true)
	p.state.Store(int32(model.StateIdle))
}

// Stop disarms the stepper and cancels any live session.
func (p *PlayerAI) Stop() {
	p.running.Store(false)
	p.combat.ExitCombat()
	p.state.Store(int32(model.StateIdle))
}

// State returns the player's current behavior state.
func (p *PlayerAI) State() model.BehaviorState {
	return model.BehaviorState(p.state.Load())
}

// Player returns the controlled player.
func (p *PlayerAI) Player() *model.Player {
	return p.player
}

// Combat returns the player's attack controller.
func (p *PlayerAI) Combat() *combat.AttackController {
	return p.combat
}

// CommandAttack starts (or redirects) the player's attack loop.
func (p *PlayerAI) CommandAttack(target model.CombatTarget) bool {
	if !p.running.Load() || !p.player.IsAlive() {
		return false
	}
	return p.combat.CommandAttack(target)
}

// ExitCombat cancels the live session.
func (p *PlayerAI) ExitCombat() {
	p.combat.ExitCombat()
	p.state.Store(int32(model.StateIdle))
}

// OnTick services the attack session.
func (p *PlayerAI) OnTick(_ uint64) {
	if !p.running.Load() || !p.player.IsAlive() {
		return
	}
	if !p.combat.InCombat() {
		p.state.Store(int32(model.StateIdle))
		return
	}

	target := p.combat.Target()

	switch p.combat.Step() {
	case combat.StatusEnded, combat.StatusIdle:
		p.state.Store(int32(model.StateIdle))

	case combat.StatusApproaching:
		p.state.Store(int32(model.StateApproaching))
		if target != nil {
			next := p.player.Position().Step(target.Position(), p.player.MoveSpeed())
			p.player.BeginMove(next)
		}

	case combat.StatusWaiting, combat.StatusAttacked:
		p.state.Store(int32(model.StateAttacking))
		p.player.BeginMove(p.player.Position())
	}
}
