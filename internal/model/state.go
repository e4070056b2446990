package model

// BehaviorState represents the behavior state machine position for an agent.
type BehaviorState int32

const (
	// StateIdle - agent is standing still, waiting out its idle timer
	StateIdle BehaviorState = iota
	// StateWandering - agent is walking to a random point inside its bounds
	StateWandering
	// StateApproaching - agent is closing distance to an attack target
	StateApproaching
	// StateAttacking - agent is in melee range, resolving attacks on cadence
	StateAttacking
	// StateReturning - agent is walking back to its spawn origin
	StateReturning
)

// String returns human-readable state name
func (s BehaviorState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateWandering:
		return "WANDERING"
	case StateApproaching:
		return "APPROACHING"
	case StateAttacking:
		return "ATTACKING"
	case StateReturning:
		return "RETURNING"
	default:
		return "UNKNOWN"
	}
}

// InCombat reports whether the state is one of the engagement states.
func (s BehaviorState) InCombat() bool {
	return s == StateApproaching || s == StateAttacking
}
