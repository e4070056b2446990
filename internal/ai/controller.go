package ai

import "github.com/aicovergod/tickrpg/internal/model"

// Controller is the behavior controller contract for NPC and pet agents.
// Controllers are also scheduler Agents: all state transitions happen inside
// OnTick.
type Controller interface {
	Agent

	// Start arms the controller.
	Start()

	// Stop disarms the controller and cancels any live combat session.
	Stop()

	// State returns the current behavior state.
	State() model.BehaviorState
}
