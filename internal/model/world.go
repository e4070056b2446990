package model

import (
	"sync"
	"sync/atomic"
)

// World is the registry of live agents. It replaces scattered lookup
// callbacks with one explicit service object injected into controllers.
// Iteration order is registration order, matching the tick order guarantee.
type World struct {
	mu     sync.RWMutex
	order  []CombatTarget
	byID   map[uint32]CombatTarget
	nextID atomic.Uint32
}

// NewWorld creates an empty world registry.
func NewWorld() *World {
	return &World{byID: make(map[uint32]CombatTarget)}
}

// NextID allocates a fresh object ID.
func (w *World) NextID() uint32 {
	return w.nextID.Add(1)
}

// Add registers an agent. Re-adding the same ID is a no-op.
func (w *World) Add(t CombatTarget) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.byID[t.ID()]; ok {
		return
	}
	w.byID[t.ID()] = t
	w.order = append(w.order, t)
}

// Remove drops an agent from the registry.
func (w *World) Remove(id uint32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.byID[id]; !ok {
		return
	}
	delete(w.byID, id)
	for i, t := range w.order {
		if t.ID() == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Get looks up an agent by ID.
func (w *World) Get(id uint32) (CombatTarget, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	t, ok := w.byID[id]
	return t, ok
}

// Count returns the number of registered agents.
func (w *World) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.order)
}

// ForEach visits every agent in registration order until fn returns false.
func (w *World) ForEach(fn func(CombatTarget) bool) {
	w.mu.RLock()
	snapshot := make([]CombatTarget, len(w.order))
	copy(snapshot, w.order)
	w.mu.RUnlock()

	for _, t := range snapshot {
		if !fn(t) {
			return
		}
	}
}

// ScanNear visits every agent within radius of pos, in registration order.
func (w *World) ScanNear(pos Position, radius float64, fn func(CombatTarget) bool) {
	radiusSq := radius * radius
	w.ForEach(func(t CombatTarget) bool {
		if pos.DistanceSquared(t.Position()) > radiusSq {
			return true
		}
		return fn(t)
	})
}
