package main

import (
	"github.com/aicovergod/tickrpg/internal/ai"
	"github.com/aicovergod/tickrpg/internal/model"
	"github.com/aicovergod/tickrpg/internal/watch"
)

// Snapshot adapters bridging simulation agents to the spectator feed.

func snapshotCreature(kind string, t model.CombatTarget, state model.BehaviorState) watch.AgentSnapshot {
	pos := t.Position()
	return watch.AgentSnapshot{
		ID:    t.ID(),
		Kind:  kind,
		Name:  t.Name(),
		State: state.String(),
		HP:    t.CurrentHP(),
		MaxHP: t.MaxHP(),
		X:     pos.X,
		Y:     pos.Y,
		Alive: t.IsAlive(),
	}
}

func npcSource(w *ai.WandererAI) watch.Source {
	return watch.SourceFunc(func() watch.AgentSnapshot {
		s := snapshotCreature("npc", w.Npc(), w.State())
		s.Facing = w.Npc().Facing().String()
		return s
	})
}

func playerSource(p *ai.PlayerAI) watch.Source {
	return watch.SourceFunc(func() watch.AgentSnapshot {
		s := snapshotCreature("player", p.Player(), p.State())
		s.Facing = p.Player().Facing().String()
		return s
	})
}

func petSource(p *ai.PetAI) watch.Source {
	return watch.SourceFunc(func() watch.AgentSnapshot {
		s := snapshotCreature("pet", p.Pet(), p.State())
		s.Facing = p.Pet().Facing().String()
		return s
	})
}
