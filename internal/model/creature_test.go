package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []string
	deaths int
}

func (r *recordingObserver) OnHealthChanged(_ CombatTarget, _, _ int) {
	r.events = append(r.events, "health")
}

func (r *recordingObserver) OnDamaged(_ CombatTarget, _ CombatTarget, _ int) {
	r.events = append(r.events, "damaged")
}

func (r *recordingObserver) OnDeath(_ CombatTarget, _ CombatTarget) {
	r.events = append(r.events, "death")
	r.deaths++
}

// testTarget wraps the bare base with the DefenceStats method CombatTarget
// requires so the base can be bound to itself in tests.
type testTarget struct{ *Creature }

func (testTarget) DefenceStats() CombatantStats { return CombatantStats{} }

func newTestCreature(id uint32, hp int) testTarget {
	c := NewCreature(id, "Dummy", hp, NewPosition(0, 0), 1, DamageMelee)
	t := testTarget{c}
	c.Bind(t)
	return t
}

func TestApplyDamage_ClampsAndReturnsApplied(t *testing.T) {
	c := newTestCreature(1, 10)

	assert.Equal(t, 4, c.ApplyDamage(4, DamageMelee, nil))
	assert.Equal(t, 6, c.CurrentHP())

	// Negative damage is a zero hit.
	assert.Equal(t, 0, c.ApplyDamage(-5, DamageMelee, nil))
	assert.Equal(t, 6, c.CurrentHP())

	// Overkill applies only what was left.
	assert.Equal(t, 6, c.ApplyDamage(100, DamageMelee, nil))
	assert.Equal(t, 0, c.CurrentHP())
	assert.False(t, c.IsAlive())

	// Hitting a corpse is a benign no-op.
	assert.Equal(t, 0, c.ApplyDamage(5, DamageMelee, nil))
	assert.Equal(t, 0, c.CurrentHP())
}

func TestApplyDamage_ObserverOrderAndDeathOnce(t *testing.T) {
	c := newTestCreature(1, 5)
	killer := newTestCreature(2, 5)

	rec := &recordingObserver{}
	c.RegisterHealthObserver(rec)
	c.RegisterDamageObserver(rec)
	c.RegisterDeathObserver(rec)

	c.ApplyDamage(5, DamageMelee, killer)
	require.Equal(t, []string{"health", "damaged", "death"}, rec.events)
	assert.Equal(t, 1, rec.deaths)

	// Further hits on the corpse fire nothing.
	c.ApplyDamage(5, DamageMelee, killer)
	assert.Equal(t, 1, rec.deaths)
}

func TestRestoreFull_RearmsDeathNotification(t *testing.T) {
	c := newTestCreature(1, 5)
	rec := &recordingObserver{}
	c.RegisterDeathObserver(rec)

	c.ApplyDamage(5, DamageMelee, nil)
	require.Equal(t, 1, rec.deaths)

	c.RestoreFull()
	assert.Equal(t, 5, c.CurrentHP())
	assert.True(t, c.IsAlive())

	c.ApplyDamage(5, DamageMelee, nil)
	assert.Equal(t, 2, rec.deaths, "death fires once per life, not once per creature")
}

func TestHeal_CapsAtMax(t *testing.T) {
	c := newTestCreature(1, 10)
	c.ApplyDamage(7, DamageMelee, nil)

	c.Heal(3)
	assert.Equal(t, 6, c.CurrentHP())

	c.Heal(100)
	assert.Equal(t, 10, c.CurrentHP())

	c.Heal(-5)
	assert.Equal(t, 10, c.CurrentHP())
}

func TestUnregisterObserver(t *testing.T) {
	c := newTestCreature(1, 10)
	rec := &recordingObserver{}
	c.RegisterDamageObserver(rec)
	c.UnregisterDamageObserver(rec)

	c.ApplyDamage(1, DamageMelee, nil)
	assert.Empty(t, rec.events)
}

func TestObserversReceiveOuterAgent(t *testing.T) {
	profile := &NpcProfile{Name: "Rat", Level: 1, MaxHP: 5, MoveSpeed: 1}
	npc := NewNpc(7, profile, NewPosition(0, 0))

	var got CombatTarget
	npc.RegisterHealthObserver(healthFunc(func(target CombatTarget, _, _ int) {
		got = target
	}))

	npc.ApplyDamage(1, DamageMelee, nil)
	_, ok := got.(*Npc)
	assert.True(t, ok, "observers must see the concrete agent, not the embedded base")
}

type healthFunc func(CombatTarget, int, int)

func (f healthFunc) OnHealthChanged(target CombatTarget, oldHP, newHP int) { f(target, oldHP, newHP) }
