package ai

import (
	"testing"

	"github.com/aicovergod/tickrpg/internal/combat"
	"github.com/aicovergod/tickrpg/internal/model"
)

func testPetDef() *model.PetDefinition {
	return &model.PetDefinition{
		Name:          "Wolf",
		MaxHP:         20,
		AttackLevel:   10,
		StrengthLevel: 10,
		DefenceLevel:  8,
		Bonus:         model.EquipmentBonus{AttackSpeedTicks: 2},
		AttackType:    model.DamageMelee,
		MoveSpeed:     1,
		MaxLevel:      30,
	}
}

type petParty struct {
	world *model.World
	owner *model.Player
	pet   *model.Pet
	ai    *PetAI
	enemy *model.Player
}

func newPetParty(t *testing.T, guard bool) *petParty {
	t.Helper()
	world := model.NewWorld()

	skills := model.StaticSkills{
		model.SkillHitpoints:    50,
		model.SkillBeastmastery: 5,
	}
	owner := model.NewPlayer(world.NextID(), "Owner", model.NewPosition(0, 0), skills, model.StaticEquipment{})
	world.Add(owner)

	pet := model.NewPet(world.NextID(), testPetDef(), owner, 1, 1.5)
	pet.SetGuardMode(guard)
	world.Add(pet)

	enemy := newVictim(world, 1, 0)

	ai := NewPetAI(pet, world, PetConfig{FollowNear: 2, FollowFar: 12, MeleeRange: 1.5}, testRng(), combat.Hooks{})
	ai.Start()

	return &petParty{world: world, owner: owner, pet: pet, ai: ai, enemy: enemy}
}

func TestPet_GuardRetaliation(t *testing.T) {
	p := newPetParty(t, true)

	p.owner.ApplyDamage(2, model.DamageMelee, p.enemy)

	// The observer only queues the attacker; the engagement starts on the
	// pet's own tick.
	if p.ai.Combat().InCombat() {
		t.Fatal("retaliation must not start inside the attacker's callback")
	}

	p.ai.OnTick(1)
	if got := p.ai.Combat().Target(); got == nil || got.ID() != p.enemy.ID() {
		t.Fatal("guard pet must retaliate against the owner's attacker")
	}
	if p.ai.Mode() != PetModeAttack {
		t.Errorf("mode = %v, want attack", p.ai.Mode())
	}
}

func TestPet_GuardDisabledIgnoresOwnerHits(t *testing.T) {
	p := newPetParty(t, false)

	p.owner.ApplyDamage(2, model.DamageMelee, p.enemy)
	p.ai.OnTick(1)

	if p.ai.Combat().InCombat() {
		t.Fatal("pet without guard mode must not retaliate")
	}
	if p.ai.Mode() != PetModeFollow {
		t.Errorf("mode = %v, want follow", p.ai.Mode())
	}
}

func TestPet_GuardFiresOncePerEngagement(t *testing.T) {
	p := newPetParty(t, true)
	second := newVictim(p.world, 0, 1)

	p.owner.ApplyDamage(1, model.DamageMelee, p.enemy)
	p.ai.OnTick(1)
	if got := p.ai.Combat().Target(); got == nil || got.ID() != p.enemy.ID() {
		t.Fatal("setup: pet should be fighting the first attacker")
	}

	// A second attacker mid-fight must not redirect the pet.
	p.owner.ApplyDamage(1, model.DamageMelee, second)
	p.ai.OnTick(2)
	if got := p.ai.Combat().Target(); got == nil || got.ID() != p.enemy.ID() {
		t.Fatal("mid-fight owner hits must not retarget the pet")
	}

	// The engagement ends with the target's death; guard re-arms.
	p.enemy.ApplyDamage(100000, model.DamageMelee, p.pet)
	p.ai.OnTick(3)
	if p.ai.Combat().InCombat() {
		t.Fatal("session must end when the target dies")
	}
	if p.ai.Mode() != PetModeFollow {
		t.Errorf("mode = %v after engagement, want follow", p.ai.Mode())
	}

	p.owner.ApplyDamage(1, model.DamageMelee, second)
	p.ai.OnTick(4)
	if got := p.ai.Combat().Target(); got == nil || got.ID() != second.ID() {
		t.Fatal("guard must re-arm after the engagement ends")
	}
}

func TestPet_StayModeBlocksRetaliation(t *testing.T) {
	p := newPetParty(t, true)
	p.ai.OrderStay()

	p.owner.ApplyDamage(2, model.DamageMelee, p.enemy)
	p.ai.OnTick(1)

	if p.ai.Combat().InCombat() {
		t.Fatal("staying pet must not retaliate")
	}
}

func TestPet_OrderAttackIdempotent(t *testing.T) {
	p := newPetParty(t, false)

	if !p.ai.OrderAttack(p.enemy) {
		t.Fatal("order on a live target must be accepted")
	}
	session := p.ai.Combat().Session()

	if !p.ai.OrderAttack(p.enemy) {
		t.Fatal("re-issued order must report success")
	}
	if p.ai.Combat().Session() != session {
		t.Error("re-issued order must not restart the session")
	}

	if p.ai.OrderAttack(p.pet) {
		t.Error("self target must be declined")
	}
	if p.ai.OrderAttack(nil) {
		t.Error("nil target must be declined")
	}
}

func TestPet_FollowWalksAndTeleports(t *testing.T) {
	p := newPetParty(t, false)

	// Beyond FollowNear: the pet walks closer.
	p.pet.SetPosition(model.NewPosition(5, 0))
	p.ai.OnTick(1)
	if d := p.pet.Position().Dist(p.owner.Position()); d >= 5 {
		t.Errorf("pet did not close distance: %.2f", d)
	}

	// Beyond FollowFar: the pet snaps to the owner.
	p.pet.SetPosition(model.NewPosition(40, 0))
	p.ai.OnTick(2)
	if p.pet.Position() != p.owner.Position() {
		t.Errorf("pet at %v, want teleport to owner at %v", p.pet.Position(), p.owner.Position())
	}

	// Inside FollowNear: the pet stays put.
	before := p.pet.Position()
	p.ai.OnTick(3)
	if p.pet.Position() != before {
		t.Error("pet inside the follow distance must not move")
	}
}

func TestPet_OrderFollowCancelsCombat(t *testing.T) {
	p := newPetParty(t, false)

	p.ai.OrderAttack(p.enemy)
	p.ai.OrderFollow()

	if p.ai.Combat().InCombat() {
		t.Fatal("follow order must cancel the session")
	}
	if p.ai.Mode() != PetModeFollow {
		t.Errorf("mode = %v, want follow", p.ai.Mode())
	}
}

func TestPet_StopUnhooksOwnerObserver(t *testing.T) {
	p := newPetParty(t, true)
	p.ai.Stop()

	p.owner.ApplyDamage(2, model.DamageMelee, p.enemy)
	p.ai.OnTick(1)

	if p.ai.Combat().InCombat() {
		t.Fatal("stopped pet must not retaliate")
	}
}
