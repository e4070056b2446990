package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicovergod/tickrpg/internal/model"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.TickMs, cfg.TickMs)
	assert.Equal(t, def.MeleeRange, cfg.MeleeRange)
	assert.Equal(t, def.HateDecayChance, cfg.HateDecayChance)
	assert.NotEmpty(t, cfg.Npcs)
}

func TestLoad_OverridesMergeWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	data := `
tick_ms: 300
spawn_immunity_ticks: 5
pet:
  beastmastery_pct_per_level: 2.5
npcs:
  - name: Imp
    level: 3
    max_hp: 8
    attack_level: 2
    strength_level: 2
    defence_level: 1
    style: controlled
    attack_type: magic
    aggressive: true
    aggro_radius: 5
    wander_radius: 2
    move_speed: 0.5
    bonus:
      attack_speed_ticks: 3
    spawns:
      - {x: 4, y: 4}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.TickMs)
	assert.Equal(t, 5, cfg.SpawnImmunityTicks)
	assert.Equal(t, 2.5, cfg.Pet.BeastmasteryPctPerLevel)
	// Untouched fields keep their defaults.
	assert.Equal(t, Default().MeleeRange, cfg.MeleeRange)
	assert.Equal(t, Default().WatchAddress, cfg.WatchAddress)

	require.Len(t, cfg.Npcs, 1)
	profile, err := cfg.Npcs[0].ToProfile()
	require.NoError(t, err)
	assert.Equal(t, "Imp", profile.Name)
	assert.Equal(t, model.StyleControlled, profile.Style)
	assert.Equal(t, model.DamageMagic, profile.AttackType)
	assert.Equal(t, 3, profile.Bonus.AttackSpeedTicks)
}

func TestLoad_MalformedYamlFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_ms: [not a number"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestParseStyle(t *testing.T) {
	for input, want := range map[string]model.CombatStyle{
		"":           model.StyleAccurate,
		"accurate":   model.StyleAccurate,
		"Aggressive": model.StyleAggressive,
		"DEFENSIVE":  model.StyleDefensive,
		" controlled ": model.StyleControlled,
	} {
		got, err := ParseStyle(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := ParseStyle("berserk")
	assert.Error(t, err)
}

func TestParseDamageType(t *testing.T) {
	for input, want := range map[string]model.DamageType{
		"":       model.DamageMelee,
		"melee":  model.DamageMelee,
		"Ranged": model.DamageRanged,
		"magic":  model.DamageMagic,
		"burn":   model.DamageBurn,
		"poison": model.DamagePoison,
	} {
		got, err := ParseDamageType(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := ParseDamageType("psychic")
	assert.Error(t, err)
}

func TestNpcEntry_BadEnumsFail(t *testing.T) {
	_, err := NpcEntry{Name: "X", Style: "bogus"}.ToProfile()
	assert.Error(t, err)

	_, err = NpcEntry{Name: "X", AttackType: "bogus"}.ToProfile()
	assert.Error(t, err)
}

func TestPetEntry_ToDefinition(t *testing.T) {
	entry := PetEntry{
		Name:       "Wolf",
		MaxHP:      20,
		AttackType: "melee",
		MaxLevel:   30,
		Tiers: []TierEntry{
			{MinLevel: 1, StatMultiplier: 1, Scale: 1},
			{MinLevel: 10, StatMultiplier: 1.5, Scale: 1.2},
		},
	}
	def, err := entry.ToDefinition()
	require.NoError(t, err)
	assert.Equal(t, "Wolf", def.Name)
	assert.Len(t, def.Tiers, 2)
	assert.Equal(t, 1.5, def.TierFor(12).StatMultiplier)
}
