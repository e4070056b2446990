package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aicovergod/tickrpg/internal/model"
)

// Simulation holds all configuration for the simulation server.
type Simulation struct {
	// Tick loop
	TickMs int `yaml:"tick_ms"`

	// Combat
	MeleeRange       float64 `yaml:"melee_range"`
	ArrivalThreshold float64 `yaml:"arrival_threshold"`

	// NPC behavior
	IdleMinTicks       int `yaml:"idle_min_ticks"`
	IdleMaxTicks       int `yaml:"idle_max_ticks"`
	SpawnImmunityTicks int `yaml:"spawn_immunity_ticks"`
	AttackTimeoutTicks int `yaml:"attack_timeout_ticks"`
	HateDecayChance    int `yaml:"hate_decay_chance"` // 1/N per tick

	// Pets
	Pet PetConfig `yaml:"pet"`

	// Spectator feed
	WatchAddress string `yaml:"watch_address"`

	// Logging
	Debug bool `yaml:"debug"`

	// Content
	Npcs []NpcEntry `yaml:"npcs"`
	Pets []PetEntry `yaml:"pets"`
}

// PetConfig holds pet follow and scaling parameters.
type PetConfig struct {
	// BeastmasteryPctPerLevel is the stat percentage each owner
	// Beastmastery level adds to pet combat stats.
	BeastmasteryPctPerLevel float64 `yaml:"beastmastery_pct_per_level"`

	FollowNear float64 `yaml:"follow_near"`
	FollowFar  float64 `yaml:"follow_far"`
}

// BonusEntry mirrors model.EquipmentBonus in config form.
type BonusEntry struct {
	Attack           int `yaml:"attack"`
	Strength         int `yaml:"strength"`
	MeleeDefence     int `yaml:"melee_defence"`
	RangeDefence     int `yaml:"range_defence"`
	MagicDefence     int `yaml:"magic_defence"`
	AttackSpeedTicks int `yaml:"attack_speed_ticks"`
}

// ToBonus converts to the model type.
func (b BonusEntry) ToBonus() model.EquipmentBonus {
	return model.EquipmentBonus{
		Attack:           b.Attack,
		Strength:         b.Strength,
		MeleeDefence:     b.MeleeDefence,
		RangeDefence:     b.RangeDefence,
		MagicDefence:     b.MagicDefence,
		AttackSpeedTicks: b.AttackSpeedTicks,
	}
}

// NpcEntry defines one spawnable NPC kind plus its spawn points.
type NpcEntry struct {
	Name          string       `yaml:"name"`
	Level         int          `yaml:"level"`
	MaxHP         int          `yaml:"max_hp"`
	AttackLevel   int          `yaml:"attack_level"`
	StrengthLevel int          `yaml:"strength_level"`
	DefenceLevel  int          `yaml:"defence_level"`
	Bonus         BonusEntry   `yaml:"bonus"`
	Style         string       `yaml:"style"`
	AttackType    string       `yaml:"attack_type"`
	Aggressive    bool         `yaml:"aggressive"`
	AggroRadius   float64      `yaml:"aggro_radius"`
	WanderRadius  float64      `yaml:"wander_radius"`
	MoveSpeed     float64      `yaml:"move_speed"`
	Spawns        []SpawnPoint `yaml:"spawns"`
}

// SpawnPoint is one spawn position for an NPC kind.
type SpawnPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ToProfile converts the entry to a model profile.
func (e NpcEntry) ToProfile() (model.NpcProfile, error) {
	style, err := ParseStyle(e.Style)
	if err != nil {
		return model.NpcProfile{}, fmt.Errorf("npc %s: %w", e.Name, err)
	}
	dtype, err := ParseDamageType(e.AttackType)
	if err != nil {
		return model.NpcProfile{}, fmt.Errorf("npc %s: %w", e.Name, err)
	}
	return model.NpcProfile{
		Name:          e.Name,
		Level:         e.Level,
		MaxHP:         e.MaxHP,
		AttackLevel:   e.AttackLevel,
		StrengthLevel: e.StrengthLevel,
		DefenceLevel:  e.DefenceLevel,
		Bonus:         e.Bonus.ToBonus(),
		Style:         style,
		AttackType:    dtype,
		Aggressive:    e.Aggressive,
		AggroRadius:   e.AggroRadius,
		WanderRadius:  e.WanderRadius,
		MoveSpeed:     e.MoveSpeed,
	}, nil
}

// TierEntry is one evolution tier row.
type TierEntry struct {
	MinLevel       int     `yaml:"min_level"`
	StatMultiplier float64 `yaml:"stat_multiplier"`
	Scale          float64 `yaml:"scale"`
}

// PetEntry defines one summonable pet kind.
type PetEntry struct {
	Name          string      `yaml:"name"`
	MaxHP         int         `yaml:"max_hp"`
	AttackLevel   int         `yaml:"attack_level"`
	StrengthLevel int         `yaml:"strength_level"`
	DefenceLevel  int         `yaml:"defence_level"`
	Bonus         BonusEntry  `yaml:"bonus"`
	AttackType    string      `yaml:"attack_type"`
	MoveSpeed     float64     `yaml:"move_speed"`
	MaxLevel      int         `yaml:"max_level"`
	Tiers         []TierEntry `yaml:"tiers"`
}

// ToDefinition converts the entry to a model pet definition.
func (e PetEntry) ToDefinition() (model.PetDefinition, error) {
	dtype, err := ParseDamageType(e.AttackType)
	if err != nil {
		return model.PetDefinition{}, fmt.Errorf("pet %s: %w", e.Name, err)
	}
	tiers := make([]model.EvolutionTier, 0, len(e.Tiers))
	for _, t := range e.Tiers {
		tiers = append(tiers, model.EvolutionTier{
			MinLevel:       t.MinLevel,
			StatMultiplier: t.StatMultiplier,
			Scale:          t.Scale,
		})
	}
	return model.PetDefinition{
		Name:          e.Name,
		MaxHP:         e.MaxHP,
		AttackLevel:   e.AttackLevel,
		StrengthLevel: e.StrengthLevel,
		DefenceLevel:  e.DefenceLevel,
		Bonus:         e.Bonus.ToBonus(),
		AttackType:    dtype,
		MoveSpeed:     e.MoveSpeed,
		MaxLevel:      e.MaxLevel,
		Tiers:         tiers,
	}, nil
}

// ParseStyle maps a config string to a combat style.
// Empty defaults to accurate.
func ParseStyle(s string) (model.CombatStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "accurate":
		return model.StyleAccurate, nil
	case "aggressive":
		return model.StyleAggressive, nil
	case "defensive":
		return model.StyleDefensive, nil
	case "controlled":
		return model.StyleControlled, nil
	default:
		return model.StyleAccurate, fmt.Errorf("unknown combat style %q", s)
	}
}

// ParseDamageType maps a config string to a damage type.
// Empty defaults to melee.
func ParseDamageType(s string) (model.DamageType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "melee":
		return model.DamageMelee, nil
	case "ranged":
		return model.DamageRanged, nil
	case "magic":
		return model.DamageMagic, nil
	case "burn":
		return model.DamageBurn, nil
	case "poison":
		return model.DamagePoison, nil
	default:
		return model.DamageMelee, fmt.Errorf("unknown damage type %q", s)
	}
}

// Default returns Simulation config with sensible defaults.
func Default() Simulation {
	return Simulation{
		TickMs:             600,
		MeleeRange:         1.5,
		ArrivalThreshold:   0.25,
		IdleMinTicks:       3,
		IdleMaxTicks:       8,
		SpawnImmunityTicks: 10,
		AttackTimeoutTicks: 200,
		HateDecayChance:    500,
		Pet: PetConfig{
			BeastmasteryPctPerLevel: 1.5,
			FollowNear:              2,
			FollowFar:               12,
		},
		WatchAddress: "127.0.0.1:8089",
		Npcs: []NpcEntry{
			{
				Name:          "Goblin",
				Level:         5,
				MaxHP:         15,
				AttackLevel:   4,
				StrengthLevel: 5,
				DefenceLevel:  3,
				Bonus:         BonusEntry{AttackSpeedTicks: 4},
				Style:         "aggressive",
				AttackType:    "melee",
				Aggressive:    true,
				AggroRadius:   5,
				WanderRadius:  4,
				MoveSpeed:     0.75,
				Spawns:        []SpawnPoint{{X: 10, Y: 10}, {X: 16, Y: 12}},
			},
		},
	}
}

// Load loads simulation config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Simulation, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
