package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aicovergod/tickrpg/internal/ai"
	"github.com/aicovergod/tickrpg/internal/combat"
	"github.com/aicovergod/tickrpg/internal/config"
	"github.com/aicovergod/tickrpg/internal/model"
	"github.com/aicovergod/tickrpg/internal/watch"
)

const ConfigPath = "config/simserver.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Configure slog
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	slog.Info("tickrpg simulation server starting")

	// Load config
	cfgPath := ConfigPath
	if p := os.Getenv("TICKRPG_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	ai.SetDebug(cfg.Debug)
	slog.Info("config loaded", "tick_ms", cfg.TickMs, "npcs", len(cfg.Npcs), "watch", cfg.WatchAddress)

	// One RNG for the whole simulation; every use happens on the
	// scheduler goroutine.
	seed := uint64(time.Now().UnixNano())
	if s := os.Getenv("TICKRPG_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	slog.Info("rng seeded", "seed", seed)

	world := model.NewWorld()
	scheduler := ai.NewScheduler(time.Duration(cfg.TickMs) * time.Millisecond)
	hub := watch.NewHub()

	wandererCfg := ai.WandererConfig{
		IdleMinTicks:       cfg.IdleMinTicks,
		IdleMaxTicks:       cfg.IdleMaxTicks,
		ArrivalThreshold:   cfg.ArrivalThreshold,
		MeleeRange:         cfg.MeleeRange,
		SpawnImmunityTicks: cfg.SpawnImmunityTicks,
		AttackTimeoutTicks: cfg.AttackTimeoutTicks,
		HateDecayChance:    cfg.HateDecayChance,
	}

	// Spawn NPCs
	for _, entry := range cfg.Npcs {
		profile, err := entry.ToProfile()
		if err != nil {
			return fmt.Errorf("npc config: %w", err)
		}
		for _, sp := range entry.Spawns {
			npc := model.NewNpc(world.NextID(), &profile, model.NewPosition(sp.X, sp.Y))
			world.Add(npc)

			wai := ai.NewWandererAI(npc, world, wandererCfg, rng, combat.Hooks{})
			wai.Start()
			scheduler.Subscribe(wai)
			hub.Track(npcSource(wai))
		}
	}
	slog.Info("npcs spawned", "count", world.Count())

	if os.Getenv("TICKRPG_DEMO") != "0" {
		if err := spawnDemoParty(cfg, world, scheduler, hub, rng); err != nil {
			return fmt.Errorf("demo party: %w", err)
		}
	}

	// The hub ticks last so spectators see post-tick state.
	scheduler.Subscribe(hub)

	mux := http.NewServeMux()
	mux.Handle("/watch", hub)
	srv := &http.Server{Addr: cfg.WatchAddress, Handler: mux}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting tick scheduler")
		if err := scheduler.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("scheduler: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("starting spectator feed", "addr", cfg.WatchAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("spectator feed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// spawnDemoParty drops a patrolling adventurer with a guard pet into the
// world so the feed shows combat without a client connected. Aggressive
// NPCs pick on the adventurer; the pet retaliates.
func spawnDemoParty(cfg config.Simulation, world *model.World, scheduler *ai.Scheduler, hub *watch.Hub, rng *rand.Rand) error {
	skills := model.StaticSkills{
		model.SkillAttack:       10,
		model.SkillStrength:     10,
		model.SkillDefence:      10,
		model.SkillHitpoints:    30,
		model.SkillBeastmastery: 5,
	}
	gear := model.StaticEquipment{AttackSpeedTicks: 4}

	player := model.NewPlayer(world.NextID(), "Adventurer", model.NewPosition(8, 8), skills, gear)
	world.Add(player)

	pai := ai.NewPlayerAI(player, cfg.MeleeRange, rng, combat.Hooks{})
	pai.Start()
	scheduler.Subscribe(pai)
	hub.Track(playerSource(pai))

	// Patrol through the NPC spawn area.
	patrol := ai.NewPathFollower(player, ai.Path{
		Points: []ai.Waypoint{
			{Pos: model.NewPosition(0, 0), WaitTicks: 4},
			{Pos: model.NewPosition(8, 0), WaitTicks: 2},
			{Pos: model.NewPosition(8, 6), WaitTicks: 6},
			{Pos: model.NewPosition(0, 6), WaitTicks: 2},
		},
		Mode:             ai.PathPingPong,
		ArrivalThreshold: cfg.ArrivalThreshold,
		SnapshotAtStart:  true,
	})
	// The combat stepper owns the player's tick window while a session is
	// live; the patrol resumes once the fight ends.
	patrol.SuspendWhile(func() bool { return pai.Combat().InCombat() })
	patrol.Start()
	scheduler.Subscribe(patrol)

	if len(cfg.Pets) == 0 {
		return nil
	}

	def, err := cfg.Pets[0].ToDefinition()
	if err != nil {
		return err
	}
	pet := model.NewPet(world.NextID(), &def, player, 1, cfg.Pet.BeastmasteryPctPerLevel)
	pet.SetGuardMode(true)
	world.Add(pet)

	petAI := ai.NewPetAI(pet, world, ai.PetConfig{
		FollowNear: cfg.Pet.FollowNear,
		FollowFar:  cfg.Pet.FollowFar,
		MeleeRange: cfg.MeleeRange,
	}, rng, combat.Hooks{
		OnHit: func(_, _ model.CombatTarget, damage int) {
			pet.AddExperience(int64(damage) * 4)
		},
	})
	petAI.Start()
	scheduler.Subscribe(petAI)
	hub.Track(petSource(petAI))

	slog.Info("demo party spawned", "player", player.Name(), "pet", pet.Name())
	return nil
}
