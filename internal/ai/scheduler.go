package ai

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTickDuration is the simulation heartbeat used when no period is
// configured. All combat cadences are integer multiples of it.
const DefaultTickDuration = 600 * time.Millisecond

// Agent receives the scheduler heartbeat. OnTick is the only place an
// agent's simulation state may change; per-frame rendering must only
// interpolate inside the agent's current move window.
type Agent interface {
	OnTick(tick uint64)
}

// Scheduler is the fixed-period heartbeat driving all simulation decisions.
// Subscribers are ticked sequentially in subscription order on a single
// goroutine, so combat resolution cadence is independent of frame rate and
// no agent ever observes another agent mid-mutation.
type Scheduler struct {
	period time.Duration

	mu     sync.Mutex
	agents []Agent

	tick       atomic.Uint64
	lastTickAt atomic.Int64 // UnixNano of the last tick, for render clocks

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewScheduler creates a scheduler with the given tick period.
// Non-positive periods fall back to DefaultTickDuration.
func NewScheduler(period time.Duration) *Scheduler {
	if period <= 0 {
		period = DefaultTickDuration
	}
	s := &Scheduler{
		period: period,
		stopCh: make(chan struct{}),
	}
	s.lastTickAt.Store(time.Now().UnixNano())
	return s
}

// Period returns the fixed tick duration.
func (s *Scheduler) Period() time.Duration { return s.period }

// Tick returns the current tick counter.
func (s *Scheduler) Tick() uint64 { return s.tick.Load() }

// Elapsed returns time since the last tick fired, for render interpolation.
func (s *Scheduler) Elapsed() time.Duration {
	return time.Duration(time.Now().UnixNano() - s.lastTickAt.Load())
}

// Subscribe registers an agent. Tick order is subscription order.
// Subscribing the same agent twice is a no-op.
func (s *Scheduler) Subscribe(agent Agent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.agents {
		if a == agent {
			return
		}
	}
	s.agents = append(s.agents, agent)

	slog.Debug("agent subscribed", "agents", len(s.agents))
}

// Unsubscribe removes an agent, preserving the order of the rest.
// Safe to call from inside an OnTick callback.
func (s *Scheduler) Unsubscribe(agent Agent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.agents {
		if a == agent {
			s.agents = append(s.agents[:i], s.agents[i+1:]...)
			slog.Debug("agent unsubscribed", "agents", len(s.agents))
			return
		}
	}
}

// Count returns the number of subscribed agents.
func (s *Scheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.agents)
}

// Run drives the tick loop until the context is canceled or Stop is called.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	slog.Info("tick scheduler started", "period", s.period)

	for {
		select {
		case <-ctx.Done():
			slog.Info("tick scheduler stopping")
			return ctx.Err()

		case <-s.stopCh:
			slog.Info("tick scheduler stopped")
			return nil

		case <-ticker.C:
			s.Advance()
		}
	}
}

// Stop stops the tick loop.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Advance fires exactly one tick synchronously: every subscribed agent's
// OnTick runs once, in subscription order. Tests drive the simulation
// deterministically through this.
func (s *Scheduler) Advance() {
	tick := s.tick.Add(1)
	s.lastTickAt.Store(time.Now().UnixNano())

	// Snapshot under lock so agents may (un)subscribe during their tick.
	s.mu.Lock()
	agents := make([]Agent, len(s.agents))
	copy(agents, s.agents)
	s.mu.Unlock()

	for _, a := range agents {
		a.OnTick(tick)
	}

	if len(agents) > 0 && IsDebugEnabled() {
		slog.Debug("tick completed", "tick", tick, "agents", len(agents))
	}
}
