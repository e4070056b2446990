package ai

import (
	"testing"

	"github.com/aicovergod/tickrpg/internal/model"
)

func newWalker(speed float64) *model.Creature {
	return model.NewCreature(1, "Walker", 10, model.NewPosition(0, 0), speed, model.DamageMelee)
}

func TestPath_LoopWrapsAround(t *testing.T) {
	// Speed large enough to reach each waypoint in one tick.
	walker := newWalker(10)
	f := NewPathFollower(walker, Path{
		Points: []Waypoint{
			{Pos: model.NewPosition(1, 0)},
			{Pos: model.NewPosition(2, 0)},
			{Pos: model.NewPosition(3, 0)},
		},
		Mode: PathLoop,
	})
	f.Start()

	wantX := []float64{1, 2, 3, 1, 2, 3}
	for i, x := range wantX {
		f.OnTick(uint64(i + 1))
		if got := walker.Position().X; got != x {
			t.Fatalf("tick %d: x = %.1f, want %.1f", i+1, got, x)
		}
	}
	if f.Done() {
		t.Error("loop paths never complete")
	}
}

func TestPath_OnceStopsAtLastWaypoint(t *testing.T) {
	walker := newWalker(10)
	f := NewPathFollower(walker, Path{
		Points: []Waypoint{
			{Pos: model.NewPosition(1, 0)},
			{Pos: model.NewPosition(2, 0)},
		},
		Mode: PathOnce,
	})
	f.Start()

	f.OnTick(1)
	f.OnTick(2)
	if !f.Done() {
		t.Fatal("path should be complete after the last waypoint")
	}

	end := walker.Position()
	f.OnTick(3)
	if walker.Position() != end {
		t.Error("completed paths must not move the walker")
	}
}

func TestPath_PingPongReverses(t *testing.T) {
	walker := newWalker(10)
	f := NewPathFollower(walker, Path{
		Points: []Waypoint{
			{Pos: model.NewPosition(1, 0)},
			{Pos: model.NewPosition(2, 0)},
			{Pos: model.NewPosition(3, 0)},
		},
		Mode: PathPingPong,
	})
	f.Start()

	wantX := []float64{1, 2, 3, 2, 1, 2}
	for i, x := range wantX {
		f.OnTick(uint64(i + 1))
		if got := walker.Position().X; got != x {
			t.Fatalf("tick %d: x = %.1f, want %.1f", i+1, got, x)
		}
	}
}

func TestPath_WaitTicksPauseAtWaypoint(t *testing.T) {
	walker := newWalker(10)
	f := NewPathFollower(walker, Path{
		Points: []Waypoint{
			{Pos: model.NewPosition(1, 0), WaitTicks: 2},
			{Pos: model.NewPosition(2, 0)},
		},
		Mode: PathLoop,
	})
	f.Start()

	f.OnTick(1) // arrive at the first waypoint
	if walker.Position().X != 1 {
		t.Fatalf("x = %.1f, want 1", walker.Position().X)
	}

	// Two ticks of standing still.
	f.OnTick(2)
	f.OnTick(3)
	if walker.Position().X != 1 {
		t.Fatal("walker must hold position during the wait")
	}

	f.OnTick(4)
	if walker.Position().X != 2 {
		t.Fatalf("x = %.1f after the wait, want 2", walker.Position().X)
	}
}

func TestPath_SpeedMultiplier(t *testing.T) {
	walker := newWalker(1)
	f := NewPathFollower(walker, Path{
		Points: []Waypoint{
			{Pos: model.NewPosition(10, 0), SpeedMult: 2},
		},
		Mode: PathOnce,
	})
	f.Start()

	f.OnTick(1)
	if got := walker.Position().X; got != 2 {
		t.Fatalf("x = %.1f with a 2x leg, want 2", got)
	}
}

func TestPath_SnapshotAtStartUsesOffsets(t *testing.T) {
	walker := newWalker(10)
	walker.SetPosition(model.NewPosition(5, 5))

	f := NewPathFollower(walker, Path{
		Points: []Waypoint{
			{Pos: model.NewPosition(1, 0)},
			{Pos: model.NewPosition(1, 1)},
		},
		Mode:            PathLoop,
		SnapshotAtStart: true,
	})
	f.Start()

	f.OnTick(1)
	if walker.Position() != model.NewPosition(6, 5) {
		t.Fatalf("pos = %v, want offset from the start anchor", walker.Position())
	}
	f.OnTick(2)
	if walker.Position() != model.NewPosition(6, 6) {
		t.Fatalf("pos = %v, want the second offset", walker.Position())
	}
}

func TestPath_SuspendWhileYieldsTheMover(t *testing.T) {
	walker := newWalker(10)
	suspended := false
	f := NewPathFollower(walker, Path{
		Points: []Waypoint{
			{Pos: model.NewPosition(1, 0)},
			{Pos: model.NewPosition(2, 0)},
		},
		Mode: PathLoop,
	})
	f.SuspendWhile(func() bool { return suspended })
	f.Start()

	f.OnTick(1)
	if walker.Position().X != 1 {
		t.Fatalf("x = %.1f, want 1", walker.Position().X)
	}

	// While suspended the follower must not move the walker or touch its
	// move window; another controller owns the tick.
	suspended = true
	walker.BeginMove(walker.Position()) // the other controller's window
	before := walker.Window()
	f.OnTick(2)
	f.OnTick(3)
	if walker.Position().X != 1 {
		t.Fatal("suspended patrol must not move the walker")
	}
	if walker.Window() != before {
		t.Fatal("suspended patrol must not overwrite the tick window")
	}

	suspended = false
	f.OnTick(4)
	if walker.Position().X != 2 {
		t.Fatalf("x = %.1f after resume, want 2", walker.Position().X)
	}
}

func TestPath_EmptyPathIsComplete(t *testing.T) {
	walker := newWalker(1)
	f := NewPathFollower(walker, Path{Mode: PathOnce})
	f.Start()

	if !f.Done() {
		t.Error("empty paths are complete immediately")
	}
	f.OnTick(1)
}
