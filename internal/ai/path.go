package ai

import (
	"sync/atomic"

	"github.com/aicovergod/tickrpg/internal/model"
)

// PathMode selects what happens when the last waypoint is reached.
type PathMode int

const (
	// PathLoop restarts from the first waypoint.
	PathLoop PathMode = iota
	// PathPingPong walks the waypoints backwards.
	PathPingPong
	// PathOnce stops at the last waypoint.
	PathOnce
)

// String returns human-readable mode name.
func (m PathMode) String() string {
	switch m {
	case PathLoop:
		return "LOOP"
	case PathPingPong:
		return "PINGPONG"
	case PathOnce:
		return "ONCE"
	default:
		return "UNKNOWN"
	}
}

// Waypoint is one stop on a patrol path.
type Waypoint struct {
	// Pos is the waypoint position. With SnapshotAtStart it is an offset
	// from the mover's position when Start is called; otherwise absolute.
	Pos model.Position

	// WaitTicks pauses the mover after arrival.
	WaitTicks int

	// SpeedMult scales the mover's speed on the leg toward this waypoint.
	// Zero means 1.
	SpeedMult float64
}

// Path is a patrol route definition.
type Path struct {
	Points           []Waypoint
	Mode             PathMode
	ArrivalThreshold float64

	// SnapshotAtStart treats waypoints as offsets anchored to the mover's
	// position at Start time, so the same route definition can be reused
	// at any spawn point.
	SnapshotAtStart bool
}

// PathMover is what the follower needs from the moving agent.
type PathMover interface {
	Position() model.Position
	BeginMove(model.Position)
	MoveSpeed() float64
	FaceToward(model.Position)
}

// PathFollower walks an agent along a patrol path one tick at a time.
// Movement happens only inside OnTick; waits are resumable tick counters.
type PathFollower struct {
	mover PathMover
	path  Path

	running atomic.Bool
	gate    func() bool // when set and true, the follower yields the tick

	anchor   model.Position // applied to offsets when SnapshotAtStart
	idx      int
	dir      int // +1 forward, -1 backward (ping-pong)
	waitLeft int
	done     bool
}

// NewPathFollower creates a follower for the given mover and route.
// Paths with no points are complete immediately.
func NewPathFollower(mover PathMover, path Path) *PathFollower {
	if path.ArrivalThreshold <= 0 {
		path.ArrivalThreshold = defaultArrivalThreshold
	}
	return &PathFollower{
		mover: mover,
		path:  path,
		dir:   1,
	}
}

// Start begins (or restarts) the patrol from the first waypoint.
// The anchor for offset paths is captured here.
func (f *PathFollower) Start() {
	f.anchor = f.mover.Position()
	f.idx = 0
	f.dir = 1
	f.waitLeft = 0
	f.done = len(f.path.Points) == 0
	f.running.Store(true)
}

// Stop halts the patrol in place.
func (f *PathFollower) Stop() {
	f.running.Store(false)
}

// SuspendWhile makes the follower skip ticks while cond returns true,
// without moving the mover. Only one controller may write a mover's tick
// window per tick, so a patrol sharing its mover with a combat stepper
// suspends itself for the duration of the session.
func (f *PathFollower) SuspendWhile(cond func() bool) {
	f.gate = cond
}

// Done reports whether a one-shot path has been completed.
func (f *PathFollower) Done() bool {
	return f.done
}

// CurrentIndex returns the index of the waypoint being walked toward.
func (f *PathFollower) CurrentIndex() int {
	return f.idx
}

// OnTick advances the patrol by one tick.
func (f *PathFollower) OnTick(_ uint64) {
	if !f.running.Load() || f.done {
		return
	}
	if f.gate != nil && f.gate() {
		return
	}

	if f.waitLeft > 0 {
		f.waitLeft--
		f.mover.BeginMove(f.mover.Position())
		return
	}

	wp := f.path.Points[f.idx]
	target := f.waypointPos(wp)

	speed := f.mover.MoveSpeed()
	if wp.SpeedMult > 0 {
		speed *= wp.SpeedMult
	}

	next := f.mover.Position().Step(target, speed)
	f.mover.BeginMove(next)
	f.mover.FaceToward(target)

	if next.Dist(target) <= f.path.ArrivalThreshold {
		f.waitLeft = wp.WaitTicks
		f.advance()
	}
}

func (f *PathFollower) waypointPos(wp Waypoint) model.Position {
	if f.path.SnapshotAtStart {
		return model.NewPosition(f.anchor.X+wp.Pos.X, f.anchor.Y+wp.Pos.Y)
	}
	return wp.Pos
}

// advance moves the waypoint index per the path mode.
func (f *PathFollower) advance() {
	last := len(f.path.Points) - 1
	if last <= 0 {
		if f.path.Mode == PathOnce {
			f.done = true
		}
		return
	}

	switch f.path.Mode {
	case PathOnce:
		if f.idx >= last {
			f.done = true
			return
		}
		f.idx++

	case PathPingPong:
		if f.idx >= last {
			f.dir = -1
		} else if f.idx <= 0 {
			f.dir = 1
		}
		f.idx += f.dir

	default: // PathLoop
		f.idx = (f.idx + 1) % len(f.path.Points)
	}
}
