package model

import "math"

// Position is a point in tile coordinates.
// Value type, passed by value (immutable).
type Position struct {
	X float64
	Y float64
}

// NewPosition creates a Position at the given tile coordinates.
func NewPosition(x, y float64) Position {
	return Position{X: x, Y: y}
}

// DistanceSquared returns the squared distance to another point (no sqrt).
func (p Position) DistanceSquared(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Dist returns the euclidean distance to another point.
func (p Position) Dist(other Position) float64 {
	return math.Sqrt(p.DistanceSquared(other))
}

// Lerp returns the point a fraction t of the way toward other.
// t is clamped to [0, 1], so t=0 yields p and t=1 yields other exactly.
func (p Position) Lerp(other Position, t float64) Position {
	if t <= 0 {
		return p
	}
	if t >= 1 {
		return other
	}
	return Position{
		X: p.X + (other.X-p.X)*t,
		Y: p.Y + (other.Y-p.Y)*t,
	}
}

// Step returns the point reached by moving up to maxDelta toward target.
// If target is within maxDelta the result is target exactly (no overshoot).
func (p Position) Step(target Position, maxDelta float64) Position {
	if maxDelta <= 0 {
		return p
	}
	dist := p.Dist(target)
	if dist <= maxDelta {
		return target
	}
	t := maxDelta / dist
	return Position{
		X: p.X + (target.X-p.X)*t,
		Y: p.Y + (target.Y-p.Y)*t,
	}
}

// ClampToRadius returns the point clamped to a circle around center.
func (p Position) ClampToRadius(center Position, radius float64) Position {
	if radius <= 0 {
		return center
	}
	dist := p.Dist(center)
	if dist <= radius {
		return p
	}
	t := radius / dist
	return Position{
		X: center.X + (p.X-center.X)*t,
		Y: center.Y + (p.Y-center.Y)*t,
	}
}

// Facing is a sprite direction index consumed by the animation layer.
type Facing int

const (
	FacingDown Facing = iota
	FacingLeft
	FacingRight
	FacingUp
)

// String returns human-readable facing name.
func (f Facing) String() string {
	switch f {
	case FacingDown:
		return "DOWN"
	case FacingLeft:
		return "LEFT"
	case FacingRight:
		return "RIGHT"
	case FacingUp:
		return "UP"
	default:
		return "UNKNOWN"
	}
}

// FacingTo returns the facing derived from the dominant axis of the vector
// from→to. Ties go to the horizontal axis. Y grows downward (screen space).
func FacingTo(from, to Position) Facing {
	dx := to.X - from.X
	dy := to.Y - from.Y
	if math.Abs(dx) >= math.Abs(dy) {
		if dx < 0 {
			return FacingLeft
		}
		return FacingRight
	}
	if dy < 0 {
		return FacingUp
	}
	return FacingDown
}
