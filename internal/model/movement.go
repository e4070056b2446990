package model

import "time"

// MoveWindow is the (from, to) position pair for one tick window.
// The tick handler decides To; the render loop only interpolates between the
// two and never re-evaluates state.
type MoveWindow struct {
	From Position
	To   Position
}

// At returns the interpolated position at elapsed time into the tick window.
// The fraction elapsed/tickDuration is clamped to [0, 1], so sampling at
// elapsed == tickDuration yields To exactly and no drift can accumulate.
func (w MoveWindow) At(elapsed, tickDuration time.Duration) Position {
	if tickDuration <= 0 {
		return w.To
	}
	t := float64(elapsed) / float64(tickDuration)
	return w.From.Lerp(w.To, t)
}
