package model

// Intent is the per-tick desired motion produced by player input or an AI brain
// and consumed by the motion integrator.
type Intent struct {
	// Horizontal is the run axis in [-1, 1], scaled by the actor's run speed.
	Horizontal float64
	// Vertical is the climb/steer axis in [-1, 1]; negative is up.
	// Ladders and flyers use it, walkers ignore it.
	Vertical float64
	// Jump requests a jump impulse this tick. Holding it longer has no effect.
	Jump bool
}

// Idle is the zero intent.
var Idle = Intent{}

// Up reports whether the vertical axis points up.
func (i Intent) Up() bool { return i.Vertical < 0 }

// Down reports whether the vertical axis points down.
func (i Intent) Down() bool { return i.Vertical > 0 }

// Clamped returns a copy with both axes clamped to [-1, 1].
func (i Intent) Clamped() Intent {
	i.Horizontal = clampUnit(i.Horizontal)
	i.Vertical = clampUnit(i.Vertical)
	return i
}

func clampUnit(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
