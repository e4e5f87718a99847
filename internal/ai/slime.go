package ai

import "github.com/udisondev/cavern/internal/model"

// SlimeMode is the slime state tag.
type SlimeMode uint8

const (
	SlimePatrol SlimeMode = iota
	SlimeHop
)

// String returns human-readable state name
func (m SlimeMode) String() string {
	switch m {
	case SlimePatrol:
		return "patrol"
	case SlimeHop:
		return "hop"
	default:
		return "unknown"
	}
}

// SlimeState is the slime payload.
type SlimeState struct {
	State SlimeMode
	Dir   model.Facing
	// MinX and MaxX bound the left edge of the slime's box.
	MinX  float64
	MaxX  float64
	Speed float64
	// HopEvery is the hop cadence in grounded ticks; 0 disables hopping.
	HopEvery int
	// Since counts grounded patrol ticks since the last hop.
	Since int
}

func (s *SlimeState) tick(p Perception) model.Intent {
	prev := s.State

	// Reverse before stepping so the box never leaves the patrol range.
	next := p.Box.X + s.Dir.Sign()*s.Speed
	if next > s.MaxX || next < s.MinX || p.Contacts.Wall(s.Dir) {
		s.Dir = s.Dir.Reverse()
	}

	intent := model.Intent{Horizontal: s.Dir.Sign()}
	switch s.State {
	case SlimePatrol:
		if p.Grounded && s.HopEvery > 0 {
			s.Since++
			if s.Since >= s.HopEvery {
				s.Since = 0
				s.State = SlimeHop
				intent.Jump = true
			}
		}
	case SlimeHop:
		if p.Grounded {
			s.State = SlimePatrol
		}
	default:
		panic("ai: slime in unreachable state")
	}

	if prev != s.State {
		logTransition(model.KindSlime, p.Self, prev, s.State)
	}
	return intent
}
