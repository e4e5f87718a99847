package ai

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/cavern/internal/model"
)

// BatMode is the bat state tag.
type BatMode uint8

const (
	BatIdle BatMode = iota
	BatPursue
)

// String returns human-readable state name
func (m BatMode) String() string {
	switch m {
	case BatIdle:
		return "idle"
	case BatPursue:
		return "pursue"
	default:
		return "unknown"
	}
}

// BatState is the bat payload.
// The bat starts pursuing at distance <= Radius and gives up only beyond Radius+Hyst.
type BatState struct {
	State  BatMode
	Radius float64
	Hyst   float64
}

func (s *BatState) tick(p Perception) model.Intent {
	self := p.Box.Center()
	toPlayer := mgl64.Vec2{p.Player.X - self.X, p.Player.Y - self.Y}
	dist := toPlayer.Len()

	prev := s.State
	switch s.State {
	case BatIdle:
		if dist <= s.Radius {
			s.State = BatPursue
		}
	case BatPursue:
		if dist > s.Radius+s.Hyst {
			s.State = BatIdle
		}
	default:
		panic("ai: bat in unreachable state")
	}
	if prev != s.State {
		logTransition(model.KindBat, p.Self, prev, s.State)
	}

	if s.State != BatPursue || dist == 0 {
		return model.Idle
	}
	dir := toPlayer.Normalize()
	return model.Intent{Horizontal: dir.X(), Vertical: dir.Y()}
}
