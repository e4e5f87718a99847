package ai

import "github.com/udisondev/cavern/internal/model"

// WormMode is the worm state tag.
type WormMode uint8

const (
	WormCrawl WormMode = iota
	WormTurn
)

// String returns human-readable state name
func (m WormMode) String() string {
	switch m {
	case WormCrawl:
		return "crawl"
	case WormTurn:
		return "turn"
	default:
		return "unknown"
	}
}

// WormState is the worm payload.
type WormState struct {
	State WormMode
	Dir   model.Facing
}

// tick crawls until a ledge or wall, then pauses one tick in Turn, reverses and crawls on.
func (s *WormState) tick(p Perception) model.Intent {
	prev := s.State
	var intent model.Intent

	switch s.State {
	case WormCrawl:
		if p.Grounded && (!p.GroundAhead || p.Contacts.Wall(s.Dir)) {
			s.State = WormTurn
		} else {
			intent.Horizontal = s.Dir.Sign()
		}
	case WormTurn:
		s.Dir = s.Dir.Reverse()
		s.State = WormCrawl
		intent.Horizontal = s.Dir.Sign()
	default:
		panic("ai: worm in unreachable state")
	}

	if prev != s.State {
		logTransition(model.KindWorm, p.Self, prev, s.State)
	}
	return intent
}
