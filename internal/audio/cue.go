// Package audio plays short synthesized cues for simulation events.
package audio

import "github.com/udisondev/cavern/internal/event"

// Cue is a named sound effect.
type Cue uint8

const (
	CueJump Cue = iota + 1
	CueLand
	CueHurt
	CueStomp
	CueBreak
	CueCoin
	CueDoor
	CueBlocked
)

// String returns human-readable cue name
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueLand:
		return "land"
	case CueHurt:
		return "hurt"
	case CueStomp:
		return "stomp"
	case CueBreak:
		return "break"
	case CueCoin:
		return "coin"
	case CueDoor:
		return "door"
	case CueBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// CueFor maps an event to its cue. Events without a sound return false.
func CueFor(e event.Event) (Cue, bool) {
	switch e.Kind {
	case event.Jump:
		return CueJump, true
	case event.Land:
		return CueLand, true
	case event.Contact:
		if e.Contact == event.ContactStomp {
			return CueStomp, true
		}
		return CueHurt, true
	case event.Destroy:
		return CueBreak, true
	case event.PickupCollected:
		return CueCoin, true
	case event.RoomTransition:
		return CueDoor, true
	case event.TransitionAborted:
		return CueBlocked, true
	default:
		return 0, false
	}
}

// Cues returns the distinct cues of a tick's events in first-seen order.
// A tick with several contacts plays each cue once.
func Cues(events []event.Event) []Cue {
	var out []Cue
	var seen [CueBlocked + 1]bool
	for _, e := range events {
		c, ok := CueFor(e)
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
