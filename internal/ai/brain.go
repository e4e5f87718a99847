package ai

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/cavern/internal/model"
)

// Perception is what an enemy observes at the start of a tick.
// It is built for every enemy before any intent of the tick is applied,
// so no enemy sees another's updated position.
type Perception struct {
	Self     model.ActorID
	Box      model.Box
	Grounded bool
	Contacts model.Contacts
	// Player is the center of the player's box.
	Player model.Vec
	// GroundAhead is false when the next step in the brain's heading leaves the floor.
	GroundAhead bool
}

// Tuning holds the per-kind behavior constants.
type Tuning struct {
	BatDetectRadius float64
	BatHysteresis   float64
	SlimeSpeed      float64
	SlimeHopEvery   int
}

// Brain is the per-enemy state machine. Exactly one of the kind payloads is
// meaningful, selected by Kind.
type Brain struct {
	Kind  model.Kind
	Bat   BatState
	Slime SlimeState
	Worm  WormState
}

// NewBat creates a bat brain.
func NewBat(t Tuning) *Brain {
	return &Brain{
		Kind: model.KindBat,
		Bat: BatState{
			State:  BatIdle,
			Radius: t.BatDetectRadius,
			Hyst:   t.BatHysteresis,
		},
	}
}

// NewSlime creates a slime brain patrolling within [minX, maxX].
func NewSlime(t Tuning, minX, maxX float64, dir model.Facing) *Brain {
	return &Brain{
		Kind: model.KindSlime,
		Slime: SlimeState{
			State:    SlimePatrol,
			Dir:      dir,
			MinX:     minX,
			MaxX:     maxX,
			Speed:    t.SlimeSpeed,
			HopEvery: t.SlimeHopEvery,
		},
	}
}

// NewWorm creates a worm brain.
func NewWorm(dir model.Facing) *Brain {
	return &Brain{
		Kind: model.KindWorm,
		Worm: WormState{State: WormCrawl, Dir: dir},
	}
}

// New creates the brain for an enemy kind.
func New(kind model.Kind, t Tuning, minX, maxX float64, dir model.Facing) (*Brain, error) {
	switch kind {
	case model.KindBat:
		return NewBat(t), nil
	case model.KindSlime:
		return NewSlime(t, minX, maxX, dir), nil
	case model.KindWorm:
		return NewWorm(dir), nil
	default:
		return nil, fmt.Errorf("no brain for kind %s", kind)
	}
}

// Tick advances the state machine by one tick and returns the motion intent.
func (b *Brain) Tick(p Perception) model.Intent {
	switch b.Kind {
	case model.KindBat:
		return b.Bat.tick(p)
	case model.KindSlime:
		return b.Slime.tick(p)
	case model.KindWorm:
		return b.Worm.tick(p)
	default:
		panic(fmt.Sprintf("ai: brain with unreachable kind %d", b.Kind))
	}
}

// Heading is the horizontal direction the brain is moving in.
// Bats steer freely and report right.
func (b *Brain) Heading() model.Facing {
	switch b.Kind {
	case model.KindBat:
		return model.FacingRight
	case model.KindSlime:
		return b.Slime.Dir
	case model.KindWorm:
		return b.Worm.Dir
	default:
		panic(fmt.Sprintf("ai: brain with unreachable kind %d", b.Kind))
	}
}

// State returns the current state name, for snapshots and logs.
func (b *Brain) State() string {
	switch b.Kind {
	case model.KindBat:
		return b.Bat.State.String()
	case model.KindSlime:
		return b.Slime.State.String()
	case model.KindWorm:
		return b.Worm.State.String()
	default:
		panic(fmt.Sprintf("ai: brain with unreachable kind %d", b.Kind))
	}
}

func logTransition(kind model.Kind, id model.ActorID, from, to fmt.Stringer) {
	if !IsDebugEnabled() {
		return
	}
	slog.Debug("enemy state changed",
		"kind", kind,
		"actor", id,
		"from", from,
		"to", to)
}
