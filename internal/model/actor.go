package model

import "fmt"

// ActorID identifies a player or enemy. Unique across all loaded rooms.
type ActorID uint32

// ObjectID identifies a breakable object or pickup within a room.
type ObjectID string

// Kind is the actor kind. Player and enemies share the same physical
// representation; only the intent producer differs.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindBat
	KindSlime
	KindWorm
)

// String returns human-readable kind name
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBat:
		return "bat"
	case KindSlime:
		return "slime"
	case KindWorm:
		return "worm"
	default:
		return "unknown"
	}
}

// ParseEnemyKind maps the map-data spelling of an enemy kind to Kind.
func ParseEnemyKind(s string) (Kind, error) {
	switch s {
	case "bat":
		return KindBat, nil
	case "slime":
		return KindSlime, nil
	case "worm":
		return KindWorm, nil
	default:
		return 0, fmt.Errorf("unknown enemy kind %q", s)
	}
}

// MoveMode is the locomotion mode of an actor.
type MoveMode uint8

const (
	ModeNormal MoveMode = iota
	// ModeHanging: holding a ledge, no gravity until jump or drop.
	ModeHanging
	// ModeClimbing: on a ladder, moves by the vertical axis.
	ModeClimbing
)

// String returns human-readable mode name
func (m MoveMode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeHanging:
		return "hanging"
	case ModeClimbing:
		return "climbing"
	default:
		return "unknown"
	}
}

// Traits are the per-kind movement parameters, in pixels per tick.
type Traits struct {
	RunSpeed    float64
	JumpImpulse float64 // negative (upward)
	Flies       bool
	FlySpeed    float64
	CanHang     bool
	CanClimb    bool
}

// Contacts are the contact flags produced by the last collision resolution.
type Contacts struct {
	Ground    bool
	Ceiling   bool
	WallLeft  bool
	WallRight bool
}

// Wall reports whether the actor touched a wall on the given side.
func (c Contacts) Wall(f Facing) bool {
	if f == FacingLeft {
		return c.WallLeft
	}
	return c.WallRight
}

// Span is the horizontal extent of the surface an actor last stood on.
type Span struct {
	Left  float64
	Right float64
}

// Gap returns the horizontal distance between the box and the span (0 when they overlap).
func (s Span) Gap(b Box) float64 {
	switch {
	case b.Right() < s.Left:
		return s.Left - b.Right()
	case b.X > s.Right:
		return b.X - s.Right
	default:
		return 0
	}
}

// Actor is the physical body shared by the player and enemies.
type Actor struct {
	ID     ActorID
	Kind   Kind
	Box    Box
	Vel    Vec
	Facing Facing
	Traits Traits

	Grounded bool
	Contacts Contacts
	Mode     MoveMode

	// GroundMemory is the remaining edge-assist grace in ticks.
	// Refilled on grounded ticks, consumed on airborne ticks.
	GroundMemory int
	// Support is the surface the actor last stood on; valid when HasSupport.
	Support    Span
	HasSupport bool

	// LastGood is the last position known not to overlap solid geometry.
	LastGood Vec
}

// NewActor creates an actor at pos with the given box size.
func NewActor(id ActorID, kind Kind, pos Vec, w, h float64, traits Traits) *Actor {
	return &Actor{
		ID:       id,
		Kind:     kind,
		Box:      Box{X: pos.X, Y: pos.Y, W: w, H: h},
		Facing:   FacingRight,
		Traits:   traits,
		LastGood: pos,
	}
}

// Place moves the actor to pos and clears motion state.
func (a *Actor) Place(pos Vec) {
	a.Box = a.Box.At(pos)
	a.Vel = Vec{}
	a.Mode = ModeNormal
	a.Grounded = false
	a.Contacts = Contacts{}
	a.GroundMemory = 0
	a.HasSupport = false
	a.LastGood = pos
}

// AnimTag returns the animation-state tag consumed by renderers.
func (a *Actor) AnimTag() string {
	switch {
	case a.Mode == ModeHanging:
		return "hang"
	case a.Mode == ModeClimbing:
		return "climb"
	case a.Traits.Flies:
		return "fly"
	case !a.Grounded && a.Vel.Y < 0:
		return "jump"
	case !a.Grounded:
		return "fall"
	case a.Vel.X != 0:
		return "run"
	default:
		return "idle"
	}
}
