package world

import (
	"github.com/udisondev/cavern/internal/game/breakable"
	"github.com/udisondev/cavern/internal/game/tilemap"
	"github.com/udisondev/cavern/internal/model"
)

// ActorView is the render-facing copy of an actor.
type ActorView struct {
	ID     model.ActorID
	Kind   model.Kind
	Box    model.Box
	Facing model.Facing
	Anim   string
	// State is the AI state name; empty for the player.
	State string
}

// Snapshot is the stable post-tick view of the active room. It shares no mutable
// state with the world and may be handed to another goroutine.
type Snapshot struct {
	Tick       uint64
	Room       string
	Map        *tilemap.Map
	Player     ActorView
	Enemies    []ActorView
	Breakables []breakable.Object
	Pickups    []breakable.Pickup
}

// Snapshot copies the renderable state out of s. The tile map is immutable and shared.
func (s *State) Snapshot() Snapshot {
	r := s.Rooms.Active()
	snap := Snapshot{
		Tick:       s.Tick,
		Room:       r.ID(),
		Map:        r.Def.Map,
		Player:     view(s.Player, ""),
		Enemies:    make([]ActorView, 0, len(r.Enemies)),
		Breakables: r.Breakables.All(),
		Pickups:    r.Pickups.All(),
	}
	for _, e := range r.Enemies {
		snap.Enemies = append(snap.Enemies, view(e.Actor, e.Brain.State()))
	}
	return snap
}

func view(a *model.Actor, state string) ActorView {
	return ActorView{
		ID:     a.ID,
		Kind:   a.Kind,
		Box:    a.Box,
		Facing: a.Facing,
		Anim:   a.AnimTag(),
		State:  state,
	}
}
