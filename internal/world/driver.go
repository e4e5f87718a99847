package world

import (
	"context"
	"log/slog"

	"github.com/udisondev/cavern/internal/ai"
	"github.com/udisondev/cavern/internal/event"
	"github.com/udisondev/cavern/internal/game/motion"
	"github.com/udisondev/cavern/internal/model"
	"github.com/udisondev/cavern/internal/room"
)

// stompTolerance is how far the player's previous bottom may sink below an
// enemy's top and still count as landing on it.
const stompTolerance = 1e-3

// Driver advances the world by whole ticks. A tick always runs to completion;
// the returned events are the tick's drained log.
type Driver struct {
	motion *motion.Integrator
	log    *event.Log
}

// NewDriver creates a step driver with the given physics constants.
func NewDriver(p motion.Params) *Driver {
	return &Driver{
		motion: motion.NewIntegrator(p),
		log:    event.NewLog(),
	}
}

// Step runs one fixed tick for the player's intent:
//
//  1. perceive: every enemy observes the start-of-tick world
//  2. think: every brain turns its perception into an intent
//  3. move: the player, then the enemies, are integrated and resolved
//  4. touch: enemy contacts and pickup collection
//  5. doors: at most one room transition
//  6. break: breakable reactions to this tick's contacts, loot spawn
//  7. drain
//
// ctx only bounds room loading during a transition.
func (d *Driver) Step(ctx context.Context, s *State, input model.Intent) []event.Event {
	s.Tick++
	d.log.Begin(s.Tick)

	src := s.Rooms.Active()
	player := s.Player
	obstacles := src.Obstacles()

	perceptions := make([]ai.Perception, len(src.Enemies))
	for i, e := range src.Enemies {
		perceptions[i] = perceive(src, e, player)
	}
	intents := make([]model.Intent, len(src.Enemies))
	for i, e := range src.Enemies {
		intents[i] = e.Brain.Tick(perceptions[i])
	}

	prev := player.Box
	out := d.motion.Step(player, input, src.Resolver, obstacles)
	d.recordPlayer(src.ID(), player, out)
	contacts := out.Hits

	for i, e := range src.Enemies {
		eo := d.motion.Step(e.Actor, intents[i], src.Resolver, obstacles)
		if eo.Repaired {
			d.log.Append(repairEvent(src.ID(), e.Actor, eo.Degraded))
		}
	}

	for i, e := range src.Enemies {
		if !player.Box.Overlaps(e.Actor.Box) {
			continue
		}
		d.log.Append(event.Event{
			Kind:      event.Contact,
			Room:      src.ID(),
			Actor:     e.Actor.ID,
			ActorKind: e.Actor.Kind,
			Other:     player.ID,
			Contact:   contactType(prev, player.Box, perceptions[i].Box),
			Pos:       e.Actor.Box.Center(),
		})
	}
	d.log.AppendAll(src.Pickups.Collect(player.Box, player.ID))

	d.log.AppendAll(s.Rooms.Check(ctx, player))

	for _, e := range src.Breakables.React(contacts, player.ID) {
		d.log.Append(e)
		if e.Kind == event.LootSpawn {
			src.Pickups.Spawn(e)
		}
	}

	events := d.log.Drain()
	if IsDebugEnabled() && len(events) > 0 {
		slog.Debug("tick events",
			"tick", s.Tick,
			"room", s.Rooms.ActiveID(),
			"events", len(events))
	}
	return events
}

func (d *Driver) recordPlayer(roomID string, p *model.Actor, out motion.Outcome) {
	if out.Jumped {
		d.log.Append(event.Event{Kind: event.Jump, Room: roomID, Actor: p.ID, ActorKind: p.Kind, Pos: p.Box.Pos()})
	}
	if out.Landed {
		d.log.Append(event.Event{Kind: event.Land, Room: roomID, Actor: p.ID, ActorKind: p.Kind, Pos: p.Box.Pos()})
	}
	if out.Repaired {
		d.log.Append(repairEvent(roomID, p, out.Degraded))
	}
}

func repairEvent(roomID string, a *model.Actor, degraded bool) event.Event {
	msg := "actor embedded, pushed out"
	if degraded {
		msg = "actor embedded, clamped to last good position"
	}
	slog.Warn("map integrity",
		"room", roomID,
		"actor", a.ID,
		"kind", a.Kind,
		"pos", a.Box.Pos(),
		"degraded", degraded)
	return event.Event{
		Kind:      event.MapIntegrityWarning,
		Room:      roomID,
		Actor:     a.ID,
		ActorKind: a.Kind,
		Pos:       a.Box.Pos(),
		Message:   msg,
	}
}

// perceive builds an enemy's view of the start-of-tick world.
func perceive(r *room.Room, e *room.Enemy, player *model.Actor) ai.Perception {
	a := e.Actor
	ahead := true
	if !a.Traits.Flies {
		ahead = r.Def.Map.GroundAhead(a.Box, e.Brain.Heading(), a.Traits.RunSpeed)
	}
	return ai.Perception{
		Self:        a.ID,
		Box:         a.Box,
		Grounded:    a.Grounded,
		Contacts:    a.Contacts,
		Player:      player.Box.Center(),
		GroundAhead: ahead,
	}
}

// contactType tells a stomp (the player came down onto the enemy from above) from a hurt.
// prev and enemy are start-of-tick boxes; an enemy hopping into a falling player is still stomped.
func contactType(prev, cur, enemy model.Box) event.ContactType {
	if cur.Y > prev.Y && prev.Bottom() <= enemy.Y+stompTolerance {
		return event.ContactStomp
	}
	return event.ContactHurt
}
