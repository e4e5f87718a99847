package room

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/cavern/internal/ai"
	"github.com/udisondev/cavern/internal/event"
	"github.com/udisondev/cavern/internal/game/breakable"
	"github.com/udisondev/cavern/internal/game/collision"
	"github.com/udisondev/cavern/internal/model"
)

// Body is the size and movement traits of an enemy kind.
type Body struct {
	W      float64
	H      float64
	Traits model.Traits
}

// Enemy is an instantiated enemy: its physical body plus its brain.
type Enemy struct {
	Actor *model.Actor
	Brain *ai.Brain
}

// Room is the runtime state of a resident room. Only the active room is simulated.
type Room struct {
	Def        *Def
	Resolver   *collision.Resolver
	Enemies    []*Enemy
	Breakables *breakable.Registry
	Pickups    *breakable.Pickups
}

// ID returns the room id.
func (r *Room) ID() string {
	return r.Def.ID
}

// Obstacles returns the solid obstacles of the room for collision.
func (r *Room) Obstacles() []collision.Obstacle {
	return r.Breakables.Obstacles()
}

// Enemy returns the enemy with the given actor id.
func (r *Room) Enemy(id model.ActorID) (*Enemy, bool) {
	for _, e := range r.Enemies {
		if e.Actor.ID == id {
			return e, true
		}
	}
	return nil, false
}

// instantiate builds fresh runtime state from a definition. Enemies whose spawn
// overlaps solid geometry are pushed out and reported with a warning event.
func instantiate(def *Def, opts Options, ids *IDGenerator) (*Room, []event.Event, error) {
	r := &Room{
		Def:        def,
		Resolver:   collision.NewResolver(def.Map, opts.MaxPushOut),
		Breakables: breakable.NewRegistry(def.ID),
		Pickups:    breakable.NewPickups(def.ID),
	}

	for _, b := range def.Breakables {
		if err := r.Breakables.Add(breakable.Object{ID: b.ID, Box: b.Box, Hits: b.Hits, Loot: b.Loot}); err != nil {
			return nil, nil, fmt.Errorf("instantiating room %s: %w", def.ID, err)
		}
	}
	const half = breakable.PickupSize / 2
	for _, p := range def.Pickups {
		c := def.Map.CellBox(p.Cell).Center()
		r.Pickups.Add(breakable.Pickup{
			ID:   p.ID,
			Kind: p.Kind,
			Box:  model.Box{X: c.X - half, Y: c.Y - half, W: breakable.PickupSize, H: breakable.PickupSize},
		})
	}

	var warnings []event.Event
	obstacles := r.Obstacles()
	for _, s := range def.Enemies {
		e, err := spawnEnemy(def, s, opts, ids)
		if err != nil {
			return nil, nil, fmt.Errorf("instantiating room %s: %w", def.ID, err)
		}

		pos := e.Actor.Box.Pos()
		if u := r.Resolver.Unstick(e.Actor.Box, pos, obstacles); u.Moved {
			e.Actor.Place(u.Box.Pos())
			msg := "enemy spawn embedded, pushed out"
			if u.Degraded {
				msg = "enemy spawn embedded, clamped to nearest free position"
			}
			slog.Warn("map integrity",
				"room", def.ID,
				"actor", e.Actor.ID,
				"kind", s.Kind,
				"spawn", pos,
				"placed", u.Box.Pos(),
				"degraded", u.Degraded)
			warnings = append(warnings, event.Event{
				Kind:      event.MapIntegrityWarning,
				Room:      def.ID,
				Actor:     e.Actor.ID,
				ActorKind: s.Kind,
				Pos:       u.Box.Pos(),
				Message:   msg,
			})
		}
		r.Enemies = append(r.Enemies, e)
	}

	slog.Debug("room instantiated",
		"room", def.ID,
		"enemies", len(r.Enemies),
		"breakables", r.Breakables.Len(),
		"pickups", r.Pickups.Len())

	return r, warnings, nil
}

func spawnEnemy(def *Def, s EnemySpawn, opts Options, ids *IDGenerator) (*Enemy, error) {
	body, ok := opts.Bodies[s.Kind]
	if !ok {
		return nil, fmt.Errorf("no body configured for %s", s.Kind)
	}

	facing := s.Facing
	if facing == 0 {
		facing = model.FacingRight
	}
	minX, maxX := s.MinX, s.MaxX
	if minX == 0 && maxX == 0 {
		maxX = def.Map.Bounds().W - body.W
	}

	brain, err := ai.New(s.Kind, opts.Tuning, minX, maxX, facing)
	if err != nil {
		return nil, err
	}

	pos := StandAt(s.Cell, def.Map.TileSize(), body.W, body.H)
	a := model.NewActor(ids.NextEnemy(), s.Kind, pos, body.W, body.H, body.Traits)
	a.Facing = facing
	return &Enemy{Actor: a, Brain: brain}, nil
}
