package breakable

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/cavern/internal/event"
	"github.com/udisondev/cavern/internal/game/collision"
	"github.com/udisondev/cavern/internal/model"
)

var (
	// ErrDuplicate is returned when an object id is already registered.
	ErrDuplicate = errors.New("duplicate breakable id")
	// ErrInvalidHits is returned for objects with a non-positive hit budget.
	ErrInvalidHits = errors.New("breakable hit count must be positive")
)

// Object is a destructible crate. It blocks actors like a solid tile until destroyed.
type Object struct {
	ID   model.ObjectID
	Box  model.Box
	Hits int
	// Loot is dropped on destruction; nil means nothing.
	Loot *event.Loot
}

// Registry tracks the breakable objects of one room.
// Owned by the step driver; not safe for concurrent use.
type Registry struct {
	room  string
	objs  map[model.ObjectID]*Object
	order []model.ObjectID
}

// NewRegistry creates an empty registry for room.
func NewRegistry(room string) *Registry {
	return &Registry{
		room: room,
		objs: make(map[model.ObjectID]*Object),
	}
}

// Add registers an object.
func (r *Registry) Add(o Object) error {
	if o.Hits <= 0 {
		return fmt.Errorf("adding breakable %s: %w", o.ID, ErrInvalidHits)
	}
	if _, ok := r.objs[o.ID]; ok {
		return fmt.Errorf("adding breakable %s: %w", o.ID, ErrDuplicate)
	}
	r.objs[o.ID] = &o
	r.order = append(r.order, o.ID)
	return nil
}

// Get returns a copy of the object.
func (r *Registry) Get(id model.ObjectID) (Object, bool) {
	o, ok := r.objs[id]
	if !ok {
		return Object{}, false
	}
	return *o, true
}

// Len returns the number of live objects.
func (r *Registry) Len() int {
	return len(r.objs)
}

// All returns copies of the live objects in insertion order.
func (r *Registry) All() []Object {
	out := make([]Object, 0, len(r.objs))
	for _, id := range r.order {
		out = append(out, *r.objs[id])
	}
	return out
}

// Obstacles returns the live objects as solid obstacles for the collision resolver.
func (r *Registry) Obstacles() []collision.Obstacle {
	out := make([]collision.Obstacle, 0, len(r.objs))
	for _, id := range r.order {
		o := r.objs[id]
		out = append(out, collision.Obstacle{ID: o.ID, Box: o.Box})
	}
	return out
}

// SetHits overrides the remaining hit count, used when restoring a checkpoint.
// A non-positive count removes the object without events.
func (r *Registry) SetHits(id model.ObjectID, hits int) bool {
	o, ok := r.objs[id]
	if !ok {
		return false
	}
	if hits <= 0 {
		r.remove(id)
		return true
	}
	o.Hits = hits
	return true
}

// Hit applies one hit from source. When the object runs out of hits it is removed
// and Destroy is returned, followed by LootSpawn when the object carries loot.
// Hitting an unknown or already destroyed object returns nil.
func (r *Registry) Hit(id model.ObjectID, source model.ActorID) []event.Event {
	o, ok := r.objs[id]
	if !ok {
		return nil
	}

	o.Hits--
	if o.Hits > 0 {
		slog.Debug("breakable hit", "room", r.room, "object", id, "remaining", o.Hits)
		return nil
	}

	r.remove(id)
	events := []event.Event{{
		Kind:   event.Destroy,
		Room:   r.room,
		Actor:  source,
		Object: o.ID,
		Pos:    o.Box.Center(),
	}}
	if o.Loot != nil && o.Loot.Count > 0 {
		events = append(events, event.Event{
			Kind:   event.LootSpawn,
			Room:   r.room,
			Actor:  source,
			Object: o.ID,
			Pos:    o.Box.Center(),
			Loot:   *o.Loot,
		})
	}
	return events
}

// React applies the qualifying contacts of a tick in order: the player striking an
// object from below. Other contacts are ignored.
func (r *Registry) React(contacts []collision.Contact, player model.ActorID) []event.Event {
	var events []event.Event
	for _, c := range contacts {
		if c.Other != collision.OtherObstacle || c.Actor != player || !c.FromBelow() {
			continue
		}
		events = append(events, r.Hit(c.Object, c.Actor)...)
	}
	return events
}

func (r *Registry) remove(id model.ObjectID) {
	delete(r.objs, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}
