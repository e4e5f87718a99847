package breakable

import (
	"fmt"

	"github.com/udisondev/cavern/internal/event"
	"github.com/udisondev/cavern/internal/model"
)

// LootCoin is the loot kind that spawns collectible pickups.
const LootCoin = "coin"

// PickupSize is the edge length of a pickup's box.
const PickupSize = 8

// Pickup is a static collectible lying in a room.
type Pickup struct {
	ID   model.ObjectID
	Kind string
	Box  model.Box
}

// Pickups is the set of collectibles in one room.
type Pickups struct {
	room  string
	items []Pickup
	seq   int
}

// NewPickups creates an empty pickup set for room.
func NewPickups(room string) *Pickups {
	return &Pickups{room: room}
}

// Add places a pickup.
func (p *Pickups) Add(pk Pickup) {
	p.items = append(p.items, pk)
}

// All returns the pickups in placement order.
func (p *Pickups) All() []Pickup {
	return append([]Pickup(nil), p.items...)
}

// Len returns the number of pickups left.
func (p *Pickups) Len() int {
	return len(p.items)
}

// Reset replaces the pickups, used when restoring a checkpoint.
func (p *Pickups) Reset(items []Pickup) {
	p.items = append(p.items[:0], items...)
}

// Spawn turns a LootSpawn event into pickups centered on the event position,
// spread horizontally. Loot kinds other than coins are not materialized.
func (p *Pickups) Spawn(e event.Event) []Pickup {
	if e.Kind != event.LootSpawn || e.Loot.Kind != LootCoin {
		return nil
	}

	spawned := make([]Pickup, 0, e.Loot.Count)
	width := float64(e.Loot.Count) * PickupSize
	left := e.Pos.X - width/2
	for i := range e.Loot.Count {
		p.seq++
		pk := Pickup{
			ID:   model.ObjectID(fmt.Sprintf("%s/%s-%d", e.Object, e.Loot.Kind, p.seq)),
			Kind: e.Loot.Kind,
			Box: model.Box{
				X: left + float64(i)*PickupSize,
				Y: e.Pos.Y - PickupSize/2,
				W: PickupSize,
				H: PickupSize,
			},
		}
		p.items = append(p.items, pk)
		spawned = append(spawned, pk)
	}
	return spawned
}

// Collect removes every pickup overlapping box and returns a PickupCollected
// event for each, attributed to actor.
func (p *Pickups) Collect(box model.Box, actor model.ActorID) []event.Event {
	var events []event.Event
	kept := p.items[:0]
	for _, pk := range p.items {
		if !box.Overlaps(pk.Box) {
			kept = append(kept, pk)
			continue
		}
		events = append(events, event.Event{
			Kind:   event.PickupCollected,
			Room:   p.room,
			Actor:  actor,
			Object: pk.ID,
			Pos:    pk.Box.Center(),
			Loot:   event.Loot{Kind: pk.Kind, Count: 1},
		})
	}
	p.items = kept
	return events
}
