package breakable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cavern/internal/event"
	"github.com/udisondev/cavern/internal/model"
)

func TestPickups_SpawnFromLoot(t *testing.T) {
	p := NewPickups("cave")

	spawned := p.Spawn(event.Event{
		Kind:   event.LootSpawn,
		Object: "crate",
		Pos:    model.Vec{X: 40, Y: 40},
		Loot:   event.Loot{Kind: LootCoin, Count: 2},
	})

	require.Len(t, spawned, 2)
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, model.Box{X: 32, Y: 36, W: 8, H: 8}, spawned[0].Box)
	assert.Equal(t, model.Box{X: 40, Y: 36, W: 8, H: 8}, spawned[1].Box)
	assert.NotEqual(t, spawned[0].ID, spawned[1].ID)
}

func TestPickups_SpawnIgnoresOtherLoot(t *testing.T) {
	p := NewPickups("cave")

	assert.Empty(t, p.Spawn(event.Event{Kind: event.LootSpawn, Loot: event.Loot{Kind: "gem", Count: 1}}))
	assert.Empty(t, p.Spawn(event.Event{Kind: event.Destroy, Loot: event.Loot{Kind: LootCoin, Count: 1}}))
	assert.Zero(t, p.Len())
}

func TestPickups_Collect(t *testing.T) {
	p := NewPickups("cave")
	p.Add(Pickup{ID: "c1", Kind: LootCoin, Box: model.Box{X: 0, Y: 0, W: 8, H: 8}})
	p.Add(Pickup{ID: "c2", Kind: LootCoin, Box: model.Box{X: 100, Y: 0, W: 8, H: 8}})

	events := p.Collect(model.Box{X: 4, Y: 0, W: 12, H: 24}, player)

	require.Len(t, events, 1)
	assert.Equal(t, event.PickupCollected, events[0].Kind)
	assert.Equal(t, model.ObjectID("c1"), events[0].Object)
	assert.Equal(t, player, events[0].Actor)

	left := p.All()
	require.Len(t, left, 1)
	assert.Equal(t, model.ObjectID("c2"), left[0].ID)

	// Touching edges do not collect.
	assert.Empty(t, p.Collect(model.Box{X: 108, Y: 0, W: 12, H: 24}, player))
}

func TestPickups_Reset(t *testing.T) {
	p := NewPickups("cave")
	p.Add(Pickup{ID: "a", Kind: LootCoin, Box: model.Box{W: 8, H: 8}})
	p.Add(Pickup{ID: "b", Kind: LootCoin, Box: model.Box{X: 20, W: 8, H: 8}})

	p.Reset([]Pickup{{ID: "c", Kind: LootCoin, Box: model.Box{X: 50, W: 8, H: 8}}})

	require.Equal(t, 1, p.Len())
	assert.Equal(t, model.ObjectID("c"), p.All()[0].ID)

	p.Reset(nil)
	assert.Zero(t, p.Len())
}
