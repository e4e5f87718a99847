package room_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cavern/internal/ai"
	"github.com/udisondev/cavern/internal/event"
	"github.com/udisondev/cavern/internal/model"
	"github.com/udisondev/cavern/internal/room"
	"github.com/udisondev/cavern/internal/testutil"
)

func testOptions() room.Options {
	return room.Options{
		Bodies: map[model.Kind]room.Body{
			model.KindBat:   {W: 12, H: 8, Traits: model.Traits{Flies: true, FlySpeed: 1}},
			model.KindSlime: {W: 14, H: 10, Traits: model.Traits{RunSpeed: 0.75}},
			model.KindWorm:  {W: 14, H: 6, Traits: model.Traits{RunSpeed: 0.5}},
		},
		Tuning:        ai.Tuning{BatDetectRadius: 80, BatHysteresis: 32, SlimeSpeed: 0.75, SlimeHopEvery: 90},
		MaxPushOut:    8,
		DoorClearance: 1,
	}
}

// chain builds three rooms a <-> b <-> c joined by side doors on row 4.
func chain(t *testing.T) *testutil.Source {
	a := testutil.Def(t, "a", []string{
		"##########",
		"#........#",
		"#........#",
		"#........#",
		"#.........",
		"##########",
	}, room.Door{ID: "east", Cell: model.Cell{X: 9, Y: 4}, Side: room.SideRight, TargetRoom: "b", TargetDoor: "west"})
	b := testutil.Def(t, "b", []string{
		"##########",
		"#........#",
		"#........#",
		"#........#",
		"..........",
		"##########",
	},
		room.Door{ID: "west", Cell: model.Cell{X: 0, Y: 4}, Side: room.SideLeft, TargetRoom: "a", TargetDoor: "east"},
		room.Door{ID: "east", Cell: model.Cell{X: 9, Y: 4}, Side: room.SideRight, TargetRoom: "c", TargetDoor: "west"},
	)
	c := testutil.Def(t, "c", []string{
		"##########",
		"#........#",
		"#........#",
		"#........#",
		".........#",
		"##########",
	}, room.Door{ID: "west", Cell: model.Cell{X: 0, Y: 4}, Side: room.SideLeft, TargetRoom: "b", TargetDoor: "east"})
	return testutil.NewSource(a, b, c)
}

func newPlayer(x, y float64) *model.Actor {
	return model.NewActor(0x10000001, model.KindPlayer, model.Vec{X: x, Y: y}, 12, 14,
		model.Traits{RunSpeed: 2, JumpImpulse: -6.25, CanHang: true, CanClimb: true})
}

func kinds(events []event.Event) []event.Kind {
	out := make([]event.Kind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func TestManager_EnterSettlesNeighbors(t *testing.T) {
	src := chain(t)
	m := room.NewManager(src, testOptions(), room.NewIDGenerator())

	_, err := m.Enter(context.Background(), "a")
	require.NoError(t, err)

	assert.Equal(t, "a", m.ActiveID())
	assert.Equal(t, room.Stable, m.Phase())
	assert.Equal(t, []string{"a", "b"}, m.Resident())
	assert.Equal(t, 1, src.Loads("b"))
	assert.Zero(t, src.Loads("c"))
}

func TestManager_EnterUnknownRoom(t *testing.T) {
	m := room.NewManager(chain(t), testOptions(), room.NewIDGenerator())

	_, err := m.Enter(context.Background(), "zzz")

	require.Error(t, err)
	assert.Nil(t, m.Active())
}

func TestManager_CheckCrossesDoor(t *testing.T) {
	src := chain(t)
	m := room.NewManager(src, testOptions(), room.NewIDGenerator())
	_, err := m.Enter(context.Background(), "a")
	require.NoError(t, err)

	p := newPlayer(140, 66)
	p.Vel = model.Vec{X: 2}

	events := m.Check(context.Background(), p)

	require.Equal(t, []event.Kind{event.RoomTransition}, kinds(events))
	tr := events[0]
	assert.Equal(t, "a", tr.FromRoom)
	assert.Equal(t, "b", tr.ToRoom)
	assert.Equal(t, "east", tr.Door)

	assert.Equal(t, "b", m.ActiveID())
	assert.Equal(t, model.Vec{X: 17, Y: 66}, p.Box.Pos())
	assert.Equal(t, model.Vec{}, p.Vel)
	assert.Empty(t, m.Disarmed())
	assert.Equal(t, []string{"a", "b", "c"}, m.Resident())
	// b was prefetched while a was active: no second load.
	assert.Equal(t, 1, src.Loads("b"))
}

func TestManager_NoTransitionOffDoor(t *testing.T) {
	m := room.NewManager(chain(t), testOptions(), room.NewIDGenerator())
	_, err := m.Enter(context.Background(), "a")
	require.NoError(t, err)

	assert.Empty(t, m.Check(context.Background(), newPlayer(60, 66)))
	assert.Equal(t, "a", m.ActiveID())
}

func TestManager_EvictsRoomsOutOfReach(t *testing.T) {
	m := room.NewManager(chain(t), testOptions(), room.NewIDGenerator())
	_, err := m.Enter(context.Background(), "a")
	require.NoError(t, err)

	p := newPlayer(140, 66)
	require.NotEmpty(t, m.Check(context.Background(), p))
	require.Equal(t, "b", m.ActiveID())

	p.Place(model.Vec{X: 140, Y: 66})
	require.NotEmpty(t, m.Check(context.Background(), p))

	assert.Equal(t, "c", m.ActiveID())
	assert.Equal(t, []string{"b", "c"}, m.Resident())
	_, ok := m.Room("a")
	assert.False(t, ok)
}

func TestManager_RoundTripWithoutOscillation(t *testing.T) {
	m := room.NewManager(chain(t), testOptions(), room.NewIDGenerator())
	_, err := m.Enter(context.Background(), "a")
	require.NoError(t, err)

	p := newPlayer(133, 66)
	require.NotEmpty(t, m.Check(context.Background(), p))
	require.Equal(t, "b", m.ActiveID())

	// Standing still at the arrival spawn never fires a door.
	for range 10 {
		assert.Empty(t, m.Check(context.Background(), p))
	}

	p.Place(model.Vec{X: 15, Y: 66})
	require.NotEmpty(t, m.Check(context.Background(), p))
	assert.Equal(t, "a", m.ActiveID())

	// Back next to a's east door: within one body radius of where the player left.
	start := model.Vec{X: 133, Y: 66}
	assert.LessOrEqual(t, p.Box.Pos().Sub(start).Len(), p.Box.Radius())
	assert.Empty(t, m.Check(context.Background(), p))
}

func TestManager_AbortedTransition(t *testing.T) {
	src := chain(t)
	src.Fail("b", testutil.ErrSimulated)
	m := room.NewManager(src, testOptions(), room.NewIDGenerator())
	_, err := m.Enter(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, m.Resident())

	p := newPlayer(140, 66)
	events := m.Check(context.Background(), p)

	require.Equal(t, []event.Kind{event.TransitionAborted}, kinds(events))
	assert.Equal(t, "a", events[0].FromRoom)
	assert.Equal(t, "b", events[0].ToRoom)
	assert.Contains(t, events[0].Message, testutil.ErrSimulated.Error())
	assert.Equal(t, "a", m.ActiveID())
	assert.Equal(t, room.Stable, m.Phase())
	assert.Equal(t, model.Vec{X: 140, Y: 66}, p.Box.Pos())
	assert.Equal(t, "east", m.Disarmed())

	// Still on the door: no retry every tick.
	loads := src.Loads("b")
	assert.Empty(t, m.Check(context.Background(), p))
	assert.Equal(t, loads, src.Loads("b"))

	// Step off and back on once the room is available again.
	p.Place(model.Vec{X: 60, Y: 66})
	assert.Empty(t, m.Check(context.Background(), p))
	assert.Empty(t, m.Disarmed())

	src.Fail("b", nil)
	p.Place(model.Vec{X: 140, Y: 66})
	events = m.Check(context.Background(), p)
	require.Equal(t, []event.Kind{event.RoomTransition}, kinds(events))
	assert.Equal(t, "b", m.ActiveID())
}

func TestManager_SlowTargetAborts(t *testing.T) {
	src := chain(t)
	opts := testOptions()
	opts.LoadTimeout = 20 * time.Millisecond
	m := room.NewManager(src, opts, room.NewIDGenerator())

	// Keep b out of the resident set so the crossing has to load it.
	src.Fail("b", testutil.ErrSimulated)
	_, err := m.Enter(context.Background(), "a")
	require.NoError(t, err)
	src.Fail("b", nil)
	src.SetDelay(time.Second)

	p := newPlayer(140, 66)
	start := time.Now()
	events := m.Check(context.Background(), p)

	require.Equal(t, []event.Kind{event.TransitionAborted}, kinds(events))
	assert.Contains(t, events[0].Message, "deadline exceeded")
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, "a", m.ActiveID())
	assert.Equal(t, model.Vec{X: 140, Y: 66}, p.Box.Pos())
}

func TestManager_MissingArrivalDoorAborts(t *testing.T) {
	a := testutil.Def(t, "a", []string{
		"#####",
		"#....",
		"#####",
	}, room.Door{ID: "east", Cell: model.Cell{X: 4, Y: 1}, Side: room.SideRight, TargetRoom: "b", TargetDoor: "gone"})
	b := testutil.Def(t, "b", []string{
		"#####",
		"#...#",
		"#####",
	})
	m := room.NewManager(testutil.NewSource(a, b), testOptions(), room.NewIDGenerator())
	_, err := m.Enter(context.Background(), "a")
	require.NoError(t, err)

	events := m.Check(context.Background(), newPlayer(60, 18))

	require.Equal(t, []event.Kind{event.TransitionAborted}, kinds(events))
	assert.Contains(t, events[0].Message, room.ErrNoArrivalDoor.Error())
	assert.Equal(t, "a", m.ActiveID())
}

func TestManager_VerticalDoorKeepsFallSpeed(t *testing.T) {
	top := testutil.Def(t, "top", []string{
		"######",
		"#....#",
		"#....#",
		"#....#",
		"#....#",
		"##.###",
	}, room.Door{ID: "pit", Cell: model.Cell{X: 2, Y: 5}, Side: room.SideDown, TargetRoom: "bottom", TargetDoor: "well"})
	bottom := testutil.Def(t, "bottom", []string{
		"##.###",
		"#....#",
		"#....#",
		"#....#",
		"#....#",
		"######",
	}, room.Door{ID: "well", Cell: model.Cell{X: 2, Y: 0}, Side: room.SideUp, TargetRoom: "top", TargetDoor: "pit"})
	m := room.NewManager(testutil.NewSource(top, bottom), testOptions(), room.NewIDGenerator())
	_, err := m.Enter(context.Background(), "top")
	require.NoError(t, err)

	p := newPlayer(34, 70)
	p.Vel = model.Vec{X: 1, Y: 3}
	events := m.Check(context.Background(), p)

	require.Equal(t, []event.Kind{event.RoomTransition}, kinds(events))
	assert.Equal(t, "bottom", m.ActiveID())
	assert.Equal(t, model.Vec{X: 34, Y: 17}, p.Box.Pos())
	assert.Equal(t, model.Vec{Y: 3}, p.Vel)
}

func TestManager_EmbeddedEnemySpawnWarns(t *testing.T) {
	a := testutil.Def(t, "a", []string{
		"##########",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"##########",
	})
	a.Enemies = []room.EnemySpawn{
		{Kind: model.KindSlime, Cell: model.Cell{X: 0, Y: 4}},
		{Kind: model.KindWorm, Cell: model.Cell{X: 4, Y: 4}},
	}
	m := room.NewManager(testutil.NewSource(a), testOptions(), room.NewIDGenerator())

	warnings, err := m.Enter(context.Background(), "a")
	require.NoError(t, err)

	require.Equal(t, []event.Kind{event.MapIntegrityWarning}, kinds(warnings))
	r := m.Active()
	require.Len(t, r.Enemies, 2)
	assert.Equal(t, warnings[0].Actor, r.Enemies[0].Actor.ID)
	for _, e := range r.Enemies {
		assert.False(t, r.Resolver.Embedded(e.Actor.Box, r.Obstacles()), "enemy %d embedded", e.Actor.ID)
	}
}

func TestManager_EnterResetsRoomState(t *testing.T) {
	a := testutil.Def(t, "a", []string{
		"######",
		"#....#",
		"######",
	})
	a.Breakables = []room.BreakableSpawn{{ID: "crate", Box: model.Box{X: 32, Y: 16, W: 16, H: 16}, Hits: 2}}
	m := room.NewManager(testutil.NewSource(a), testOptions(), room.NewIDGenerator())
	_, err := m.Enter(context.Background(), "a")
	require.NoError(t, err)

	m.Active().Breakables.Hit("crate", 1)
	m.Active().Breakables.Hit("crate", 1)
	require.Zero(t, m.Active().Breakables.Len())

	_, err = m.Enter(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Active().Breakables.Len())
}
