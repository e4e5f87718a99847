package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cavern/internal/game/tilemap"
	"github.com/udisondev/cavern/internal/model"
)

func newResolver(t *testing.T, rows ...string) *Resolver {
	t.Helper()
	m, err := tilemap.FromRows(rows, tilemap.DefaultTileSize)
	require.NoError(t, err)
	return NewResolver(m, 8)
}

// room is 8x6 with a floor at y=80 and a wall column at x=96..112 on rows 3-4.
var room = []string{
	"########",
	"#......#",
	"#......#",
	"#.....##",
	"#.....##",
	"########",
}

func TestResolve_FreeMotion(t *testing.T) {
	r := newResolver(t, room...)
	box := model.Box{X: 30, Y: 20, W: 12, H: 14}
	d := model.Vec{X: 3, Y: 2}

	res := r.Resolve(1, box, d, d, nil, true)

	assert.Equal(t, box.Translate(d), res.Box)
	assert.Equal(t, d, res.Vel)
	assert.False(t, res.Grounded)
	assert.Empty(t, res.Hits)
}

func TestResolve_WallAndFloor(t *testing.T) {
	r := newResolver(t, room...)
	box := model.Box{X: 80, Y: 60, W: 12, H: 14}
	d := model.Vec{X: 6, Y: 8}

	res := r.Resolve(7, box, d, d, nil, true)

	assert.InDelta(t, 84, res.Box.X, 1e-9)
	assert.InDelta(t, 66, res.Box.Y, 1e-9)
	assert.Equal(t, model.Vec{}, res.Vel)
	assert.True(t, res.Contacts.WallRight)
	assert.True(t, res.Contacts.Ground)
	assert.True(t, res.Grounded)
	require.True(t, res.HasSupport)
	assert.Equal(t, model.Span{Left: 16, Right: 96}, res.Support)

	require.Len(t, res.Hits, 2)
	assert.Equal(t, model.ActorID(7), res.Hits[0].Actor)
	assert.Equal(t, OtherTile, res.Hits[0].Other)
	assert.Equal(t, model.Vec{X: -1}, res.Hits[0].Normal)
	assert.Equal(t, model.Vec{Y: -1}, res.Hits[1].Normal)
	assert.False(t, res.Hits[1].FromBelow())
}

func TestResolve_RestingStaysGrounded(t *testing.T) {
	r := newResolver(t, room...)
	box := model.Box{X: 40, Y: 66, W: 12, H: 14}

	res := r.Resolve(1, box, model.Vec{X: 2}, model.Vec{X: 2}, nil, true)

	assert.True(t, res.Grounded)
	assert.InDelta(t, 66, res.Box.Y, 1e-9)
	assert.Empty(t, res.Hits)
}

func TestResolve_ObstacleFromBelow(t *testing.T) {
	r := newResolver(t, room...)
	crate := Obstacle{ID: "crate", Box: model.Box{X: 32, Y: 32, W: 16, H: 16}}
	box := model.Box{X: 34, Y: 52, W: 12, H: 14}
	d := model.Vec{Y: -6}

	res := r.Resolve(3, box, d, d, []Obstacle{crate}, true)

	assert.InDelta(t, 48, res.Box.Y, 1e-9)
	assert.True(t, res.Contacts.Ceiling)
	assert.Zero(t, res.Vel.Y)
	require.Len(t, res.Hits, 1)
	hit := res.Hits[0]
	assert.Equal(t, OtherObstacle, hit.Other)
	assert.Equal(t, model.ObjectID("crate"), hit.Object)
	assert.True(t, hit.FromBelow())
}

func TestResolve_StandsOnObstacle(t *testing.T) {
	r := newResolver(t, room...)
	crate := Obstacle{ID: "crate", Box: model.Box{X: 32, Y: 64, W: 16, H: 16}}
	box := model.Box{X: 34, Y: 46, W: 12, H: 14}
	d := model.Vec{Y: 5}

	res := r.Resolve(3, box, d, d, []Obstacle{crate}, true)

	assert.InDelta(t, 50, res.Box.Y, 1e-9)
	assert.True(t, res.Grounded)
	require.True(t, res.HasSupport)
	assert.Equal(t, model.Span{Left: 32, Right: 48}, res.Support)
}

func TestResolve_OneWayToggle(t *testing.T) {
	r := newResolver(t,
		"......",
		"......",
		"======",
		"......",
		"######",
	)
	box := model.Box{X: 20, Y: 18, W: 12, H: 14} // bottom 32 on the platform
	d := model.Vec{Y: 4}

	res := r.Resolve(1, box, d, d, nil, true)
	assert.True(t, res.Grounded)
	assert.InDelta(t, 18, res.Box.Y, 1e-9)

	res = r.Resolve(1, box, d, d, nil, false)
	assert.False(t, res.Grounded)
	assert.InDelta(t, 22, res.Box.Y, 1e-9)
}

func TestResolve_NeverEndsEmbedded(t *testing.T) {
	r := newResolver(t, room...)
	obstacles := []Obstacle{{ID: "crate", Box: model.Box{X: 48, Y: 48, W: 16, H: 16}}}

	moves := []model.Vec{
		{X: 9, Y: 9}, {X: -9, Y: 9}, {X: 9, Y: -9}, {X: -9, Y: -9},
		{X: 15, Y: 0}, {X: 0, Y: 15}, {X: -15, Y: 0}, {X: 0, Y: -15},
	}
	for x := 17.0; x < 84; x += 5 {
		for y := 17.0; y < 66; y += 5 {
			box := model.Box{X: x, Y: y, W: 12, H: 14}
			if r.Embedded(box, obstacles) {
				continue
			}
			for _, d := range moves {
				res := r.Resolve(1, box, d, d, obstacles, true)
				assert.False(t, r.Embedded(res.Box, obstacles), "from %+v by %+v ended at %+v", box, d, res.Box)
			}
		}
	}
}

func TestUnstick(t *testing.T) {
	r := newResolver(t, room...)

	t.Run("free box is untouched", func(t *testing.T) {
		box := model.Box{X: 40, Y: 40, W: 12, H: 14}
		u := r.Unstick(box, box.Pos(), nil)
		assert.False(t, u.Moved)
		assert.Equal(t, box, u.Box)
	})

	t.Run("shallow overlap is pushed out", func(t *testing.T) {
		box := model.Box{X: 40, Y: 68, W: 12, H: 14} // 2px into the floor
		u := r.Unstick(box, model.Vec{X: 0, Y: 0}, nil)
		assert.True(t, u.Moved)
		assert.False(t, u.Degraded)
		assert.InDelta(t, 66, u.Box.Y, 1e-9)
		assert.False(t, r.Embedded(u.Box, nil))
	})

	t.Run("pushed out of an obstacle", func(t *testing.T) {
		crate := Obstacle{ID: "crate", Box: model.Box{X: 48, Y: 64, W: 16, H: 16}}
		box := model.Box{X: 38, Y: 60, W: 12, H: 14} // 2px into the crate's left side
		u := r.Unstick(box, box.Pos(), []Obstacle{crate})
		assert.True(t, u.Moved)
		assert.False(t, r.Embedded(u.Box, []Obstacle{crate}))
	})

	t.Run("deep overlap falls back to last good", func(t *testing.T) {
		r := NewResolver(r.Map(), 1)
		box := model.Box{X: 98, Y: 58, W: 12, H: 14} // inside the wall block
		last := model.Vec{X: 40, Y: 66}
		u := r.Unstick(box, last, nil)
		assert.True(t, u.Moved)
		assert.True(t, u.Degraded)
		assert.Equal(t, last, u.Box.Pos())
	})
}
