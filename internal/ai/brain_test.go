package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cavern/internal/model"
)

func testTuning() Tuning {
	return Tuning{
		BatDetectRadius: 64,
		BatHysteresis:   32,
		SlimeSpeed:      2,
		SlimeHopEvery:   0,
	}
}

// perceiveAt builds a perception for a 16x16 enemy at x with the player center at px.
func perceiveAt(x, px float64) Perception {
	return Perception{
		Self:        1,
		Box:         model.Box{X: x, Y: 0, W: 16, H: 16},
		Grounded:    true,
		Player:      model.Vec{X: px, Y: 8},
		GroundAhead: true,
	}
}

func TestBat_Hysteresis(t *testing.T) {
	b := NewBat(testTuning())
	// Bat center is at x=8; player distance = px - 8.
	tests := []struct {
		name string
		dist float64
		want BatMode
	}{
		{"far away stays idle", 100, BatIdle},
		{"just outside radius", 64.5, BatIdle},
		{"exactly at radius pursues", 64, BatPursue},
		{"inside hysteresis band keeps pursuing", 80, BatPursue},
		{"at band edge keeps pursuing", 96, BatPursue},
		{"beyond band goes idle", 96.5, BatIdle},
		{"back inside band stays idle", 80, BatIdle},
		{"inside radius pursues again", 10, BatPursue},
	}

	for _, tt := range tests {
		b.Tick(perceiveAt(0, 8+tt.dist))
		assert.Equal(t, tt.want, b.Bat.State, tt.name)
	}
}

func TestBat_NeverTogglesInsideBand(t *testing.T) {
	b := NewBat(testTuning())
	b.Tick(perceiveAt(0, 8+10))
	require.Equal(t, BatPursue, b.Bat.State)

	for d := 64.5; d <= 96; d += 0.5 {
		b.Tick(perceiveAt(0, 8+d))
		require.Equal(t, BatPursue, b.Bat.State, "distance %v", d)
	}

	b = NewBat(testTuning())
	for d := 96.0; d > 64; d -= 0.5 {
		b.Tick(perceiveAt(0, 8+d))
		require.Equal(t, BatIdle, b.Bat.State, "distance %v", d)
	}
}

func TestBat_SteersTowardPlayer(t *testing.T) {
	b := NewBat(testTuning())
	p := perceiveAt(0, 0)
	p.Player = model.Vec{X: 8 + 30, Y: 8 + 40}

	intent := b.Tick(p)

	assert.InDelta(t, 0.6, intent.Horizontal, 1e-9)
	assert.InDelta(t, 0.8, intent.Vertical, 1e-9)
	assert.False(t, intent.Jump)
}

func TestBat_IdleIntentIsZero(t *testing.T) {
	b := NewBat(testTuning())
	assert.Equal(t, model.Idle, b.Tick(perceiveAt(0, 500)))
}

func TestSlime_ReversesAtPatrolBoundary(t *testing.T) {
	s := NewSlime(testTuning(), 0, 100, model.FacingRight)

	// Drive the brain with a kinematic stand-in for motion: x += intent * speed.
	x := 98.0
	var xs []float64
	for range 4 {
		intent := s.Tick(perceiveAt(x, 0))
		x += intent.Horizontal * s.Slime.Speed
		xs = append(xs, x)
	}

	assert.Equal(t, []float64{100, 98, 96, 94}, xs)
	assert.Equal(t, model.FacingLeft, s.Slime.Dir)
}

func TestSlime_ReversesAtLowerBoundary(t *testing.T) {
	s := NewSlime(testTuning(), 10, 100, model.FacingLeft)

	intent := s.Tick(perceiveAt(11, 0))

	assert.Equal(t, 1.0, intent.Horizontal)
	assert.Equal(t, model.FacingRight, s.Slime.Dir)
}

func TestSlime_ReversesOnWallContact(t *testing.T) {
	s := NewSlime(testTuning(), 0, 1000, model.FacingRight)
	p := perceiveAt(50, 0)
	p.Contacts.WallRight = true

	intent := s.Tick(p)

	assert.Equal(t, -1.0, intent.Horizontal)

	// Contact on the side it is not heading to is ignored.
	intent = s.Tick(p)
	assert.Equal(t, -1.0, intent.Horizontal)
}

func TestSlime_HopCadence(t *testing.T) {
	tuning := testTuning()
	tuning.SlimeHopEvery = 3
	s := NewSlime(tuning, 0, 1000, model.FacingRight)

	var jumps []bool
	for range 3 {
		jumps = append(jumps, s.Tick(perceiveAt(50, 0)).Jump)
	}
	assert.Equal(t, []bool{false, false, true}, jumps)
	assert.Equal(t, SlimeHop, s.Slime.State)

	// Airborne: no new hop, stays in Hop.
	p := perceiveAt(50, 0)
	p.Grounded = false
	assert.False(t, s.Tick(p).Jump)
	assert.Equal(t, SlimeHop, s.Slime.State)

	// Landing returns to Patrol and restarts the cadence.
	assert.False(t, s.Tick(perceiveAt(50, 0)).Jump)
	assert.Equal(t, SlimePatrol, s.Slime.State)
	assert.Equal(t, 0, s.Slime.Since)
}

func TestWorm_TurnsAtLedge(t *testing.T) {
	w := NewWorm(model.FacingRight)

	p := perceiveAt(50, 0)
	intent := w.Tick(p)
	assert.Equal(t, 1.0, intent.Horizontal)
	assert.Equal(t, WormCrawl, w.Worm.State)

	// Ledge ahead: pause and enter Turn.
	p.GroundAhead = false
	intent = w.Tick(p)
	assert.Equal(t, model.Idle, intent)
	assert.Equal(t, WormTurn, w.Worm.State)

	// Turn reverses and resumes crawling.
	p.GroundAhead = true
	intent = w.Tick(p)
	assert.Equal(t, -1.0, intent.Horizontal)
	assert.Equal(t, WormCrawl, w.Worm.State)
	assert.Equal(t, model.FacingLeft, w.Heading())
}

func TestWorm_TurnsAtWall(t *testing.T) {
	w := NewWorm(model.FacingLeft)
	p := perceiveAt(50, 0)
	p.Contacts.WallLeft = true

	w.Tick(p)
	require.Equal(t, WormTurn, w.Worm.State)

	w.Tick(perceiveAt(50, 0))
	assert.Equal(t, model.FacingRight, w.Worm.Dir)
}

func TestWorm_IgnoresLedgeWhileFalling(t *testing.T) {
	w := NewWorm(model.FacingRight)
	p := perceiveAt(50, 0)
	p.Grounded = false
	p.GroundAhead = false

	intent := w.Tick(p)

	assert.Equal(t, WormCrawl, w.Worm.State)
	assert.Equal(t, 1.0, intent.Horizontal)
}

func TestNew(t *testing.T) {
	tests := []struct {
		kind    model.Kind
		wantErr bool
	}{
		{model.KindBat, false},
		{model.KindSlime, false},
		{model.KindWorm, false},
		{model.KindPlayer, true},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			b, err := New(tt.kind, testTuning(), 0, 100, model.FacingRight)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, b.Kind)
		})
	}
}

func TestBrain_UnreachableKindPanics(t *testing.T) {
	b := &Brain{Kind: model.KindPlayer}
	assert.Panics(t, func() { b.Tick(Perception{}) })
	assert.Panics(t, func() { _ = b.State() })
}

func TestBrain_State(t *testing.T) {
	assert.Equal(t, "idle", NewBat(testTuning()).State())
	assert.Equal(t, "patrol", NewSlime(testTuning(), 0, 1, model.FacingRight).State())
	assert.Equal(t, "crawl", NewWorm(model.FacingRight).State())
}
