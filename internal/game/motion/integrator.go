package motion

import (
	"math"

	"github.com/udisondev/cavern/internal/game/collision"
	"github.com/udisondev/cavern/internal/model"
)

// Params are the shared physics constants, in pixels per tick.
type Params struct {
	Gravity          float64
	TerminalVelocity float64
	// GraceTicks is the edge-assist window: airborne ticks after leaving the
	// ground during which a jump is still accepted.
	GraceTicks int
	// EdgeTolerance is the horizontal distance from the last standing surface
	// within which edge assist applies.
	EdgeTolerance   float64
	ClimbSpeed      float64
	HangJumpImpulse float64
}

// Outcome reports what happened to an actor during one step.
type Outcome struct {
	Hits   []collision.Contact
	Jumped bool
	Landed bool
	// Repaired is set when the actor ended embedded and had to be pushed out.
	Repaired bool
	// Degraded is set when the push-out fell back to the last known good position.
	Degraded bool
}

// Integrator advances actor bodies by one fixed tick.
type Integrator struct {
	p Params
}

// NewIntegrator creates an integrator with the given constants.
func NewIntegrator(p Params) *Integrator {
	return &Integrator{p: p}
}

// Params returns the integrator constants.
func (in *Integrator) Params() Params {
	return in.p
}

// Step integrates intent into the actor's velocity, resolves the candidate
// displacement against the room and writes the corrected body back.
func (in *Integrator) Step(a *model.Actor, intent model.Intent, r *collision.Resolver, obstacles []collision.Obstacle) Outcome {
	intent = intent.Clamped()

	var out Outcome
	switch {
	case a.Traits.Flies:
		out = in.fly(a, intent, r, obstacles)
	case a.Mode == model.ModeHanging:
		out = in.hang(a, intent)
	case a.Mode == model.ModeClimbing:
		out = in.climb(a, intent, r, obstacles)
	default:
		out = in.walk(a, intent, r, obstacles)
	}

	if r.Embedded(a.Box, obstacles) {
		u := r.Unstick(a.Box, a.LastGood, obstacles)
		a.Box = u.Box
		a.Vel = model.Vec{}
		out.Repaired, out.Degraded = true, u.Degraded
	}
	if !r.Embedded(a.Box, obstacles) {
		a.LastGood = a.Box.Pos()
	}
	return out
}

func (in *Integrator) walk(a *model.Actor, intent model.Intent, r *collision.Resolver, obstacles []collision.Obstacle) Outcome {
	wasGrounded := a.Grounded

	var canJump bool
	if a.Grounded {
		a.Vel.Y = 0
		a.GroundMemory = in.p.GraceTicks
		canJump = true
	} else {
		canJump = a.GroundMemory > 0 && a.HasSupport && a.Support.Gap(a.Box) <= in.p.EdgeTolerance
		if a.GroundMemory > 0 {
			a.GroundMemory--
		}
	}

	if a.Traits.CanClimb && in.tryGrabLadder(a, intent, r) {
		return in.climb(a, intent, r, obstacles)
	}

	a.Vel.X = intent.Horizontal * a.Traits.RunSpeed
	switch {
	case intent.Horizontal > 0:
		a.Facing = model.FacingRight
	case intent.Horizontal < 0:
		a.Facing = model.FacingLeft
	}

	var out Outcome
	switch {
	case intent.Jump && canJump:
		a.Vel.Y = a.Traits.JumpImpulse
		a.GroundMemory = 0
		out.Jumped = true
	case !wasGrounded:
		a.Vel.Y = math.Min(a.Vel.Y+in.p.Gravity, in.p.TerminalVelocity)
	}

	prev := a.Box
	falling := a.Vel.Y > 0
	res := r.Resolve(a.ID, a.Box, a.Vel, a.Vel, obstacles, true)
	out.Hits = res.Hits
	out.Landed = apply(a, res) && !out.Jumped

	if a.Traits.CanHang && falling && !a.Grounded && intent.Horizontal != 0 {
		in.tryHang(a, prev, res, intent, r)
	}
	return out
}

// tryHang snaps a falling actor to a ledge it is pressing against when its top edge
// just passed the ledge's top surface and the cell above the ledge is open.
func (in *Integrator) tryHang(a *model.Actor, prev model.Box, res collision.Result, intent model.Intent, r *collision.Resolver) {
	dir := model.FacingRight
	if intent.Horizontal < 0 {
		dir = model.FacingLeft
	}
	if !res.Contacts.Wall(dir) {
		return
	}

	m := r.Map()
	ts := m.TileSize()
	prevRow := int(math.Floor(prev.Y / ts))
	row := int(math.Floor(a.Box.Y / ts))
	if row == prevRow {
		return
	}

	var col int
	if dir == model.FacingRight {
		col = int(math.Floor((a.Box.Right() + 1e-6) / ts))
	} else {
		col = int(math.Floor((a.Box.X - 1e-6) / ts))
	}
	if !m.IsSolidAt(model.Cell{X: col, Y: row}) || m.IsSolidAt(model.Cell{X: col, Y: row - 1}) {
		return
	}

	a.Box.Y = float64(row) * ts
	a.Vel = model.Vec{}
	a.Mode = model.ModeHanging
	a.Facing = dir
	a.Grounded = false
	a.GroundMemory = 0
}

func (in *Integrator) hang(a *model.Actor, intent model.Intent) Outcome {
	a.Vel = model.Vec{}
	a.Grounded = false
	a.Contacts = model.Contacts{}
	if !intent.Jump {
		return Outcome{}
	}

	a.Mode = model.ModeNormal
	if intent.Down() {
		return Outcome{}
	}
	a.Vel.Y = in.p.HangJumpImpulse
	return Outcome{Jumped: true}
}

// tryGrabLadder switches the actor to climbing when it asks to move vertically over a ladder.
func (in *Integrator) tryGrabLadder(a *model.Actor, intent model.Intent, r *collision.Resolver) bool {
	if intent.Vertical == 0 || intent.Jump {
		return false
	}
	m := r.Map()
	col, ok := m.LadderAt(a.Box)
	switch {
	case ok && (intent.Up() || !a.Grounded):
	case intent.Down() && a.Grounded:
		// Standing on top of a ladder that continues below the floor.
		below := m.CellAt(model.Vec{X: a.Box.Center().X, Y: a.Box.Bottom() + 1e-3})
		if !m.IsLadderAt(below) || m.IsSolidAt(below) {
			return false
		}
		col = below.X
	default:
		return false
	}

	ts := m.TileSize()
	a.Box.X = (float64(col)+0.5)*ts - a.Box.W/2
	a.Vel = model.Vec{}
	a.Mode = model.ModeClimbing
	a.Grounded = false
	a.GroundMemory = 0
	return true
}

func (in *Integrator) climb(a *model.Actor, intent model.Intent, r *collision.Resolver, obstacles []collision.Obstacle) Outcome {
	if intent.Jump {
		a.Mode = model.ModeNormal
		a.Vel = model.Vec{Y: a.Traits.JumpImpulse}
		return Outcome{Jumped: true}
	}

	m := r.Map()
	vy := intent.Vertical * in.p.ClimbSpeed
	if vy < 0 {
		head := m.CellAt(model.Vec{X: a.Box.Center().X, Y: a.Box.Y + vy})
		if !m.IsLadderAt(head) {
			vy = 0
		}
	}

	a.Vel = model.Vec{Y: vy}
	res := r.Resolve(a.ID, a.Box, a.Vel, a.Vel, obstacles, false)
	a.Box, a.Vel, a.Contacts = res.Box, res.Vel, res.Contacts
	a.Grounded = false

	_, onLadder := m.LadderAt(a.Box)
	blockedDown := vy > 0 && res.Vel.Y == 0
	if blockedDown || !onLadder {
		a.Mode = model.ModeNormal
		a.Grounded = res.Grounded
		if res.HasSupport {
			a.Support, a.HasSupport = res.Support, true
		}
	}
	return Outcome{Hits: res.Hits, Landed: blockedDown}
}

func (in *Integrator) fly(a *model.Actor, intent model.Intent, r *collision.Resolver, obstacles []collision.Obstacle) Outcome {
	a.Vel = model.Vec{
		X: intent.Horizontal * a.Traits.FlySpeed,
		Y: intent.Vertical * a.Traits.FlySpeed,
	}
	switch {
	case a.Vel.X > 0:
		a.Facing = model.FacingRight
	case a.Vel.X < 0:
		a.Facing = model.FacingLeft
	}

	res := r.Resolve(a.ID, a.Box, a.Vel, a.Vel, obstacles, false)
	a.Box, a.Vel, a.Contacts = res.Box, res.Vel, res.Contacts
	a.Grounded = false
	return Outcome{Hits: res.Hits}
}

// apply writes a resolution result into the actor and reports whether it landed.
func apply(a *model.Actor, res collision.Result) bool {
	landed := !a.Grounded && res.Grounded
	a.Box = res.Box
	a.Vel = res.Vel
	a.Contacts = res.Contacts
	a.Grounded = res.Grounded
	if res.HasSupport {
		a.Support, a.HasSupport = res.Support, true
	}
	return landed
}
