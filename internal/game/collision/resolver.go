package collision

import (
	"github.com/udisondev/cavern/internal/game/tilemap"
	"github.com/udisondev/cavern/internal/model"
)

// OtherKind tells what an actor collided with.
type OtherKind uint8

const (
	OtherTile OtherKind = iota + 1
	OtherObstacle
)

// Contact is the transient per-tick record of one blocked axis.
type Contact struct {
	Actor model.ActorID
	// Normal is the surface normal pointing back toward the actor.
	// {0,1} means the actor was blocked moving up (hit from below).
	Normal model.Vec
	Other  OtherKind
	Cell   model.Cell
	Object model.ObjectID
}

// FromBelow reports whether the actor struck the other body moving upward.
func (c Contact) FromBelow() bool {
	return c.Normal.Y > 0
}

// Result is the outcome of resolving one candidate displacement.
type Result struct {
	Box      model.Box
	Vel      model.Vec
	Contacts model.Contacts
	Grounded bool
	// Support is the surface under the actor when Grounded.
	Support    model.Span
	HasSupport bool
	Hits       []Contact
}

// Resolver performs axis-separated swept collision against one room's tile map
// and its solid obstacles.
type Resolver struct {
	m          *tilemap.Map
	maxPushOut int
}

// NewResolver creates a resolver for the map.
// maxPushOut bounds the embedded-actor push-out iterations.
func NewResolver(m *tilemap.Map, maxPushOut int) *Resolver {
	if maxPushOut <= 0 {
		maxPushOut = 8
	}
	return &Resolver{m: m, maxPushOut: maxPushOut}
}

// Map returns the tile map the resolver works on.
func (r *Resolver) Map() *tilemap.Map {
	return r.m
}

// Resolve moves the actor's box by d, X first, then Y from the corrected X.
// vel is the velocity that produced d; blocked axes come back zeroed.
// oneWay enables OneWay platforms for this sweep.
func (r *Resolver) Resolve(id model.ActorID, box model.Box, vel, d model.Vec, obstacles []Obstacle, oneWay bool) Result {
	res := Result{Box: box, Vel: vel}

	// X axis
	if d.X != 0 {
		tileDX, tileHit, tileBlocked := r.m.SweepX(box, d.X)
		obsDX, obsIdx, obsBlocked := sweepObstaclesX(box, d.X, obstacles)

		dx := d.X
		switch {
		case obsBlocked && (!tileBlocked || abs(obsDX) < abs(tileDX)):
			dx = obsDX
			res.Hits = append(res.Hits, Contact{Actor: id, Normal: model.Vec{X: -sign(d.X)}, Other: OtherObstacle, Object: obstacles[obsIdx].ID})
		case tileBlocked:
			dx = tileDX
			res.Hits = append(res.Hits, Contact{Actor: id, Normal: tileHit.Normal, Other: OtherTile, Cell: tileHit.Cell})
		}
		if tileBlocked || obsBlocked {
			if d.X > 0 {
				res.Contacts.WallRight = true
			} else {
				res.Contacts.WallLeft = true
			}
			res.Vel.X = 0
		}
		res.Box.X += dx
	}

	// Y axis, from the corrected X
	blockedDown := false
	if d.Y != 0 {
		tileDY, tileHit, tileBlocked := r.m.SweepY(res.Box, d.Y, oneWay)
		obsDY, obsIdx, obsBlocked := sweepObstaclesY(res.Box, d.Y, obstacles)

		dy := d.Y
		switch {
		case obsBlocked && (!tileBlocked || abs(obsDY) < abs(tileDY)):
			dy = obsDY
			res.Hits = append(res.Hits, Contact{Actor: id, Normal: model.Vec{Y: -sign(d.Y)}, Other: OtherObstacle, Object: obstacles[obsIdx].ID})
		case tileBlocked:
			dy = tileDY
			res.Hits = append(res.Hits, Contact{Actor: id, Normal: tileHit.Normal, Other: OtherTile, Cell: tileHit.Cell})
		}
		if tileBlocked || obsBlocked {
			if d.Y > 0 {
				res.Contacts.Ground = true
				blockedDown = true
			} else {
				res.Contacts.Ceiling = true
			}
			res.Vel.Y = 0
		}
		res.Box.Y += dy
	}

	// Ground check: a resting actor stays grounded without a downward block.
	if blockedDown || d.Y >= 0 {
		if span, ok := r.m.SupportSpan(res.Box); ok {
			res.Grounded, res.Support, res.HasSupport = true, span, true
		} else if o, ok := obstacleSupport(res.Box, obstacles); ok {
			res.Grounded, res.HasSupport = true, true
			res.Support = model.Span{Left: o.Box.X, Right: o.Box.Right()}
		} else if blockedDown {
			res.Grounded = true
		}
	}
	res.Contacts.Ground = res.Grounded
	return res
}

// Embedded reports whether the box overlaps solid tiles or obstacles.
func (r *Resolver) Embedded(box model.Box, obstacles []Obstacle) bool {
	if r.m.Overlaps(box) {
		return true
	}
	_, ok := overlapsObstacle(box, obstacles)
	return ok
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
