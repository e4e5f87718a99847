package model

import "math"

// Vec is a point or displacement in pixel space. Y grows downward.
type Vec struct {
	X float64
	Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Len returns the euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Cell is an integer tile coordinate.
type Cell struct {
	X int
	Y int
}

// Box is an axis-aligned bounding box; (X, Y) is the top-left corner.
// Value type, passed by value.
type Box struct {
	X float64
	Y float64
	W float64
	H float64
}

// Right returns the X coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the Y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// Center returns the center point of the box.
func (b Box) Center() Vec {
	return Vec{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Pos returns the top-left corner.
func (b Box) Pos() Vec {
	return Vec{X: b.X, Y: b.Y}
}

// Radius returns half of the larger box dimension.
func (b Box) Radius() float64 {
	return math.Max(b.W, b.H) / 2
}

// At returns a copy of the box moved so its top-left corner is p (immutable pattern).
func (b Box) At(p Vec) Box {
	b.X = p.X
	b.Y = p.Y
	return b
}

// Translate returns a copy of the box shifted by d.
func (b Box) Translate(d Vec) Box {
	b.X += d.X
	b.Y += d.Y
	return b
}

// Overlaps reports whether two boxes share interior area.
// Touching edges do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.Right() && o.X < b.Right() &&
		b.Y < o.Bottom() && o.Y < b.Bottom()
}

// Facing is the horizontal direction an actor looks at.
type Facing int8

const (
	FacingRight Facing = 1
	FacingLeft  Facing = -1
)

// Sign returns +1 for right and -1 for left.
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

// Reverse returns the opposite facing.
func (f Facing) Reverse() Facing {
	if f == FacingLeft {
		return FacingRight
	}
	return FacingLeft
}

// String returns human-readable facing name
func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}
