package tilemap

import "github.com/udisondev/cavern/internal/model"

// Axis identifies the sweep axis.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// String returns human-readable axis name
func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Hit describes the first blocking surface met by a swept box.
type Hit struct {
	Axis Axis
	// Distance is the signed travel allowed before touching the surface.
	Distance float64
	// Normal is the surface normal, pointing back toward the moving box.
	Normal model.Vec
	Cell   model.Cell
	Tile   Tile
}

// SweepX sweeps the box horizontally by dx.
// Returns the allowed displacement and the blocking hit, if any.
// Only Solid tiles block horizontal motion.
func (m *Map) SweepX(box model.Box, dx float64) (float64, Hit, bool) {
	if dx == 0 {
		return 0, Hit{}, false
	}
	top, bottom := m.span(box.Y, box.Bottom())
	ts := m.tileSize

	if dx > 0 {
		start := m.index(box.Right()-epsilon) + 1
		end := m.index(box.Right() + dx - epsilon)
		for col := start; col <= end; col++ {
			for row := top; row <= bottom; row++ {
				c := model.Cell{X: col, Y: row}
				if !m.IsSolidAt(c) {
					continue
				}
				allowed := max(float64(col)*ts-box.Right(), 0)
				return allowed, Hit{Axis: AxisX, Distance: allowed, Normal: model.Vec{X: -1}, Cell: c, Tile: Solid}, true
			}
		}
		return dx, Hit{}, false
	}

	start := m.index(box.X+epsilon) - 1
	end := m.index(box.X + dx + epsilon)
	for col := start; col >= end; col-- {
		for row := top; row <= bottom; row++ {
			c := model.Cell{X: col, Y: row}
			if !m.IsSolidAt(c) {
				continue
			}
			allowed := min(float64(col+1)*ts-box.X, 0)
			return allowed, Hit{Axis: AxisX, Distance: allowed, Normal: model.Vec{X: 1}, Cell: c, Tile: Solid}, true
		}
	}
	return dx, Hit{}, false
}

// SweepY sweeps the box vertically by dy.
// When oneWay is set, OneWay tiles block downward motion that starts at or above
// their top surface; upward motion always passes through them.
func (m *Map) SweepY(box model.Box, dy float64, oneWay bool) (float64, Hit, bool) {
	if dy == 0 {
		return 0, Hit{}, false
	}
	left, right := m.span(box.X, box.Right())
	ts := m.tileSize

	if dy > 0 {
		start := m.index(box.Bottom()-epsilon) + 1
		end := m.index(box.Bottom() + dy - epsilon)
		for row := start; row <= end; row++ {
			rowTop := float64(row) * ts
			for col := left; col <= right; col++ {
				c := model.Cell{X: col, Y: row}
				t := m.TileAt(c)
				blocks := t == Solid || (oneWay && t == OneWay && box.Bottom() <= rowTop+epsilon)
				if !blocks {
					continue
				}
				allowed := max(rowTop-box.Bottom(), 0)
				return allowed, Hit{Axis: AxisY, Distance: allowed, Normal: model.Vec{Y: -1}, Cell: c, Tile: t}, true
			}
		}
		return dy, Hit{}, false
	}

	start := m.index(box.Y+epsilon) - 1
	end := m.index(box.Y + dy + epsilon)
	for row := start; row >= end; row-- {
		for col := left; col <= right; col++ {
			c := model.Cell{X: col, Y: row}
			if !m.IsSolidAt(c) {
				continue
			}
			allowed := min(float64(row+1)*ts-box.Y, 0)
			return allowed, Hit{Axis: AxisY, Distance: allowed, Normal: model.Vec{Y: 1}, Cell: c, Tile: Solid}, true
		}
	}
	return dy, Hit{}, false
}

// SweepQuery sweeps the box by d, X axis first, then Y from the X-corrected box.
// Returns one hit per blocked axis, in resolution order.
func (m *Map) SweepQuery(box model.Box, d model.Vec, oneWay bool) []Hit {
	var hits []Hit

	ax, hx, blocked := m.SweepX(box, d.X)
	if blocked {
		hits = append(hits, hx)
	}

	moved := box.Translate(model.Vec{X: ax})
	if _, hy, blocked := m.SweepY(moved, d.Y, oneWay); blocked {
		hits = append(hits, hy)
	}
	return hits
}
