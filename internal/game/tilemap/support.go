package tilemap

import (
	"math"

	"github.com/udisondev/cavern/internal/model"
)

// supportRow returns the row directly below the box and whether the box bottom
// rests flush on that row's top edge.
func (m *Map) supportRow(box model.Box) (int, bool) {
	row := m.index(box.Bottom() + epsilon)
	rowTop := float64(row) * m.tileSize
	return row, math.Abs(box.Bottom()-rowTop) <= flushTolerance
}

// Supports reports whether the box rests flush on a Solid or OneWay surface.
func (m *Map) Supports(box model.Box) bool {
	row, flush := m.supportRow(box)
	if !flush {
		return false
	}
	left, right := m.span(box.X, box.Right())
	for col := left; col <= right; col++ {
		if m.TileAt(model.Cell{X: col, Y: row}).Supports() {
			return true
		}
	}
	return false
}

// SupportSpan returns the horizontal extent of the walkable surface under the box.
// The surface continues sideways while the next cell supports and the cell above it
// is not Solid (a wall ends the surface).
func (m *Map) SupportSpan(box model.Box) (model.Span, bool) {
	row, flush := m.supportRow(box)
	if !flush {
		return model.Span{}, false
	}

	left, right := m.span(box.X, box.Right())
	first, last := -1, -1
	for col := left; col <= right; col++ {
		if m.TileAt(model.Cell{X: col, Y: row}).Supports() {
			if first < 0 {
				first = col
			}
			last = col
		}
	}
	if first < 0 {
		return model.Span{}, false
	}

	walkable := func(col int) bool {
		return col >= 0 && col < m.width &&
			m.TileAt(model.Cell{X: col, Y: row}).Supports() &&
			!m.IsSolidAt(model.Cell{X: col, Y: row - 1})
	}
	for walkable(first - 1) {
		first--
	}
	for walkable(last + 1) {
		last++
	}

	return model.Span{
		Left:  float64(first) * m.tileSize,
		Right: float64(last+1) * m.tileSize,
	}, true
}

// GroundAhead reports whether there is a supporting cell under the point just past
// the box's leading bottom corner after moving step pixels in the facing direction.
func (m *Map) GroundAhead(box model.Box, facing model.Facing, step float64) bool {
	row, flush := m.supportRow(box)
	if !flush {
		return true
	}
	var x float64
	if facing == model.FacingRight {
		x = box.Right() + step - epsilon
	} else {
		x = box.X - step + epsilon
	}
	return m.TileAt(model.Cell{X: m.index(x), Y: row}).Supports()
}
