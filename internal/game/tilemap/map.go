package tilemap

import (
	"fmt"
	"math"

	"github.com/udisondev/cavern/internal/model"
)

// Map is the static collision grid of one room.
// Immutable after New: safe to share between the simulation and readers.
type Map struct {
	width    int
	height   int
	tileSize float64
	tiles    []Tile // row-major, len = width*height
	ladders  []bool // optional overlay, nil when the room has no ladders
}

// New creates a map from row-major tiles. ladders may be nil.
func New(width, height int, tileSize float64, tiles []Tile, ladders []bool) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d", width, height)
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("invalid tile size %v", tileSize)
	}
	if len(tiles) != width*height {
		return nil, fmt.Errorf("tile count %d does not match %dx%d", len(tiles), width, height)
	}
	if ladders != nil && len(ladders) != len(tiles) {
		return nil, fmt.Errorf("ladder overlay count %d does not match %dx%d", len(ladders), width, height)
	}

	m := &Map{
		width:    width,
		height:   height,
		tileSize: tileSize,
		tiles:    append([]Tile(nil), tiles...),
	}
	if ladders != nil {
		m.ladders = append([]bool(nil), ladders...)
	}
	return m, nil
}

// Width returns the map width in cells.
func (m *Map) Width() int { return m.width }

// Height returns the map height in cells.
func (m *Map) Height() int { return m.height }

// TileSize returns the cell edge length in pixels.
func (m *Map) TileSize() float64 { return m.tileSize }

// Bounds returns the map extent in pixels.
func (m *Map) Bounds() model.Box {
	return model.Box{W: float64(m.width) * m.tileSize, H: float64(m.height) * m.tileSize}
}

// InBounds reports whether the cell lies inside the grid.
func (m *Map) InBounds(c model.Cell) bool {
	return c.X >= 0 && c.X < m.width && c.Y >= 0 && c.Y < m.height
}

// TileAt returns the tile at cell. Out-of-range cells are Solid (world boundary).
func (m *Map) TileAt(c model.Cell) Tile {
	if !m.InBounds(c) {
		return Solid
	}
	return m.tiles[c.Y*m.width+c.X]
}

// IsSolidAt reports whether the cell is Solid.
func (m *Map) IsSolidAt(c model.Cell) bool {
	return m.TileAt(c) == Solid
}

// IsLadderAt reports whether the cell carries a ladder.
func (m *Map) IsLadderAt(c model.Cell) bool {
	if m.ladders == nil || !m.InBounds(c) {
		return false
	}
	return m.ladders[c.Y*m.width+c.X]
}

// CellAt returns the cell containing pixel p.
func (m *Map) CellAt(p model.Vec) model.Cell {
	return model.Cell{X: m.index(p.X), Y: m.index(p.Y)}
}

// CellBox returns the pixel box of a cell.
func (m *Map) CellBox(c model.Cell) model.Box {
	return model.Box{
		X: float64(c.X) * m.tileSize,
		Y: float64(c.Y) * m.tileSize,
		W: m.tileSize,
		H: m.tileSize,
	}
}

// index converts a pixel coordinate to a cell index.
func (m *Map) index(p float64) int {
	return int(math.Floor(p / m.tileSize))
}

// span returns the first and last cell indices occupied by the interval [lo, hi).
func (m *Map) span(lo, hi float64) (int, int) {
	return m.index(lo + epsilon), m.index(hi - epsilon)
}

// Overlaps reports whether the box shares area with any Solid cell.
func (m *Map) Overlaps(box model.Box) bool {
	left, right := m.span(box.X, box.Right())
	top, bottom := m.span(box.Y, box.Bottom())
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			if m.IsSolidAt(model.Cell{X: x, Y: y}) {
				return true
			}
		}
	}
	return false
}

// LadderAt reports whether the vertical center line of the box touches a ladder cell,
// and returns the ladder column.
func (m *Map) LadderAt(box model.Box) (int, bool) {
	center := box.Center()
	col := m.index(center.X)
	top, bottom := m.span(box.Y, box.Bottom())
	for y := top; y <= bottom; y++ {
		if m.IsLadderAt(model.Cell{X: col, Y: y}) {
			return col, true
		}
	}
	return col, false
}
