package tilemap

// DefaultTileSize is the tile edge length in pixels used when map data omits it.
const DefaultTileSize = 16

// epsilon absorbs float error when converting pixel edges to cells.
// An edge lying exactly on a cell boundary never occupies the next cell.
const epsilon = 1e-6

// flushTolerance is how close a box bottom must be to a surface to rest on it.
const flushTolerance = 1e-3

// Tile is the collision class of a grid cell.
type Tile uint8

const (
	// Empty never blocks.
	Empty Tile = iota
	// Solid blocks on every axis.
	Solid
	// OneWay blocks only downward motion that starts at or above its top surface.
	OneWay
)

// String returns human-readable tile name
func (t Tile) String() string {
	switch t {
	case Empty:
		return "empty"
	case Solid:
		return "solid"
	case OneWay:
		return "oneway"
	default:
		return "unknown"
	}
}

// Supports reports whether an actor can stand on top of the tile.
func (t Tile) Supports() bool {
	return t == Solid || t == OneWay
}
