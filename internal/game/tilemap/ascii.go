package tilemap

import (
	"errors"
	"fmt"
)

var (
	// ErrRaggedRows is returned when map rows differ in length.
	ErrRaggedRows = errors.New("ragged tile rows")
	// ErrUnknownGlyph is returned for a character with no tile meaning.
	ErrUnknownGlyph = errors.New("unknown tile glyph")
)

// Glyphs of the ASCII map format.
const (
	GlyphEmpty        = '.'
	GlyphSolid        = '#'
	GlyphOneWay       = '='
	GlyphLadder       = 'H' // ladder over Empty
	GlyphLadderOneWay = '+' // ladder through a OneWay platform
)

// FromRows builds a map from ASCII rows, top row first.
func FromRows(rows []string, tileSize float64) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("empty tile rows")
	}
	width := len(rows[0])
	tiles := make([]Tile, 0, width*len(rows))
	ladders := make([]bool, 0, width*len(rows))
	hasLadder := false

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(row), width, ErrRaggedRows)
		}
		for x := range len(row) {
			var t Tile
			ladder := false
			switch row[x] {
			case GlyphEmpty:
				t = Empty
			case GlyphSolid:
				t = Solid
			case GlyphOneWay:
				t = OneWay
			case GlyphLadder:
				t, ladder = Empty, true
			case GlyphLadderOneWay:
				t, ladder = OneWay, true
			default:
				return nil, fmt.Errorf("cell %d,%d %q: %w", x, y, row[x], ErrUnknownGlyph)
			}
			tiles = append(tiles, t)
			ladders = append(ladders, ladder)
			hasLadder = hasLadder || ladder
		}
	}

	if !hasLadder {
		ladders = nil
	}
	return New(width, len(rows), tileSize, tiles, ladders)
}

// Rows renders the map back to ASCII rows.
func (m *Map) Rows() []string {
	rows := make([]string, m.height)
	buf := make([]byte, m.width)
	for y := range m.height {
		for x := range m.width {
			i := y*m.width + x
			ladder := m.ladders != nil && m.ladders[i]
			switch {
			case m.tiles[i] == Solid:
				buf[x] = GlyphSolid
			case m.tiles[i] == OneWay && ladder:
				buf[x] = GlyphLadderOneWay
			case m.tiles[i] == OneWay:
				buf[x] = GlyphOneWay
			case ladder:
				buf[x] = GlyphLadder
			default:
				buf[x] = GlyphEmpty
			}
		}
		rows[y] = string(buf)
	}
	return rows
}
