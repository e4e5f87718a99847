package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/udisondev/cavern/internal/game/tilemap"
	"github.com/udisondev/cavern/internal/model"
	"github.com/udisondev/cavern/internal/world"
)

// cellWidth is the number of terminal columns per tile; terminal cells are
// about twice as tall as they are wide.
const cellWidth = 2

var (
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleOneWay  = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleLadder  = tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleEnemy   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleCrate   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePickup  = tcell.StyleDefault.Foreground(tcell.ColorGold)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleWarning = tcell.StyleDefault.Foreground(tcell.ColorOrange)
)

// draw paints a snapshot at the top-left of the screen with a status line below it.
func draw(screen tcell.Screen, snap world.Snapshot, status string) {
	screen.Clear()
	if snap.Map == nil {
		screen.Show()
		return
	}

	m := snap.Map
	ts := m.TileSize()
	for y := range m.Height() {
		for x := range m.Width() {
			r, style := tileGlyph(m, model.Cell{X: x, Y: y})
			for i := range cellWidth {
				screen.SetContent(x*cellWidth+i, y, r, nil, style)
			}
		}
	}

	put := func(b model.Box, r rune, style tcell.Style) {
		col, row := toScreen(b.Center(), ts)
		screen.SetContent(col, row, r, nil, style)
	}
	for _, p := range snap.Pickups {
		put(p.Box, '$', stylePickup)
	}
	for _, b := range snap.Breakables {
		col, row := toScreen(b.Box.Center(), ts)
		glyph := rune('0' + min(b.Hits, 9))
		screen.SetContent(col-1, row, '[', nil, styleCrate)
		screen.SetContent(col, row, glyph, nil, styleCrate)
	}
	for _, e := range snap.Enemies {
		put(e.Box, enemyGlyph(e.Kind), styleEnemy)
	}
	put(snap.Player.Box, playerGlyph(snap.Player), stylePlayer)

	line := fmt.Sprintf("room %s  tick %d  %s", snap.Room, snap.Tick, snap.Player.Anim)
	drawText(screen, 0, m.Height()+1, line, styleStatus)
	if status != "" {
		drawText(screen, 0, m.Height()+2, status, styleWarning)
	}
	drawText(screen, 0, m.Height()+3, "arrows/hjkl move  space jump  q quit", styleStatus)
	screen.Show()
}

func tileGlyph(m *tilemap.Map, c model.Cell) (rune, tcell.Style) {
	switch {
	case m.TileAt(c) == tilemap.Solid:
		return '█', styleWall
	case m.IsLadderAt(c):
		return 'H', styleLadder
	case m.TileAt(c) == tilemap.OneWay:
		return '=', styleOneWay
	default:
		return ' ', tcell.StyleDefault
	}
}

func toScreen(p model.Vec, tileSize float64) (int, int) {
	col := int(math.Floor(p.X / tileSize * cellWidth))
	row := int(math.Floor(p.Y / tileSize))
	return col, row
}

func enemyGlyph(k model.Kind) rune {
	switch k {
	case model.KindBat:
		return 'v'
	case model.KindSlime:
		return 'o'
	case model.KindWorm:
		return '~'
	default:
		return '?'
	}
}

func playerGlyph(p world.ActorView) rune {
	switch p.Anim {
	case "hang", "climb":
		return '&'
	default:
		return '@'
	}
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
