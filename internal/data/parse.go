package data

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/cavern/internal/event"
	"github.com/udisondev/cavern/internal/game/tilemap"
	"github.com/udisondev/cavern/internal/model"
	"github.com/udisondev/cavern/internal/room"
)

// parseRoom decodes one room file and validates everything that does not depend
// on other rooms.
func parseRoom(file string, raw []byte, opts Options) (*room.Def, error) {
	var rf roomFile
	if err := yaml.Unmarshal(raw, &rf); err != nil {
		return nil, loadErr(strings.TrimSuffix(file, ".yaml"), "file "+file, fmt.Errorf("%w: %v", ErrInvalidField, err))
	}
	if rf.ID == "" {
		return nil, loadErr(strings.TrimSuffix(file, ".yaml"), "id", fmt.Errorf("%w: id is required", ErrInvalidField))
	}
	id := rf.ID

	ts := rf.TileSize
	if ts == 0 {
		ts = opts.TileSize
	}
	m, err := tilemap.FromRows(rf.Tiles, ts)
	if err != nil {
		return nil, loadErr(id, "tiles", err)
	}

	def := &room.Def{ID: id, Map: m}
	ids := make(map[string]struct{})
	claim := func(ref, oid string) error {
		if oid == "" {
			return loadErr(id, ref, fmt.Errorf("%w: id is required", ErrInvalidField))
		}
		if _, ok := ids[oid]; ok {
			return loadErr(id, ref, ErrDuplicateID)
		}
		ids[oid] = struct{}{}
		return nil
	}
	inBounds := func(ref string, c cellFile) error {
		if !m.InBounds(model.Cell{X: c.X, Y: c.Y}) {
			return loadErr(id, ref, fmt.Errorf("%w: cell %d,%d outside %dx%d", ErrInvalidField, c.X, c.Y, m.Width(), m.Height()))
		}
		return nil
	}

	for _, df := range rf.Doors {
		ref := "door " + df.ID
		if err := claim(ref, df.ID); err != nil {
			return nil, err
		}
		if err := inBounds(ref, df.Cell); err != nil {
			return nil, err
		}
		side, err := room.ParseSide(df.Side)
		if err != nil {
			return nil, loadErr(id, ref, fmt.Errorf("%w: %v", ErrInvalidField, err))
		}
		if df.TargetRoom == "" || df.TargetDoor == "" {
			return nil, loadErr(id, ref, fmt.Errorf("%w: target_room and target_door are required", ErrInvalidField))
		}
		d := room.Door{
			ID:         df.ID,
			Cell:       model.Cell{X: df.Cell.X, Y: df.Cell.Y},
			Side:       side,
			TargetRoom: df.TargetRoom,
			TargetDoor: df.TargetDoor,
		}
		if df.Spawn != nil {
			d.Spawn = &model.Vec{X: df.Spawn.X, Y: df.Spawn.Y}
		}
		def.Doors = append(def.Doors, d)
	}

	for i, ef := range rf.Enemies {
		ref := fmt.Sprintf("enemy #%d", i)
		kind, err := model.ParseEnemyKind(ef.Kind)
		if err != nil {
			return nil, loadErr(id, ref, fmt.Errorf("%w: %q", ErrUnknownEnemy, ef.Kind))
		}
		if err := inBounds(ref, ef.Cell); err != nil {
			return nil, err
		}
		facing, err := parseFacing(ef.Facing)
		if err != nil {
			return nil, loadErr(id, ref, err)
		}
		if ef.MaxX < ef.MinX {
			return nil, loadErr(id, ref, fmt.Errorf("%w: max_x %v < min_x %v", ErrInvalidField, ef.MaxX, ef.MinX))
		}
		def.Enemies = append(def.Enemies, room.EnemySpawn{
			Kind:   kind,
			Cell:   model.Cell{X: ef.Cell.X, Y: ef.Cell.Y},
			Facing: facing,
			MinX:   ef.MinX,
			MaxX:   ef.MaxX,
		})
	}

	for _, bf := range rf.Breakables {
		ref := "breakable " + bf.ID
		if err := claim(ref, bf.ID); err != nil {
			return nil, err
		}
		if err := inBounds(ref, bf.Cell); err != nil {
			return nil, err
		}
		if bf.Hits <= 0 {
			return nil, loadErr(id, ref, fmt.Errorf("%w: hits must be positive, got %d", ErrInvalidField, bf.Hits))
		}
		b := room.BreakableSpawn{
			ID:   model.ObjectID(bf.ID),
			Box:  m.CellBox(model.Cell{X: bf.Cell.X, Y: bf.Cell.Y}),
			Hits: bf.Hits,
		}
		if bf.Loot != nil {
			if bf.Loot.Kind == "" || bf.Loot.Count <= 0 {
				return nil, loadErr(id, ref, fmt.Errorf("%w: loot needs a kind and a positive count", ErrInvalidField))
			}
			b.Loot = &event.Loot{Kind: bf.Loot.Kind, Count: bf.Loot.Count}
		}
		def.Breakables = append(def.Breakables, b)
	}

	for _, pf := range rf.Pickups {
		ref := "pickup " + pf.ID
		if err := claim(ref, pf.ID); err != nil {
			return nil, err
		}
		if err := inBounds(ref, pf.Cell); err != nil {
			return nil, err
		}
		kind := pf.Kind
		if kind == "" {
			kind = "coin"
		}
		def.Pickups = append(def.Pickups, room.PickupSpawn{
			ID:   model.ObjectID(pf.ID),
			Kind: kind,
			Cell: model.Cell{X: pf.Cell.X, Y: pf.Cell.Y},
		})
	}

	if rf.PlayerStart != nil {
		if err := inBounds("player_start", *rf.PlayerStart); err != nil {
			return nil, err
		}
		def.PlayerStart = &model.Cell{X: rf.PlayerStart.X, Y: rf.PlayerStart.Y}
	}

	if err := checkSpawns(def, opts); err != nil {
		return nil, err
	}
	return def, nil
}

// checkSpawns verifies that the player fits at every arrival spawn and at the start.
// An arrival spawn must also lie within one player radius of its door's trigger,
// where the player stood when it left through that door, so a round trip does not drift.
func checkSpawns(def *room.Def, opts Options) error {
	ts := def.Map.TileSize()
	radius := max(opts.PlayerW, opts.PlayerH) / 2
	for _, d := range def.Doors {
		pos := d.ArrivalSpawn(ts, opts.PlayerW, opts.PlayerH, opts.DoorClearance)
		box := model.Box{X: pos.X, Y: pos.Y, W: opts.PlayerW, H: opts.PlayerH}
		if g := gap(box, d.Trigger(ts)); g > radius {
			return loadErr(def.ID, "door "+d.ID+" spawn",
				fmt.Errorf("%w: %.1f px from the trigger, radius %.1f", ErrDistantSpawn, g, radius))
		}
		if err := checkFree(def, pos, opts); err != nil {
			return loadErr(def.ID, "door "+d.ID+" spawn", err)
		}
	}
	if def.PlayerStart != nil {
		pos := room.StandAt(*def.PlayerStart, ts, opts.PlayerW, opts.PlayerH)
		if err := checkFree(def, pos, opts); err != nil {
			return loadErr(def.ID, "player_start", err)
		}
	}
	return nil
}

func checkFree(def *room.Def, pos model.Vec, opts Options) error {
	box := model.Box{X: pos.X, Y: pos.Y, W: opts.PlayerW, H: opts.PlayerH}
	bounds := def.Map.Bounds()
	if box.X < 0 || box.Y < 0 || box.Right() > bounds.W || box.Bottom() > bounds.H {
		return fmt.Errorf("%w: box %+v outside room", ErrBlockedSpawn, box)
	}
	if def.Map.Overlaps(box) {
		return fmt.Errorf("%w: box %+v overlaps solid tiles", ErrBlockedSpawn, box)
	}
	for _, b := range def.Breakables {
		if box.Overlaps(b.Box) {
			return fmt.Errorf("%w: box %+v overlaps breakable %s", ErrBlockedSpawn, box, b.ID)
		}
	}
	return nil
}

// gap is the distance between two boxes, zero when they touch or overlap.
func gap(a, b model.Box) float64 {
	dx := max(0, b.X-a.Right(), a.X-b.Right())
	dy := max(0, b.Y-a.Bottom(), a.Y-b.Bottom())
	return math.Hypot(dx, dy)
}

func parseFacing(s string) (model.Facing, error) {
	switch s {
	case "", "right":
		return model.FacingRight, nil
	case "left":
		return model.FacingLeft, nil
	default:
		return 0, fmt.Errorf("%w: facing %q", ErrInvalidField, s)
	}
}
