package room

import (
	"fmt"

	"github.com/udisondev/cavern/internal/event"
	"github.com/udisondev/cavern/internal/game/tilemap"
	"github.com/udisondev/cavern/internal/model"
)

// Side is the room edge a door sits on. Arrival spawns are placed on the
// interior side of the door's trigger cell.
type Side uint8

const (
	SideLeft Side = iota + 1
	SideRight
	SideUp
	SideDown
)

// String returns human-readable side name
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideUp:
		return "up"
	case SideDown:
		return "down"
	default:
		return "unknown"
	}
}

// ParseSide maps the map-data spelling of a side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	case "up":
		return SideUp, nil
	case "down":
		return SideDown, nil
	default:
		return 0, fmt.Errorf("unknown door side %q", s)
	}
}

// Door is a trigger cell linking to a door of another room. Doors hold ids only.
type Door struct {
	ID         string
	Cell       model.Cell
	Side       Side
	TargetRoom string
	TargetDoor string
	// Spawn overrides the derived arrival position when this door is the target.
	Spawn *model.Vec
}

// Trigger returns the door's trigger region.
func (d Door) Trigger(tileSize float64) model.Box {
	return model.Box{
		X: float64(d.Cell.X) * tileSize,
		Y: float64(d.Cell.Y) * tileSize,
		W: tileSize,
		H: tileSize,
	}
}

// ArrivalSpawn returns the top-left position for a w×h body arriving through d.
// The body is placed clearance pixels off the trigger on the room-interior side,
// standing on the trigger's bottom edge for side doors and centered for vertical ones.
func (d Door) ArrivalSpawn(tileSize, w, h, clearance float64) model.Vec {
	if d.Spawn != nil {
		return *d.Spawn
	}
	t := d.Trigger(tileSize)
	cx := t.X + (t.W-w)/2
	switch d.Side {
	case SideLeft:
		return model.Vec{X: t.Right() + clearance, Y: t.Bottom() - h}
	case SideRight:
		return model.Vec{X: t.X - clearance - w, Y: t.Bottom() - h}
	case SideUp:
		return model.Vec{X: cx, Y: t.Bottom() + clearance}
	default:
		return model.Vec{X: cx, Y: t.Y - clearance - h}
	}
}

// StandAt returns the top-left position of a w×h body standing on the bottom
// edge of cell c, centered horizontally.
func StandAt(c model.Cell, tileSize, w, h float64) model.Vec {
	return model.Vec{
		X: float64(c.X)*tileSize + (tileSize-w)/2,
		Y: float64(c.Y+1)*tileSize - h,
	}
}

// EnemySpawn places one enemy, standing in Cell, when the room is instantiated.
type EnemySpawn struct {
	Kind   model.Kind
	Cell   model.Cell
	Facing model.Facing
	// MinX and MaxX bound slime patrols; zero values mean the room width.
	MinX float64
	MaxX float64
}

// BreakableSpawn places one breakable object.
type BreakableSpawn struct {
	ID   model.ObjectID
	Box  model.Box
	Hits int
	Loot *event.Loot
}

// PickupSpawn places one pickup centered in Cell.
type PickupSpawn struct {
	ID   model.ObjectID
	Kind string
	Cell model.Cell
}

// Def is the immutable, loaded description of a room.
type Def struct {
	ID          string
	Map         *tilemap.Map
	Doors       []Door
	Enemies     []EnemySpawn
	Breakables  []BreakableSpawn
	Pickups     []PickupSpawn
	// PlayerStart is the cell the player stands in when the game starts here.
	PlayerStart *model.Cell
}

// Door returns the door with the given id.
func (d *Def) Door(id string) (Door, bool) {
	for _, door := range d.Doors {
		if door.ID == id {
			return door, true
		}
	}
	return Door{}, false
}

// Neighbors returns the distinct target room ids of the doors, in door order.
func (d *Def) Neighbors() []string {
	seen := make(map[string]struct{}, len(d.Doors))
	out := make([]string, 0, len(d.Doors))
	for _, door := range d.Doors {
		if door.TargetRoom == d.ID {
			continue
		}
		if _, ok := seen[door.TargetRoom]; ok {
			continue
		}
		seen[door.TargetRoom] = struct{}{}
		out = append(out, door.TargetRoom)
	}
	return out
}
