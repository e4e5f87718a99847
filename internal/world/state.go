package world

import (
	"context"
	"errors"
	"fmt"

	"github.com/udisondev/cavern/internal/config"
	"github.com/udisondev/cavern/internal/event"
	"github.com/udisondev/cavern/internal/model"
	"github.com/udisondev/cavern/internal/room"
)

// ErrNoStart is returned when the start room has neither a player start nor a door.
var ErrNoStart = errors.New("start room has no player start")

// State is the explicit simulation context passed into every step: the tick
// counter, the single player, and the room manager holding the active room and
// the resident-room cache.
type State struct {
	Tick    uint64
	Player  *model.Actor
	Rooms   *room.Manager
	Version string
}

// NewState enters the start room and places the player at its start cell, or at
// the arrival spawn of its first door when the room has no start cell.
// The returned events are the map-integrity warnings raised while entering.
func NewState(ctx context.Context, cfg config.Game, src room.Source, version string) (*State, []event.Event, error) {
	ids := room.NewIDGenerator()
	rooms := room.NewManager(src, RoomOptions(cfg), ids)

	warnings, err := rooms.Enter(ctx, cfg.StartRoom)
	if err != nil {
		return nil, nil, fmt.Errorf("creating world state: %w", err)
	}

	def := rooms.Active().Def
	w, h := cfg.Player.Width, cfg.Player.Height
	var pos model.Vec
	switch {
	case def.PlayerStart != nil:
		pos = room.StandAt(*def.PlayerStart, def.Map.TileSize(), w, h)
	case len(def.Doors) > 0:
		pos = def.Doors[0].ArrivalSpawn(def.Map.TileSize(), w, h, cfg.Rooms.DoorClearance)
	default:
		return nil, nil, fmt.Errorf("creating world state: room %s: %w", def.ID, ErrNoStart)
	}

	player := model.NewActor(ids.NextPlayer(), model.KindPlayer, pos, w, h, PlayerTraits(cfg))
	return &State{
		Player:  player,
		Rooms:   rooms,
		Version: version,
	}, warnings, nil
}
