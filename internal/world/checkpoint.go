package world

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/cavern/internal/game/breakable"
	"github.com/udisondev/cavern/internal/model"
)

// ErrVersionMismatch is returned when a checkpoint was captured against other room assets.
var ErrVersionMismatch = errors.New("checkpoint asset version mismatch")

// PlayerState is the saved player body.
type PlayerState struct {
	Pos    model.Vec    `json:"pos"`
	Vel    model.Vec    `json:"vel"`
	Facing model.Facing `json:"facing"`
}

// PickupState is a saved pickup.
type PickupState struct {
	ID   model.ObjectID `json:"id"`
	Kind string         `json:"kind"`
	Box  model.Box      `json:"box"`
}

// Checkpoint is the saved state of the current room only: which room, where the
// player stands, which breakables are left with how many hits, and which
// pickups are still lying around. Enemies respawn from the room definition.
type Checkpoint struct {
	Version    string                 `json:"version"`
	Room       string                 `json:"room"`
	Tick       uint64                 `json:"tick"`
	Player     PlayerState            `json:"player"`
	Breakables map[model.ObjectID]int `json:"breakables"`
	Pickups    []PickupState          `json:"pickups"`
	SavedAt    time.Time              `json:"saved_at"`
}

// Capture records the current-room state of s.
func Capture(s *State) Checkpoint {
	r := s.Rooms.Active()
	cp := Checkpoint{
		Version: s.Version,
		Room:    r.ID(),
		Tick:    s.Tick,
		Player: PlayerState{
			Pos:    s.Player.Box.Pos(),
			Vel:    s.Player.Vel,
			Facing: s.Player.Facing,
		},
		Breakables: make(map[model.ObjectID]int, r.Breakables.Len()),
		SavedAt:    time.Now().UTC(),
	}
	for _, o := range r.Breakables.All() {
		cp.Breakables[o.ID] = o.Hits
	}
	for _, p := range r.Pickups.All() {
		cp.Pickups = append(cp.Pickups, PickupState{ID: p.ID, Kind: p.Kind, Box: p.Box})
	}
	return cp
}

// Restore re-enters the checkpoint's room with fresh state and applies the saved
// player body, breakable hits and pickups. The tick counter is kept.
func Restore(ctx context.Context, s *State, cp Checkpoint) error {
	if cp.Version != s.Version {
		return fmt.Errorf("restoring checkpoint for room %s: %w: have %s, saved %s",
			cp.Room, ErrVersionMismatch, short(s.Version), short(cp.Version))
	}
	if _, err := s.Rooms.Enter(ctx, cp.Room); err != nil {
		return fmt.Errorf("restoring checkpoint: %w", err)
	}

	r := s.Rooms.Active()
	for _, o := range r.Breakables.All() {
		r.Breakables.SetHits(o.ID, cp.Breakables[o.ID])
	}
	pickups := make([]breakable.Pickup, 0, len(cp.Pickups))
	for _, p := range cp.Pickups {
		pickups = append(pickups, breakable.Pickup{ID: p.ID, Kind: p.Kind, Box: p.Box})
	}
	r.Pickups.Reset(pickups)

	s.Player.Place(cp.Player.Pos)
	s.Player.Vel = cp.Player.Vel
	if cp.Player.Facing != 0 {
		s.Player.Facing = cp.Player.Facing
	}
	if u := r.Resolver.Unstick(s.Player.Box, cp.Player.Pos, r.Obstacles()); u.Moved {
		s.Player.Place(u.Box.Pos())
	}

	slog.Info("checkpoint restored",
		"room", cp.Room,
		"tick", cp.Tick,
		"breakables", r.Breakables.Len(),
		"pickups", r.Pickups.Len())
	return nil
}

func short(v string) string {
	if len(v) > 12 {
		return v[:12]
	}
	return v
}
