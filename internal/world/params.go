package world

import (
	"github.com/udisondev/cavern/internal/ai"
	"github.com/udisondev/cavern/internal/config"
	"github.com/udisondev/cavern/internal/data"
	"github.com/udisondev/cavern/internal/game/motion"
	"github.com/udisondev/cavern/internal/model"
	"github.com/udisondev/cavern/internal/room"
)

// MotionParams maps the physics config to integrator constants.
func MotionParams(cfg config.Game) motion.Params {
	p := cfg.Physics
	return motion.Params{
		Gravity:          p.Gravity,
		TerminalVelocity: p.TerminalVelocity,
		GraceTicks:       p.GraceTicks,
		EdgeTolerance:    p.EdgeTolerance,
		ClimbSpeed:       p.ClimbSpeed,
		HangJumpImpulse:  p.HangJumpImpulse,
	}
}

// PlayerTraits returns the player's movement traits. The player hangs and climbs.
func PlayerTraits(cfg config.Game) model.Traits {
	return model.Traits{
		RunSpeed:    cfg.Player.RunSpeed,
		JumpImpulse: cfg.Player.JumpImpulse,
		CanHang:     true,
		CanClimb:    true,
	}
}

// RoomOptions maps the config to room instantiation options.
func RoomOptions(cfg config.Game) room.Options {
	e := cfg.Enemies
	return room.Options{
		Bodies: map[model.Kind]room.Body{
			model.KindBat: {
				W: e.Bat.Width, H: e.Bat.Height,
				Traits: model.Traits{Flies: true, FlySpeed: e.Bat.FlySpeed},
			},
			model.KindSlime: {
				W: e.Slime.Width, H: e.Slime.Height,
				Traits: model.Traits{RunSpeed: e.Slime.RunSpeed, JumpImpulse: e.Slime.JumpImpulse},
			},
			model.KindWorm: {
				W: e.Worm.Width, H: e.Worm.Height,
				Traits: model.Traits{RunSpeed: e.Worm.RunSpeed},
			},
		},
		Tuning: ai.Tuning{
			BatDetectRadius: e.Bat.DetectRadius,
			BatHysteresis:   e.Bat.Hysteresis,
			SlimeSpeed:      e.Slime.RunSpeed,
			SlimeHopEvery:   e.Slime.HopInterval,
		},
		MaxPushOut:    cfg.Physics.MaxPushOut,
		DoorClearance: cfg.Rooms.DoorClearance,
		LoadTimeout:   cfg.Rooms.LoadTimeout,
	}
}

// CatalogOptions maps the config to room file loading options.
func CatalogOptions(cfg config.Game) data.Options {
	return data.Options{
		PlayerW:       cfg.Player.Width,
		PlayerH:       cfg.Player.Height,
		DoorClearance: cfg.Rooms.DoorClearance,
		Workers:       cfg.Rooms.Workers,
	}
}
