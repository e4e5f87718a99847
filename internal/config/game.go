package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Physics holds the shared motion constants. Speeds are pixels per tick.
type Physics struct {
	Gravity          float64 `yaml:"gravity"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	GraceTicks       int     `yaml:"grace_ticks"`    // edge-assist window
	EdgeTolerance    float64 `yaml:"edge_tolerance"` // px
	ClimbSpeed       float64 `yaml:"climb_speed"`
	HangJumpImpulse  float64 `yaml:"hang_jump_impulse"`
	MaxPushOut       int     `yaml:"max_push_out_iterations"`
}

// Body is the size and movement of one actor kind.
type Body struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	RunSpeed    float64 `yaml:"run_speed"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	FlySpeed    float64 `yaml:"fly_speed"`
}

// Player holds the player body.
type Player struct {
	Body `yaml:",inline"`
}

// Bat holds bat tuning.
type Bat struct {
	Body         `yaml:",inline"`
	DetectRadius float64 `yaml:"detect_radius"`
	Hysteresis   float64 `yaml:"hysteresis"`
}

// Slime holds slime tuning.
type Slime struct {
	Body        `yaml:",inline"`
	HopInterval int `yaml:"hop_interval"` // ticks
}

// Enemies holds per-kind enemy tuning.
type Enemies struct {
	Bat   Bat   `yaml:"bat"`
	Slime Slime `yaml:"slime"`
	Worm  Body  `yaml:"worm"`
}

// Rooms holds room loading and door parameters.
type Rooms struct {
	LoadTimeout   time.Duration `yaml:"load_timeout"`
	DoorClearance float64       `yaml:"door_clearance"` // px between arrival spawn and trigger
	Workers       int           `yaml:"workers"`        // concurrent room file parsers
}

// Checkpoint controls the periodic current-room checkpoint.
type Checkpoint struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
	Slot     string        `yaml:"slot"`
}

// Game holds all configuration for the simulation and its commands.
type Game struct {
	LogLevel string `yaml:"log_level"`

	TickRate  int    `yaml:"tick_rate"` // ticks per second
	MapDir    string `yaml:"map_dir"`   // empty: embedded rooms
	StartRoom string `yaml:"start_room"`

	Physics Physics `yaml:"physics"`
	Player  Player  `yaml:"player"`
	Enemies Enemies `yaml:"enemies"`
	Rooms   Rooms   `yaml:"rooms"`

	Database   DatabaseConfig `yaml:"database"`
	Checkpoint Checkpoint     `yaml:"checkpoint"`

	Audio bool `yaml:"audio"`
}

// DefaultGame returns Game config with the shipped tuning.
func DefaultGame() Game {
	return Game{
		LogLevel:  "info",
		TickRate:  60,
		StartRoom: "entrance",
		Physics: Physics{
			Gravity:          0.35,
			TerminalVelocity: 8,
			GraceTicks:       6,
			EdgeTolerance:    4,
			ClimbSpeed:       1.25,
			HangJumpImpulse:  -5.5,
			MaxPushOut:       8,
		},
		Player: Player{Body: Body{
			Width:       12,
			Height:      14,
			RunSpeed:    2,
			JumpImpulse: -6.25,
		}},
		Enemies: Enemies{
			Bat: Bat{
				Body:         Body{Width: 12, Height: 8, FlySpeed: 1},
				DetectRadius: 80,
				Hysteresis:   32,
			},
			Slime: Slime{
				Body:        Body{Width: 14, Height: 10, RunSpeed: 0.75, JumpImpulse: -3.5},
				HopInterval: 90,
			},
			Worm: Body{Width: 14, Height: 6, RunSpeed: 0.5},
		},
		Rooms: Rooms{
			LoadTimeout:   250 * time.Millisecond,
			DoorClearance: 1,
			Workers:       4,
		},
		Database: DefaultDatabase(),
		Checkpoint: Checkpoint{
			Enabled:  false,
			Interval: 10 * time.Second,
			Slot:     "default",
		},
	}
}

// Validate reports settings the simulation cannot run with.
func (g Game) Validate() error {
	var errs []error
	if g.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", g.TickRate))
	}
	if g.Physics.GraceTicks < 0 {
		errs = append(errs, fmt.Errorf("physics.grace_ticks must not be negative, got %d", g.Physics.GraceTicks))
	}
	if g.Physics.TerminalVelocity <= 0 {
		errs = append(errs, fmt.Errorf("physics.terminal_velocity must be positive, got %v", g.Physics.TerminalVelocity))
	}
	if g.Player.Width <= 0 || g.Player.Height <= 0 {
		errs = append(errs, fmt.Errorf("player size must be positive, got %vx%v", g.Player.Width, g.Player.Height))
	}
	if g.Player.JumpImpulse >= 0 {
		errs = append(errs, fmt.Errorf("player.jump_impulse must be negative (upward), got %v", g.Player.JumpImpulse))
	}
	if g.Enemies.Bat.Hysteresis < 0 {
		errs = append(errs, fmt.Errorf("enemies.bat.hysteresis must not be negative, got %v", g.Enemies.Bat.Hysteresis))
	}
	if g.Rooms.DoorClearance <= 0 {
		errs = append(errs, fmt.Errorf("rooms.door_clearance must be positive, got %v", g.Rooms.DoorClearance))
	}
	if r := max(g.Player.Width, g.Player.Height) / 2; g.Rooms.DoorClearance > r {
		errs = append(errs, fmt.Errorf("rooms.door_clearance must not exceed the player radius %v, got %v", r, g.Rooms.DoorClearance))
	}
	if g.Checkpoint.Enabled && g.Checkpoint.Interval <= 0 {
		errs = append(errs, fmt.Errorf("checkpoint.interval must be positive, got %v", g.Checkpoint.Interval))
	}
	if g.StartRoom == "" {
		errs = append(errs, errors.New("start_room is required"))
	}
	return errors.Join(errs...)
}

// TickInterval returns the wall-clock duration of one tick.
func (g Game) TickInterval() time.Duration {
	return time.Second / time.Duration(g.TickRate)
}

// Path returns the config path from EnvPath, or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// LoadGame loads game config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadGame(path string) (Game, error) {
	cfg := DefaultGame()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
