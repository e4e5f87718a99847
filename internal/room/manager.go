package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/cavern/internal/ai"
	"github.com/udisondev/cavern/internal/event"
	"github.com/udisondev/cavern/internal/model"
)

// ErrNoArrivalDoor is returned when the target room lacks the paired door.
var ErrNoArrivalDoor = errors.New("arrival door not found")

// Source acquires room definitions. Load must honor ctx cancellation and return
// only fully loaded definitions.
type Source interface {
	Load(ctx context.Context, id string) (*Def, error)
}

// Options configures room instantiation and transitions.
type Options struct {
	Bodies        map[model.Kind]Body
	Tuning        ai.Tuning
	MaxPushOut    int
	DoorClearance float64
	LoadTimeout   time.Duration
}

// Phase is the transition state of the manager.
type Phase uint8

const (
	Stable Phase = iota
	Transitioning
)

// String returns human-readable phase name
func (p Phase) String() string {
	if p == Transitioning {
		return "transitioning"
	}
	return "stable"
}

// Manager owns the arena of resident rooms, keyed by room id, and the active room.
// Residency is the active room plus its direct door neighbors.
// Owned by the step driver; not safe for concurrent use.
type Manager struct {
	src  Source
	opts Options
	ids  *IDGenerator

	rooms  map[string]*Room
	active string
	phase  Phase
	// disarmed is a door the player is standing in that must not fire: an
	// aborted door, or an arrival door whose spawn overlaps its own trigger.
	// It re-arms once the player has left the trigger.
	disarmed string
}

// NewManager creates a manager with no active room.
func NewManager(src Source, opts Options, ids *IDGenerator) *Manager {
	if opts.DoorClearance <= 0 {
		opts.DoorClearance = 1
	}
	return &Manager{
		src:   src,
		opts:  opts,
		ids:   ids,
		rooms: make(map[string]*Room),
	}
}

// Enter activates room id with freshly instantiated state and settles residency
// around it. Used for the starting room and for checkpoint restores.
func (m *Manager) Enter(ctx context.Context, id string) ([]event.Event, error) {
	delete(m.rooms, id)
	r, warnings, err := m.acquire(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("entering room %s: %w", id, err)
	}
	m.active = r.ID()
	m.disarmed = ""
	m.phase = Stable

	warnings = append(warnings, m.settle(ctx)...)
	slog.Info("room entered", "room", id, "resident", m.Resident())
	return warnings, nil
}

// Active returns the active room, or nil before Enter.
func (m *Manager) Active() *Room {
	return m.rooms[m.active]
}

// ActiveID returns the active room id.
func (m *Manager) ActiveID() string {
	return m.active
}

// Phase returns the transition state.
func (m *Manager) Phase() Phase {
	return m.phase
}

// Disarmed returns the door id that is waiting for the player to step off it.
func (m *Manager) Disarmed() string {
	return m.disarmed
}

// Room returns a resident room.
func (m *Manager) Room(id string) (*Room, bool) {
	r, ok := m.rooms[id]
	return r, ok
}

// Resident returns the sorted ids of resident rooms.
func (m *Manager) Resident() []string {
	ids := make([]string, 0, len(m.rooms))
	for id := range m.rooms {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Check fires at most one door transition for the player. On success the active
// room is switched and the player is placed at the arrival spawn; on failure the
// player stays in the source room and a TransitionAborted event is returned.
func (m *Manager) Check(ctx context.Context, player *model.Actor) []event.Event {
	src := m.Active()
	if src == nil || m.phase != Stable {
		return nil
	}
	ts := src.Def.Map.TileSize()

	if m.disarmed != "" {
		d, ok := src.Def.Door(m.disarmed)
		if !ok || !player.Box.Overlaps(d.Trigger(ts)) {
			m.disarmed = ""
		}
	}

	for _, d := range src.Def.Doors {
		if d.ID == m.disarmed || !player.Box.Overlaps(d.Trigger(ts)) {
			continue
		}
		return m.cross(ctx, src, d, player)
	}
	return nil
}

func (m *Manager) cross(ctx context.Context, src *Room, d Door, player *model.Actor) []event.Event {
	m.phase = Transitioning
	defer func() { m.phase = Stable }()

	target, events, err := m.acquire(ctx, d.TargetRoom)
	var arrival Door
	if err == nil {
		var ok bool
		if arrival, ok = target.Def.Door(d.TargetDoor); !ok {
			err = fmt.Errorf("room %s door %s: %w", d.TargetRoom, d.TargetDoor, ErrNoArrivalDoor)
		}
	}
	if err != nil {
		// Stay put; the door stays quiet until the player steps off it.
		m.disarmed = d.ID
		slog.Warn("room transition aborted",
			"from", src.ID(),
			"to", d.TargetRoom,
			"door", d.ID,
			"error", err)
		return append(events, event.Event{
			Kind:      event.TransitionAborted,
			Room:      src.ID(),
			Actor:     player.ID,
			ActorKind: player.Kind,
			FromRoom:  src.ID(),
			ToRoom:    d.TargetRoom,
			Door:      d.ID,
			Message:   err.Error(),
		})
	}

	vy := player.Vel.Y
	pos := arrival.ArrivalSpawn(target.Def.Map.TileSize(), player.Box.W, player.Box.H, m.opts.DoorClearance)
	player.Place(pos)
	if arrival.Side == SideUp || arrival.Side == SideDown {
		// Keep vertical momentum through floor and ceiling doors.
		player.Vel.Y = vy
	}

	if u := target.Resolver.Unstick(player.Box, pos, target.Obstacles()); u.Moved {
		player.Place(u.Box.Pos())
		slog.Warn("map integrity",
			"room", target.ID(),
			"door", arrival.ID,
			"spawn", pos,
			"placed", u.Box.Pos())
		events = append(events, event.Event{
			Kind:      event.MapIntegrityWarning,
			Room:      target.ID(),
			Actor:     player.ID,
			ActorKind: player.Kind,
			Pos:       u.Box.Pos(),
			Message:   "arrival spawn embedded, player moved",
		})
	}

	m.active = target.ID()
	m.disarmed = ""
	if player.Box.Overlaps(arrival.Trigger(target.Def.Map.TileSize())) {
		m.disarmed = arrival.ID
	}
	events = append(events, event.Event{
		Kind:      event.RoomTransition,
		Room:      target.ID(),
		Actor:     player.ID,
		ActorKind: player.Kind,
		Pos:       player.Box.Pos(),
		FromRoom:  src.ID(),
		ToRoom:    target.ID(),
		Door:      d.ID,
	})

	slog.Debug("room transition",
		"from", src.ID(),
		"to", target.ID(),
		"door", d.ID,
		"arrival", arrival.ID)

	return append(events, m.settle(ctx)...)
}

// acquire returns the resident room or loads and instantiates it.
func (m *Manager) acquire(ctx context.Context, id string) (*Room, []event.Event, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil, nil
	}
	def, err := m.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	r, warnings, err := instantiate(def, m.opts, m.ids)
	if err != nil {
		return nil, nil, err
	}
	m.rooms[id] = r
	return r, warnings, nil
}

func (m *Manager) load(ctx context.Context, id string) (*Def, error) {
	if m.opts.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.opts.LoadTimeout)
		defer cancel()
	}
	def, err := m.src.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading room %s: %w", id, err)
	}
	if def == nil || def.Map == nil {
		return nil, fmt.Errorf("loading room %s: incomplete definition", id)
	}
	return def, nil
}

// settle prefetches the active room's neighbors concurrently, installs them once
// every load has finished, and evicts rooms that are no longer adjacent.
// A neighbor that fails to load is skipped; crossing into it later retries.
func (m *Manager) settle(ctx context.Context) []event.Event {
	active := m.Active()
	keep := map[string]struct{}{active.ID(): {}}
	var missing []string
	for _, id := range active.Def.Neighbors() {
		keep[id] = struct{}{}
		if _, ok := m.rooms[id]; !ok {
			missing = append(missing, id)
		}
	}

	defs := make([]*Def, len(missing))
	var g errgroup.Group
	for i, id := range missing {
		g.Go(func() error {
			def, err := m.load(ctx, id)
			if err != nil {
				return err
			}
			defs[i] = def
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Warn("prefetching neighbor rooms", "room", active.ID(), "error", err)
	}

	var warnings []event.Event
	for i, def := range defs {
		if def == nil {
			continue
		}
		r, w, err := instantiate(def, m.opts, m.ids)
		if err != nil {
			slog.Warn("instantiating neighbor room", "room", missing[i], "error", err)
			continue
		}
		m.rooms[missing[i]] = r
		warnings = append(warnings, w...)
	}

	for id := range m.rooms {
		if _, ok := keep[id]; !ok {
			delete(m.rooms, id)
			slog.Debug("room evicted", "room", id)
		}
	}
	return warnings
}
