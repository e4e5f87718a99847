package event

import (
	"fmt"

	"github.com/udisondev/cavern/internal/model"
)

// Kind is the event type.
type Kind uint8

const (
	// Contact: an enemy touched the player or was stomped by it.
	Contact Kind = iota + 1
	// Destroy: a breakable object ran out of hits and was removed.
	Destroy
	// LootSpawn: a destroyed breakable dropped loot. Always follows its Destroy.
	LootSpawn
	// RoomTransition: the player crossed a door into another room.
	RoomTransition
	// TransitionAborted: the target room could not be loaded; the player stays.
	TransitionAborted
	// MapIntegrityWarning: degenerate map data was repaired at runtime.
	MapIntegrityWarning
	// Jump: an actor left the ground by a jump impulse.
	Jump
	// Land: an airborne actor became grounded.
	Land
	// PickupCollected: the player collected a pickup.
	PickupCollected
)

// String returns human-readable event kind
func (k Kind) String() string {
	switch k {
	case Contact:
		return "contact"
	case Destroy:
		return "destroy"
	case LootSpawn:
		return "loot_spawn"
	case RoomTransition:
		return "room_transition"
	case TransitionAborted:
		return "transition_aborted"
	case MapIntegrityWarning:
		return "map_integrity_warning"
	case Jump:
		return "jump"
	case Land:
		return "land"
	case PickupCollected:
		return "pickup_collected"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ContactType distinguishes what a Contact event means for the hit-point system.
type ContactType uint8

const (
	// ContactHurt: the enemy touched the player (lethal contact).
	ContactHurt ContactType = iota + 1
	// ContactStomp: the player landed on the enemy from above; the enemy is damaged.
	ContactStomp
)

// String returns human-readable contact type
func (c ContactType) String() string {
	switch c {
	case ContactHurt:
		return "hurt"
	case ContactStomp:
		return "stomp"
	default:
		return "none"
	}
}

// Loot describes what a destroyed breakable drops.
type Loot struct {
	Kind  string
	Count int
}

// Event is one entry of the per-tick event log. Fields not relevant to Kind are zero.
type Event struct {
	Tick uint64
	Kind Kind
	Room string

	Actor     model.ActorID
	ActorKind model.Kind
	Other     model.ActorID
	Object    model.ObjectID
	Contact   ContactType

	Pos  model.Vec
	Loot Loot

	FromRoom string
	ToRoom   string
	Door     string

	Message string
}

// String formats the event for logs.
func (e Event) String() string {
	switch e.Kind {
	case RoomTransition, TransitionAborted:
		return fmt.Sprintf("#%d %s %s->%s door=%s %s", e.Tick, e.Kind, e.FromRoom, e.ToRoom, e.Door, e.Message)
	case Destroy, LootSpawn, PickupCollected:
		return fmt.Sprintf("#%d %s room=%s object=%s", e.Tick, e.Kind, e.Room, e.Object)
	case MapIntegrityWarning:
		return fmt.Sprintf("#%d %s room=%s actor=%d %s", e.Tick, e.Kind, e.Room, e.Actor, e.Message)
	default:
		return fmt.Sprintf("#%d %s room=%s actor=%d", e.Tick, e.Kind, e.Room, e.Actor)
	}
}
