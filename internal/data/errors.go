package data

import (
	"errors"
	"fmt"

	"github.com/udisondev/cavern/internal/game/tilemap"
)

// Load-time data errors. A room failing any of these is never activated.
var (
	ErrDuplicateRoom  = errors.New("duplicate room id")
	ErrDuplicateID    = errors.New("duplicate id within room")
	ErrUnknownRoom    = errors.New("unknown room")
	ErrMissingDoor    = errors.New("missing target door")
	ErrAsymmetricDoor = errors.New("door pair is not symmetric")
	ErrBlockedSpawn   = errors.New("spawn blocked or out of bounds")
	ErrDistantSpawn   = errors.New("arrival spawn too far from its door")
	ErrUnknownEnemy   = errors.New("unknown enemy kind")
	ErrInvalidField   = errors.New("invalid field")
	ErrRaggedRows     = tilemap.ErrRaggedRows
	ErrUnknownGlyph   = tilemap.ErrUnknownGlyph
)

// LoadError identifies the room and the reference that failed to load.
type LoadError struct {
	Room string
	// Ref names the offending element, e.g. "door east" or "file cave.yaml".
	Ref string
	Err error
}

func (e *LoadError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("room %s: %v", e.Room, e.Err)
	}
	return fmt.Sprintf("room %s: %s: %v", e.Room, e.Ref, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadErr(room, ref string, err error) *LoadError {
	return &LoadError{Room: room, Ref: ref, Err: err}
}
