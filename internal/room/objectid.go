package room

import (
	"sync/atomic"

	"github.com/udisondev/cavern/internal/model"
)

// IDGenerator hands out actor ids. Ranges keep the player and enemies apart:
//
//	0x00000000 - 0x0FFFFFFF: reserved (0 = invalid)
//	0x10000000 - 0x1FFFFFFF: player
//	0x20000000 - 0xFFFFFFFF: enemies
type IDGenerator struct {
	nextPlayer atomic.Uint32
	nextEnemy  atomic.Uint32
}

// NewIDGenerator creates a generator at the start of each range.
func NewIDGenerator() *IDGenerator {
	g := &IDGenerator{}
	g.nextPlayer.Store(0x10000000)
	g.nextEnemy.Store(0x20000000)
	return g
}

// NextPlayer returns the next player id.
func (g *IDGenerator) NextPlayer() model.ActorID {
	return model.ActorID(g.nextPlayer.Add(1))
}

// NextEnemy returns the next enemy id. Enemies get fresh ids on every
// instantiation of their room.
func (g *IDGenerator) NextEnemy() model.ActorID {
	return model.ActorID(g.nextEnemy.Add(1))
}
