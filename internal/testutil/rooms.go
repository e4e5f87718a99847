package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/udisondev/cavern/internal/config"
	"github.com/udisondev/cavern/internal/game/tilemap"
	"github.com/udisondev/cavern/internal/room"
)

// ErrSimulated is a sentinel error for testing error handling paths.
var ErrSimulated = errors.New("simulated error for testing")

// TileSize is the tile edge used by the fixtures.
const TileSize = 16

// Config returns the default game config. Tests tweak the copy they get.
func Config() config.Game {
	return config.DefaultGame()
}

// Map builds a tile map from glyph rows ('.' empty, '#' solid, '=' one-way,
// 'H' ladder, '+' ladder on one-way).
func Map(tb testing.TB, rows ...string) *tilemap.Map {
	tb.Helper()
	m, err := tilemap.FromRows(rows, TileSize)
	if err != nil {
		tb.Fatalf("building test map: %v", err)
	}
	return m
}

// Def builds a room definition with the given rows and doors.
func Def(tb testing.TB, id string, rows []string, doors ...room.Door) *room.Def {
	tb.Helper()
	return &room.Def{ID: id, Map: Map(tb, rows...), Doors: doors}
}

// Source is an in-memory room source with failure and latency injection.
// Safe for concurrent use.
type Source struct {
	mu    sync.Mutex
	defs  map[string]*room.Def
	fail  map[string]error
	delay time.Duration
	loads map[string]int
}

// NewSource creates a source serving defs.
func NewSource(defs ...*room.Def) *Source {
	s := &Source{
		defs:  make(map[string]*room.Def, len(defs)),
		fail:  make(map[string]error),
		loads: make(map[string]int),
	}
	for _, d := range defs {
		s.defs[d.ID] = d
	}
	return s
}

// Fail makes loads of id return err; a nil err clears the failure.
func (s *Source) Fail(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, id)
		return
	}
	s.fail[id] = err
}

// SetDelay makes every load wait d or until its context ends.
func (s *Source) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Loads returns how many times id was requested.
func (s *Source) Loads(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads[id]
}

// Load implements room.Source.
func (s *Source) Load(ctx context.Context, id string) (*room.Def, error) {
	s.mu.Lock()
	s.loads[id]++
	def, ok := s.defs[id]
	err := s.fail[id]
	delay := s.delay
	s.mu.Unlock()

	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("room %s: not found", id)
	}
	return def, nil
}
