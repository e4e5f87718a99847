package main

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/udisondev/cavern/internal/model"
)

// holdFor is how long a direction stays pressed after its last key event.
// Terminals report key repeats but no releases, so a held key is a stream of
// presses and a released key is one that stopped repeating.
const holdFor = 120 * time.Millisecond

// keyboard turns terminal key events into per-tick intents.
// Press is called from the UI goroutine, Intent from the runner goroutine.
type keyboard struct {
	mu    sync.Mutex
	now   func() time.Time
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
	jump  bool
}

func newKeyboard(now func() time.Time) *keyboard {
	if now == nil {
		now = time.Now
	}
	return &keyboard{now: now}
}

// Press records a key event. It reports false for keys it does not handle.
func (k *keyboard) Press(ev *tcell.EventKey) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	t := k.now()

	switch ev.Key() {
	case tcell.KeyLeft:
		k.left, k.right = t, time.Time{}
	case tcell.KeyRight:
		k.right, k.left = t, time.Time{}
	case tcell.KeyUp:
		k.up, k.down = t, time.Time{}
	case tcell.KeyDown:
		k.down, k.up = t, time.Time{}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'h':
			k.left, k.right = t, time.Time{}
		case 'd', 'l':
			k.right, k.left = t, time.Time{}
		case 'w', 'k':
			k.up, k.down = t, time.Time{}
		case 's', 'j':
			k.down, k.up = t, time.Time{}
		case ' ', 'z':
			k.jump = true
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// Intent implements world.InputSource. A jump press is delivered exactly once.
func (k *keyboard) Intent() model.Intent {
	k.mu.Lock()
	defer k.mu.Unlock()
	t := k.now()
	held := func(at time.Time) bool {
		return !at.IsZero() && t.Sub(at) <= holdFor
	}

	var in model.Intent
	switch {
	case held(k.left):
		in.Horizontal = -1
	case held(k.right):
		in.Horizontal = 1
	}
	switch {
	case held(k.up):
		in.Vertical = -1
	case held(k.down):
		in.Vertical = 1
	}
	in.Jump = k.jump
	k.jump = false
	return in
}
