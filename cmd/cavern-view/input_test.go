package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/udisondev/cavern/internal/model"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }
func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }
func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func TestKeyboard_HoldAndRelease(t *testing.T) {
	c := &clock{t: time.Unix(1000, 0)}
	k := newKeyboard(c.now)

	assert.True(t, k.Press(key(tcell.KeyRight)))
	assert.Equal(t, model.Intent{Horizontal: 1}, k.Intent())

	c.advance(holdFor)
	assert.Equal(t, model.Intent{Horizontal: 1}, k.Intent(), "still held within the repeat window")

	c.advance(time.Millisecond)
	assert.Equal(t, model.Idle, k.Intent(), "released once repeats stop")
}

func TestKeyboard_OppositeDirectionWins(t *testing.T) {
	c := &clock{t: time.Unix(1000, 0)}
	k := newKeyboard(c.now)

	k.Press(runeKey('d'))
	k.Press(runeKey('a'))
	k.Press(key(tcell.KeyUp))

	assert.Equal(t, model.Intent{Horizontal: -1, Vertical: -1}, k.Intent())
}

func TestKeyboard_JumpIsDeliveredOnce(t *testing.T) {
	c := &clock{t: time.Unix(1000, 0)}
	k := newKeyboard(c.now)

	k.Press(runeKey(' '))

	assert.True(t, k.Intent().Jump)
	assert.False(t, k.Intent().Jump)
}

func TestKeyboard_IgnoresOtherKeys(t *testing.T) {
	k := newKeyboard(nil)

	assert.False(t, k.Press(runeKey('x')))
	assert.False(t, k.Press(key(tcell.KeyTab)))
	assert.Equal(t, model.Idle, k.Intent())
}

func TestQuits(t *testing.T) {
	assert.True(t, quits(key(tcell.KeyEscape)))
	assert.True(t, quits(runeKey('q')))
	assert.False(t, quits(runeKey('w')))
}
