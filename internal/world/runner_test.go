package world

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cavern/internal/event"
	"github.com/udisondev/cavern/internal/model"
	"github.com/udisondev/cavern/internal/testutil"
)

type recorder struct {
	mu     sync.Mutex
	snaps  []Snapshot
	events []event.Event
}

func (r *recorder) Publish(events []event.Event, snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, snap)
	r.events = append(r.events, events...)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snaps)
}

func newRunner(t *testing.T, input InputSource, sink Sink) *Runner {
	t.Helper()
	cfg := testutil.Config()
	s := newState(t, cfg, boxRoom(t, model.Cell{X: 2, Y: 6}))
	return NewRunner(NewDriver(MotionParams(cfg)), s, input, sink, time.Millisecond)
}

func TestRunner_StopsOnCancel(t *testing.T) {
	rec := &recorder{}
	r := newRunner(t, nil, rec)
	ctx, cancel := testutil.ContextWithCancel(t)

	errCh := make(chan error, 1)
	go func() { errCh <- r.Start(ctx) }()

	require.Eventually(t, func() bool { return r.Ticks() >= 3 }, 2*time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.NotEmpty(t, rec.snaps)
	for i, snap := range rec.snaps {
		assert.Equal(t, uint64(i+1), snap.Tick)
		assert.Equal(t, "box", snap.Room)
	}
	require.NotEmpty(t, rec.events)
	assert.Equal(t, event.Land, rec.events[0].Kind)
}

func TestRunner_Stop(t *testing.T) {
	r := newRunner(t, nil, nil)

	errCh := make(chan error, 1)
	go func() { errCh <- r.Start(context.Background()) }()

	require.Eventually(t, func() bool { return r.Ticks() >= 1 }, 2*time.Second, time.Millisecond)
	r.Stop()
	r.Stop()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}

	err := r.Do(context.Background(), func(*State) {})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_InputAndDo(t *testing.T) {
	input := InputFunc(func() model.Intent { return model.Intent{Horizontal: 1} })
	rec := &recorder{}
	r := newRunner(t, input, rec)
	ctx := testutil.ContextWithTimeout(t, 5*time.Second)

	errCh := make(chan error, 1)
	go func() { errCh <- r.Start(ctx) }()
	t.Cleanup(func() {
		r.Stop()
		<-errCh
	})

	require.Eventually(t, func() bool { return rec.count() >= 5 }, 2*time.Second, time.Millisecond)

	var tick uint64
	var x float64
	err := r.Do(ctx, func(s *State) {
		tick = s.Tick
		x = s.Player.Box.X
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, tick, uint64(5))
	assert.Greater(t, x, 34.0, "player moved right")
}

func TestRunner_DoHonorsContext(t *testing.T) {
	r := newRunner(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Runner не запущен: вызов никто не забирает.
	err := r.Do(ctx, func(*State) {})

	assert.ErrorIs(t, err, context.Canceled)
}
