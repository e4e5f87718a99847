package world

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/cavern/internal/event"
	"github.com/udisondev/cavern/internal/model"
)

// InputSource samples the player's intent once per tick.
type InputSource interface {
	Intent() model.Intent
}

// InputFunc adapts a function to InputSource.
type InputFunc func() model.Intent

// Intent calls f.
func (f InputFunc) Intent() model.Intent { return f() }

// Sink receives every tick's events and the post-tick snapshot.
// Publish is called on the runner goroutine and must not block for long.
type Sink interface {
	Publish(events []event.Event, snap Snapshot)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(events []event.Event, snap Snapshot)

// Publish calls f.
func (f SinkFunc) Publish(events []event.Event, snap Snapshot) { f(events, snap) }

// Runner drives the step driver at a fixed tick rate.
// The state is owned by the runner goroutine while Start runs; other goroutines
// reach it only through Do.
type Runner struct {
	driver   *Driver
	state    *State
	input    InputSource
	sink     Sink
	interval time.Duration

	ticker   *time.Ticker
	stopCh   chan struct{}
	stopOnce sync.Once
	calls    chan func(*State)
	ticks    atomic.Uint64
}

// NewRunner creates a runner. sink may be nil.
func NewRunner(d *Driver, s *State, input InputSource, sink Sink, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Runner{
		driver:   d,
		state:    s,
		input:    input,
		sink:     sink,
		interval: interval,
		stopCh:   make(chan struct{}),
		calls:    make(chan func(*State)),
	}
}

// Start runs the tick loop (blocks until ctx is canceled or Stop is called).
func (r *Runner) Start(ctx context.Context) error {
	r.ticker = time.NewTicker(r.interval)
	defer r.ticker.Stop()

	slog.Info("world runner started",
		"interval", r.interval,
		"room", r.state.Rooms.ActiveID())

	for {
		select {
		case <-ctx.Done():
			slog.Info("world runner stopping", "ticks", r.ticks.Load())
			return ctx.Err()

		case <-r.stopCh:
			slog.Info("world runner stopped", "ticks", r.ticks.Load())
			return nil

		case fn := <-r.calls:
			fn(r.state)

		case <-r.ticker.C:
			r.tick(ctx)
		}
	}
}

// Stop stops the tick loop. Safe to call more than once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// Ticks returns the number of ticks run so far.
func (r *Runner) Ticks() uint64 {
	return r.ticks.Load()
}

// Do runs fn on the runner goroutine between two ticks and waits for it.
// It returns ctx.Err() if the runner does not pick fn up before ctx ends.
func (r *Runner) Do(ctx context.Context, fn func(*State)) error {
	done := make(chan struct{})
	wrapped := func(s *State) {
		defer close(done)
		fn(s)
	}
	select {
	case r.calls <- wrapped:
	case <-ctx.Done():
		return ctx.Err()
	case <-r.stopCh:
		return context.Canceled
	}
	<-done
	return nil
}

func (r *Runner) tick(ctx context.Context) {
	input := model.Idle
	if r.input != nil {
		input = r.input.Intent()
	}
	events := r.driver.Step(ctx, r.state, input)
	r.ticks.Add(1)
	if r.sink != nil {
		r.sink.Publish(events, r.state.Snapshot())
	}
}
