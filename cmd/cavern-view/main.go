package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/cavern/internal/audio"
	"github.com/udisondev/cavern/internal/config"
	"github.com/udisondev/cavern/internal/data"
	"github.com/udisondev/cavern/internal/event"
	"github.com/udisondev/cavern/internal/world"
)

// frameInterval is the redraw period; the simulation keeps its own tick rate.
const frameInterval = 33 * time.Millisecond

// errQuit ends the UI loop when the player quits.
var errQuit = errors.New("quit")

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "cavern-view:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadGame(config.Path())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	// The terminal belongs to the viewer; logs go to stderr only when asked for.
	out := os.Stderr
	if os.Getenv("CAVERN_VIEW_LOG") == "" {
		out, err = os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelWarn})))

	catalog, err := data.Load(ctx, cfg.MapDir, world.CatalogOptions(cfg))
	if err != nil {
		return fmt.Errorf("loading rooms: %w", err)
	}
	state, _, err := world.NewState(ctx, cfg, catalog, catalog.Version())
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	player := audio.NewPlayer(0.6)
	if cfg.Audio {
		if err := player.Open(); err != nil {
			// Non-fatal, the viewer runs without sound
			slog.Warn("audio unavailable", "err", err)
		}
		defer player.Close()
	}

	v := &viewer{screen: screen, keys: newKeyboard(nil), audio: player}
	first := state.Snapshot()
	v.latest.Store(&first)

	runner := world.NewRunner(world.NewDriver(world.MotionParams(cfg)), state, v.keys, v, cfg.TickInterval())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runner.Start(gctx)
	})
	g.Go(func() error {
		defer runner.Stop()
		return v.loop(gctx)
	})

	err = g.Wait()
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// viewer owns the terminal. It receives snapshots from the runner and redraws
// the newest one every frame.
type viewer struct {
	screen tcell.Screen
	keys   *keyboard
	audio  *audio.Player

	latest atomic.Pointer[world.Snapshot]

	mu     sync.Mutex
	status string
}

// Publish implements world.Sink.
func (v *viewer) Publish(events []event.Event, snap world.Snapshot) {
	v.latest.Store(&snap)
	v.audio.Play(events)

	for _, e := range events {
		switch e.Kind {
		case event.TransitionAborted:
			v.setStatus(fmt.Sprintf("door %s is stuck: %s", e.Door, e.Message))
		case event.MapIntegrityWarning:
			v.setStatus(e.Message)
		case event.RoomTransition:
			v.setStatus("")
		}
	}
}

func (v *viewer) setStatus(s string) {
	v.mu.Lock()
	v.status = s
	v.mu.Unlock()
}

func (v *viewer) currentStatus() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

func (v *viewer) loop(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quits(ev) {
					return errQuit
				}
				v.keys.Press(ev)
			case *tcell.EventResize:
				v.screen.Sync()
			}

		case <-ticker.C:
			draw(v.screen, *v.latest.Load(), v.currentStatus())
		}
	}
}

func quits(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
		(ev.Key() == tcell.KeyRune && ev.Rune() == 'q')
}
