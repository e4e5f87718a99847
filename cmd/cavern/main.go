package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/cavern/internal/ai"
	"github.com/udisondev/cavern/internal/config"
	"github.com/udisondev/cavern/internal/data"
	"github.com/udisondev/cavern/internal/db"
	"github.com/udisondev/cavern/internal/event"
	"github.com/udisondev/cavern/internal/model"
	"github.com/udisondev/cavern/internal/world"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := config.Path()
	cfg, err := config.LoadGame(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config %s: %w", cfgPath, err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)
	world.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("cavern starting", "config", cfgPath, "log_level", cfg.LogLevel, "tick_rate", cfg.TickRate)

	catalog, err := data.Load(ctx, cfg.MapDir, world.CatalogOptions(cfg))
	if err != nil {
		return fmt.Errorf("loading rooms: %w", err)
	}
	slog.Info("rooms loaded", "rooms", catalog.Len(), "version", catalog.Version()[:12])

	state, warnings, err := world.NewState(ctx, cfg, catalog, catalog.Version())
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn("start room", "event", w)
	}

	var repo *db.CheckpointRepository
	if cfg.Checkpoint.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.Migrate(ctx, database.Pool()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		repo = db.NewCheckpointRepository(database.Pool())

		if err := resume(ctx, repo, cfg.Checkpoint.Slot, state); err != nil {
			return err
		}
	}

	driver := world.NewDriver(world.MotionParams(cfg))
	runner := world.NewRunner(driver, state, world.InputFunc(idle), world.SinkFunc(logEvents), cfg.TickInterval())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := runner.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("world runner: %w", err)
		}
		return nil
	})

	if repo != nil {
		g.Go(func() error {
			slog.Info("starting checkpoint loop", "interval", cfg.Checkpoint.Interval, "slot", cfg.Checkpoint.Slot)
			return saveLoop(gctx, runner, repo, cfg.Checkpoint)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	slog.Info("cavern stopped", "ticks", runner.Ticks())
	return nil
}

// resume restores the saved checkpoint of slot, if there is one for the current rooms.
func resume(ctx context.Context, repo *db.CheckpointRepository, slot string, state *world.State) error {
	cp, err := repo.Load(ctx, slot)
	if err != nil {
		return fmt.Errorf("loading checkpoint: %w", err)
	}
	if cp == nil {
		slog.Info("no checkpoint to resume", "slot", slot)
		return nil
	}
	if err := world.Restore(ctx, state, *cp); err != nil {
		if errors.Is(err, world.ErrVersionMismatch) {
			slog.Warn("ignoring stale checkpoint", "slot", slot, "err", err)
			return nil
		}
		return err
	}
	return nil
}

// saveLoop captures the current room on the runner goroutine every interval and
// stores it. A failed save is logged and retried at the next interval.
func saveLoop(ctx context.Context, runner *world.Runner, repo *db.CheckpointRepository, cfg config.Checkpoint) error {
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		var cp world.Checkpoint
		if err := runner.Do(ctx, func(s *world.State) { cp = world.Capture(s) }); err != nil {
			return nil
		}
		if err := repo.Save(ctx, cfg.Slot, cp); err != nil {
			slog.Error("saving checkpoint", "slot", cfg.Slot, "err", err)
			continue
		}
		slog.Debug("checkpoint saved", "slot", cfg.Slot, "room", cp.Room, "tick", cp.Tick)
	}
}

func idle() model.Intent {
	return model.Idle
}

func logEvents(events []event.Event, _ world.Snapshot) {
	for _, e := range events {
		switch e.Kind {
		case event.RoomTransition, event.TransitionAborted, event.Destroy:
			slog.Info("world event", "event", e)
		case event.MapIntegrityWarning:
			slog.Warn("world event", "event", e)
		default:
			if world.IsDebugEnabled() {
				slog.Debug("world event", "event", e)
			}
		}
	}
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
